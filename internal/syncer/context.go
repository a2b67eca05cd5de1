package syncer

import (
	"errors"

	"github.com/iudanet/cloudsync/internal/models"
)

// Phase is the part of a task that was running when it paused.
type Phase int

const (
	PhaseFirstDownload Phase = iota
	PhaseSync
)

// TaskContext is the mutable state of the running task.
// It is owned by the goroutine running the task.
type TaskContext struct {
	strategy    Strategy
	notifier    *notifier
	primaryKeys map[string][]string
	assetFields map[string][]string
	// downloadList holds asset downloads of a committed batch not yet materialized.
	downloadList map[string][]models.DownloadItem
	// cloudMarks caches cloud watermarks per user and table.
	cloudMarks map[string]string
	// stalled marks tables whose local watermark must not move for the rest of the task.
	stalled map[string]bool
	// tableErrs holds unresolved table failures per user and table.
	tableErrs map[string]error
	// uploadCounted marks tables whose upload total is already reported.
	uploadCounted map[string]bool
	// table is the table being downloaded or uploaded.
	table      string
	phase      Phase
	userIndex  int
	tableIndex int
	locked     bool
}

func newTaskContext(strategy Strategy, n *notifier) *TaskContext {
	return &TaskContext{
		strategy:      strategy,
		notifier:      n,
		primaryKeys:   make(map[string][]string),
		assetFields:   make(map[string][]string),
		downloadList:  make(map[string][]models.DownloadItem),
		cloudMarks:    make(map[string]string),
		stalled:       make(map[string]bool),
		tableErrs:     make(map[string]error),
		uploadCounted: make(map[string]bool),
	}
}

// failure returns the table failures left at the end of the task in task order.
func (c *TaskContext) failure(users, tables []string) error {
	var errs []error
	for _, user := range users {
		for _, table := range tables {
			if err, ok := c.tableErrs[cloudMarkKey(user, table)]; ok {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

func cloudMarkKey(user, table string) string {
	return user + "/" + table
}

// ResumeTaskInfo is the context of a paused task.
type ResumeTaskInfo struct {
	ctx        *TaskContext
	phase      Phase
	userIndex  int
	tableIndex int
}

// saveResume detaches the context of a task that is pausing.
func (c *TaskContext) saveResume() *ResumeTaskInfo {
	c.locked = false
	return &ResumeTaskInfo{
		ctx:        c,
		phase:      c.phase,
		userIndex:  c.userIndex,
		tableIndex: c.tableIndex,
	}
}

// restore adopts the context saved on pause.
func (r *ResumeTaskInfo) restore() *TaskContext {
	c := r.ctx
	c.phase = r.phase
	c.userIndex = r.userIndex
	c.tableIndex = r.tableIndex
	return c
}
