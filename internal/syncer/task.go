package syncer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/cloudsync/internal/models"
)

// CloudDevice is the only device a cloud sync task accepts.
const CloudDevice = "cloud"

// TaskID identifies a submitted task.
type TaskID uint64

// TaskStatus is the externally visible status of a task or table.
type TaskStatus int

const (
	StatusPrepared TaskStatus = iota
	StatusProcessing
	StatusFinished
)

func (s TaskStatus) String() string {
	switch s {
	case StatusPrepared:
		return "prepared"
	case StatusProcessing:
		return "processing"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// SyncOption describes a sync request.
type SyncOption struct {
	// Observer receives progress of this task only.
	Observer Observer
	Tables   []string
	// Devices must be exactly [CloudDevice].
	Devices []string
	// Users lists accounts of a multi-user store, empty for a single user store.
	Users []string
	Mode  models.SyncMode
	// Timeout limits the total run time of the task, zero uses the engine default.
	Timeout time.Duration
	// PriorityLevel orders priority tasks, higher runs first.
	PriorityLevel int
	// Priority tasks run before common ones and pause a running common task.
	Priority bool
	// AssetsOnly re-materializes assets of rows already present locally.
	AssetsOnly bool
	// Compensated marks a task generated to retry a failed one.
	Compensated bool
}

func (o *SyncOption) validate() error {
	if len(o.Devices) != 1 || o.Devices[0] != CloudDevice {
		return fmt.Errorf("%w: devices must be [%q], got %v", ErrInvalidArgs, CloudDevice, o.Devices)
	}
	if !o.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %s", ErrInvalidArgs, o.Mode)
	}
	if len(o.Tables) == 0 {
		return fmt.Errorf("%w: no tables", ErrInvalidArgs)
	}
	seen := make(map[string]struct{}, len(o.Tables))
	for _, t := range o.Tables {
		if t == "" {
			return fmt.Errorf("%w: empty table name", ErrInvalidArgs)
		}
		if _, ok := seen[t]; ok {
			return fmt.Errorf("%w: duplicate table %s", ErrInvalidArgs, t)
		}
		seen[t] = struct{}{}
	}
	if o.PriorityLevel < 0 {
		return fmt.Errorf("%w: negative priority level", ErrInvalidArgs)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidArgs)
	}
	if o.AssetsOnly && o.Mode == models.SyncModePush {
		return fmt.Errorf("%w: assets only sync cannot push", ErrInvalidArgs)
	}
	return nil
}

// users returns the user fan out of the task.
func (o *SyncOption) users() []string {
	if len(o.Users) == 0 {
		return []string{""}
	}
	return o.Users
}

// CloudTaskInfo is a submitted task as tracked by the engine.
type CloudTaskInfo struct {
	deadline time.Time
	err      error
	// canceled is set by Cancel under the engine lock.
	canceled   error
	cancel     context.CancelCauseFunc
	resume     *ResumeTaskInfo
	done       chan struct{}
	result     SyncProcess
	opt        SyncOption
	id         TaskID
	seq        uint64
	status     TaskStatus
	finishOnce sync.Once
	pause      atomic.Bool
	started    bool
}

func newTask(id TaskID, seq uint64, opt SyncOption) *CloudTaskInfo {
	return &CloudTaskInfo{
		id:     id,
		seq:    seq,
		opt:    opt,
		status: StatusPrepared,
		done:   make(chan struct{}),
	}
}

// ID returns the task id.
func (t *CloudTaskInfo) ID() TaskID {
	return t.id
}

// preempts reports whether t should pause a running task other.
func (t *CloudTaskInfo) preempts(other *CloudTaskInfo) bool {
	if !t.opt.Priority {
		return false
	}
	if !other.opt.Priority {
		return true
	}
	return t.opt.PriorityLevel > other.opt.PriorityLevel
}
