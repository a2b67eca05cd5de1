package syncer

import (
	"sync"
)

//go:generate moq -out observer_mock.go . Observer

// Observer receives progress snapshots of sync tasks.
// Callbacks run on the engine goroutine and must not block.
type Observer interface {
	OnProcess(p SyncProcess)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(p SyncProcess)

// OnProcess calls f(p).
func (f ObserverFunc) OnProcess(p SyncProcess) {
	f(p)
}

// Counter counts rows handled in one direction.
type Counter struct {
	Total   int64
	Success int64
	Fail    int64
}

// TableProcess is the progress of one table.
type TableProcess struct {
	Table    string
	Upload   Counter
	Download Counter
	Assets   Counter
	Status   TaskStatus
}

// SyncProcess is a snapshot of task progress.
type SyncProcess struct {
	Err    error
	Tables map[string]TableProcess
	TaskID TaskID
	Status TaskStatus
}

func (p SyncProcess) clone() SyncProcess {
	out := p
	out.Tables = make(map[string]TableProcess, len(p.Tables))
	for k, v := range p.Tables {
		out.Tables[k] = v
	}
	return out
}

// notifier aggregates progress of the running task and publishes snapshots.
type notifier struct {
	observers func() []Observer
	process   SyncProcess
	mu        sync.Mutex
}

func newNotifier(id TaskID, tables []string, observers func() []Observer) *notifier {
	n := &notifier{
		observers: observers,
		process: SyncProcess{
			TaskID: id,
			Status: StatusPrepared,
			Tables: make(map[string]TableProcess, len(tables)),
		},
	}
	for _, t := range tables {
		n.process.Tables[t] = TableProcess{Table: t, Status: StatusPrepared}
	}
	return n
}

// update changes progress of a table under the lock and publishes a snapshot.
func (n *notifier) update(table string, fn func(tp *TableProcess)) {
	n.mu.Lock()
	tp := n.process.Tables[table]
	tp.Table = table
	fn(&tp)
	n.process.Tables[table] = tp
	n.process.Status = StatusProcessing
	snapshot := n.process.clone()
	n.mu.Unlock()

	n.publish(snapshot)
}

func (n *notifier) tableStatus(table string, status TaskStatus) {
	n.update(table, func(tp *TableProcess) {
		tp.Status = status
	})
}

func (n *notifier) download(table string, total, success, fail int64) {
	n.update(table, func(tp *TableProcess) {
		tp.Status = StatusProcessing
		tp.Download.Total += total
		tp.Download.Success += success
		tp.Download.Fail += fail
	})
}

// uploadTotal adds the number of rows the table is going to upload for one user.
func (n *notifier) uploadTotal(table string, total int64) {
	n.update(table, func(tp *TableProcess) {
		tp.Status = StatusProcessing
		tp.Upload.Total += total
	})
}

func (n *notifier) upload(table string, success, fail int64) {
	n.update(table, func(tp *TableProcess) {
		tp.Upload.Success += success
		tp.Upload.Fail += fail
	})
}

func (n *notifier) assets(table string, success, fail int64) {
	n.update(table, func(tp *TableProcess) {
		tp.Assets.Total += success + fail
		tp.Assets.Success += success
		tp.Assets.Fail += fail
	})
}

// finish marks every table finished and publishes the final snapshot.
func (n *notifier) finish(err error) SyncProcess {
	n.mu.Lock()
	for k, tp := range n.process.Tables {
		tp.Status = StatusFinished
		n.process.Tables[k] = tp
	}
	n.process.Status = StatusFinished
	n.process.Err = err
	snapshot := n.process.clone()
	n.mu.Unlock()

	n.publish(snapshot)
	return snapshot
}

func (n *notifier) publish(p SyncProcess) {
	if n.observers == nil {
		return
	}
	for _, o := range n.observers() {
		o.OnProcess(p.clone())
	}
}
