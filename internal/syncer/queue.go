package syncer

import "sort"

// taskQueue keeps pending tasks: priority tasks first ordered by level,
// FIFO by submission order otherwise. Not safe for concurrent use.
type taskQueue struct {
	items []*CloudTaskInfo
}

func (q *taskQueue) less(a, b *CloudTaskInfo) bool {
	if a.opt.Priority != b.opt.Priority {
		return a.opt.Priority
	}
	if a.opt.Priority && a.opt.PriorityLevel != b.opt.PriorityLevel {
		return a.opt.PriorityLevel > b.opt.PriorityLevel
	}
	return a.seq < b.seq
}

func (q *taskQueue) push(t *CloudTaskInfo) {
	i := sort.Search(len(q.items), func(i int) bool {
		return q.less(t, q.items[i])
	})
	q.items = append(q.items, nil)
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = t
}

func (q *taskQueue) pop() *CloudTaskInfo {
	if len(q.items) == 0 {
		return nil
	}
	t := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return t
}

func (q *taskQueue) remove(id TaskID) *CloudTaskInfo {
	for i, t := range q.items {
		if t.id == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return t
		}
	}
	return nil
}

// drain removes and returns every queued task.
func (q *taskQueue) drain() []*CloudTaskInfo {
	items := q.items
	q.items = nil
	return items
}

// count returns the number of queued tasks of a class.
func (q *taskQueue) count(priority bool) int {
	var n int
	for _, t := range q.items {
		if t.opt.Priority == priority {
			n++
		}
	}
	return n
}

func (q *taskQueue) hasCompensated() bool {
	for _, t := range q.items {
		if t.opt.Compensated {
			return true
		}
	}
	return false
}

func (q *taskQueue) len() int {
	return len(q.items)
}
