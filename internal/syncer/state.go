package syncer

import "fmt"

// State is the orchestrator state of a task.
type State int

const (
	StatePrepared State = iota
	StateProcessing
	StateDownload
	StateUpload
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StatePrepared:
		return "prepared"
	case StateProcessing:
		return "processing"
	case StateDownload:
		return "download"
	case StateUpload:
		return "upload"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event drives a task from one state to the next.
type Event int

const (
	// EventProcess starts a fresh task.
	EventProcess Event = iota
	// EventDownload starts or continues downloading a table.
	EventDownload
	// EventUpload starts or continues uploading a table.
	EventUpload
	// EventLock takes the cloud lock before mutating the cloud.
	EventLock
	// EventPause preempts the task.
	EventPause
	// EventFinish completes the task successfully.
	EventFinish
	// EventFail completes the task with an error.
	EventFail
)

func (e Event) String() string {
	switch e {
	case EventProcess:
		return "process"
	case EventDownload:
		return "download"
	case EventUpload:
		return "upload"
	case EventLock:
		return "lock"
	case EventPause:
		return "pause"
	case EventFinish:
		return "finish"
	case EventFail:
		return "fail"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Effect is a side effect the orchestrator performs after a transition.
type Effect int

const (
	// EffectCheckSchema validates every requested table.
	EffectCheckSchema Effect = iota
	// EffectRestoreContext adopts the context saved on pause.
	EffectRestoreContext
	// EffectLock acquires the cloud lock and starts the heartbeat.
	EffectLock
	// EffectUnlock stops the heartbeat and releases the cloud lock if held.
	EffectUnlock
	// EffectSaveResume moves the task context into resume info.
	EffectSaveResume
	// EffectNotify publishes the final task status.
	EffectNotify
	// EffectCompensate schedules a compensated task for a failed task.
	EffectCompensate
)

func (e Effect) String() string {
	switch e {
	case EffectCheckSchema:
		return "check_schema"
	case EffectRestoreContext:
		return "restore_context"
	case EffectLock:
		return "lock"
	case EffectUnlock:
		return "unlock"
	case EffectSaveResume:
		return "save_resume"
	case EffectNotify:
		return "notify"
	case EffectCompensate:
		return "compensate"
	default:
		return fmt.Sprintf("effect(%d)", int(e))
	}
}

// Transition returns the state reached from s on e and the effects to perform.
// It has no side effects and rejects transitions the orchestrator must never make.
func Transition(s State, e Event) (State, []Effect, error) {
	if s == StateFinished {
		return s, nil, fmt.Errorf("%w: task already finished, got %s", ErrInternal, e)
	}

	switch e {
	case EventProcess:
		if s == StatePrepared {
			return StateProcessing, []Effect{EffectCheckSchema}, nil
		}

	case EventDownload, EventUpload:
		next := StateDownload
		if e == EventUpload {
			next = StateUpload
		}
		switch s {
		case StateProcessing, StateDownload, StateUpload:
			return next, nil, nil
		case StatePaused:
			return next, []Effect{EffectRestoreContext}, nil
		}

	case EventLock:
		switch s {
		case StateProcessing, StateDownload, StateUpload:
			return s, []Effect{EffectLock}, nil
		case StatePaused:
			return StateProcessing, []Effect{EffectRestoreContext, EffectLock}, nil
		}

	case EventPause:
		if s == StateProcessing || s == StateDownload || s == StateUpload {
			return StatePaused, []Effect{EffectUnlock, EffectSaveResume}, nil
		}

	case EventFinish:
		if s != StatePrepared {
			return StateFinished, []Effect{EffectUnlock, EffectNotify}, nil
		}

	case EventFail:
		return StateFinished, []Effect{EffectUnlock, EffectNotify, EffectCompensate}, nil
	}

	return s, nil, fmt.Errorf("%w: no transition from %s on %s", ErrInternal, s, e)
}
