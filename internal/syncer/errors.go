package syncer

import (
	"context"
	"errors"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/storage"
)

// Engine errors
var (
	// ErrBusy indicates that the task queue is full
	ErrBusy = errors.New("sync engine is busy")

	// ErrClosed indicates that the engine is closing or closed
	ErrClosed = errors.New("sync engine is closed")

	// ErrInvalidArgs indicates a bad mode, device or table list
	ErrInvalidArgs = errors.New("invalid sync arguments")

	// ErrTaskPaused indicates that a running task was preempted by a priority task
	ErrTaskPaused = errors.New("sync task paused")

	// ErrTaskNotFound indicates an unknown or already forgotten task id
	ErrTaskNotFound = errors.New("sync task not found")

	// ErrTaskCanceled indicates that the task was canceled by the caller
	ErrTaskCanceled = errors.New("sync task canceled")

	// ErrTaskTimeout indicates that the task did not finish within its timeout
	ErrTaskTimeout = errors.New("sync task timed out")

	// ErrHeartbeatFailed indicates that the cloud lock lease could not be renewed
	ErrHeartbeatFailed = errors.New("cloud lock heartbeat failed")

	// ErrInternal indicates a broken engine invariant
	ErrInternal = errors.New("internal sync error")
)

// ErrorKind classifies errors reported by the engine.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindBusy
	KindClosed
	KindInvalidArgument
	KindSchemaMismatch
	KindCloudTransport
	KindCloudVersionConflict
	KindPaused
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBusy:
		return "busy"
	case KindClosed:
		return "closed"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindSchemaMismatch:
		return "schema_mismatch"
	case KindCloudTransport:
		return "cloud_transport"
	case KindCloudVersionConflict:
		return "cloud_version_conflict"
	case KindPaused:
		return "paused"
	default:
		return "internal"
	}
}

// KindOf maps an error returned by the engine or its collaborators to its kind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTaskPaused):
		return KindPaused
	case errors.Is(err, ErrBusy), errors.Is(err, cloud.ErrLockConflict):
		return KindBusy
	case errors.Is(err, ErrClosed), errors.Is(err, ErrTaskCanceled), errors.Is(err, storage.ErrStorageClosed):
		return KindClosed
	case errors.Is(err, ErrInvalidArgs), errors.Is(err, cloud.ErrInvalidRecord):
		return KindInvalidArgument
	case errors.Is(err, storage.ErrSchemaMismatch):
		return KindSchemaMismatch
	case errors.Is(err, cloud.ErrVersionConflict):
		return KindCloudVersionConflict
	case errors.Is(err, cloud.ErrCloudError),
		errors.Is(err, cloud.ErrLockNotHeld),
		errors.Is(err, cloud.ErrAssetNotFound),
		errors.Is(err, ErrHeartbeatFailed),
		errors.Is(err, ErrTaskTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return KindCloudTransport
	default:
		return KindInternal
	}
}

// retryable reports whether a failed task should be followed by a compensated task.
func retryable(err error) bool {
	switch KindOf(err) {
	case KindBusy, KindCloudTransport, KindCloudVersionConflict, KindInternal:
		return true
	default:
		return false
	}
}
