package cloud

import "errors"

// Cloud errors
var (
	// ErrCloudError indicates a network or backend failure
	ErrCloudError = errors.New("cloud error")

	// ErrVersionConflict indicates that the cloud record changed since it was downloaded
	ErrVersionConflict = errors.New("cloud version conflict")

	// ErrLockConflict indicates that another device holds the cloud lock
	ErrLockConflict = errors.New("cloud is locked by another device")

	// ErrLockNotHeld indicates heartbeat or unlock without a valid lease
	ErrLockNotHeld = errors.New("cloud lock is not held")

	// ErrRecordNotFound indicates that a record with the gid does not exist
	ErrRecordNotFound = errors.New("cloud record not found")

	// ErrAssetNotFound indicates missing asset content
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidRecord indicates a record missing mandatory cloud fields
	ErrInvalidRecord = errors.New("invalid cloud record")
)
