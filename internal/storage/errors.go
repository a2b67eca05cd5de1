package storage

import "errors"

// Common local storage errors
var (
	// ErrNotFound indicates that no local row matches the lookup
	ErrNotFound = errors.New("row not found")

	// ErrSchemaMismatch indicates that a table is unknown or incompatible with the cloud schema
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrTransaction indicates misuse of StartTransaction/Commit/Rollback
	ErrTransaction = errors.New("invalid transaction state")

	// ErrInvalidRow indicates a row without primary key values
	ErrInvalidRow = errors.New("invalid row")
)
