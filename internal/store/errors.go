package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrNotFound indicates that a requested record was not found in its collection.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a conflict, e.g., trying to create a record that already exists.
	ErrConflict = errors.New("conflict")
)
