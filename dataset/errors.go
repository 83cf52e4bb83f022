package dataset

import "errors"

// Errors returned by the dataset package. All are recoverable — callers
// report the message and keep the current working table.
var (
	// ErrUnsupportedFormat is returned for file extensions the loader
	// does not understand.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrLoad is returned when an upload cannot be decoded.
	ErrLoad = errors.New("failed to load dataset")

	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")
)
