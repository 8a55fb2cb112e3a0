package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when a CSV upload has no data rows.
	ErrEmptyDataset = errors.New("dataset: no data rows")
	// ErrNotFound is returned when a dataset id is unknown.
	ErrNotFound = errors.New("dataset: not found")
	// ErrForbidden is returned when a dataset belongs to another owner.
	ErrForbidden = errors.New("dataset: forbidden")
	// ErrNilDataset is returned when a nil dataset is supplied.
	ErrNilDataset = errors.New("dataset: nil dataset")
	// ErrEmptyID is returned when a dataset id is empty.
	ErrEmptyID = errors.New("dataset: empty id")
	// ErrEmptyOwner is returned when the owner identity is missing.
	ErrEmptyOwner = errors.New("dataset: empty owner")
	// ErrCountMismatch guards summary.total_count == len(records).
	ErrCountMismatch = errors.New("dataset: summary count does not match records")
	// ErrDistributionMismatch guards the type distribution sum.
	ErrDistributionMismatch = errors.New("dataset: type distribution does not sum to total count")
)

// ValidationError reports malformed CSV input. Row is the 1-based data
// row index (header excluded); Row 0 means the failure is not tied to
// a specific row (e.g. a missing column).
type ValidationError struct {
	Row    int
	Column string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("dataset: invalid CSV: row %d, column %q: %s", e.Row, e.Column, e.Reason)
	}
	if e.Column != "" {
		return fmt.Sprintf("dataset: invalid CSV: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("dataset: invalid CSV: %s", e.Reason)
}

// StorageError wraps an underlying persistence failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("dataset: storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
