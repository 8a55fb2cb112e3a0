package dataset

import (
	"context"
	"time"
)

// DefaultHistoryLimit caps how many datasets a history query returns.
const DefaultHistoryLimit = 5

// Repository persists datasets. Create and GetByID are safe to call
// concurrently across unrelated datasets; only create and read
// operations exist, datasets are never updated or deleted.
type Repository interface {
	// Create assigns a fresh id, stamps uploaded_at and stores the
	// dataset atomically (all rows or none).
	Create(ctx context.Context, filename, owner string, records []EquipmentRecord, summary SummaryStatistics) (*Dataset, error)
	// GetByID loads a dataset. ErrNotFound when absent, ErrForbidden
	// when the dataset belongs to a different owner.
	GetByID(ctx context.Context, owner, id string) (*Dataset, error)
	// ListRecent returns up to limit history entries for an owner,
	// newest first, later insertion winning ties.
	ListRecent(ctx context.Context, owner string, limit int) ([]HistoryEntry, error)
}

// Clock abstracts time for repositories and tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
