// Package memory provides an in-memory dataset repository used by
// tests and as the store when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	dataset "equipment-cloud/internal/dataset/domain"
)

type storedDataset struct {
	data *dataset.Dataset
	seq  uint64
}

// DatasetRepository is an in-memory dataset.Repository.
type DatasetRepository struct {
	mu    sync.RWMutex
	byID  map[string]*storedDataset
	seq   uint64
	clock dataset.Clock
}

// NewDatasetRepository constructs a repository.
func NewDatasetRepository(clock dataset.Clock) *DatasetRepository {
	if clock == nil {
		clock = dataset.SystemClock{}
	}
	return &DatasetRepository{
		byID:  make(map[string]*storedDataset),
		clock: clock,
	}
}

// Create stores a new dataset under a fresh id.
func (r *DatasetRepository) Create(ctx context.Context, filename, owner string, records []dataset.EquipmentRecord, summary dataset.SummaryStatistics) (*dataset.Dataset, error) {
	_ = ctx
	if owner == "" {
		return nil, dataset.ErrEmptyOwner
	}
	ds := &dataset.Dataset{
		ID:         dataset.NewDatasetID(),
		Filename:   filename,
		Owner:      owner,
		UploadedAt: r.clock.Now(),
		Records:    cloneRecords(records),
		Summary:    cloneSummary(summary),
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.seq++
	r.byID[ds.ID] = &storedDataset{data: ds, seq: r.seq}
	r.mu.Unlock()

	return cloneDataset(ds), nil
}

// GetByID loads a dataset, enforcing ownership.
func (r *DatasetRepository) GetByID(ctx context.Context, owner, id string) (*dataset.Dataset, error) {
	_ = ctx
	r.mu.RLock()
	stored := r.byID[id]
	r.mu.RUnlock()
	if stored == nil {
		return nil, dataset.ErrNotFound
	}
	if stored.data.Owner != owner {
		return nil, dataset.ErrForbidden
	}
	return cloneDataset(stored.data), nil
}

// ListRecent returns up to limit history entries for an owner, newest
// first, later insertion winning timestamp ties.
func (r *DatasetRepository) ListRecent(ctx context.Context, owner string, limit int) ([]dataset.HistoryEntry, error) {
	_ = ctx
	if limit <= 0 {
		limit = dataset.DefaultHistoryLimit
	}

	r.mu.RLock()
	owned := make([]*storedDataset, 0, len(r.byID))
	for _, stored := range r.byID {
		if stored.data.Owner == owner {
			owned = append(owned, stored)
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		a, b := owned[i], owned[j]
		if !a.data.UploadedAt.Equal(b.data.UploadedAt) {
			return a.data.UploadedAt.After(b.data.UploadedAt)
		}
		return a.seq > b.seq
	})
	if len(owned) > limit {
		owned = owned[:limit]
	}

	entries := make([]dataset.HistoryEntry, 0, len(owned))
	for _, stored := range owned {
		entries = append(entries, dataset.HistoryEntryOf(stored.data))
	}
	return entries, nil
}

func cloneRecords(records []dataset.EquipmentRecord) []dataset.EquipmentRecord {
	out := make([]dataset.EquipmentRecord, len(records))
	copy(out, records)
	return out
}

func cloneSummary(summary dataset.SummaryStatistics) dataset.SummaryStatistics {
	summary.TypeDistribution = summary.TypeDistribution.Clone()
	return summary
}

func cloneDataset(ds *dataset.Dataset) *dataset.Dataset {
	out := *ds
	out.Records = cloneRecords(ds.Records)
	out.Summary = cloneSummary(ds.Summary)
	return &out
}
