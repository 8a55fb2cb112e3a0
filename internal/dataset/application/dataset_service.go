package application

import (
	"context"
	"errors"

	dataset "equipment-cloud/internal/dataset/domain"
)

// DatasetService serves the read side: history listings and dataset
// lookups with ownership enforced by the repository.
type DatasetService struct {
	repo         dataset.Repository
	historyLimit int
}

// NewDatasetService constructs a service. limit <= 0 falls back to the
// default history limit.
func NewDatasetService(repo dataset.Repository, limit int) (*DatasetService, error) {
	if repo == nil {
		return nil, errors.New("dataset service: nil repository")
	}
	if limit <= 0 {
		limit = dataset.DefaultHistoryLimit
	}
	return &DatasetService{repo: repo, historyLimit: limit}, nil
}

// History returns the owner's most recent uploads, newest first.
func (s *DatasetService) History(ctx context.Context, owner string) ([]dataset.HistoryEntry, error) {
	if owner == "" {
		return nil, dataset.ErrEmptyOwner
	}
	return s.repo.ListRecent(ctx, owner, s.historyLimit)
}

// Get loads one dataset for its owner.
func (s *DatasetService) Get(ctx context.Context, owner, id string) (*dataset.Dataset, error) {
	if owner == "" {
		return nil, dataset.ErrEmptyOwner
	}
	if id == "" {
		return nil, dataset.ErrNotFound
	}
	return s.repo.GetByID(ctx, owner, id)
}
