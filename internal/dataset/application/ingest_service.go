// Package application orchestrates the dataset pipeline: parse,
// aggregate, persist.
package application

import (
	"context"
	"errors"

	"equipment-cloud/internal/analytics"
	"equipment-cloud/internal/dataset/csvparse"
	dataset "equipment-cloud/internal/dataset/domain"
)

// IngestionService is the single entry point for uploads. It carries
// no state of its own; every failure from the parser, aggregator or
// repository propagates unchanged and leaves nothing persisted.
type IngestionService struct {
	repo dataset.Repository
}

// NewIngestionService constructs a service.
func NewIngestionService(repo dataset.Repository) (*IngestionService, error) {
	if repo == nil {
		return nil, errors.New("ingestion service: nil repository")
	}
	return &IngestionService{repo: repo}, nil
}

// Ingest parses raw CSV bytes, computes the summary and persists the
// dataset atomically.
func (s *IngestionService) Ingest(ctx context.Context, owner, filename string, raw []byte) (*dataset.Dataset, error) {
	if owner == "" {
		return nil, dataset.ErrEmptyOwner
	}
	records, err := csvparse.Parse(raw)
	if err != nil {
		return nil, err
	}
	summary := analytics.Summarize(records)
	return s.repo.Create(ctx, filename, owner, records, summary)
}
