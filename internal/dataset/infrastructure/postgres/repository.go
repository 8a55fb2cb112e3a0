// Package postgres persists datasets in PostgreSQL via database/sql
// over the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	dataset "equipment-cloud/internal/dataset/domain"
)

// DatasetRepository stores datasets in the datasets and
// dataset_records tables. The insert_seq bigserial on datasets breaks
// uploaded_at ties in history queries (later insertion wins).
type DatasetRepository struct {
	db    *sql.DB
	clock dataset.Clock
}

// NewDatasetRepository constructs a repository.
func NewDatasetRepository(db *sql.DB, clock dataset.Clock) *DatasetRepository {
	if clock == nil {
		clock = dataset.SystemClock{}
	}
	return &DatasetRepository{db: db, clock: clock}
}

// Create inserts the dataset row and its records in one transaction.
func (r *DatasetRepository) Create(ctx context.Context, filename, owner string, records []dataset.EquipmentRecord, summary dataset.SummaryStatistics) (*dataset.Dataset, error) {
	if r == nil || r.db == nil {
		return nil, &dataset.StorageError{Op: "create", Err: errors.New("nil db")}
	}
	if owner == "" {
		return nil, dataset.ErrEmptyOwner
	}
	ds := &dataset.Dataset{
		ID:         dataset.NewDatasetID(),
		Filename:   filename,
		Owner:      owner,
		UploadedAt: r.clock.Now(),
		Records:    records,
		Summary:    summary,
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	distribution, err := json.Marshal(summary.TypeDistribution)
	if err != nil {
		return nil, &dataset.StorageError{Op: "create", Err: err}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &dataset.StorageError{Op: "create", Err: err}
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO datasets (
	id, owner_name, filename, uploaded_at,
	total_count, avg_flowrate, avg_pressure, avg_temperature, type_distribution
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		ds.ID, ds.Owner, ds.Filename, ds.UploadedAt,
		summary.TotalCount, summary.AvgFlowrate, summary.AvgPressure, summary.AvgTemperature, distribution,
	)
	if err != nil {
		_ = tx.Rollback()
		return nil, &dataset.StorageError{Op: "create", Err: err}
	}
	for i, record := range records {
		_, err := tx.ExecContext(ctx, `
INSERT INTO dataset_records (
	dataset_id, row_seq, equipment_name, equipment_type, flowrate, pressure, temperature
) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			ds.ID, i+1, record.Name, record.Type, record.Flowrate, record.Pressure, record.Temperature)
		if err != nil {
			_ = tx.Rollback()
			return nil, &dataset.StorageError{Op: "create", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, &dataset.StorageError{Op: "create", Err: err}
	}
	return ds, nil
}

// GetByID loads a dataset and its records, enforcing ownership before
// any data is returned.
func (r *DatasetRepository) GetByID(ctx context.Context, owner, id string) (*dataset.Dataset, error) {
	if r == nil || r.db == nil {
		return nil, &dataset.StorageError{Op: "get", Err: errors.New("nil db")}
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, owner_name, filename, uploaded_at,
	total_count, avg_flowrate, avg_pressure, avg_temperature, type_distribution
FROM datasets
WHERE id = $1
LIMIT 1`, id)

	var ds dataset.Dataset
	var distribution []byte
	err := row.Scan(&ds.ID, &ds.Owner, &ds.Filename, &ds.UploadedAt,
		&ds.Summary.TotalCount, &ds.Summary.AvgFlowrate, &ds.Summary.AvgPressure, &ds.Summary.AvgTemperature, &distribution)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dataset.ErrNotFound
	}
	if err != nil {
		return nil, &dataset.StorageError{Op: "get", Err: err}
	}
	if ds.Owner != owner {
		return nil, dataset.ErrForbidden
	}
	if err := json.Unmarshal(distribution, &ds.Summary.TypeDistribution); err != nil {
		return nil, &dataset.StorageError{Op: "get", Err: err}
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT equipment_name, equipment_type, flowrate, pressure, temperature
FROM dataset_records
WHERE dataset_id = $1
ORDER BY row_seq ASC`, id)
	if err != nil {
		return nil, &dataset.StorageError{Op: "get", Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var record dataset.EquipmentRecord
		if err := rows.Scan(&record.Name, &record.Type, &record.Flowrate, &record.Pressure, &record.Temperature); err != nil {
			return nil, &dataset.StorageError{Op: "get", Err: err}
		}
		ds.Records = append(ds.Records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, &dataset.StorageError{Op: "get", Err: err}
	}
	return &ds, nil
}

// ListRecent returns up to limit history entries for an owner, newest
// first.
func (r *DatasetRepository) ListRecent(ctx context.Context, owner string, limit int) ([]dataset.HistoryEntry, error) {
	if r == nil || r.db == nil {
		return nil, &dataset.StorageError{Op: "list", Err: errors.New("nil db")}
	}
	if limit <= 0 {
		limit = dataset.DefaultHistoryLimit
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, filename, uploaded_at, total_count, avg_flowrate
FROM datasets
WHERE owner_name = $1
ORDER BY uploaded_at DESC, insert_seq DESC
LIMIT $2`, owner, limit)
	if err != nil {
		return nil, &dataset.StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	entries := make([]dataset.HistoryEntry, 0, limit)
	for rows.Next() {
		var entry dataset.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.Filename, &entry.UploadedAt, &entry.TotalCount, &entry.AvgFlowrate); err != nil {
			return nil, &dataset.StorageError{Op: "list", Err: err}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &dataset.StorageError{Op: "list", Err: err}
	}
	return entries, nil
}
