package dataset

import "time"

// SummaryStatistics is the derived aggregate over a dataset's records.
// Computed once at ingestion and never recomputed.
type SummaryStatistics struct {
	TotalCount       int              `json:"total_count"`
	AvgFlowrate      float64          `json:"avg_flowrate"`
	AvgPressure      float64          `json:"avg_pressure"`
	AvgTemperature   float64          `json:"avg_temperature"`
	TypeDistribution TypeDistribution `json:"type_distribution"`
}

// Dataset is one persisted upload: its records in original row order
// plus the summary computed at creation. Immutable after Create.
type Dataset struct {
	ID         string            `json:"id"`
	Filename   string            `json:"filename"`
	Owner      string            `json:"-"`
	UploadedAt time.Time         `json:"uploaded_at"`
	Records    []EquipmentRecord `json:"records"`
	Summary    SummaryStatistics `json:"summary"`
}

// HistoryEntry is the list-view projection of a Dataset.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	UploadedAt  time.Time `json:"uploaded_at"`
	TotalCount  int       `json:"total_count"`
	AvgFlowrate float64   `json:"avg_flowrate"`
}

// Validate checks the structural invariants that hold for every
// repository-sourced dataset.
func (d *Dataset) Validate() error {
	if d == nil {
		return ErrNilDataset
	}
	if d.ID == "" {
		return ErrEmptyID
	}
	if d.Summary.TotalCount != len(d.Records) {
		return ErrCountMismatch
	}
	if d.Summary.TypeDistribution.Sum() != d.Summary.TotalCount {
		return ErrDistributionMismatch
	}
	return nil
}

// HistoryEntryOf projects a dataset for list views.
func HistoryEntryOf(d *Dataset) HistoryEntry {
	return HistoryEntry{
		ID:          d.ID,
		Filename:    d.Filename,
		UploadedAt:  d.UploadedAt,
		TotalCount:  d.Summary.TotalCount,
		AvgFlowrate: d.Summary.AvgFlowrate,
	}
}
