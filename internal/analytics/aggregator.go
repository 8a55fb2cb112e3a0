// Package analytics computes summary statistics over validated
// equipment records.
package analytics

import (
	dataset "equipment-cloud/internal/dataset/domain"
)

// Summarize computes counts, arithmetic means and the per-type
// distribution for a record sequence. It is a total function: an empty
// sequence yields zero averages, never NaN, so a summary is always
// renderable. Means use a running sum divided by the count, and the
// distribution preserves first-seen type order so repeated runs on the
// same input produce identical output.
func Summarize(records []dataset.EquipmentRecord) dataset.SummaryStatistics {
	summary := dataset.SummaryStatistics{
		TypeDistribution: dataset.NewTypeDistribution(),
	}
	if len(records) == 0 {
		return summary
	}

	var sumFlowrate, sumPressure, sumTemperature float64
	for _, record := range records {
		sumFlowrate += record.Flowrate
		sumPressure += record.Pressure
		sumTemperature += record.Temperature
		summary.TypeDistribution.Add(record.Type)
	}

	count := float64(len(records))
	summary.TotalCount = len(records)
	summary.AvgFlowrate = sumFlowrate / count
	summary.AvgPressure = sumPressure / count
	summary.AvgTemperature = sumTemperature / count
	return summary
}
