// Package report renders stored datasets into PDF and XLSX documents.
package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	dataset "equipment-cloud/internal/dataset/domain"
)

// BuildDatasetPDF renders a dataset report: filename and upload time,
// the four summary numbers, the type distribution and the full per-row
// equipment table in stored order. Creation and modification dates are
// pinned to the dataset's upload time, so rendering the same dataset
// value twice yields byte-identical output.
func BuildDatasetPDF(ds *dataset.Dataset, cfg Config) ([]byte, error) {
	if err := ds.Validate(); err != nil {
		return nil, &RenderError{Reason: "invalid dataset", Err: err}
	}
	if cfg.Precision <= 0 {
		cfg.Precision = DefaultConfig().Precision
	}
	num := func(value float64) string {
		return fmt.Sprintf("%.*f", cfg.Precision, value)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(ds.UploadedAt)
	pdf.SetModificationDate(ds.UploadedAt)
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, cfg.Title)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("File: %s", ds.Filename))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Uploaded: %s", ds.UploadedAt.UTC().Format("2006-01-02 15:04")))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Summary Statistics")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total Equipment Count: %d", ds.Summary.TotalCount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average Flowrate: %s", num(ds.Summary.AvgFlowrate)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average Pressure: %s", num(ds.Summary.AvgPressure)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average Temperature: %s", num(ds.Summary.AvgTemperature)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Equipment Type Distribution")
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, "Equipment Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Count", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, equipmentType := range ds.Summary.TypeDistribution.Types() {
		pdf.CellFormat(90, 6, equipmentType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", ds.Summary.TypeDistribution.Count(equipmentType)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Equipment Data")
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(50, 6, "Equipment Name", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Flowrate", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Pressure", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Temperature", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, record := range ds.Records {
		pdf.CellFormat(50, 6, record.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, record.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(32, 6, num(record.Flowrate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, num(record.Pressure), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, num(record.Temperature), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if cfg.Footer != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(0, 5, cfg.Footer)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Reason: "pdf encode", Err: err}
	}
	return buf.Bytes(), nil
}
