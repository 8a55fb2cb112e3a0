package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	dataset "equipment-cloud/internal/dataset/domain"
)

// BuildDatasetXLSX renders a dataset as a workbook with a summary
// sheet and a records sheet.
func BuildDatasetXLSX(ds *dataset.Dataset) ([]byte, error) {
	if err := ds.Validate(); err != nil {
		return nil, &RenderError{Reason: "invalid dataset", Err: err}
	}

	f := excelize.NewFile()
	summarySheet := "summary"
	recordsSheet := "records"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(recordsSheet); err != nil {
		return nil, &RenderError{Reason: "xlsx sheet", Err: err}
	}

	_ = f.SetCellValue(summarySheet, "A1", "Chemical Equipment Report")
	_ = f.SetCellValue(summarySheet, "A3", "File")
	_ = f.SetCellValue(summarySheet, "B3", ds.Filename)
	_ = f.SetCellValue(summarySheet, "A4", "Uploaded")
	_ = f.SetCellValue(summarySheet, "B4", ds.UploadedAt.UTC().Format("2006-01-02 15:04"))
	_ = f.SetCellValue(summarySheet, "A5", "Total Equipment Count")
	_ = f.SetCellValue(summarySheet, "B5", ds.Summary.TotalCount)
	_ = f.SetCellValue(summarySheet, "A6", "Average Flowrate")
	_ = f.SetCellValue(summarySheet, "B6", ds.Summary.AvgFlowrate)
	_ = f.SetCellValue(summarySheet, "A7", "Average Pressure")
	_ = f.SetCellValue(summarySheet, "B7", ds.Summary.AvgPressure)
	_ = f.SetCellValue(summarySheet, "A8", "Average Temperature")
	_ = f.SetCellValue(summarySheet, "B8", ds.Summary.AvgTemperature)

	_ = f.SetCellValue(summarySheet, "A10", "Equipment Type")
	_ = f.SetCellValue(summarySheet, "B10", "Count")
	for i, equipmentType := range ds.Summary.TypeDistribution.Types() {
		row := 11 + i
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), equipmentType)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), ds.Summary.TypeDistribution.Count(equipmentType))
	}

	_ = f.SetCellValue(recordsSheet, "A1", "Equipment Name")
	_ = f.SetCellValue(recordsSheet, "B1", "Type")
	_ = f.SetCellValue(recordsSheet, "C1", "Flowrate")
	_ = f.SetCellValue(recordsSheet, "D1", "Pressure")
	_ = f.SetCellValue(recordsSheet, "E1", "Temperature")
	for i, record := range ds.Records {
		row := i + 2
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("A%d", row), record.Name)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("B%d", row), record.Type)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("C%d", row), record.Flowrate)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("D%d", row), record.Pressure)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("E%d", row), record.Temperature)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, &RenderError{Reason: "xlsx encode", Err: err}
	}
	return buf.Bytes(), nil
}
