// Package csvparse turns raw CSV bytes into validated equipment
// records. Parsing is a pure transformation: the whole file is either
// accepted or rejected, never partially.
package csvparse

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	dataset "equipment-cloud/internal/dataset/domain"
)

// Canonical header names of the required columns.
const (
	ColumnName        = "Equipment Name"
	ColumnType        = "Type"
	ColumnFlowrate    = "Flowrate"
	ColumnPressure    = "Pressure"
	ColumnTemperature = "Temperature"
)

var requiredColumns = []string{ColumnName, ColumnType, ColumnFlowrate, ColumnPressure, ColumnTemperature}

// Parse reads CSV text and returns one EquipmentRecord per data row in
// original row order. The header must contain the five required
// columns (matched case- and whitespace-insensitively, extra columns
// ignored). A row with a non-finite numeric field or an empty name or
// type rejects the whole file with a ValidationError naming the first
// offending data row. A file with a valid header but no data rows
// fails with ErrEmptyDataset.
func Parse(raw []byte) ([]dataset.EquipmentRecord, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &dataset.ValidationError{Reason: "file is empty"}
	}
	if err != nil {
		return nil, &dataset.ValidationError{Reason: err.Error()}
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []dataset.EquipmentRecord
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &dataset.ValidationError{Row: row + 1, Reason: err.Error()}
		}
		row++
		record, err := parseRow(fields, index, row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	return records, nil
}

// columnIndex maps each required column to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	normalized := make(map[string]int, len(header))
	for i, name := range header {
		key := normalize(name)
		if _, dup := normalized[key]; !dup {
			normalized[key] = i
		}
	}
	index := make(map[string]int, len(requiredColumns))
	for _, column := range requiredColumns {
		pos, ok := normalized[normalize(column)]
		if !ok {
			return nil, &dataset.ValidationError{Column: column, Reason: "missing required column"}
		}
		index[column] = pos
	}
	return index, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func parseRow(fields []string, index map[string]int, row int) (dataset.EquipmentRecord, error) {
	name, err := textField(fields, index, ColumnName, row)
	if err != nil {
		return dataset.EquipmentRecord{}, err
	}
	equipmentType, err := textField(fields, index, ColumnType, row)
	if err != nil {
		return dataset.EquipmentRecord{}, err
	}
	flowrate, err := numericField(fields, index, ColumnFlowrate, row)
	if err != nil {
		return dataset.EquipmentRecord{}, err
	}
	pressure, err := numericField(fields, index, ColumnPressure, row)
	if err != nil {
		return dataset.EquipmentRecord{}, err
	}
	temperature, err := numericField(fields, index, ColumnTemperature, row)
	if err != nil {
		return dataset.EquipmentRecord{}, err
	}
	return dataset.EquipmentRecord{
		Name:        name,
		Type:        equipmentType,
		Flowrate:    flowrate,
		Pressure:    pressure,
		Temperature: temperature,
	}, nil
}

func textField(fields []string, index map[string]int, column string, row int) (string, error) {
	pos := index[column]
	if pos >= len(fields) {
		return "", &dataset.ValidationError{Row: row, Column: column, Reason: "missing value"}
	}
	value := strings.TrimSpace(fields[pos])
	if value == "" {
		return "", &dataset.ValidationError{Row: row, Column: column, Reason: "empty value"}
	}
	return value, nil
}

func numericField(fields []string, index map[string]int, column string, row int) (float64, error) {
	pos := index[column]
	if pos >= len(fields) {
		return 0, &dataset.ValidationError{Row: row, Column: column, Reason: "missing value"}
	}
	raw := strings.TrimSpace(fields[pos])
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, &dataset.ValidationError{Row: row, Column: column, Reason: "value out of range"}
		}
		return 0, &dataset.ValidationError{Row: row, Column: column, Reason: "not a number"}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &dataset.ValidationError{Row: row, Column: column, Reason: "not a finite number"}
	}
	return value, nil
}
