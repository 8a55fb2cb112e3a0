package csvparse

import (
	"errors"
	"strings"
	"testing"

	dataset "equipment-cloud/internal/dataset/domain"
)

func TestParse_ValidFile(t *testing.T) {
	raw := []byte("Equipment Name,Type,Flowrate,Pressure,Temperature\n" +
		"Pump1,Pump,10,5,300\n" +
		"Pump2,Pump,20,5,320\n")

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "Pump1" || records[1].Name != "Pump2" {
		t.Fatalf("row order not preserved: %+v", records)
	}
	if records[0].Flowrate != 10 || records[0].Pressure != 5 || records[0].Temperature != 300 {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
}

func TestParse_HeaderMatchingTolerant(t *testing.T) {
	raw := []byte("  equipment name , TYPE ,Flowrate,Pressure,Temperature,Notes\n" +
		"Pump1,Pump,10,5,300,ignored\n")

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Type != "Pump" {
		t.Fatalf("expected type Pump, got %q", records[0].Type)
	}
}

func TestParse_ColumnOrderIrrelevant(t *testing.T) {
	raw := []byte("Temperature,Pressure,Flowrate,Type,Equipment Name\n" +
		"300,5,10,Pump,Pump1\n")

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if records[0].Name != "Pump1" || records[0].Temperature != 300 {
		t.Fatalf("name-based lookup failed: %+v", records[0])
	}
}

func TestParse_MissingColumn(t *testing.T) {
	raw := []byte("Equipment Name,Type,Flowrate,Temperature\n" +
		"Pump1,Pump,10,300\n")

	_, err := Parse(raw)
	var validation *dataset.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.Column != ColumnPressure {
		t.Fatalf("expected Pressure column, got %q", validation.Column)
	}
}

func TestParse_NonNumericReportsRowAndColumn(t *testing.T) {
	raw := []byte("Equipment Name,Type,Flowrate,Pressure,Temperature\n" +
		"Pump1,Pump,10,5,300\n" +
		"Pump2,Pump,20,5,320\n" +
		"Pump3,Pump,abc,5,310\n")

	_, err := Parse(raw)
	var validation *dataset.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.Row != 3 {
		t.Fatalf("expected row 3, got %d", validation.Row)
	}
	if validation.Column != ColumnFlowrate {
		t.Fatalf("expected Flowrate column, got %q", validation.Column)
	}
}

func TestParse_NonFiniteRejected(t *testing.T) {
	for _, value := range []string{"NaN", "Inf", "-Inf", "1e999"} {
		raw := []byte("Equipment Name,Type,Flowrate,Pressure,Temperature\n" +
			"Pump1,Pump," + value + ",5,300\n")
		_, err := Parse(raw)
		var validation *dataset.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("value %q: expected ValidationError, got %v", value, err)
		}
	}
}

func TestParse_NegativeValuesAccepted(t *testing.T) {
	raw := []byte("Equipment Name,Type,Flowrate,Pressure,Temperature\n" +
		"Condenser1,Condenser,-4.5,-0.8,-40\n")

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if records[0].Pressure != -0.8 {
		t.Fatalf("expected -0.8, got %v", records[0].Pressure)
	}
}

func TestParse_EmptyNameRejected(t *testing.T) {
	raw := []byte("Equipment Name,Type,Flowrate,Pressure,Temperature\n" +
		"  ,Pump,10,5,300\n")

	_, err := Parse(raw)
	var validation *dataset.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.Row != 1 || validation.Column != ColumnName {
		t.Fatalf("unexpected location: row=%d column=%q", validation.Row, validation.Column)
	}
}

func TestParse_NoDataRows(t *testing.T) {
	raw := []byte("Equipment Name,Type,Flowrate,Pressure,Temperature\n")

	_, err := Parse(raw)
	if !errors.Is(err, dataset.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse(nil)
	var validation *dataset.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParse_ManyRows(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Equipment Name,Type,Flowrate,Pressure,Temperature\n")
	for i := 0; i < 1000; i++ {
		sb.WriteString("Pump,Pump,1,2,3\n")
	}
	records, err := Parse([]byte(sb.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 1000 {
		t.Fatalf("expected 1000 records, got %d", len(records))
	}
}
