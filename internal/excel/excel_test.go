package excel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/taller-baterias/inventario/internal/models"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestWriteReadRoundTrip(t *testing.T) {
	products := []models.Product{
		{Code: "B100", Description: "12V battery", Quantity: 30},
		{Code: "B200", Description: "60Ah heavy duty", Quantity: 0},
	}

	var buf bytes.Buffer
	if err := WriteProducts(&buf, products); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ReadProducts(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != len(products) {
		t.Fatalf("expected %d rows, got %d", len(products), len(parsed))
	}
	for i, p := range parsed {
		if p != products[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, products[i], p)
		}
	}
}

func TestReadSkipsBlankCodes(t *testing.T) {
	buf := workbook(t, [][]any{
		{"codigo", "descripcion", "cantidad"},
		{"B100", "12V battery", 30},
		{"", "row without code", 5},
		{"  ", "whitespace code", 5},
		{"B200", "60Ah", 12},
	})

	parsed, err := ReadProducts(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected blank-code rows to be skipped, got %+v", parsed)
	}
	if parsed[0].Code != "B100" || parsed[1].Code != "B200" {
		t.Errorf("unexpected rows: %+v", parsed)
	}
}

func TestReadDescripcionIsOptional(t *testing.T) {
	buf := workbook(t, [][]any{
		{"codigo", "cantidad"},
		{"B100", 30},
	})

	parsed, err := ReadProducts(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Description != "" || parsed[0].Quantity != 30 {
		t.Errorf("unexpected rows: %+v", parsed)
	}
}

func TestReadCoercesQuantity(t *testing.T) {
	buf := workbook(t, [][]any{
		{"codigo", "cantidad"},
		{"B100", "not-a-number"},
	})

	parsed, err := ReadProducts(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Quantity != 0 {
		t.Errorf("expected quantity to default to 0, got %+v", parsed)
	}
}

func TestReadRequiresColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []any
	}{
		{"missing cantidad", []any{"codigo", "descripcion"}},
		{"missing codigo", []any{"descripcion", "cantidad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := workbook(t, [][]any{tt.header})
			if _, err := ReadProducts(buf); !errors.Is(err, ErrMissingColumns) {
				t.Errorf("expected ErrMissingColumns, got %v", err)
			}
		})
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := ReadProducts(bytes.NewBufferString("this is not a workbook")); err == nil {
		t.Error("expected an error for a non-xlsx payload")
	}
}
