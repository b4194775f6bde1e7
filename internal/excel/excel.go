// Package excel reads and writes the xlsx workbooks used for bulk
// inventory import and for the inventory and alerts exports.
package excel

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/taller-baterias/inventario/internal/models"
)

// ErrMissingColumns is returned when an imported workbook lacks the
// required codigo and cantidad columns.
var ErrMissingColumns = errors.New("workbook must contain 'codigo' and 'cantidad' columns")

var exportHeader = []any{"codigo", "descripcion", "cantidad"}

// ReadProducts parses the first sheet of an xlsx workbook. descripcion is
// optional and defaults to empty; rows with a blank codigo are skipped;
// unparseable quantities become 0.
func ReadProducts(r io.Reader) ([]models.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingColumns
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["codigo"]; !ok {
		return nil, ErrMissingColumns
	}
	if _, ok := index["cantidad"]; !ok {
		return nil, ErrMissingColumns
	}

	var products []models.Product
	for _, row := range rows[1:] {
		code := strings.TrimSpace(cell(row, index["codigo"]))
		if code == "" {
			continue
		}
		quantity, _ := strconv.Atoi(strings.TrimSpace(cell(row, index["cantidad"])))
		p := models.Product{Code: code, Quantity: quantity}
		if i, ok := index["descripcion"]; ok {
			p.Description = strings.TrimSpace(cell(row, i))
		}
		products = append(products, p)
	}
	return products, nil
}

// cell tolerates trailing empty cells, which GetRows omits.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// WriteProducts writes products as a single-sheet workbook in table order.
func WriteProducts(w io.Writer, products []models.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, p := range products {
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{p.Code, p.Description, p.Quantity}
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
