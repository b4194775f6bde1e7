package repo

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/taller-baterias/inventario/internal/changelog"
	"github.com/taller-baterias/inventario/internal/models"
)

var csvColumns = []string{"codigo", "descripcion", "cantidad"}

// CSVProductRepository keeps the inventory table in memory and persists it
// as a CSV file with a codigo,descripcion,cantidad header. A missing or
// malformed file loads as an empty table; there is no partial recovery.
type CSVProductRepository struct {
	path     string
	history  *changelog.Logger
	username string

	mu       sync.Mutex
	products []models.Product
}

// NewCSVProductRepository loads the table from path. Only unexpected I/O
// failures are returned; absent and unparseable files yield an empty table.
func NewCSVProductRepository(path string, history *changelog.Logger) (*CSVProductRepository, error) {
	r := &CSVProductRepository{path: path, history: history}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("failed to open inventory file: %w", err)
	}
	defer f.Close()

	products, err := readTable(f)
	if err != nil {
		log.Printf("inventory: %s is malformed, starting with an empty table: %v", path, err)
		return r, nil
	}
	r.products = products
	return r, nil
}

func readTable(f io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var products []models.Product
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		products = append(products, models.Product{
			Code:        field(record, index, "codigo"),
			Description: field(record, index, "descripcion"),
			Quantity:    parseQuantity(field(record, index, "cantidad")),
		})
	}
	return products, nil
}

// field backfills a missing column with the empty string.
func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// parseQuantity coerces a cell to an integer, defaulting to 0 on failure.
func parseQuantity(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func (r *CSVProductRepository) SetCurrentUser(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.username = username
}

// Upsert inserts the product or replaces the first row with the same code.
// An empty code is ignored with a warning, matching the table contract of
// never storing key-less rows through this path.
func (r *CSVProductRepository) Upsert(p models.Product) (bool, error) {
	p.Code = strings.TrimSpace(p.Code)
	p.Description = strings.TrimSpace(p.Description)
	if p.Code == "" {
		log.Printf("inventory: ignoring upsert with empty code")
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.products {
		if strings.TrimSpace(existing.Code) == p.Code {
			previous := existing.Quantity
			r.products[i].Description = p.Description
			r.products[i].Quantity = p.Quantity
			r.history.Append(r.username, "Cantidad Actualizada",
				fmt.Sprintf("Código: %s, Cantidad Anterior: %d, Cantidad Nueva: %d", p.Code, previous, p.Quantity))
			return false, nil
		}
	}

	r.products = append(r.products, p)
	r.history.Append(r.username, "Producto Agregado",
		fmt.Sprintf("Código: %s, Descripción: %s, Cantidad: %d", p.Code, p.Description, p.Quantity))
	return true, nil
}

// Delete removes the first row matching code and returns its values.
func (r *CSVProductRepository) Delete(code string) (models.Product, error) {
	code = strings.TrimSpace(code)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if strings.TrimSpace(p.Code) == code {
			r.products = append(r.products[:i], r.products[i+1:]...)
			r.history.Append(r.username, "Producto Eliminado",
				fmt.Sprintf("Código: %s, Descripción: %s, Cantidad: %d", p.Code, p.Description, p.Quantity))
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *CSVProductRepository) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *CSVProductRepository) GetByCode(code string) (models.Product, error) {
	code = strings.TrimSpace(code)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if strings.TrimSpace(p.Code) == code {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *CSVProductRepository) LowStock(threshold int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var low []models.Product
	for _, p := range r.products {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	return low, nil
}

func (r *CSVProductRepository) Search(term string) ([]models.Product, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return r.GetAll()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Code), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Save rewrites the whole table. The write goes to a temp file in the same
// directory which is then renamed over the target, so a crash mid-save
// leaves the previous file intact.
func (r *CSVProductRepository) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create inventory directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".inventario-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp inventory file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvColumns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write inventory header: %w", err)
	}
	for _, p := range r.products {
		if err := w.Write([]string{p.Code, p.Description, strconv.Itoa(p.Quantity)}); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write inventory row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush inventory file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close inventory file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace inventory file: %w", err)
	}
	return nil
}
