package repo

import (
	"errors"

	"github.com/taller-baterias/inventario/internal/models"
)

// ProductRepository defines the interface for inventory table operations.
// Codes are matched exactly after trimming; all lookups are linear scans.
type ProductRepository interface {
	// Upsert inserts the product or, when its code already exists,
	// replaces the stored description and quantity. It reports whether a
	// new row was created. An empty code is ignored.
	Upsert(p models.Product) (created bool, err error)
	// Delete removes the first row matching code and returns its
	// pre-deletion values.
	Delete(code string) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByCode(code string) (models.Product, error)
	// LowStock returns products with quantity strictly below threshold.
	LowStock(threshold int) ([]models.Product, error)
	// Search returns products whose code or description contains term,
	// case-insensitively. An empty term matches everything.
	Search(term string) ([]models.Product, error)
	// Save persists the current table to the backing store.
	Save() error
	// SetCurrentUser attributes subsequent change-history entries.
	SetCurrentUser(username string)
}

// ErrProductNotFound is returned when a product code is not in the table.
var ErrProductNotFound = errors.New("product not found")
