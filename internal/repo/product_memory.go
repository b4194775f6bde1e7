package repo

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/taller-baterias/inventario/internal/changelog"
	"github.com/taller-baterias/inventario/internal/models"
)

// InMemoryProductRepository is a non-persistent ProductRepository used in
// tests. Save is a no-op. Guarded like the CSV repository because the
// handlers drive it from concurrent requests.
type InMemoryProductRepository struct {
	history *changelog.Logger

	mu       sync.Mutex
	username string
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{}
}

// SetHistory attaches a change-history sink; a nil logger disables logging.
func (r *InMemoryProductRepository) SetHistory(history *changelog.Logger) {
	r.history = history
}

func (r *InMemoryProductRepository) SetCurrentUser(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.username = username
}

func (r *InMemoryProductRepository) Upsert(p models.Product) (bool, error) {
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

func (r *InMemoryProductRepository) Delete(code string) (models.Product, error) {
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

func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryProductRepository) GetByCode(code string) (models.Product, error) {
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

func (r *InMemoryProductRepository) LowStock(threshold int) ([]models.Product, error) {
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

func (r *InMemoryProductRepository) Search(term string) ([]models.Product, error) {
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

func (r *InMemoryProductRepository) Save() error {
	return nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
}
