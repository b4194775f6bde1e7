package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/taller-baterias/inventario/internal/models"
)

// criticalLimit is the fixed band below which a low-stock row is flagged
// as critical rather than merely low.
const criticalLimit = 20

func alertState(quantity int) string {
	if quantity < criticalLimit {
		return "Crítico"
	}
	return "Bajo"
}

func lowStockProducts() ([]models.Product, int, error) {
	// The threshold is re-fetched from the settings file on every read so
	// the alerts view tracks live threshold changes.
	threshold := settingsStore.StockLowLimit()
	products, err := productRepo.LowStock(threshold)
	return products, threshold, err
}

// GetAlertsHandler godoc
// @Summary List products below the low-stock threshold
// @Tags alerts
// @Produce json
// @Param q query string false "Search term matched against codigo and descripcion"
// @Success 200 {array} AlertResponse
// @Failure 500 {string} string "Internal error"
// @Router /alerts [get]
// @Security BearerAuth
func GetAlertsHandler(w http.ResponseWriter, r *http.Request) {
	products, _, err := lowStockProducts()
	if err != nil {
		http.Error(w, "could not fetch alerts", http.StatusInternalServerError)
		return
	}

	term := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	response := []AlertResponse{}
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Code), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		response = append(response, AlertResponse{
			Code:        p.Code,
			Description: p.Description,
			Quantity:    p.Quantity,
			State:       alertState(p.Quantity),
		})
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
