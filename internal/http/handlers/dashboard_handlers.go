package handlers

import (
	"log"
	"net/http"
)

// GetDashboardHandler godoc
// @Summary Inventory summary for the dashboard view
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardSummary
// @Failure 500 {string} string "Internal error"
// @Router /dashboard [get]
// @Security BearerAuth
func GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	threshold := settingsStore.StockLowLimit()
	summary := DashboardSummary{
		TotalProducts: len(products),
		StockLowLimit: threshold,
	}
	for _, p := range products {
		summary.TotalUnits += p.Quantity
		if p.Quantity < threshold {
			summary.LowStockCount++
		}
	}

	if err := writeJSON(w, http.StatusOK, summary); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
