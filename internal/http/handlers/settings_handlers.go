package handlers

import (
	"log"
	"net/http"

	"github.com/taller-baterias/inventario/internal/settings"
)

// GetSettingsHandler godoc
// @Summary Current application settings
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {string} string "Internal error"
// @Router /settings [get]
// @Security BearerAuth
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := settingsStore.All()
	if err != nil {
		http.Error(w, "could not load settings", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, all); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpdateSettingsHandler godoc
// @Summary Update the low-stock threshold and/or the visual theme
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body UpdateSettingsRequest true "Keys to change"
// @Success 200 {object} map[string]any
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /settings [put]
// @Security BearerAuth
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if req.StockLowLimit != nil && *req.StockLowLimit <= 0 {
		http.Error(w, "stock_low_limit must be a positive number", http.StatusBadRequest)
		return
	}
	if req.Theme != nil && !settings.ValidTheme(*req.Theme) {
		http.Error(w, "unknown theme", http.StatusBadRequest)
		return
	}

	if req.StockLowLimit != nil {
		if err := settingsStore.Set(settings.KeyStockLowLimit, *req.StockLowLimit); err != nil {
			http.Error(w, "could not save settings", http.StatusInternalServerError)
			return
		}
	}
	if req.Theme != nil {
		if err := settingsStore.Set(settings.KeyTheme, *req.Theme); err != nil {
			http.Error(w, "could not save settings", http.StatusInternalServerError)
			return
		}
	}

	all, err := settingsStore.All()
	if err != nil {
		http.Error(w, "could not load settings", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, all); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
