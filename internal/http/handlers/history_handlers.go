package handlers

import (
	"log"
	"net/http"
)

// GetHistoryHandler godoc
// @Summary Raw change-history text
// @Tags history
// @Produce json
// @Success 200 {object} HistoryResponse
// @Failure 500 {string} string "Internal error"
// @Router /history [get]
// @Security BearerAuth
func GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	content, err := history.Read()
	if err != nil {
		http.Error(w, "could not read history", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, HistoryResponse{Content: content}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// ClearHistoryHandler godoc
// @Summary Clear the change history
// @Tags history
// @Success 204 "Cleared"
// @Failure 500 {string} string "Internal error"
// @Router /history [delete]
// @Security BearerAuth
func ClearHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := history.Clear(); err != nil {
		http.Error(w, "could not clear history", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
