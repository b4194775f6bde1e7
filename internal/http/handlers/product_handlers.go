package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taller-baterias/inventario/internal/models"
	"github.com/taller-baterias/inventario/internal/repo"
)

// GetProductsHandler godoc
// @Summary List products, optionally filtered by a search term
// @Tags products
// @Produce json
// @Param q query string false "Search term matched against codigo and descripcion"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
// @Security BearerAuth
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.Search(r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	// Threshold is re-read per request so edits show up immediately.
	threshold := settingsStore.StockLowLimit()
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = productResponse(p, threshold)
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// UpsertProductHandler godoc
// @Summary Insert a product or replace an existing one by code
// @Tags products
// @Accept json
// @Produce json
// @Param code path string true "Product code"
// @Param product body ProductRequest true "Description and quantity"
// @Success 200 {object} UpsertResult
// @Success 201 {object} UpsertResult
// @Failure 400 {array} ProductValidationError
// @Failure 500 {string} string "Internal error"
// @Router /products/{code} [put]
// @Security BearerAuth
func UpsertProductHandler(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(code, req)
	if len(validationErrors) > 0 {
		if err := writeJSON(w, http.StatusBadRequest, validationErrors); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	productRepo.SetCurrentUser(requestUsername(r))
	created, err := productRepo.Upsert(models.Product{
		Code:        code,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		http.Error(w, "could not save product", http.StatusInternalServerError)
		return
	}
	if err := productRepo.Save(); err != nil {
		http.Error(w, "could not persist inventory", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	result := UpsertResult{
		Product: productResponse(models.Product{Code: code, Description: strings.TrimSpace(req.Description), Quantity: req.Quantity},
			settingsStore.StockLowLimit()),
		Created: created,
	}
	if err := writeJSON(w, status, result); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// DeleteProductHandler godoc
// @Summary Delete a product by code
// @Tags products
// @Param code path string true "Product code"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{code} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	productRepo.SetCurrentUser(requestUsername(r))
	if _, err := productRepo.Delete(code); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	if err := productRepo.Save(); err != nil {
		http.Error(w, "could not persist inventory", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
