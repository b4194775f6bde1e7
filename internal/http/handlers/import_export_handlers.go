package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/taller-baterias/inventario/internal/excel"
	"github.com/taller-baterias/inventario/internal/models"
)

// ImportProductsHandler godoc
// @Summary Bulk-import products from an xlsx workbook
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx file with codigo and cantidad columns"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := excel.ReadProducts(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	productRepo.SetCurrentUser(requestUsername(r))

	var added, updated int
	var errorsList []ProductValidationError
	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		// Existence decides the added/updated count; upsert itself always
		// replaces.
		created, err := productRepo.Upsert(rec)
		if err != nil {
			errorsList = append(errorsList, ProductValidationError{
				Description: fmt.Sprintf("row %d: %v", rowNum, err),
			})
			continue
		}
		if created {
			added++
		} else {
			updated++
		}
	}

	// Rows applied before a save failure stay applied in memory.
	if err := productRepo.Save(); err != nil {
		http.Error(w, "could not persist inventory", http.StatusInternalServerError)
		return
	}

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		Added:   added,
		Updated: updated,
		Errors:  errorsList,
	})
	if err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

func writeWorkbook(w http.ResponseWriter, filename string, products []models.Product) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := excel.WriteProducts(w, products); err != nil {
		log.Printf("Failed to write workbook: %v", err)
	}
}

// ExportProductsHandler godoc
// @Summary Export the full inventory as an xlsx workbook
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {string} string "Internal error"
// @Router /products/export [get]
// @Security BearerAuth
func ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	writeWorkbook(w, "inventario.xlsx", products)
}

// ExportAlertsHandler godoc
// @Summary Export the low-stock listing as an xlsx workbook
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {string} string "Internal error"
// @Router /alerts/export [get]
// @Security BearerAuth
func ExportAlertsHandler(w http.ResponseWriter, r *http.Request) {
	products, _, err := lowStockProducts()
	if err != nil {
		http.Error(w, "could not fetch alerts", http.StatusInternalServerError)
		return
	}
	writeWorkbook(w, "alertas_stock.xlsx", products)
}
