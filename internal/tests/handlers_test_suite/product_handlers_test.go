package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/taller-baterias/inventario/internal/http"
	handler "github.com/taller-baterias/inventario/internal/http/handlers"
)

func TestUpsertProductHandler_CreateThenReplace(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	w := upsertProduct(r, "B100", handler.ProductRequest{Description: "12V battery", Quantity: 30})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var created handler.UpsertResult
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !created.Created {
		t.Error("expected creado=true on first upsert")
	}

	w = upsertProduct(r, "B100", handler.ProductRequest{Description: "12V battery GEL", Quantity: 25})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK on replace, got %d", w.Code)
	}
	var replaced handler.UpsertResult
	if err := json.NewDecoder(w.Body).Decode(&replaced); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if replaced.Created {
		t.Error("expected creado=false on replace")
	}

	w = do(r, http.MethodGet, "/products", nil)
	var products []handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(products))
	}
	if products[0].Description != "12V battery GEL" || products[0].Quantity != 25 {
		t.Errorf("expected replaced values, got %+v", products[0])
	}
}

func TestUpsertProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	tests := []struct {
		name           string
		code           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "Blank code",
			code:           "%20",
			payload:        handler.ProductRequest{Description: "ghost", Quantity: 1},
			expectedErrors: []string{"Codigo"},
		},
		{
			name:           "Negative quantity",
			code:           "B100",
			payload:        handler.ProductRequest{Description: "12V battery", Quantity: -1},
			expectedErrors: []string{"Cantidad"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := upsertProduct(r, tt.code, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp []handler.ProductValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestUpsertProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodPut, "/products/B100", strings.NewReader(`{descripcion: bad}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	upsertProduct(r, "B100", handler.ProductRequest{Description: "12V battery", Quantity: 30})

	w := do(r, http.MethodDelete, "/products/B100", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w = do(r, http.MethodDelete, "/products/B100", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an absent code, got %d", w.Code)
	}
}

func TestGetProductsHandler_Search(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	upsertProduct(r, "B100", handler.ProductRequest{Description: "12V battery", Quantity: 30})
	upsertProduct(r, "C200", handler.ProductRequest{Description: "Charger", Quantity: 4})

	w := do(r, http.MethodGet, "/products?q=BAT", nil)
	var products []handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(products) != 1 || products[0].Code != "B100" {
		t.Errorf("expected case-insensitive description match, got %+v", products)
	}
}

func TestGetProductsHandler_LowStockFlag(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()
	upsertProduct(r, "B100", handler.ProductRequest{Description: "12V battery", Quantity: 30})

	if w := setStockLowLimit(r, 50); w.Code != http.StatusOK {
		t.Fatalf("expected 200 updating settings, got %d", w.Code)
	}
	w := do(r, http.MethodGet, "/products", nil)
	var products []handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&products)
	if len(products) != 1 || !products[0].LowStock {
		t.Errorf("expected stock_bajo with threshold 50, got %+v", products)
	}

	if w := setStockLowLimit(r, 20); w.Code != http.StatusOK {
		t.Fatalf("expected 200 updating settings, got %d", w.Code)
	}
	w = do(r, http.MethodGet, "/products", nil)
	products = nil
	json.NewDecoder(w.Body).Decode(&products)
	if len(products) != 1 || products[0].LowStock {
		t.Errorf("expected no stock_bajo with threshold 20, got %+v", products)
	}
}

func TestProductsRequireAuth(t *testing.T) {
	r := api.NewRouter()

	w := doAs(r, http.MethodGet, "/products", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", w.Code)
	}

	w = doAs(r, http.MethodGet, "/products", nil, "not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with a bogus token, got %d", w.Code)
	}
}
