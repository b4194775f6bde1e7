package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/taller-baterias/inventario/internal/changelog"
	api "github.com/taller-baterias/inventario/internal/http"
	handler "github.com/taller-baterias/inventario/internal/http/handlers"
	rl "github.com/taller-baterias/inventario/internal/http/rate_limiter"
	"github.com/taller-baterias/inventario/internal/repo"
	"github.com/taller-baterias/inventario/internal/settings"
)

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	userRepo    *repo.InMemoryUserRepository
	history     *changelog.Logger
)

func init() {
	dir, err := os.MkdirTemp("", "inventario-suite-")
	if err != nil {
		panic(err)
	}
	history = changelog.New(filepath.Join(dir, "historial_cambios.log"))
	handler.SetHistory(history)
	handler.SetSettingsStore(settings.NewStore(filepath.Join(dir, "config.json")))

	setupTestRepos("secret")
	r := api.NewRouter()

	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	productRepo.SetHistory(history)
	handler.SetProductRepo(productRepo)

	userRepo = repo.NewInMemoryUserRepository()
	userRepo.SetHistory(history)
	handler.SetUserRepo(userRepo)
	if _, err := userRepo.Create("admin", "Administrador del Sistema", password); err != nil {
		panic(fmt.Sprintf("error seeding admin: %v", err))
	}
}

func clearAllProducts() {
	productRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	rl.CleanupAllVisitors()

	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", w.Code)
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

// do issues a JSON request with the admin session token attached.
func do(r http.Handler, method, url string, payload any) *httptest.ResponseRecorder {
	return doAs(r, method, url, payload, token)
}

func doAs(r http.Handler, method, url string, payload any, sessionToken string) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func upsertProduct(r http.Handler, code string, p handler.ProductRequest) *httptest.ResponseRecorder {
	return do(r, http.MethodPut, "/products/"+code, p)
}

func setStockLowLimit(r http.Handler, limit int) *httptest.ResponseRecorder {
	return do(r, http.MethodPut, "/settings", map[string]any{"stock_low_limit": limit})
}
