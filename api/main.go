package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/taller-baterias/inventario/internal/changelog"
	"github.com/taller-baterias/inventario/internal/db"
	api "github.com/taller-baterias/inventario/internal/http"
	"github.com/taller-baterias/inventario/internal/http/handlers"
	rl "github.com/taller-baterias/inventario/internal/http/rate_limiter"
	"github.com/taller-baterias/inventario/internal/repo"
	"github.com/taller-baterias/inventario/internal/settings"
)

// dataDir locates the persistent data directory holding the inventory
// file, the user database, the settings file and the change history.
func dataDir() string {
	if dir := os.Getenv("INVENTARIO_DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}

// @title Inventario de Baterías API
// @version 1.0
// @description Local REST API for the battery inventory manager.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	go rl.StartVisitorCleanupLoop()

	dir := dataDir()
	history := changelog.New(filepath.Join(dir, "historial_cambios.log"))
	handlers.SetHistory(history)
	handlers.SetSettingsStore(settings.NewStore(filepath.Join(dir, "config.json")))

	database, err := db.Connect(filepath.Join(dir, "usuarios.db"))
	if err != nil {
		log.Fatal("❌ Could not open user database:", err)
	}
	defer database.Close()

	users := repo.NewSQLiteUserRepository(database, history)
	if err := users.EnsureSchema(); err != nil {
		log.Fatal("❌ Could not prepare user database:", err)
	}
	if err := users.EnsureDefaultAdmin(); err != nil {
		log.Fatal("❌ Could not seed administrator account:", err)
	}
	handlers.SetUserRepo(users)

	inventory, err := repo.NewCSVProductRepository(filepath.Join(dir, "inventario.csv"), history)
	if err != nil {
		log.Fatal("❌ Could not load inventory:", err)
	}
	handlers.SetProductRepo(inventory)

	addr := os.Getenv("INVENTARIO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	r := api.NewRouter()
	log.Println("✅ Server running on", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
