package handlers

import (
	"github.com/taller-baterias/inventario/internal/changelog"
	"github.com/taller-baterias/inventario/internal/repo"
	"github.com/taller-baterias/inventario/internal/settings"
)

var (
	productRepo   repo.ProductRepository
	userRepo      repo.UserRepository
	settingsStore *settings.Store
	history       *changelog.Logger
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetSettingsStore(s *settings.Store) {
	settingsStore = s
}

func SetHistory(l *changelog.Logger) {
	history = l
}
