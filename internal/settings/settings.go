// Package settings manages the application configuration file. There is no
// in-memory cache: every read and write round-trips through the JSON file,
// which is how views observe threshold or theme changes made elsewhere
// without a restart.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

const (
	KeyStockLowLimit = "stock_low_limit"
	KeyTheme         = "theme"

	DefaultStockLowLimit = 50
	DefaultTheme         = "superhero"
)

// Themes are the visual themes the shell can render.
var Themes = []string{
	"superhero", "darkly", "cyborg", "vapor", "litera",
	"minty", "lumen", "pulse", "sandstone", "united",
}

func ValidTheme(name string) bool {
	return slices.Contains(Themes, name)
}

// Store reads and writes the settings file at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetDefault(KeyStockLowLimit, DefaultStockLowLimit)
	v.SetDefault(KeyTheme, DefaultTheme)
	return v
}

// load parses the file fresh. A missing or corrupt file is rewritten with
// the defaults; unknown keys in a readable file are preserved.
func (s *Store) load() (*viper.Viper, error) {
	v := s.newViper()
	if err := v.ReadInConfig(); err != nil {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
		if err := v.WriteConfig(); err != nil {
			return nil, fmt.Errorf("failed to restore default settings: %w", err)
		}
	}
	return v, nil
}

// All returns the full settings map, defaults backfilled.
func (s *Store) All() (map[string]any, error) {
	v, err := s.load()
	if err != nil {
		return nil, err
	}
	return v.AllSettings(), nil
}

// StockLowLimit returns the current low-stock threshold. Non-positive
// stored values fall back to the default.
func (s *Store) StockLowLimit() int {
	v, err := s.load()
	if err != nil {
		return DefaultStockLowLimit
	}
	limit := v.GetInt(KeyStockLowLimit)
	if limit <= 0 {
		return DefaultStockLowLimit
	}
	return limit
}

// Theme returns the current visual theme, falling back to the default for
// values outside the known set.
func (s *Store) Theme() string {
	v, err := s.load()
	if err != nil {
		return DefaultTheme
	}
	theme := v.GetString(KeyTheme)
	if !ValidTheme(theme) {
		return DefaultTheme
	}
	return theme
}

// Set loads the file fresh, mutates one key and rewrites the whole file.
func (s *Store) Set(key string, value any) error {
	v, err := s.load()
	if err != nil {
		return err
	}
	v.Set(key, value)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
