package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	return NewStore(path), path
}

func TestMissingFileYieldsDefaults(t *testing.T) {
	s, path := newStore(t)

	if got := s.StockLowLimit(); got != DefaultStockLowLimit {
		t.Errorf("expected default threshold %d, got %d", DefaultStockLowLimit, got)
	}
	if got := s.Theme(); got != DefaultTheme {
		t.Errorf("expected default theme %q, got %q", DefaultTheme, got)
	}

	// Loading has the side effect of writing the defaults back.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected settings file to be created: %v", err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("settings file is not valid JSON: %v", err)
	}
	if _, ok := onDisk[KeyStockLowLimit]; !ok {
		t.Errorf("expected %s in rewritten file, got %v", KeyStockLowLimit, onDisk)
	}
}

func TestCorruptFileRecoversToDefaults(t *testing.T) {
	s, path := newStore(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := s.StockLowLimit(); got != DefaultStockLowLimit {
		t.Errorf("expected default threshold after corruption, got %d", got)
	}

	data, _ := os.ReadFile(path)
	var onDisk map[string]any
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("expected corrupt file to be rewritten as JSON: %v", err)
	}
}

func TestSetRewritesSingleKey(t *testing.T) {
	s, _ := newStore(t)

	if err := s.Set(KeyStockLowLimit, 75); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.StockLowLimit(); got != 75 {
		t.Errorf("expected threshold 75, got %d", got)
	}
	if got := s.Theme(); got != DefaultTheme {
		t.Errorf("expected theme untouched, got %q", got)
	}

	if err := s.Set(KeyTheme, "darkly"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Theme(); got != "darkly" {
		t.Errorf("expected theme darkly, got %q", got)
	}
	if got := s.StockLowLimit(); got != 75 {
		t.Errorf("expected threshold to survive a theme change, got %d", got)
	}
}

func TestReadsAreNotCached(t *testing.T) {
	s, path := newStore(t)
	s.StockLowLimit() // materializes the file

	// An external edit must be visible on the next read.
	if err := os.WriteFile(path, []byte(`{"stock_low_limit": 30, "theme": "vapor"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.StockLowLimit(); got != 30 {
		t.Errorf("expected externally written threshold 30, got %d", got)
	}
	if got := s.Theme(); got != "vapor" {
		t.Errorf("expected externally written theme, got %q", got)
	}
}

func TestUnknownKeysArePreserved(t *testing.T) {
	s, path := newStore(t)
	if err := os.WriteFile(path, []byte(`{"stock_low_limit": 25, "extra": "kept"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Set(KeyTheme, "minty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	var onDisk map[string]any
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatal(err)
	}
	if onDisk["extra"] != "kept" {
		t.Errorf("expected unknown key to survive a rewrite, got %v", onDisk)
	}
	if onDisk[KeyTheme] != "minty" {
		t.Errorf("expected theme minty, got %v", onDisk)
	}
}

func TestInvalidStoredValuesFallBack(t *testing.T) {
	s, path := newStore(t)
	if err := os.WriteFile(path, []byte(`{"stock_low_limit": -4, "theme": "neon"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := s.StockLowLimit(); got != DefaultStockLowLimit {
		t.Errorf("expected non-positive threshold to fall back, got %d", got)
	}
	if got := s.Theme(); got != DefaultTheme {
		t.Errorf("expected unknown theme to fall back, got %q", got)
	}
}

func TestValidTheme(t *testing.T) {
	if !ValidTheme("superhero") {
		t.Error("superhero must be a known theme")
	}
	if ValidTheme("neon") {
		t.Error("neon must not be a known theme")
	}
}
