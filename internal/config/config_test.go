package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IRedDragonICY/shaum/rules"
)

// tempConfigPath returns a path to a config file inside a temp directory.
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

// --- Defaults ---

func TestDefaults(t *testing.T) {
	d := Defaults()

	if d.Adjustment == nil {
		t.Fatal("Defaults().Adjustment should not be nil")
	}
	if *d.Adjustment != 0 {
		t.Errorf("Defaults().Adjustment = %d, want 0", *d.Adjustment)
	}
	if d.Madhab != "shafi" {
		t.Errorf("Defaults().Madhab = %q, want %q", d.Madhab, "shafi")
	}
	if d.DaudStrategy != "skip" {
		t.Errorf("Defaults().DaudStrategy = %q, want %q", d.DaudStrategy, "skip")
	}
	if d.Preset != "mabims" {
		t.Errorf("Defaults().Preset = %q, want %q", d.Preset, "mabims")
	}
	if d.TimeFormat != "24h" {
		t.Errorf("Defaults().TimeFormat = %q, want %q", d.TimeFormat, "24h")
	}
	if d.Locale != "en" {
		t.Errorf("Defaults().Locale = %q, want %q", d.Locale, "en")
	}

	// Everything else should be zero.
	if d.Latitude != 0 {
		t.Errorf("Defaults().Latitude = %f, want 0", d.Latitude)
	}
	if d.Strict {
		t.Error("Defaults().Strict = true, want false")
	}
	if d.CacheDir != "" {
		t.Errorf("Defaults().CacheDir = %q, want empty", d.CacheDir)
	}
}

// --- Dir and Path with XDG ---

func TestDir_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "shaum")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "shaum", "config.json")
	if path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

// --- Load and Save ---

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(tempConfigPath(t))
	if err != nil {
		t.Fatalf("LoadFrom() on missing file should not error, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadFrom() returned nil config")
	}
	if cfg.Madhab != "" {
		t.Errorf("missing file should produce empty config, got Madhab=%q", cfg.Madhab)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := tempConfigPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() on invalid JSON should error")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := tempConfigPath(t)

	adj := -1
	cfg := &Config{
		Latitude:     -6.2088,
		Longitude:    106.8456,
		Adjustment:   &adj,
		Madhab:       "hanafi",
		DaudStrategy: "postpone",
		Preset:       "mwl",
		Locale:       "id",
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if got.Latitude != cfg.Latitude {
		t.Errorf("Latitude = %f, want %f", got.Latitude, cfg.Latitude)
	}
	if got.Adjustment == nil || *got.Adjustment != -1 {
		t.Errorf("Adjustment = %v, want -1", got.Adjustment)
	}
	if got.Madhab != "hanafi" {
		t.Errorf("Madhab = %q, want %q", got.Madhab, "hanafi")
	}
	if got.DaudStrategy != "postpone" {
		t.Errorf("DaudStrategy = %q, want %q", got.DaudStrategy, "postpone")
	}
	if got.Locale != "id" {
		t.Errorf("Locale = %q, want %q", got.Locale, "id")
	}
}

func TestSaveTo_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	cfg := &Config{Madhab: "shafi"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() should create parent directories, got: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestResetAt(t *testing.T) {
	path := tempConfigPath(t)
	cfg := &Config{Madhab: "shafi"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	if err := ResetAt(path); err != nil {
		t.Fatalf("ResetAt() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file should be deleted")
	}

	// Resetting a missing file is not an error.
	if err := ResetAt(path); err != nil {
		t.Errorf("ResetAt() on missing file should not error, got: %v", err)
	}
}

// --- Set ---

func TestSet_ValidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"latitude", "-6.2088"},
		{"longitude", "106.8456"},
		{"altitude", "8"},
		{"adjustment", "-1"},
		{"madhab", "maliki"},
		{"daud_strategy", "postpone"},
		{"strict", "true"},
		{"preset", "isna"},
		{"time_format", "12h"},
		{"locale", "id"},
		{"cache_dir", "/tmp/shaum-cache"},
	}

	cfg := &Config{}
	for _, tt := range tests {
		if err := cfg.Set(tt.key, tt.value); err != nil {
			t.Errorf("Set(%q, %q) error: %v", tt.key, tt.value, err)
		}
	}

	if cfg.Latitude != -6.2088 {
		t.Errorf("Latitude = %f, want -6.2088", cfg.Latitude)
	}
	if cfg.Adjustment == nil || *cfg.Adjustment != -1 {
		t.Errorf("Adjustment = %v, want -1", cfg.Adjustment)
	}
	if !cfg.Strict {
		t.Error("Strict should be true")
	}
}

func TestSet_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"latitude", "not-a-number"},
		{"latitude", "91"},
		{"longitude", "-200"},
		{"adjustment", "2.5"},
		{"adjustment", "31"},
		{"adjustment", "-31"},
		{"madhab", "unknown-school"},
		{"daud_strategy", "defer"},
		{"strict", "maybe"},
		{"preset", "nasa"},
		{"time_format", "48h"},
		{"locale", "fr"},
		{"no_such_key", "x"},
	}

	cfg := &Config{}
	for _, tt := range tests {
		if err := cfg.Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%q, %q) should error", tt.key, tt.value)
		}
	}
}

// --- Get ---

func TestGet(t *testing.T) {
	adj := 1
	cfg := &Config{
		Latitude:   -6.2088,
		Adjustment: &adj,
		Madhab:     "shafi",
		Strict:     true,
	}

	tests := []struct {
		key, want string
	}{
		{"latitude", "-6.2088"},
		{"longitude", ""},
		{"adjustment", "1"},
		{"madhab", "shafi"},
		{"strict", "true"},
		{"preset", ""},
	}
	for _, tt := range tests {
		got, err := cfg.Get(tt.key)
		if err != nil {
			t.Errorf("Get(%q) error: %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}

	if _, err := cfg.Get("no_such_key"); err == nil {
		t.Error("Get() on unknown key should error")
	}
}

func TestGet_UnsetAdjustment(t *testing.T) {
	cfg := &Config{}
	got, err := cfg.Get("adjustment")
	if err != nil {
		t.Fatalf("Get(adjustment) error: %v", err)
	}
	if got != "" {
		t.Errorf("unset adjustment should render empty, got %q", got)
	}
}

// --- Typed accessors ---

func TestAdjustmentOrDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.AdjustmentOrDefault(0); got != 0 {
		t.Errorf("AdjustmentOrDefault(0) = %d, want 0", got)
	}

	adj := -2
	cfg.Adjustment = &adj
	if got := cfg.AdjustmentOrDefault(0); got != -2 {
		t.Errorf("AdjustmentOrDefault(0) = %d, want -2", got)
	}
}

func TestTypedAccessors(t *testing.T) {
	cfg := &Config{Madhab: "hanbali", DaudStrategy: "postpone", Preset: "egyptian"}

	if got := cfg.MadhabValue(); got != rules.Hanbali {
		t.Errorf("MadhabValue() = %v, want Hanbali", got)
	}
	if got := cfg.StrategyValue(); got != rules.Postpone {
		t.Errorf("StrategyValue() = %v, want Postpone", got)
	}
	if got := cfg.PresetValue(); got.FajrAngle != -19.5 {
		t.Errorf("PresetValue().FajrAngle = %f, want -19.5", got.FajrAngle)
	}

	// Empty config falls back to the defaults.
	empty := &Config{}
	if got := empty.MadhabValue(); got != rules.Shafi {
		t.Errorf("empty MadhabValue() = %v, want Shafi", got)
	}
	if got := empty.StrategyValue(); got != rules.Skip {
		t.Errorf("empty StrategyValue() = %v, want Skip", got)
	}
	if got := empty.PresetValue(); got.FajrAngle != -20 {
		t.Errorf("empty PresetValue().FajrAngle = %f, want -20", got.FajrAngle)
	}
}
