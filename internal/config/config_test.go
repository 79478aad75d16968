package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/planifica/internal/model"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "RD$" {
		t.Errorf("Currency = %q, want RD$", cfg.General.Currency)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if Exists() {
		t.Error("Exists = true with no file written")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.Currency = "$"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Defaults.SetPlanConfig(model.PlanConfig{
		Income:          model.ParseAmount("50000"),
		FixedExpenses:   model.ParseAmount("20000"),
		LeisureExpenses: model.ParseAmount("5000"),
		SavingsPercent:  model.ParseAmount("20"),
		Months:          3,
		PeriodType:      model.PeriodSemiMonthly,
	})

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.Currency != "$" || got.Appearance.Theme != "tokyo-night" {
		t.Errorf("loaded = %+v", got)
	}
	pc := got.Defaults.PlanConfig()
	if !pc.Income.Equal(model.ParseAmount("50000")) || pc.Months != 3 || pc.PeriodType != model.PeriodSemiMonthly {
		t.Errorf("PlanConfig = %+v", pc)
	}
}

func TestLoad_RejectsUnknownTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[appearance]\ntheme = \"neon\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "Theme") {
		t.Fatalf("err = %v, want theme validation error", err)
	}
}

func TestLoad_RejectsNonNumericDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[defaults]\nincome = \"lots\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom accepted a non-numeric income")
	}
}

func TestDataDir_Precedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	t.Setenv(DataDirEnv, "")

	cfg := DefaultConfig()
	if got := DataDir(cfg); got != filepath.Join("/xdg", "planifica") {
		t.Errorf("default DataDir = %q", got)
	}

	cfg.General.DataDir = "/srv/plan"
	if got := DataDir(cfg); got != "/srv/plan" {
		t.Errorf("configured DataDir = %q, want /srv/plan", got)
	}

	t.Setenv(DataDirEnv, "/env/plan")
	if got := DataDir(cfg); got != "/env/plan" {
		t.Errorf("env DataDir = %q, want /env/plan", got)
	}
}

func TestDefaultsPlanConfig_Empty(t *testing.T) {
	pc := DefaultsConfig{}.PlanConfig()
	if !pc.Income.IsZero() || pc.Months != 1 || pc.PeriodType != model.PeriodMonthly {
		t.Errorf("PlanConfig of empty defaults = %+v", pc)
	}
}
