package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/planifica/internal/model"
)

// DataDirEnv overrides the configured data directory.
const DataDirEnv = "PLANIFICA_DATA_DIR"

// Config holds all planifica configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Defaults   DefaultsConfig   `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir,omitempty"`
	Currency string `toml:"currency" validate:"max=8"`
}

// DefaultsConfig pre-fills the plan inputs of calc and the TUI form. Amounts
// are kept as strings so they round-trip exactly.
type DefaultsConfig struct {
	Income         string `toml:"income,omitempty" validate:"omitempty,numeric"`
	Fixed          string `toml:"fixed,omitempty" validate:"omitempty,numeric"`
	Leisure        string `toml:"leisure,omitempty" validate:"omitempty,numeric"`
	SavingsPercent string `toml:"savings_percent,omitempty" validate:"omitempty,numeric"`
	Months         int    `toml:"months,omitempty" validate:"gte=0"`
	PeriodType     string `toml:"period_type,omitempty" validate:"omitempty,oneof=monthly semimonthly"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" validate:"omitempty,oneof=flexoki-dark flexoki-light catppuccin-mocha tokyo-night terminal"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "RD$",
		},
		Defaults: DefaultsConfig{
			Months:     12,
			PeriodType: string(model.PeriodMonthly),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// PlanConfig converts the stored defaults into plan inputs.
func (d DefaultsConfig) PlanConfig() model.PlanConfig {
	return model.PlanConfig{
		Income:          model.ParseAmount(d.Income),
		FixedExpenses:   model.ParseAmount(d.Fixed),
		LeisureExpenses: model.ParseAmount(d.Leisure),
		SavingsPercent:  model.ParseAmount(d.SavingsPercent),
		Months:          model.ClampMonths(d.Months),
		PeriodType:      model.ParsePeriodType(d.PeriodType),
	}.Normalized()
}

// SetPlanConfig stores c as the new defaults.
func (d *DefaultsConfig) SetPlanConfig(c model.PlanConfig) {
	c = c.Normalized()
	d.Income = amountString(c.Income)
	d.Fixed = amountString(c.FixedExpenses)
	d.Leisure = amountString(c.LeisureExpenses)
	d.SavingsPercent = amountString(c.SavingsPercent)
	d.Months = c.Months
	d.PeriodType = string(c.PeriodType)
}

func amountString(v decimal.Decimal) string {
	if v.IsZero() {
		return ""
	}
	return v.String()
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "planifica")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "planifica")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "planifica")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "planifica")
}

// DataDir resolves the data directory: the environment override, then the
// config file, then the XDG default.
func DataDir(cfg Config) string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return expandHome(cfg.General.DataDir)
	}
	return DefaultDataDir()
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// LoadEnv loads a .env file from the working directory when present.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config location
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports the first offending key.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config: %s (%s=%v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid config: %w", err)
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's config location
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
