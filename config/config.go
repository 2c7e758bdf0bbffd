// Package config loads the quote table defaults: built-in values, then an
// optional YAML file, then QUOTE_ environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"quotecomposer/quotetable"
	"quotecomposer/services"
)

// FileName is the config file looked up in the working directory.
const FileName = "quotecomposer.yaml"

// FileNameAlt is the alternate name of the config file.
const FileNameAlt = "quotecomposer.yml"

// EnvPrefix marks the environment variables that override the file,
// e.g. QUOTE_TAX_RATE=7.5.
const EnvPrefix = "QUOTE_"

// Config holds the defaults applied to newly inserted quote tables and
// to the product drawers.
type Config struct {
	TaxRate         string   `koanf:"tax_rate"`
	SelectionMode   string   `koanf:"selection_mode"`
	Theme           string   `koanf:"theme"`
	DiscountEnabled bool     `koanf:"discount_enabled"`
	HiddenColumns   []string `koanf:"hidden_columns"`
	QuickPickSize   int      `koanf:"quick_pick_size"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"tax_rate":         "10",
		"selection_mode":   string(quotetable.AllMandatory),
		"theme":            services.DefaultThemeID,
		"discount_enabled": true,
		"quick_pick_size":  5,
	}
}

// Default returns the built-in configuration, ignoring files and the
// environment.
func Default() *Config {
	return &Config{
		TaxRate:         "10",
		SelectionMode:   string(quotetable.AllMandatory),
		Theme:           services.DefaultThemeID,
		DiscountEnabled: true,
		QuickPickSize:   5,
	}
}

// Load reads the configuration. An empty path looks for quotecomposer.yaml
// or quotecomposer.yml in the working directory; a missing file is not an
// error, an explicit path that cannot be read is.
func Load(path string) (*Config, error) {
	if path == "" {
		path = findConfigFile()
	}
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if _, err := cfg.TableDefaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// envKey maps QUOTE_TAX_RATE to tax_rate.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func findConfigFile() string {
	for _, name := range []string{FileName, FileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// TableDefaults converts the configuration into the settings of a new
// quote table.
func (c *Config) TableDefaults() (quotetable.Config, error) {
	cfg := quotetable.DefaultConfig()

	rate, err := quotetable.ParseTaxRate(c.TaxRate)
	if err != nil {
		return cfg, err
	}
	cfg.TaxRate = rate

	mode, err := quotetable.ParseSelectionMode(c.SelectionMode)
	if err != nil {
		return cfg, err
	}
	cfg.SelectionMode = mode

	cfg.Theme = c.Theme
	cfg.DiscountEnabled = c.DiscountEnabled

	for _, entry := range c.HiddenColumns {
		for _, col := range strings.Split(entry, ",") {
			col = strings.TrimSpace(col)
			if col == "" {
				continue
			}
			if err := cfg.Columns.Set(col, false); err != nil {
				return cfg, err
			}
		}
	}

	return cfg, cfg.Validate()
}

// QuickPick returns the number of products the quick-pick dropdown shows.
func (c *Config) QuickPick() int {
	if c.QuickPickSize <= 0 {
		return 5
	}
	return c.QuickPickSize
}
