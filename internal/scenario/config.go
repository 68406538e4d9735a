package scenario

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the shape of one synthetic scenario run.
type Config struct {
	Buyers        int      `koanf:"buyers"`         // number of buyer profiles to generate
	Candidates    int      `koanf:"candidates"`     // number of candidate properties per buyer
	SeriesMonths  int      `koanf:"series_months"`  // length of each segment's price history
	Cities        []string `koanf:"cities"`         // market cities to seed
	PropertyTypes []string `koanf:"property_types"` // property types per city
	MinPrice      float64  `koanf:"min_price"`      // lower bound of generated listing prices
	MaxPrice      float64  `koanf:"max_price"`      // upper bound of generated listing prices
	MinIncome     float64  `koanf:"min_income"`     // lower bound of generated monthly incomes
	MaxIncome     float64  `koanf:"max_income"`     // upper bound of generated monthly incomes
	Verbose       bool     `koanf:"verbose"`
}

// DefaultConfig returns a small scenario usable without a config file.
func DefaultConfig() *Config {
	return &Config{
		Buyers:        5,
		Candidates:    20,
		SeriesMonths:  24,
		Cities:        []string{"Nairobi", "Mombasa", "Kisumu"},
		PropertyTypes: []string{"apartment", "house"},
		MinPrice:      2_000_000,
		MaxPrice:      20_000_000,
		MinIncome:     100_000,
		MaxIncome:     900_000,
	}
}

// LoadConfig reads a scenario description from a YAML file, layered
// over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load scenario file %q: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Buyers < 1:
		return fmt.Errorf("%w: buyers must be at least 1", ErrInvalidScenario)
	case c.Candidates < 1:
		return fmt.Errorf("%w: candidates must be at least 1", ErrInvalidScenario)
	case c.SeriesMonths < 2:
		return fmt.Errorf("%w: series_months must be at least 2", ErrInvalidScenario)
	case len(c.Cities) == 0:
		return fmt.Errorf("%w: at least one city is required", ErrInvalidScenario)
	case len(c.PropertyTypes) == 0:
		return fmt.Errorf("%w: at least one property type is required", ErrInvalidScenario)
	case c.MinPrice <= 0 || c.MaxPrice < c.MinPrice:
		return fmt.Errorf("%w: price range is invalid", ErrInvalidScenario)
	case c.MinIncome <= 0 || c.MaxIncome < c.MinIncome:
		return fmt.Errorf("%w: income range is invalid", ErrInvalidScenario)
	}
	return nil
}
