package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/eulergrowth/internal/dynamo"
	"github.com/san-kum/eulergrowth/internal/models"
)

const (
	DefaultName         = "growth"
	DefaultN0           = 1.0
	DefaultDoublingTime = 0.5
	DefaultDt           = 0.01
	DefaultDuration     = 5.0
)

type Config struct {
	Name         string  `yaml:"name"`
	N0           float64 `yaml:"n0"`
	DoublingTime float64 `yaml:"doubling_time"`
	// Rate, when set, is used as is and DoublingTime is ignored.
	Rate     *float64 `yaml:"rate,omitempty"`
	Dt       float64  `yaml:"dt"`
	Duration float64  `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:         DefaultName,
		N0:           DefaultN0,
		DoublingTime: DefaultDoublingTime,
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads path over a copy of base, so keys missing from the file
// keep base's values. A file that sets doubling_time without rate drops
// any rate carried by base.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var set struct {
		DoublingTime *float64 `yaml:"doubling_time"`
		Rate         *float64 `yaml:"rate"`
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if set.DoublingTime != nil && set.Rate == nil {
		cfg.Rate = nil
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) SetRate(r float64) {
	c.Rate = &r
}

// GrowthRate resolves the rate constant, deriving it as ln(2)/doubling_time
// when no explicit rate is set.
func (c *Config) GrowthRate() (float64, error) {
	if c.Rate != nil {
		if math.IsNaN(*c.Rate) || math.IsInf(*c.Rate, 0) {
			return 0, dynamo.InvalidArgument("rate", *c.Rate, "finite")
		}
		return *c.Rate, nil
	}
	g, err := models.GrowthFromDoublingTime(c.DoublingTime)
	if err != nil {
		return 0, err
	}
	return g.Rate, nil
}

func (c *Config) Params() (dynamo.Params, error) {
	r, err := c.GrowthRate()
	if err != nil {
		return dynamo.Params{}, err
	}
	p := dynamo.Params{N0: c.N0, Rate: r, Dt: c.Dt, Duration: c.Duration}
	if err := p.Validate(); err != nil {
		return dynamo.Params{}, err
	}
	return p, nil
}

func (c *Config) Validate() error {
	_, err := c.Params()
	return err
}

func (c *Config) Clone() *Config {
	cp := *c
	if c.Rate != nil {
		r := *c.Rate
		cp.Rate = &r
	}
	return &cp
}
