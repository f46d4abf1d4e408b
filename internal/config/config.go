// Package config loads the run configuration of the course planner from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/courseplan/pkg/model"
	"github.com/limaJavier/courseplan/pkg/scheduler"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSlotsPerTerm  = 5
	DefaultRequiredCount = 20
)

const defaultConfigYAML = `# courseplan run configuration

# Number of course slots in every term
slots_per_term: 5

# Minimum number of courses the plan must contain
required_count: 20

# Name of the degree course to plan for
degree: ""

# Term type of the first planned term: Fall or Winter
starting_term: Fall

# Ceiling on section combinations tried per placement attempt
max_combinations: 1048576
`

// Config models a courseplan YAML file
type Config struct {
	SlotsPerTerm    int    `yaml:"slots_per_term" validate:"gt=0"`
	RequiredCount   int    `yaml:"required_count" validate:"gte=0"`
	Degree          string `yaml:"degree" validate:"required"`
	StartingTerm    string `yaml:"starting_term" validate:"oneof=Fall Winter"`
	MaxCombinations uint64 `yaml:"max_combinations" validate:"gt=0"`
}

// Default returns the configuration used when no file is given. Degree is left empty and must be set
// before validation.
func Default() Config {
	return Config{
		SlotsPerTerm:    DefaultSlotsPerTerm,
		RequiredCount:   DefaultRequiredCount,
		StartingTerm:    model.Fall.String(),
		MaxCombinations: scheduler.DefaultMaxCombinations,
	}
}

// Load reads a configuration file. Keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// WriteDefault writes a commented default configuration to path
func WriteDefault(path string) error {
	return os.WriteFile(path, []byte(defaultConfigYAML), 0644)
}

// Validate checks every field against its constraints
func (cfg *Config) Validate() error {
	cfg.normalize()
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Term returns the starting term type
func (cfg *Config) Term() (model.Term, error) {
	return model.ParseTerm(cfg.StartingTerm)
}

// Options turns the configuration into scheduler options
func (cfg *Config) Options() ([]scheduler.Option, error) {
	term, err := cfg.Term()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []scheduler.Option{
		scheduler.WithStartingTerm(term),
		scheduler.WithMaxCombinations(cfg.MaxCombinations),
	}, nil
}

// normalize rewrites the starting term to its canonical name ("winter" and "1" become "Winter")
func (cfg *Config) normalize() {
	if term, err := model.ParseTerm(cfg.StartingTerm); err == nil {
		cfg.StartingTerm = term.String()
	}
}
