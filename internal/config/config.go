// Package config loads tool configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/sevens/internal/deck"
)

// DefaultConfigFile is the config file looked up in the working
// directory when no path is given.
const DefaultConfigFile = "sevens.hcl"

// Config represents the complete tool configuration
type Config struct {
	Simulation  *SimulationSettings  `hcl:"simulation,block"`
	Playback    *PlaybackSettings    `hcl:"playback,block"`
	Exploration *ExplorationSettings `hcl:"exploration,block"`
}

// SimulationSettings configures the simulate command
type SimulationSettings struct {
	Games   int   `hcl:"games,optional"`
	Players int   `hcl:"players,optional"`
	Workers int   `hcl:"workers,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// PlaybackSettings configures the play command
type PlaybackSettings struct {
	Players int   `hcl:"players,optional"`
	Seed    int64 `hcl:"seed,optional"`
	DelayMS int   `hcl:"delay_ms,optional"`
	Color   bool  `hcl:"color,optional"`
}

// ExplorationSettings configures the explore command
type ExplorationSettings struct {
	Players     int   `hcl:"players,optional"`
	Seed        int64 `hcl:"seed,optional"`
	MaxBranches int   `hcl:"max_branches,optional"`
}

// DefaultConfig returns default tool configuration
func DefaultConfig() *Config {
	return &Config{
		Simulation: &SimulationSettings{
			Games:   1000,
			Players: 4,
			Workers: 1,
			Seed:    0,
		},
		Playback: &PlaybackSettings{
			Players: 4,
			Seed:    0,
			DelayMS: 0,
			Color:   true,
		},
		Exploration: &ExplorationSettings{
			Players:     2,
			Seed:        0,
			MaxBranches: 10000,
		},
	}
}

// LoadConfig loads tool configuration from an HCL file. A missing
// file yields the defaults; omitted blocks and omitted counts are
// filled from the defaults. Seeds, delay and color are taken as
// written.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()

	if config.Simulation == nil {
		config.Simulation = defaults.Simulation
	} else {
		if config.Simulation.Games == 0 {
			config.Simulation.Games = defaults.Simulation.Games
		}
		if config.Simulation.Players == 0 {
			config.Simulation.Players = defaults.Simulation.Players
		}
		if config.Simulation.Workers == 0 {
			config.Simulation.Workers = defaults.Simulation.Workers
		}
	}

	if config.Playback == nil {
		config.Playback = defaults.Playback
	} else if config.Playback.Players == 0 {
		config.Playback.Players = defaults.Playback.Players
	}

	if config.Exploration == nil {
		config.Exploration = defaults.Exploration
	} else {
		if config.Exploration.Players == 0 {
			config.Exploration.Players = defaults.Exploration.Players
		}
		if config.Exploration.MaxBranches == 0 {
			config.Exploration.MaxBranches = defaults.Exploration.MaxBranches
		}
	}

	return &config, nil
}

// Validate validates the tool configuration
func (c *Config) Validate() error {
	if c.Simulation == nil || c.Playback == nil || c.Exploration == nil {
		return fmt.Errorf("config blocks must not be nil")
	}

	if c.Simulation.Games <= 0 {
		return fmt.Errorf("simulation: games must be positive, got %d", c.Simulation.Games)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be at least 1, got %d", c.Simulation.Workers)
	}
	if err := validatePlayers("simulation", c.Simulation.Players); err != nil {
		return err
	}

	if err := validatePlayers("playback", c.Playback.Players); err != nil {
		return err
	}
	if c.Playback.DelayMS < 0 {
		return fmt.Errorf("playback: delay_ms cannot be negative, got %d", c.Playback.DelayMS)
	}

	if err := validatePlayers("exploration", c.Exploration.Players); err != nil {
		return err
	}
	if c.Exploration.MaxBranches < 0 {
		return fmt.Errorf("exploration: max_branches cannot be negative, got %d", c.Exploration.MaxBranches)
	}

	return nil
}

func validatePlayers(section string, players int) error {
	if players < 1 || players > deck.Size {
		return fmt.Errorf("%s: players must be between 1 and %d, got %d", section, deck.Size, players)
	}
	return nil
}
