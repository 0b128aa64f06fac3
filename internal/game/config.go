package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/boardwalk/internal/entity"
	"github.com/samdwyer/boardwalk/internal/turn"
)

// DefaultConfigFile is looked for in the working directory.
const DefaultConfigFile = "boardwalk.yaml"

// BoardRandom selects a generated board instead of an authored one.
const BoardRandom = "random"

// Config holds session configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible board
	// generation and rival play. A seed of 0 means a time-derived seed.
	Seed int64 `yaml:"seed"`

	// Board is the authored board ID to play, or "random" for a
	// generated one.
	Board string `yaml:"board"`

	// TickMillis is the scheduler tick interval.
	TickMillis int `yaml:"tick_millis"`

	// StepSpeed is the fraction of an edge a token covers per tick.
	StepSpeed float64 `yaml:"step_speed"`

	DiceMin int `yaml:"dice_min"`
	DiceMax int `yaml:"dice_max"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Board:      "meadow",
		TickMillis: 33,
		StepSpeed:  entity.DefaultStepSpeed,
		DiceMin:    turn.DefaultDiceMin,
		DiceMax:    turn.DefaultDiceMax,
	}
}

// LoadConfig reads a YAML config file. A missing file is not an error; the
// defaults apply. A file that exists but does not parse or validate is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TickMillis <= 0 {
		return fmt.Errorf("tick_millis must be positive, got %d", c.TickMillis)
	}
	if c.StepSpeed <= 0 || c.StepSpeed > 1 {
		return fmt.Errorf("step_speed must be in (0, 1], got %g", c.StepSpeed)
	}
	if c.DiceMin < 1 {
		return fmt.Errorf("dice_min must be at least 1, got %d", c.DiceMin)
	}
	if c.DiceMax < c.DiceMin {
		return fmt.Errorf("dice_max %d is below dice_min %d", c.DiceMax, c.DiceMin)
	}
	return nil
}
