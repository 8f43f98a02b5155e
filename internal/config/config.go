package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"numbergame/internal/domain"
)

// GameConfig holds the tunable rules of a match.
type GameConfig struct {
	BoardLength int    `json:"board_length"`
	Generator   string `json:"generator"` // "permutation" or "draws"
	MaxValue    int    `json:"max_value"` // upper bound for "draws"
	// DefaultStrategy is used when a start request names none: "auto", "optimal" or "parity".
	DefaultStrategy string `json:"default_strategy"`
	// ComputerDelaySeconds is how long the computer waits before picking. Zero picks on the next tick.
	ComputerDelaySeconds int `json:"computer_delay_seconds"`
}

// Environment keys that override the file values inside the Nakama runtime.
const (
	EnvBoardLength     = "numbergame_board_length"
	EnvGenerator       = "numbergame_generator"
	EnvMaxValue        = "numbergame_max_value"
	EnvDefaultStrategy = "numbergame_default_strategy"
	EnvComputerDelay   = "numbergame_computer_delay_sec"
)

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the built-in configuration.
func Default() GameConfig {
	return GameConfig{
		BoardLength:          domain.DefaultBoardLength,
		Generator:            string(domain.GeneratorPermutation),
		MaxValue:             domain.DefaultMaxValue,
		DefaultStrategy:      string(domain.StrategyAuto),
		ComputerDelaySeconds: 1,
	}
}

// LoadGameConfig loads the game configuration from the given path.
// Fields absent from the file keep their defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Default()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		if err := c.Validate(); err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or the defaults when nothing was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}

// Validate rejects configurations no match could be started with.
func (c GameConfig) Validate() error {
	if c.BoardLength <= 0 {
		return fmt.Errorf("board_length must be > 0, got %d", c.BoardLength)
	}
	switch domain.Generator(c.Generator) {
	case domain.GeneratorPermutation:
	case domain.GeneratorDraws:
		if c.MaxValue <= 0 {
			return fmt.Errorf("max_value must be > 0 for draws, got %d", c.MaxValue)
		}
	default:
		return fmt.Errorf("unknown generator %q", c.Generator)
	}
	if _, ok := domain.ParseStrategy(c.DefaultStrategy); !ok {
		return fmt.Errorf("unknown default_strategy %q", c.DefaultStrategy)
	}
	if c.ComputerDelaySeconds < 0 {
		return fmt.Errorf("computer_delay_seconds must be >= 0, got %d", c.ComputerDelaySeconds)
	}
	return nil
}

// WithEnv returns a copy of c with the runtime environment overrides applied.
// Malformed values are ignored and reported in the returned slice.
func (c GameConfig) WithEnv(env map[string]string) (GameConfig, []string) {
	var ignored []string
	intVal := func(key string, dst *int) {
		val, ok := env[key]
		if !ok {
			return
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			ignored = append(ignored, key)
			return
		}
		*dst = i
	}

	out := c
	intVal(EnvBoardLength, &out.BoardLength)
	intVal(EnvMaxValue, &out.MaxValue)
	intVal(EnvComputerDelay, &out.ComputerDelaySeconds)
	if val, ok := env[EnvGenerator]; ok {
		out.Generator = val
	}
	if val, ok := env[EnvDefaultStrategy]; ok {
		out.DefaultStrategy = val
	}

	if err := out.Validate(); err != nil {
		return c, append(ignored, err.Error())
	}
	return out, ignored
}
