package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	defaultTurnDurationSeconds = 15
	defaultEndLingerTicks      = 5
)

// GameConfig holds tunables for the authoritative match handler.
type GameConfig struct {
	// TurnDurationSeconds is the per-turn budget before the mover forfeits.
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// EndLingerTicks is how many loop ticks a finished match is kept around
	// before the handler releases it, so late messages and timer races land
	// on the finished-state guards instead of a dead match.
	EndLingerTicks int `json:"end_linger_ticks"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// TurnDuration returns the configured per-turn budget in seconds, or the default.
func TurnDuration() int {
	if cfg == nil || cfg.TurnDurationSeconds <= 0 {
		return defaultTurnDurationSeconds
	}
	return cfg.TurnDurationSeconds
}

// EndLinger returns the configured post-game linger in ticks, or the default.
func EndLinger() int {
	if cfg == nil || cfg.EndLingerTicks <= 0 {
		return defaultEndLingerTicks
	}
	return cfg.EndLingerTicks
}
