// Package config provides YAML-based configuration loading, difficulty
// presets and hot reload for the platformer.
package config

import (
	"errors"
	"fmt"
)

// PlatformerConfig contains all gameplay tunables.
type PlatformerConfig struct {
	Physics    PlatformerPhysics `yaml:"physics"`
	Player     PlatformerPlayer  `yaml:"player"`
	Enemy      PlatformerMover   `yaml:"enemy"`
	Item       PlatformerMover   `yaml:"item"`
	Session    PlatformerSession `yaml:"session"`
	Display    PlatformerDisplay `yaml:"display"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// PlatformerPhysics defines the shared motion constants, in pixels per tick.
type PlatformerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	ProbeInset   float64 `yaml:"probe_inset"` // Keeps probes off exact tile edges
}

// PlatformerPlayer defines player movement and power-state parameters.
type PlatformerPlayer struct {
	Speed             float64     `yaml:"speed"`
	JumpVelocity      float64     `yaml:"jump_velocity"`
	StompBounce       float64     `yaml:"stomp_bounce"`
	Width             float64     `yaml:"width"`
	SmallHeight       float64     `yaml:"small_height"`
	BigHeight         float64     `yaml:"big_height"`
	SpawnX            float64     `yaml:"spawn_x"`
	InvulnerableTicks int         `yaml:"invulnerable_ticks"`
	Characters        []Character `yaml:"characters"`
}

// Character is one playable identity.
type Character struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// PlatformerMover defines a walking non-player body (enemies, power-ups).
type PlatformerMover struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlatformerSession defines campaign structure and pacing.
type PlatformerSession struct {
	InitialLives      int `yaml:"initial_lives"`
	MaxWorld          int `yaml:"max_world"`
	LevelsPerWorld    int `yaml:"levels_per_world"`
	IntermissionTicks int `yaml:"intermission_ticks"` // Pause after a clear or a death
	GameOverHoldTicks int `yaml:"game_over_hold_ticks"`
}

// PlatformerDisplay defines terminal presentation parameters.
type PlatformerDisplay struct {
	ViewportTiles int  `yaml:"viewport_tiles"`
	CellsPerTile  int  `yaml:"cells_per_tile"`
	HoldTicks     int  `yaml:"hold_ticks"` // Ticks a move key stays held without repeat
	ShowHelp      bool `yaml:"show_help"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over the campaign.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "world", "level", or "none"
	MaxAt int    `yaml:"max_at"` // World or level count at which difficulty peaks
}

// ScalingConfig defines how parameters scale with difficulty.
type ScalingConfig struct {
	EnemySpeedMultiplier float64 `yaml:"enemy_speed_multiplier"` // Extra enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means none.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects values the simulation cannot run with.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: physics.gravity must be > 0", ErrInvalidConfig)
	case c.Physics.MaxFallSpeed <= 0 || c.Physics.MaxFallSpeed >= 16:
		return fmt.Errorf("%w: physics.max_fall_speed must be in (0, 16)", ErrInvalidConfig)
	case c.Player.JumpVelocity >= 0:
		return fmt.Errorf("%w: player.jump_velocity must be negative", ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.SmallHeight <= 0 || c.Player.BigHeight < c.Player.SmallHeight:
		return fmt.Errorf("%w: player size", ErrInvalidConfig)
	case len(c.Player.Characters) != 2:
		return fmt.Errorf("%w: exactly two characters required, got %d", ErrInvalidConfig, len(c.Player.Characters))
	case c.Session.InitialLives < 1:
		return fmt.Errorf("%w: session.initial_lives must be >= 1", ErrInvalidConfig)
	case c.Session.MaxWorld < 1 || c.Session.LevelsPerWorld < 1 || c.Session.LevelsPerWorld > 4:
		return fmt.Errorf("%w: session campaign bounds", ErrInvalidConfig)
	case c.Display.ViewportTiles < 1 || c.Display.CellsPerTile < 1:
		return fmt.Errorf("%w: display sizes must be >= 1", ErrInvalidConfig)
	}
	return nil
}
