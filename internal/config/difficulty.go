package config

import "math"

// DifficultyManager derives campaign-dependent parameters from the current
// world and level.
type DifficultyManager struct {
	cfg            DifficultyConfig
	initialLevel   float64
	levelsPerWorld int
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, levelsPerWorld int) *DifficultyManager {
	if levelsPerWorld < 1 {
		levelsPerWorld = 1
	}
	return &DifficultyManager{
		cfg:            cfg,
		initialLevel:   clampF(cfg.InitialLevel, 0.0, 1.0),
		levelsPerWorld: levelsPerWorld,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for a campaign position.
func (d *DifficultyManager) Level(world, level int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 1 {
		maxAt = 2 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "world":
		progress = float64(world-1) / (maxAt - 1)
	case "level":
		index := (world-1)*d.levelsPerWorld + level
		progress = float64(index-1) / (maxAt - 1)
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// EnemySpeed returns the enemy walking speed for a campaign position.
func (d *DifficultyManager) EnemySpeed(base float64, world, level int) float64 {
	if !d.IsEnabled() {
		return base
	}
	return base * (1.0 + d.Level(world, level)*d.cfg.Scaling.EnemySpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
