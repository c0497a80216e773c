package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:      0.5,
			MaxFallSpeed: 10,
			ProbeInset:   1,
		},
		Player: PlatformerPlayer{
			Speed:             3,
			JumpVelocity:      -9,
			StompBounce:       -5,
			Width:             16,
			SmallHeight:       16,
			BigHeight:         32,
			SpawnX:            16,
			InvulnerableTicks: 60,
			Characters: []Character{
				{Name: "RED", Color: "bright_red"},
				{Name: "GREEN", Color: "bright_green"},
			},
		},
		Enemy: PlatformerMover{
			Speed:  1,
			Width:  16,
			Height: 16,
		},
		Item: PlatformerMover{
			Speed:  1,
			Width:  16,
			Height: 16,
		},
		Session: PlatformerSession{
			InitialLives:      3,
			MaxWorld:          8,
			LevelsPerWorld:    4,
			IntermissionTicks: 90,
			GameOverHoldTicks: 30,
		},
		Display: PlatformerDisplay{
			ViewportTiles: 16,
			CellsPerTile:  2,
			HoldTicks:     8,
			ShowHelp:      true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "world",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				EnemySpeedMultiplier: 0,
			},
		},
	}
}
