package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	def := DefaultPlatformerConfig()
	if cfg.Physics != def.Physics {
		t.Errorf("physics = %+v, want %+v", cfg.Physics, def.Physics)
	}
	if cfg.Session != def.Session {
		t.Errorf("session = %+v, want %+v", cfg.Session, def.Session)
	}
	if cfg.Player.JumpVelocity != -9 || cfg.Player.StompBounce != -5 {
		t.Errorf("player = %+v", cfg.Player)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded config invalid: %v", err)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	data := []byte("physics:\n  gravity: 0.75\nsession:\n  initial_lives: 4\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer: %v", err)
	}
	if cfg.Physics.Gravity != 0.75 {
		t.Errorf("gravity = %v, want 0.75", cfg.Physics.Gravity)
	}
	if cfg.Session.InitialLives != 4 {
		t.Errorf("lives = %d, want 4", cfg.Session.InitialLives)
	}
	// Untouched values keep their defaults
	if cfg.Physics.MaxFallSpeed != 10 {
		t.Errorf("max fall = %v, want 10", cfg.Physics.MaxFallSpeed)
	}
	if len(cfg.Player.Characters) != 2 {
		t.Errorf("characters = %d, want 2", len(cfg.Player.Characters))
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPlatformer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("physics: [unclosed"), 0o644)
	if _, err := LoadFile(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("physics:\n  gravity: -1\n"), 0o644)
	cfg, err := LoadFile(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("invalid file should return defaults, gravity = %v", cfg.Physics.Gravity)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		lives   int
		speed   float64
		enabled bool
	}{
		{DifficultyEasy, 5, 0.75, true},
		{DifficultyNormal, 3, 1, true},
		{DifficultyHard, 1, 1.5, true},
		{DifficultyFixed, 3, 1, false},
		{"", 3, 1, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPlatformerPreset(&cfg, tt.preset)
			if cfg.Session.InitialLives != tt.lives {
				t.Errorf("lives = %d, want %d", cfg.Session.InitialLives, tt.lives)
			}
			if cfg.Enemy.Speed != tt.speed {
				t.Errorf("enemy speed = %v, want %v", cfg.Enemy.Speed, tt.speed)
			}
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestDifficultyEnemySpeed(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	d := NewDifficultyManager(cfg.Difficulty, cfg.Session.LevelsPerWorld)
	if got := d.EnemySpeed(1, 8, 4); got != 1 {
		t.Errorf("disabled progression speed = %v, want 1", got)
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Scaling.EnemySpeedMultiplier = 1
	d = NewDifficultyManager(cfg.Difficulty, cfg.Session.LevelsPerWorld)
	if got := d.EnemySpeed(1, 1, 1); got != 1 {
		t.Errorf("world 1 speed = %v, want 1", got)
	}
	if got := d.EnemySpeed(1, 8, 1); got != 2 {
		t.Errorf("world 8 speed = %v, want 2", got)
	}
	if got := d.Level(20, 1); got != 1 {
		t.Errorf("level past max = %v, want clamp at 1", got)
	}

	cfg.Difficulty.Progression = ProgressionConfig{Type: "level", MaxAt: 5}
	d = NewDifficultyManager(cfg.Difficulty, 4)
	if got := d.Level(2, 1); got != 1 {
		t.Errorf("level index 5 = %v, want 1", got)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored
	os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644)
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 0.6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != FileName {
			t.Errorf("event for %s, want %s", name, FileName)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event within 2s")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("events channel should be closed")
	}
}
