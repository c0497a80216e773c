package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// env holds the process-wide resources of an interactive session.
type env struct {
	logger  *log.Logger
	logFile io.Closer
	store   *storage.Store
	audio   *audio.Player
	watcher *config.Watcher
	runtime core.RuntimeConfig
	display config.PlatformerDisplay
}

// newLogger builds the logger. interactive selects the default log file
// because the terminal belongs to the game.
func newLogger(interactive bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	var closer io.Closer
	path := flagLogFile
	if path == "" && interactive {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".platformer", "platformer.log")
		}
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //#nosec G304 -- path is provided by the user
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           level,
	})
	return logger, closer, nil
}

// runtimeConfig reads the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// applyGameFlags pushes --config and --difficulty into the game package.
func applyGameFlags() {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fail("%v", err)
	}
	game.SetConfigPath(flagConfig)
	game.SetDifficultyPreset(flagDifficulty)
}

// openEnv prepares logging, storage, audio and the config watcher.
// Failures other than a bad log setup only disable the affected feature.
func openEnv() *env {
	applyGameFlags()

	logger, logFile, err := newLogger(true)
	if err != nil {
		fail("logging: %v", err)
	}
	e := &env{
		logger:  logger,
		logFile: logFile,
		runtime: runtimeConfig(),
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	e.display = cfg.Display

	e.store, err = storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progress database, progress will not be kept", "error", err)
		e.store = nil
	}

	if !flagMute {
		e.audio = audio.NewPlayer(audio.DefaultOptions())
		if err := e.audio.Init(); err != nil {
			logger.Warn("audio disabled", "error", err)
		}
	}

	if flagWatch {
		path := config.ResolvePath(flagConfig)
		if path == "" {
			logger.Warn("--watch given but no config file is in use")
		} else if e.watcher, err = config.NewWatcher(path); err != nil {
			logger.Warn("config watcher disabled", "path", path, "error", err)
			e.watcher = nil
		} else {
			logger.Info("watching config", "path", path)
		}
	}
	return e
}

// progress loads the save slots. Corrupt rows fall back to world 1.
func (e *env) progress() map[string]int {
	if e.store == nil {
		return storage.DefaultProgress()
	}
	p, err := e.store.LoadProgress()
	if errors.Is(err, storage.ErrCorruptState) {
		e.logger.Warn("save data damaged, affected files restart at world 1", "error", err)
	} else if err != nil {
		e.logger.Error("load progress", "error", err)
	}
	return p
}

func (e *env) tuiOptions() tui.Options {
	return tui.Options{
		Store:     e.store,
		Audio:     e.audio,
		Logger:    e.logger,
		Watcher:   e.watcher,
		HoldTicks: e.display.HoldTicks,
		ShowHelp:  e.display.ShowHelp,
	}
}

// Close releases everything openEnv acquired.
func (e *env) Close() {
	if e.watcher != nil {
		_ = e.watcher.Close()
	}
	if e.audio != nil {
		e.audio.Close()
	}
	if e.store != nil {
		_ = e.store.Close()
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}
