package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/soundkit/internal/board"
	"github.com/llehouerou/soundkit/internal/clip"
	"github.com/llehouerou/soundkit/internal/config"
	"github.com/llehouerou/soundkit/internal/device"
	"github.com/llehouerou/soundkit/internal/errmsg"
	"github.com/llehouerou/soundkit/internal/observe"
	"github.com/llehouerou/soundkit/internal/profile"
	"github.com/llehouerou/soundkit/internal/sfx"
	"github.com/llehouerou/soundkit/internal/state"
	"github.com/llehouerou/soundkit/internal/stderr"
)

const masterGroup = "master"

type app struct {
	engine  *device.Engine
	sfx     *sfx.Context
	capture *stderr.Capture
	store   *state.Manager
	logFile io.Closer
	board   board.Model
}

func (a *app) close() {
	if a.sfx != nil {
		if err := a.sfx.Close(); err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		}
	}
	if a.engine != nil {
		a.engine.Close()
	}
	if a.capture != nil {
		a.capture.Stop()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func openLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return observe.Discard(), nil, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errmsg.OpLogOpen, err)
	}
	return observe.NewLogger(f, cfg.LogLevel), f, nil
}

// loadSounds decodes the clip of every profile, sharing clips between
// profiles that use the same file.
func loadSounds(bank *profile.Bank, dir string, engine *device.Engine, logger *slog.Logger) ([]board.Sound, error) {
	clips := make(map[string]*clip.Clip)
	sounds := make([]board.Sound, 0, len(bank.Profiles))
	for _, p := range bank.Profiles {
		path := p.ClipPath(dir)
		c, ok := clips[path]
		if !ok {
			var err error
			c, err = clip.Load(path, engine.SampleRate())
			if err != nil {
				return nil, fmt.Errorf("%s '%s': %w", errmsg.OpClipLoad, p.Name, err)
			}
			clips[path] = c
			logger.Debug("clip loaded", "path", path, "samples", c.SampleCount())
		}

		group := p.Output
		if group == "" {
			group = masterGroup
		}
		sounds = append(sounds, board.Sound{Profile: p, Clip: c, Bus: engine.Group(group)})
	}
	return sounds, nil
}

func initialApp(configPath string) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errmsg.OpConfigLoad, err)
	}
	if cfg.Profiles == "" {
		return nil, errors.New("no profile bank configured (set 'profiles' in config.toml)")
	}

	a := &app{}
	logger, logFile, err := openLogger(cfg)
	if err != nil {
		return nil, err
	}
	a.logFile = logFile

	bank, err := profile.Load(cfg.Profiles)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", errmsg.OpBankLoad, err)
	}

	audio := cfg.GetAudioConfig()
	a.engine = device.NewEngine(beep.SampleRate(audio.SampleRate))
	sounds, err := loadSounds(bank, cfg.Sounds, a.engine, logger)
	if err != nil {
		a.close()
		return nil, err
	}

	// The audio backend may write to stderr, which would corrupt the TUI.
	a.capture, err = stderr.Start()
	if err != nil {
		logger.Warn("stderr capture unavailable", "err", err)
	}

	if err := a.engine.Start(time.Duration(audio.BufferMs) * time.Millisecond); err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", errmsg.OpDeviceStart, err)
	}

	settings := cfg.GetPoolSettings()
	a.sfx = sfx.NewContext(a.engine, settings, sfx.WithLogger(logger))
	if !settings.AutoCreate {
		if err := a.sfx.Init(); err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
		}
	}
	pool, err := a.sfx.Pool()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}

	var opts []board.Option
	if a.capture != nil {
		opts = append(opts, board.WithStderr(a.capture.Messages()))
	}
	if a.store, err = state.Open(); err != nil {
		logger.Warn(errmsg.Format(errmsg.OpStateOpen, err))
		a.store = nil
	} else {
		opts = append(opts, board.WithStore(a.store))
	}
	a.board = board.New(pool, sounds, opts...)
	logger.Info("sound board ready", "profiles", len(sounds), "rate", audio.SampleRate)
	return a, nil
}

func main() {
	configPath := flag.String("config", "", "path to a config file (default: XDG config, then ./soundkit.toml)")
	flag.Parse()

	a, err := initialApp(*configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(a.board, tea.WithAltScreen())
	_, runErr := p.Run()
	a.close()
	if runErr != nil {
		fmt.Printf("Error: %v\n", runErr)
		os.Exit(1)
	}
}
