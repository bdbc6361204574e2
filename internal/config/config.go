// Package config loads soundkit configuration from TOML files.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "soundkit"

type Config struct {
	Profiles string `koanf:"profiles"`  // path to the YAML profile bank
	Sounds   string `koanf:"sounds"`    // directory clip paths in the bank are relative to
	LogLevel string `koanf:"log_level"` // "debug", "info", "warn", "error"
	LogFile  string `koanf:"log_file"`  // empty disables logging

	// Voice pool sizing
	Pool PoolConfig `koanf:"pool"`

	// Output device settings
	Audio AudioConfig `koanf:"audio"`
}

// PoolConfig holds the voice pool settings as read from the file.
type PoolConfig struct {
	InitialVoices       int   `koanf:"initial_voices"`        // voices created up front (default: 0)
	MaxVoices           *int  `koanf:"max_voices"`            // cap on voices, negative for unbounded (default: -1)
	AutoCreate          *bool `koanf:"auto_create"`           // create the pool on first use (default: true)
	PersistAcrossUnload *bool `koanf:"persist_across_unload"` // keep the pool on unload (default: true)
}

// AudioConfig holds output device settings.
type AudioConfig struct {
	SampleRate int `koanf:"sample_rate"` // Hz (default: 44100)
	BufferMs   int `koanf:"buffer_ms"`   // speaker buffer (5-1000, default: 50)
}

// PoolSettings is the resolved pool configuration consumed by the voice pool.
type PoolSettings struct {
	InitialVoices       int
	MaxVoices           int
	AutoCreate          bool
	PersistAcrossUnload bool
}

// DefaultPoolSettings returns the settings used when nothing is configured:
// no pre-warmed voices, no cap, lazy creation, kept across unloads.
func DefaultPoolSettings() PoolSettings {
	return PoolSettings{
		MaxVoices:           -1,
		AutoCreate:          true,
		PersistAcrossUnload: true,
	}
}

// Load reads the user config and then ./soundkit.toml; later files win.
func Load() (*Config, error) {
	return load(getConfigPaths())
}

// LoadFile reads a single config file.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return load([]string{path})
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		LogLevel: "info",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Profiles = expandPath(cfg.Profiles)
	cfg.Sounds = expandPath(cfg.Sounds)
	cfg.LogFile = expandPath(cfg.LogFile)

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/soundkit/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./soundkit.toml (pwd, highest priority)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPoolSettings returns the pool settings with defaults applied.
func (c *Config) GetPoolSettings() PoolSettings {
	s := DefaultPoolSettings()

	s.InitialVoices = max(c.Pool.InitialVoices, 0)
	if c.Pool.MaxVoices != nil {
		s.MaxVoices = *c.Pool.MaxVoices
	}
	if c.Pool.AutoCreate != nil {
		s.AutoCreate = *c.Pool.AutoCreate
	}
	if c.Pool.PersistAcrossUnload != nil {
		s.PersistAcrossUnload = *c.Pool.PersistAcrossUnload
	}

	return s
}

// GetAudioConfig returns the audio configuration with defaults applied.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio

	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if cfg.BufferMs < 5 || cfg.BufferMs > 1000 {
		cfg.BufferMs = 50
	}

	return cfg
}
