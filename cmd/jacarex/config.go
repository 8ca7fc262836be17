package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Hanaasagi/jacarex/internal"
	"github.com/adrg/xdg"
)

// noConfig disables loading the config file
const noConfig = "NONE"

type Config struct {
	Core   CoreConfig  `toml:"core"`
	Colors ColorConfig `toml:"colors"`
}

type CoreConfig struct {
	HistoryFile    string `toml:"history_file"`
	Prompt         string `toml:"prompt"`
	Engine         string `toml:"engine"`
	SizeLimit      int    `toml:"size_limit"`
	MatchTimeoutMs int    `toml:"match_timeout_ms"`
	StripANSI      bool   `toml:"strip_ansi"`
}

type ColorConfig struct {
	Match   string `toml:"match"`
	Miss    string `toml:"miss"`
	Command string `toml:"command"`
}

func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

func NewDefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			HistoryFile:    filepath.Join(appDir, "history.txt"),
			Prompt:         internal.DefaultPrompt,
			Engine:         internal.EngineRE2,
			SizeLimit:      internal.DefaultSizeLimit,
			MatchTimeoutMs: int(internal.DefaultMatchTimeout / time.Millisecond),
			StripANSI:      false,
		},
		Colors: ColorConfig{
			Match:   "green",
			Miss:    "red",
			Command: "blue",
		},
	}
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path == noConfig {
		return config, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	return config, nil
}

// Styles resolves the configured color names
func (c *Config) Styles() (internal.Styles, error) {
	var styles internal.Styles
	var err error

	if styles.Match, err = internal.ParseColor(c.Colors.Match); err != nil {
		return styles, fmt.Errorf("colors.match: %w", err)
	}
	if styles.Miss, err = internal.ParseColor(c.Colors.Miss); err != nil {
		return styles, fmt.Errorf("colors.miss: %w", err)
	}
	if styles.Command, err = internal.ParseColor(c.Colors.Command); err != nil {
		return styles, fmt.Errorf("colors.command: %w", err)
	}
	return styles, nil
}

// NewEngine builds the configured pattern engine
func (c *Config) NewEngine() (internal.Engine, error) {
	return internal.NewEngine(c.Core.Engine, internal.EngineOptions{
		SizeLimit:    c.Core.SizeLimit,
		MatchTimeout: time.Duration(c.Core.MatchTimeoutMs) * time.Millisecond,
	})
}
