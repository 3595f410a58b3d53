// Package config handles tik configuration using Viper.
//
// Configuration sources (in priority order):
//  1. Environment variables (TIK_*)
//  2. Config file (~/.config/tik/config.toml)
//  3. Built-in defaults
//
// User entries merge over the defaults key by key, so defining one
// preset does not hide the built-in ones.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/pomitik/tik/internal/paths"
)

// Built-in presets and the built-in pomodoro session.
const (
	DefaultPomodoro  = "25m"
	DefaultBreak     = "5m"
	DefaultLongBreak = "15m"
	DefaultRounds    = 4
)

// Session describes one configured work/break cycle. Work, Break, and
// LongBreak may name a preset or hold a duration literal.
type Session struct {
	Work      string `mapstructure:"work" toml:"work" json:"work"`
	Break     string `mapstructure:"break" toml:"break" json:"break"`
	LongBreak string `mapstructure:"long_break" toml:"long_break" json:"long_break"`
	Rounds    int    `mapstructure:"rounds" toml:"rounds" json:"rounds"`
}

// Config holds the tik configuration.
type Config struct {
	v *viper.Viper
}

// Load reads configuration from all sources.
func Load() *Config {
	v := viper.New()

	// Set defaults
	v.SetDefault("presets.pomodoro", DefaultPomodoro)
	v.SetDefault("presets.break", DefaultBreak)
	v.SetDefault("presets.long-break", DefaultLongBreak)
	v.SetDefault("sessions.pomodoro", map[string]any{
		"work":       "pomodoro",
		"break":      "break",
		"long_break": "long-break",
		"rounds":     DefaultRounds,
	})

	// Config file location
	if file, err := paths.ConfigFile(); err == nil {
		v.SetConfigFile(file)
		v.SetConfigType("toml")
	}

	// Environment variables
	v.SetEnvPrefix("TIK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found, but warn on other errors)
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				fmt.Fprintf(os.Stderr, "Warning: error reading config file: %v\n", err)
			}
		}
	}

	return &Config{v: v}
}

// Path returns the config file location.
func Path() (string, error) {
	return paths.ConfigFile()
}

// ResolvePreset looks up a preset's duration literal by name.
func (c *Config) ResolvePreset(name string) (string, bool) {
	key := "presets." + name
	if !c.v.IsSet(key) {
		return "", false
	}

	value := c.v.GetString(key)
	if value == "" {
		return "", false
	}

	return value, true
}

// ResolveSession looks up a configured session by name.
func (c *Config) ResolveSession(name string) (Session, bool) {
	key := "sessions." + name
	if !c.v.IsSet(key) {
		return Session{}, false
	}

	var s Session
	if err := c.v.UnmarshalKey(key, &s); err != nil {
		return Session{}, false
	}

	return s, true
}

// Presets returns every configured preset, built-ins included.
func (c *Config) Presets() map[string]string {
	return c.v.GetStringMapString("presets")
}

// SessionNames returns the names of every configured session.
func (c *Config) SessionNames() []string {
	sessions := c.v.GetStringMap("sessions")

	names := make([]string, 0, len(sessions))
	for name := range sessions {
		names = append(names, name)
	}

	return names
}
