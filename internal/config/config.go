// Package config provides configuration for silly-chess games and soak runs.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/silly-chess-go/internal/errors"
)

var errInvalid = errors.ErrInvalidConfig

// Verbosity levels for diagnostics written to LogFile.
const (
	Silent     = 0 // nothing
	GameLevel  = 1 // game starts, ends and rejected commands
	Commentary = 2 // running commentary on every move
)

// Config holds all program configuration.
type Config struct {
	Verbosity int

	// Sub-configurations
	Game   *GameConfig
	Soak   *SoakConfig
	Output *OutputConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  GameLevel,
		Game:       NewGameConfig(),
		Soak:       NewSoakConfig(),
		Output:     NewOutputConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer boards and events are rendered to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLogFile sets the writer diagnostics are sent to.
func (c *Config) SetLogFile(w io.Writer) {
	c.LogFile = w
}

// Logf writes a diagnostic line when the configured verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c == nil || c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if c.Verbosity < Silent || c.Verbosity > Commentary {
		return fmt.Errorf("verbosity %d outside %d..%d: %w",
			c.Verbosity, Silent, Commentary, errInvalid)
	}
	if c.Game != nil {
		if err := c.Game.Validate(); err != nil {
			return err
		}
	}
	if c.Soak != nil {
		if err := c.Soak.Validate(); err != nil {
			return err
		}
	}
	return nil
}
