// Package config provides configuration for chessvar.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=moves, 2=running commentary

	Output *OutputConfig
	Server *ServerConfig
	Replay *ReplayConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer

	logWriter *lockedWriter
	logger    *log.Logger
}

// lockedWriter serialises writes from every logger sharing LogFile.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return len(p), nil
	}
	return l.w.Write(p)
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	cfg := &Config{
		Verbosity:  1,
		Output:     NewOutputConfig(),
		Server:     NewServerConfig(),
		Replay:     NewReplayConfig(),
		OutputFile: os.Stdout,
	}
	cfg.SetLog(os.Stderr)
	return cfg
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the diagnostics writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
	c.logWriter = &lockedWriter{w: w}
	c.logger = log.New(c.logWriter, "chessvar: ", log.LstdFlags)
}

// LogWriter returns LogFile guarded by the lock the Logger uses. Anything
// else writing diagnostics, such as an access log, must go through it.
func (c *Config) LogWriter() io.Writer {
	if c.logWriter == nil {
		c.SetLog(c.LogFile)
	}
	return c.logWriter
}

// Logger returns the logger writing to LogFile.
func (c *Config) Logger() *log.Logger {
	if c.logger == nil {
		c.SetLog(c.LogFile)
	}
	return c.logger
}

// Logf logs when the configured verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.Verbosity < level || c.LogFile == nil {
		return
	}
	c.Logger().Printf(format, args...)
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity %d out of range 0-2: %w", c.Verbosity, errInvalid)
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Replay.Validate()
}
