package config

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/lgbarn/chessvar-go/internal/errors"
	"github.com/lgbarn/chessvar-go/internal/testutil"
)

// TestOutputConfig_Defaults verifies OutputConfig has sensible defaults
func TestOutputConfig_Defaults(t *testing.T) {
	cfg := NewOutputConfig()

	if cfg.Format != Text {
		t.Errorf("Format = %v, want %v", cfg.Format, Text)
	}
	if !cfg.ShowBoard {
		t.Error("ShowBoard should be true by default")
	}
	if cfg.ShowLegal {
		t.Error("ShowLegal should be false by default")
	}
	if !cfg.Labels {
		t.Error("Labels should be true by default")
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	testutil.AssertEqual(t, cfg.Verbosity, 1)
	testutil.AssertEqual(t, cfg.Server.Addr, ":8080")
	testutil.AssertEqual(t, cfg.Replay.Workers, 0)
	testutil.AssertTrue(t, cfg.Replay.StopOnWin)
	if cfg.OutputFile != os.Stdout {
		t.Error("OutputFile should default to stdout")
	}
	if cfg.LogFile != os.Stderr {
		t.Error("LogFile should default to stderr")
	}
	testutil.AssertNoError(t, cfg.Validate())
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"text", Text, false},
		{"", Text, false},
		{"json", JSON, false},
		{"JSON", JSON, false},
		{"pgn", Text, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, got.String(), strings.ToLower(tt.want.String()))
		})
	}
}

// TestConfig_Validate verifies config validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"silent", func(c *Config) { c.Verbosity = 0 }, false},
		{"verbosity too high", func(c *Config) { c.Verbosity = 3 }, true},
		{"negative verbosity", func(c *Config) { c.Verbosity = -1 }, true},
		{"unknown format", func(c *Config) { c.Output.Format = OutputFormat(7) }, true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"negative timeout", func(c *Config) { c.Server.ShutdownTimeout = -1 }, true},
		{"negative workers", func(c *Config) { c.Replay.Workers = -2 }, true},
		{"negative buffer", func(c *Config) { c.Replay.BufferSize = -1 }, true},
		{"many workers", func(c *Config) { c.Replay.Workers = 64 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
			}
		})
	}
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	buf := &bytes.Buffer{}

	cfg.SetOutput(buf)

	if cfg.OutputFile != buf {
		t.Error("SetOutput did not set OutputFile")
	}
}

func TestConfig_Logf(t *testing.T) {
	tests := []struct {
		verbosity int
		level     int
		want      bool
	}{
		{0, 1, false},
		{1, 1, true},
		{1, 2, false},
		{2, 1, true},
		{2, 2, true},
	}

	for _, tt := range tests {
		buf := &bytes.Buffer{}
		cfg := NewConfigBuilder().WithLog(buf).WithVerbosity(tt.verbosity).Build()
		cfg.Logf(tt.level, "moved %s", "E2E4")

		got := strings.Contains(buf.String(), "moved E2E4")
		if got != tt.want {
			t.Errorf("verbosity %d level %d: logged = %v, want %v (%q)",
				tt.verbosity, tt.level, got, tt.want, buf.String())
		}
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := NewConfigBuilder().
		WithOutputFormat(JSON).
		WithBoard(false).
		WithLegalHints(true).
		WithAddr("127.0.0.1:9000").
		WithWorkers(4).
		WithOutput(out).
		WithVerbosity(2).
		Build()

	if cfg.Output.Format != JSON {
		t.Errorf("Format = %v, want JSON", cfg.Output.Format)
	}
	if cfg.Output.ShowBoard {
		t.Error("ShowBoard should be false")
	}
	if !cfg.Output.ShowLegal {
		t.Error("ShowLegal should be true")
	}
	testutil.AssertEqual(t, cfg.Server.Addr, "127.0.0.1:9000")
	testutil.AssertEqual(t, cfg.Replay.Workers, 4)
	testutil.AssertEqual(t, cfg.Verbosity, 2)
	if cfg.OutputFile != out {
		t.Error("WithOutput did not set OutputFile")
	}
}

func TestConfig_LogWriterSharesLock(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := NewConfigBuilder().WithLog(buf).WithVerbosity(1).Build()

	// Logf and raw LogWriter writes interleave on one unsynchronised buffer.
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.Logf(1, "move")
		}()
		go func() {
			defer wg.Done()
			_, _ = cfg.LogWriter().Write([]byte("access\n"))
		}()
	}
	wg.Wait()

	out := buf.String()
	testutil.AssertEqual(t, strings.Count(out, "chessvar: "), n)
	testutil.AssertEqual(t, strings.Count(out, "access\n"), n)
	testutil.AssertEqual(t, strings.Count(out, "\n"), 2*n)
}

func TestConfig_LogWriterNil(t *testing.T) {
	cfg := NewConfigBuilder().WithLog(nil).Build()
	n, err := cfg.LogWriter().Write([]byte("dropped"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, len("dropped"))
}
