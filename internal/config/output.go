package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessvar-go/internal/errors"
)

var errInvalid = errors.ErrInvalidConfig

// OutputFormat selects how games and reports are written.
type OutputFormat int

const (
	Text OutputFormat = iota // ASCII board and plain summaries
	JSON                     // JSON documents
)

// String returns the flag spelling of the format.
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("OutputFormat(%d)", int(f))
	}
}

// ParseOutputFormat parses a flag value such as "text" or "JSON".
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return Text, fmt.Errorf("unknown output format %q: %w", s, errInvalid)
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format specifies text or JSON output
	Format OutputFormat

	// ShowBoard renders the board after every move
	ShowBoard bool

	// ShowLegal prints the legal destinations when a move is rejected
	ShowLegal bool

	// Labels controls whether ranks and files are printed around the board
	Labels bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:    Text,
		ShowBoard: true,
		Labels:    true,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.Format != Text && o.Format != JSON {
		return fmt.Errorf("output format %v: %w", o.Format, errInvalid)
	}
	return nil
}
