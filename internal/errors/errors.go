// Package errors provides sentinel errors and error types for chessvar.
// It defines the move-rejection conditions and structured error types that
// preserve context while allowing inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidSquare indicates a square label that is malformed, of the
	// wrong length, or outside the 8x8 board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrDegenerateMove indicates a move whose origin equals its destination.
	ErrDegenerateMove = errors.New("origin and destination are the same square")

	// ErrNoPieceAtOrigin indicates that no piece of the mover's side occupies
	// the origin square.
	ErrNoPieceAtOrigin = errors.New("no piece at origin")

	// ErrIllegalDestination indicates a destination outside the legal set of
	// the moving piece.
	ErrIllegalDestination = errors.New("illegal destination")

	// ErrGameAlreadyOver indicates a move attempted after a winner exists.
	ErrGameAlreadyOver = errors.New("game already over")

	// ErrGameNotFound indicates an unknown game identifier.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrParseFailure indicates a malformed move script or move input.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps a move rejection with the move that caused it.
// It implements the error interface and supports unwrapping via
// errors.Is() and errors.As().
type MoveError struct {
	Err   error  // The underlying error
	From  string // Origin label as supplied
	To    string // Destination label as supplied
	Side  string // Side to move (if known)
	Piece string // Piece identified at origin (if any)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Side != "" {
		parts = append(parts, e.Side)
	}
	if e.Piece != "" {
		parts = append(parts, e.Piece)
	}
	parts = append(parts, fmt.Sprintf("%q to %q", e.From, e.To))

	context := strings.Join(parts, " ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// GameError wraps errors with game context, including the game name or
// identifier, ply position, and move information.
type GameError struct {
	Err      error  // The underlying error
	Game     string // Game identifier or script name
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.Game != "" {
		parts = append(parts, fmt.Sprintf("game %s", e.Game))
	}
	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with file location context.
// It's used for move scripts and console input.
type ParseError struct {
	Err    error  // The underlying error
	File   string // Source file name
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
	Got    string // What was found
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" {
		loc := e.File
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, loc)
	} else if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}

	if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
