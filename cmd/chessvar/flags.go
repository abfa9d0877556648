// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessvar-go/internal/config"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	outputFormat = flag.String("W", "text", "Output format: text, json")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format (same as -W json)")
	noBoard      = flag.Bool("noboard", false, "Don't draw the board")
	noLabels     = flag.Bool("nolabels", false, "Don't label ranks and files")
	legalHints   = flag.Bool("legal", false, "Show legal destinations after a rejected move")

	// Game setup
	startFEN = flag.String("fen", "", "Start the interactive game from this FEN position")

	// Replay
	replayMode = flag.Bool("replay", false, "Replay the move scripts named on the command line")
	workers    = flag.Int("workers", 0, "Number of replay workers (0 = auto-detect based on CPU cores)")
	playOn     = flag.Bool("playon", false, "Keep replaying after a win and report the extra moves as rejected")
	duplicates = flag.Bool("D", false, "Flag scripts that end in the same position as an earlier one")
	exactDupes = flag.Bool("exact", false, "With -D, also require the same number of plies")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbose   = flag.Bool("v", false, "Running commentary, including legal moves on rejection")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no diagnostics)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	if err := applyOutputFormatFlags(cfg); err != nil {
		return err
	}
	cfg.Output.ShowBoard = !*noBoard
	cfg.Output.Labels = !*noLabels
	cfg.Output.ShowLegal = *legalHints

	cfg.Replay.Workers = *workers
	cfg.Replay.StopOnWin = !*playOn
	cfg.Replay.Duplicates = *duplicates
	cfg.Replay.ExactDuplicates = *exactDupes

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	return cfg.Validate()
}

// applyOutputFormatFlags configures the output format.
func applyOutputFormatFlags(cfg *config.Config) error {
	if *jsonOutput {
		cfg.Output.Format = config.JSON
		return nil
	}
	format, err := config.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}
	cfg.Output.Format = format
	return nil
}
