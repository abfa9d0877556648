// chessvar plays the piece-extinction chess variant at the console and
// replays move scripts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lgbarn/chessvar-go/internal/config"
	"github.com/lgbarn/chessvar-go/internal/engine"
	"github.com/lgbarn/chessvar-go/internal/game"
	"github.com/lgbarn/chessvar-go/internal/output"
	"github.com/lgbarn/chessvar-go/internal/replay"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessvar version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	if *replayMode {
		os.Exit(runReplay(cfg, flag.Args()))
	}

	g, err := newGame(*startFEN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := NewConsole(cfg, g, os.Stdin, cfg.OutputFile).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newGame starts from the standard position or from fen.
func newGame(fen string) (*game.Game, error) {
	if fen == "" {
		return game.New(), nil
	}
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return game.NewFromBoard(board), nil
}

// runReplay replays every script and writes one report per script. It
// returns the process exit code: 1 if any script failed.
func runReplay(cfg *config.Config, paths []string) int {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -replay needs at least one script file")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := replay.NewRunner(cfg).RunFiles(ctx, paths)
	return writeReports(cfg, results)
}

// writeReports writes the replay results in the configured format.
func writeReports(cfg *config.Config, results []replay.Result) int {
	w := output.NewWriter(cfg.OutputFile, cfg)
	code := 0
	for _, res := range results {
		if res.Err != nil {
			code = 1
		}
		if err := w.WriteGame(output.Report{Name: res.Name, Game: res.Game, Err: res.Err, DuplicateOf: res.DuplicateOf}); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return 1
		}
	}
	if err := w.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return 1
	}
	cfg.Logf(1, "replayed %d scripts", len(results))
	return code
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.SetLog(file)
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.SetLog(file)
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessvar [options]\n")
	fmt.Fprintf(os.Stderr, "       chessvar -replay [options] script-files...\n\n")
	fmt.Fprintf(os.Stderr, "A chess variant: the first side to lose every piece of one kind loses.\n")
	fmt.Fprintf(os.Stderr, "Moves are entered as origin and destination squares, e.g. e2e4.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMove scripts hold one move per token; '#' starts a comment.\n")
}
