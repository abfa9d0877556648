// chessvar-server serves chessvar games over HTTP with a websocket move
// feed per game.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chessvar-go/internal/config"
	"github.com/lgbarn/chessvar-go/internal/game"
	"github.com/lgbarn/chessvar-go/internal/server"
)

var (
	addr    = flag.String("addr", ":8080", "Listen address")
	logFile = flag.String("l", "", "Append diagnostics and the access log to this file")
	verbose = flag.Bool("v", false, "Running commentary")
	quiet   = flag.Bool("s", false, "Silent mode (no access log)")
)

func main() {
	flag.Parse()

	cfg := config.NewConfigBuilder().WithAddr(*addr).Build()
	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	if *logFile != "" {
		file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		defer file.Close()
		cfg.SetLog(file)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, game.NewManager())
	if err := srv.ListenAndServe(ctx); err != nil {
		cfg.Logger().Printf("server: %v", err)
		stop()
		os.Exit(1)
	}
}
