package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/lgbarn/chessvar-go/internal/config"
	"github.com/lgbarn/chessvar-go/internal/output"
	"github.com/lgbarn/chessvar-go/internal/replay"
	"github.com/lgbarn/chessvar-go/internal/testutil"
)

func replayScripts(t *testing.T, cfg *config.Config, names ...string) []replay.Result {
	t.Helper()
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join("..", "..", "internal", "replay", "testdata", n)
	}
	return replay.NewRunner(cfg).RunFiles(context.Background(), paths)
}

func TestWriteReportsText(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfigBuilder().WithVerbosity(0).WithBoard(false).WithOutput(&out).Build()

	code := writeReports(cfg, replayScripts(t, cfg, "scholars.txt", "queen_raid.txt"))
	testutil.AssertEqual(t, code, 0)
	testutil.AssertContains(t, out.String(), "scholars.txt: UNFINISHED after 6 plies")
	testutil.AssertContains(t, out.String(), "queen_raid.txt: WHITE_WON after 7 plies")
}

func TestWriteReportsJSONWithFailure(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfigBuilder().WithVerbosity(0).WithOutputFormat(config.JSON).WithOutput(&out).Build()

	code := writeReports(cfg, replayScripts(t, cfg, "illegal.txt", "scholars.txt"))
	testutil.AssertEqual(t, code, 1)

	var doc output.JSONOutput
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	testutil.AssertEqual(t, len(doc.Games), 2)
	testutil.AssertContains(t, doc.Games[0].Error, "illegal destination")
	testutil.AssertEqual(t, doc.Games[1].Error, "")
}

func TestRunReplayNeedsFiles(t *testing.T) {
	testutil.AssertEqual(t, runReplay(config.NewConfig(), nil), 2)
}
