package replay

import (
	"context"
	"runtime"

	"github.com/lgbarn/chessvar-go/internal/config"
	"github.com/lgbarn/chessvar-go/internal/errors"
	"github.com/lgbarn/chessvar-go/internal/game"
	"github.com/lgbarn/chessvar-go/internal/hashing"
	"github.com/lgbarn/chessvar-go/internal/worker"
)

// Result summarises one replayed script.
type Result struct {
	Name   string
	Plies  int
	Status game.Status
	FEN    string
	Game   *game.Game
	Err    error

	// DuplicateOf names an earlier script that ended in the same position.
	DuplicateOf string
}

// Runner replays scripts using the replay and logging settings of a Config.
type Runner struct {
	cfg *config.Config
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Run plays a script on a fresh game. It stops at the first rejected move
// and, when StopOnWin is set, as soon as a side has won.
func (r *Runner) Run(s Script) Result {
	g := game.New()
	var runErr error

	for i, m := range s.Moves {
		if r.cfg.Replay.StopOnWin && g.Status() != game.Unfinished {
			break
		}
		outcome, err := g.MakeMove(m.From, m.To)
		if err != nil {
			r.logRejection(s.Name, g, m, err)
			runErr = &errors.GameError{Err: err, Game: s.Name, PlyNum: i + 1, MoveText: m.String()}
			break
		}
		r.cfg.Logf(1, "%s: %d. %s", s.Name, i+1, outcome)
	}

	return Result{
		Name:   s.Name,
		Plies:  len(g.History()),
		Status: g.Status(),
		FEN:    g.FEN(),
		Game:   g,
		Err:    runErr,
	}
}

func (r *Runner) logRejection(name string, g *game.Game, m game.Move, err error) {
	r.cfg.Logf(1, "%s: %s rejected: %v", name, m, err)
	if r.cfg.Verbosity < 2 {
		return
	}
	if legal, lerr := g.Legal(m.From); lerr == nil {
		r.cfg.Logf(2, "%s: legal from %s: %v", name, m.From, legal)
	}
}

// RunAll replays scripts in parallel and returns the results in script
// order. Scripts not started before ctx is cancelled have no result.
func (r *Runner) RunAll(ctx context.Context, scripts []Script) []Result {
	items := make([]worker.WorkItem, len(scripts))
	for i, s := range scripts {
		items[i] = worker.WorkItem{Index: i, Name: s.Name, Moves: s.Moves}
	}
	processed := r.play(ctx, items)

	results := make([]Result, len(processed))
	for i, p := range processed {
		results[i] = resultOf(p)
	}
	r.markDuplicates(results)
	return results
}

// RunFiles loads and replays script files. A file that cannot be read or
// parsed yields a Result carrying that error and an unplayed game.
func (r *Runner) RunFiles(ctx context.Context, paths []string) []Result {
	byIndex := make(map[int]Result, len(paths))
	items := make([]worker.WorkItem, 0, len(paths))
	for i, path := range paths {
		s, err := LoadScript(path)
		if err != nil {
			g := game.New()
			byIndex[i] = Result{Name: path, Status: g.Status(), FEN: g.FEN(), Game: g, Err: err}
			continue
		}
		items = append(items, worker.WorkItem{Index: i, Name: s.Name, Moves: s.Moves})
	}

	for _, p := range r.play(ctx, items) {
		byIndex[p.Index] = resultOf(p)
	}

	results := make([]Result, 0, len(byIndex))
	for i := range paths {
		if res, ok := byIndex[i]; ok {
			results = append(results, res)
		}
	}
	r.markDuplicates(results)
	return results
}

// markDuplicates sets DuplicateOf on every result whose final position was
// already reached by an earlier script. Failed scripts are not compared.
func (r *Runner) markDuplicates(results []Result) {
	if !r.cfg.Replay.Duplicates {
		return
	}
	detector := hashing.NewDuplicateDetector(r.cfg.Replay.ExactDuplicates)
	for i := range results {
		res := &results[i]
		if res.Err != nil || res.Game == nil {
			continue
		}
		if orig, dup := detector.CheckAndAdd(res.Name, res.Game.Snapshot(), res.Plies); dup {
			res.DuplicateOf = orig
			r.cfg.Logf(1, "%s: duplicate of %s", res.Name, orig)
		}
	}
	r.cfg.Logf(2, "%d unique, %d duplicate", detector.UniqueCount(), detector.DuplicateCount())
}

// play runs items through a worker pool sized from the replay settings.
func (r *Runner) play(ctx context.Context, items []worker.WorkItem) []worker.ProcessResult {
	workers := r.cfg.Replay.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	buffer := r.cfg.Replay.BufferSize
	if buffer == 0 {
		buffer = 2 * workers
	}

	pool := worker.NewPool(func(item worker.WorkItem) worker.ProcessResult {
		res := r.Run(Script{Name: item.Name, Moves: item.Moves})
		return worker.ProcessResult{Index: item.Index, Name: item.Name, Game: res.Game, Err: res.Err}
	}, worker.WithWorkers(workers), worker.WithBufferSize(buffer))

	return pool.Run(ctx, items)
}

func resultOf(p worker.ProcessResult) Result {
	return Result{
		Name:   p.Name,
		Plies:  len(p.Game.History()),
		Status: p.Game.Status(),
		FEN:    p.Game.FEN(),
		Game:   p.Game,
		Err:    p.Err,
	}
}
