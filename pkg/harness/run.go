package harness

import (
	"context"
	"log/slog"
	"time"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/engine"
	"github.com/skelforge/skelforge/pkg/language"
	"github.com/skelforge/skelforge/pkg/queries"
	"github.com/skelforge/skelforge/pkg/tsparser"
)

// Adapters maps every supported language to the adapter that handles it,
// the routing table Run consults when dispatching a discovered file to the
// right Language Adapter (C6).
type Adapters map[language.Language]adapter.Adapter

// Result is what one harness Run produces: the merged engine.State ready
// for pkg/analyzer, plus a summary of what happened along the way.
type Result struct {
	State    *engine.State
	Files    []string
	Skipped  []FileOutcome
	Elapsed  time.Duration
	PoolSize int
}

// Options configures one Run.
type Options struct {
	RootDir    string
	ScanConfig ScanConfig
	NumWorkers int // <=0 uses poolsize.Optimal()
	Logger     *slog.Logger
	// Progress, if non-nil, is called once per completed file (success or
	// skip) so a CLI can drive a progress bar without the harness importing
	// any rendering library itself.
	Progress func(done, total int)
}

// Run discovers files under opts.RootDir, dispatches each to the adapter
// registered for its detected language, and merges every successful
// analysis into a fresh engine.State, implementing the Project Harness
// (C8) data flow of spec §2: Source Buffer -> Grammar Handle -> Extraction
// Engine -> global maps.
//
// Files whose language has no registered adapter are silently skipped (not
// an error — they're simply out of scope, e.g. a .json or .md file matched
// by an overly broad include glob). Per-file analysis failures are
// collected in Result.Skipped and never abort the run, per §7.
func Run(ctx context.Context, eng *engine.Engine, adapters Adapters, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()

	files, err := DiscoverFiles(opts.RootDir, opts.ScanConfig)
	if err != nil {
		return nil, err
	}

	state := engine.NewState()
	pool := NewWorkerPool(ctx, opts.NumWorkers, eng, logger)
	pool.Start()

	var jobs []FileJob
	for _, f := range files {
		lang := language.Detect(f)
		ad, ok := adapters[lang]
		if !ok || ad == nil {
			continue
		}
		jobs = append(jobs, FileJob{Path: f, Adapter: ad})
	}

	go func() {
		for _, job := range jobs {
			if err := pool.Submit(job); err != nil {
				break
			}
		}
		pool.FinishSubmitting()
		pool.Wait()
	}()

	var skipped []FileOutcome
	done := 0
	for outcome := range pool.Results() {
		done++
		if outcome.Err != nil {
			logger.Warn("skipping file", "file", outcome.Path, "error", outcome.Err)
			skipped = append(skipped, outcome)
		} else {
			state.Merge(outcome.Analysis)
		}
		if opts.Progress != nil {
			opts.Progress(done, len(jobs))
		}
	}

	return &Result{
		State:    state,
		Files:    files,
		Skipped:  skipped,
		Elapsed:  time.Since(start),
		PoolSize: pool.StatsSnapshot().NumWorkers,
	}, ctx.Err()
}

// DefaultAdapters builds the routing table for the three adapters this
// module ships from the instances the caller passes in. A nil entry is
// treated by Run as "no registered adapter".
func DefaultAdapters(tsGo, tsJS, tsTS adapter.Adapter) Adapters {
	return Adapters{
		language.TypeScript: tsTS,
		language.JavaScript: tsJS,
		language.Go:         tsGo,
	}
}

// NewEngineStack wires a tsparser.Manager, queries.Manager and engine.Engine
// together, the construction the CLI and any other embedder needs before
// building adapters and calling Run.
func NewEngineStack(logger *slog.Logger) (*tsparser.Manager, *queries.Manager, *engine.Engine) {
	parsers := tsparser.NewManager(logger)
	qmanager := queries.NewManager(parsers, logger)
	eng := engine.New(parsers, qmanager, logger)
	return parsers, qmanager, eng
}
