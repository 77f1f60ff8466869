package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/pixdeck/internal/logging"
	"github.com/yaklabco/pixdeck/pkg/deck"
)

// Exporter writes one deck's images below outDir.
type Exporter interface {
	Export(ctx context.Context, d *deck.Deck, outDir string) ([]string, error)
}

// Runner loads and exports decks on a worker pool.
type Runner struct {
	Parser   deck.Parser
	Exporter Exporter
	Logger   *log.Logger
}

// New creates a Runner.
func New(parser deck.Parser, exporter Exporter) *Runner {
	return &Runner{Parser: parser, Exporter: exporter, Logger: logging.Default()}
}

// Run discovers decks under opts.Paths and exports them concurrently. A
// failing deck is recorded in its outcome and does not stop the others.
// Outcomes are ordered by path.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if r.Logger != nil {
		ctx = logging.WithLogger(ctx, r.Logger)
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Decks: make([]DeckOutcome, 0, len(files))}
	result.Stats.DecksDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan DeckOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.OutDir)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]DeckOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- DeckOutcome, outDir string) {
	logger := logging.FromContext(ctx)

	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.export(ctx, path, outDir)
		if outcome.Error != nil {
			logger.Error("export failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
		} else {
			logger.Info("deck exported",
				logging.FieldPath, path,
				logging.FieldPages, outcome.Pages)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) export(ctx context.Context, path, outDir string) DeckOutcome {
	outcome := DeckOutcome{Path: path}

	d, err := deck.Load(ctx, path, r.Parser)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Pages = d.Len()

	outcome.Files, outcome.Error = r.Exporter.Export(ctx, d, outDir)
	return outcome
}
