// ABOUTME: Pipeline runner orchestrating batching, workers and reporting
// ABOUTME: Packs units, drives the engine across workers, aggregates a run report
package translate

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hwei/beamertrans/internal/batch"
	"github.com/hwei/beamertrans/internal/models"
)

// Options configures one pipeline run.
type Options struct {
	Client Translator
	// BatchSize and MaxTokens bound each batch; non-positive values mean
	// the batcher defaults.
	BatchSize int
	MaxTokens int
	// Concurrency is the worker count; non-positive means sequential.
	Concurrency int
	// MaxDepth and UnitRetries tune the recovery engine. Zero values mean
	// the engine defaults; a negative UnitRetries disables singleton
	// retries.
	MaxDepth    int
	UnitRetries int
	// BestEffort keeps original text on terminal unit failures instead of
	// aborting the run.
	BestEffort bool
	// Skip marks units to leave untranslated; they keep their original
	// text, are excluded from batching, and are reported as skipped.
	Skip func(*models.ContentUnit) bool
}

// Report summarizes one pipeline run.
type Report struct {
	RunID   string
	Units   int   // all units in the document
	Skipped []int // unit indexes excluded by the filter
	Batches int
	Calls   int   // adapter invocations across the run
	// Failed lists unit indexes kept as original text by best-effort mode,
	// in ascending order.
	Failed   []int
	Outcomes []models.Outcome
}

// Translated returns how many units carry a translation after the run.
func (r *Report) Translated() int {
	return r.Units - len(r.Skipped) - len(r.Failed)
}

// Run translates every unit of doc that passes the filter and returns the
// run report. Batches own disjoint unit ranges, so workers never write the
// same unit; the first terminal error cancels the remaining batches and
// aborts the run.
func Run(ctx context.Context, doc *models.Document, opts Options) (*Report, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("translate: client is required")
	}

	rep := &Report{RunID: uuid.NewString(), Units: len(doc.Units)}

	units := make([]*models.ContentUnit, 0, len(doc.Units))
	for _, u := range doc.Units {
		if opts.Skip != nil && opts.Skip(u) {
			rep.Skipped = append(rep.Skipped, u.Index)
			continue
		}
		units = append(units, u)
	}

	batches := batch.Pack(units, opts.BatchSize, opts.MaxTokens)
	rep.Batches = len(batches)
	rep.Outcomes = make([]models.Outcome, len(batches))
	if len(batches) == 0 {
		return rep, nil
	}

	engine := NewEngineWithConfig(opts.Client, &EngineConfig{
		MaxDepth:    opts.MaxDepth,
		UnitRetries: opts.UnitRetries,
		BestEffort:  opts.BestEffort,
	})

	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(batches) {
		workers = len(batches)
	}
	log.Printf("[Pipeline] Run %s: %d units in %d batches, %d workers",
		rep.RunID, len(units), len(batches), workers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan models.Batch)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				out, err := engine.TranslateBatch(runCtx, b)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
						cancel()
					}
					mu.Unlock()
					return
				}
				mu.Lock()
				rep.Outcomes[b.Index] = out
				rep.Calls += out.Calls
				rep.Failed = append(rep.Failed, out.Failed...)
				mu.Unlock()
				if out.Recovered {
					log.Printf("[Pipeline] Batch %d recovered (depth %d, %d calls)",
						b.Index, out.Depth, out.Calls)
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, b := range batches {
			select {
			case jobs <- b:
			case <-runCtx.Done():
				return
			}
		}
	}()
	wg.Wait()

	if firstErr == nil {
		// The producer may have stopped on cancellation before any worker
		// saw an error.
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		return nil, firstErr
	}
	sort.Ints(rep.Failed)
	return rep, nil
}
