// ABOUTME: Validation and recovery engine for batched translation
// ABOUTME: Validates tagged responses, splits failing batches, bounds retries
package translate

import (
	"context"
	"fmt"
	"log"

	"github.com/hwei/beamertrans/internal/models"
)

// Translator is the transformation client the engine drives. *llm.Client
// implements it; tests substitute a local fake.
type Translator interface {
	Translate(ctx context.Context, payload string, expected int) (string, error)
}

const (
	// DefaultMaxDepth bounds how deep a failing batch may split.
	DefaultMaxDepth = 8
	// DefaultUnitRetries is how many extra attempts a single-unit batch
	// gets before its failure is terminal.
	DefaultUnitRetries = 2
)

// UnitError is a terminal recovery failure: a unit range that stayed
// invalid after its full retry and split budget.
type UnitError struct {
	// From and To are the document indexes of the failed range, inclusive.
	From, To int
	// BatchIndex, BatchFrom and BatchTo identify the top-level batch the
	// range belongs to.
	BatchIndex int
	BatchFrom  int
	BatchTo    int
	// Depth is the recursion level at which recovery gave up.
	Depth int
	// Err is the last mismatch or adapter failure.
	Err error
}

func (e *UnitError) Error() string {
	span := fmt.Sprintf("units %d-%d", e.From, e.To)
	if e.From == e.To {
		span = fmt.Sprintf("unit %d", e.From)
	}
	return fmt.Sprintf("translate: %s of batch %d (units %d-%d) failed at depth %d: %v",
		span, e.BatchIndex, e.BatchFrom, e.BatchTo, e.Depth, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }

// EngineConfig tunes the recovery limits.
type EngineConfig struct {
	// MaxDepth bounds split recursion; non-positive means the default.
	MaxDepth int
	// UnitRetries is the extra-attempt budget for single-unit batches;
	// zero means the default, negative disables singleton retries.
	UnitRetries int
	// BestEffort keeps the original text of a terminally failed range and
	// continues, instead of aborting the batch.
	BestEffort bool
}

// Engine turns batches of content units into validated translations.
type Engine struct {
	client      Translator
	maxDepth    int
	unitRetries int
	bestEffort  bool
}

// NewEngine returns an engine with the default recovery limits.
func NewEngine(client Translator) *Engine {
	return NewEngineWithConfig(client, &EngineConfig{})
}

// NewEngineWithConfig returns an engine with custom recovery limits.
func NewEngineWithConfig(client Translator, cfg *EngineConfig) *Engine {
	e := &Engine{
		client:      client,
		maxDepth:    cfg.MaxDepth,
		unitRetries: cfg.UnitRetries,
		bestEffort:  cfg.BestEffort,
	}
	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}
	if e.unitRetries == 0 {
		e.unitRetries = DefaultUnitRetries
	} else if e.unitRetries < 0 {
		e.unitRetries = 0
	}
	return e
}

// TranslateBatch runs one top-level batch through the translate, validate
// and recover cycle, assigning each unit's translation exactly once. The
// returned outcome summarizes what it took; the error, when non-nil, is a
// context error or a terminal *UnitError.
func (e *Engine) TranslateBatch(ctx context.Context, b models.Batch) (models.Outcome, error) {
	out := models.Outcome{BatchIndex: b.Index, Expected: b.Len()}
	if b.Len() == 0 {
		return out, nil
	}
	err := e.translateRange(ctx, b, b.Units, 0, &out)
	return out, err
}

// translateRange translates a contiguous sub-range of batch b. A failed
// multi-unit range splits at the midpoint and both halves recurse with
// depth+1; a failed single unit retries within its budget. Cancellation
// aborts immediately and is never treated as a mismatch.
func (e *Engine) translateRange(ctx context.Context, b models.Batch, units []*models.ContentUnit, depth int, out *models.Outcome) error {
	if depth > out.Depth {
		out.Depth = depth
	}

	attempts := 1
	if len(units) == 1 {
		attempts += e.unitRetries
	}

	var lastErr error
	for try := 0; try < attempts; try++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		out.Calls++
		resp, err := e.client.Translate(ctx, BuildPayload(units), len(units))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			got, verr := ExtractUnits(resp)
			if depth == 0 && try == 0 {
				out.Actual = len(got)
			}
			if verr == nil {
				verr = validateSet(got, units)
			}
			if verr == nil {
				for _, u := range units {
					if serr := u.SetTranslated(got[u.Index]); serr != nil {
						return serr
					}
				}
				return nil
			}
			lastErr = verr
		}
		out.Recovered = true
	}

	if len(units) > 1 && depth < e.maxDepth {
		// ⌈n/2⌉ left, ⌊n/2⌋ right.
		mid := (len(units) + 1) / 2
		if err := e.translateRange(ctx, b, units[:mid], depth+1, out); err != nil {
			return err
		}
		return e.translateRange(ctx, b, units[mid:], depth+1, out)
	}

	uerr := &UnitError{
		From:       units[0].Index,
		To:         units[len(units)-1].Index,
		BatchIndex: b.Index,
		BatchFrom:  b.From(),
		BatchTo:    b.To(),
		Depth:      depth,
		Err:        lastErr,
	}
	if e.bestEffort {
		log.Printf("[Engine] Keeping original text: %v", uerr)
		for _, u := range units {
			out.Failed = append(out.Failed, u.Index)
		}
		return nil
	}
	return uerr
}

// validateSet checks that the extracted pairs cover the requested units
// exactly: same count, every expected index present. Map keys are unique,
// so equal counts rule out unexpected indexes.
func validateSet(got map[int]string, units []*models.ContentUnit) error {
	if len(got) != len(units) {
		return fmt.Errorf("content unit count mismatch: expected %d, got %d", len(units), len(got))
	}
	for _, u := range units {
		if _, ok := got[u.Index]; !ok {
			return fmt.Errorf("unit %d missing from response", u.Index)
		}
	}
	return nil
}
