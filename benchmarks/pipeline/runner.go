// ABOUTME: Benchmark runner for the end-to-end translation pipeline
// ABOUTME: Times parse, translate, and reassemble stages against synthetic decks

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hwei/beamertrans/internal/latex"
	"github.com/hwei/beamertrans/internal/models"
	"github.com/hwei/beamertrans/internal/translate"
)

// Result holds the outcome of one benchmark scenario.
type Result struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Frames       int     `json:"frames"`
	Units        int     `json:"units"`
	Skipped      int     `json:"skipped"`
	Translated   int     `json:"translated"`
	Batches      int     `json:"batches"`
	Calls        int     `json:"calls"`
	ParseMS      float64 `json:"parse_ms"`
	TranslateMS  float64 `json:"translate_ms"`
	ReassembleMS float64 `json:"reassemble_ms"`
	RoundTrip    bool    `json:"round_trip"`
	Status       string  `json:"status"`
}

// BenchmarkRunner executes scenarios against the in-process pipeline. The
// translator is a local echo client, so runs never touch the network.
type BenchmarkRunner struct {
	verbose bool
}

// NewBenchmarkRunner creates a runner.
func NewBenchmarkRunner(verbose bool) *BenchmarkRunner {
	return &BenchmarkRunner{verbose: verbose}
}

// echoClient answers every request with well-formed tagged Chinese stubs.
type echoClient struct{}

func (echoClient) Translate(ctx context.Context, payload string, expected int) (string, error) {
	units, err := translate.ExtractUnits(payload)
	if err != nil {
		return "", err
	}
	indexes := make([]int, 0, len(units))
	for idx := range units {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	var sb strings.Builder
	for _, idx := range indexes {
		fmt.Fprintf(&sb, "%s\n翻译块 %d\n%s\n", translate.BeginTag(idx), idx, translate.EndTag(idx))
	}
	return sb.String(), nil
}

// RunScenario builds the scenario's deck and drives it through the full
// pipeline, timing each stage.
func (r *BenchmarkRunner) RunScenario(s Scenario) (Result, error) {
	if r.verbose {
		fmt.Printf("\nRUNNING: %s\n", s.Name)
		fmt.Printf("  %s\n", s.Description)
	}

	text := BuildDeck(s.Frames, s.SectionEvery)

	start := time.Now()
	doc, err := latex.Parse(text)
	if err != nil {
		return Result{}, fmt.Errorf("parsing generated deck: %w", err)
	}
	parseMS := float64(time.Since(start).Microseconds()) / 1000.0

	roundTrip := latex.Reassemble(doc, nil) == text

	var skip func(*models.ContentUnit) bool
	if s.SkipPlain {
		skip = translate.SkipPlainMarkup
	}

	start = time.Now()
	rep, err := translate.Run(context.Background(), doc, translate.Options{
		Client:      echoClient{},
		BatchSize:   s.BatchSize,
		MaxTokens:   s.MaxTokens,
		Concurrency: s.Concurrency,
		Skip:        skip,
	})
	if err != nil {
		return Result{}, fmt.Errorf("running pipeline: %w", err)
	}
	translateMS := float64(time.Since(start).Microseconds()) / 1000.0

	start = time.Now()
	output := latex.Reassemble(doc, nil)
	reassembleMS := float64(time.Since(start).Microseconds()) / 1000.0

	result := Result{
		ID:           s.ID,
		Name:         s.Name,
		Frames:       s.Frames,
		Units:        len(doc.Units),
		Skipped:      len(rep.Skipped),
		Translated:   rep.Translated(),
		Batches:      rep.Batches,
		Calls:        rep.Calls,
		ParseMS:      parseMS,
		TranslateMS:  translateMS,
		ReassembleMS: reassembleMS,
		RoundTrip:    roundTrip,
		Status:       "PASS",
	}
	if !roundTrip || len(rep.Failed) > 0 || output == "" || !translatedUnitsFilled(doc, rep) {
		result.Status = "FAIL"
	}

	if r.verbose {
		fmt.Printf("  Units: %d (skipped %d), batches: %d, calls: %d\n",
			result.Units, result.Skipped, result.Batches, result.Calls)
		fmt.Printf("  Parse: %.2fms, translate: %.2fms, reassemble: %.2fms\n",
			result.ParseMS, result.TranslateMS, result.ReassembleMS)
		fmt.Printf("  Status: %s\n", result.Status)
	}

	return result, nil
}

// translatedUnitsFilled reports whether every unit outside the skip set
// carries translated text.
func translatedUnitsFilled(doc *models.Document, rep *translate.Report) bool {
	skipped := make(map[int]bool, len(rep.Skipped))
	for _, idx := range rep.Skipped {
		skipped[idx] = true
	}
	for _, u := range doc.Units {
		if skipped[u.Index] {
			continue
		}
		if u.Translated == "" {
			return false
		}
	}
	return true
}

// RunAll executes every scenario and returns the results.
func (r *BenchmarkRunner) RunAll() ([]Result, error) {
	scenarios := GetAllScenarios()
	results := make([]Result, 0, len(scenarios))

	for _, s := range scenarios {
		result, err := r.RunScenario(s)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// ExportResults writes results to a JSON file with a summary header.
func (r *BenchmarkRunner) ExportResults(results []Result, outputPath string) error {
	passed := 0
	failed := 0
	for _, res := range results {
		if res.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	summary := map[string]interface{}{
		"timestamp":       time.Now().Format(time.RFC3339),
		"total_scenarios": len(results),
		"passed":          passed,
		"failed":          failed,
		"results":         results,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	fmt.Printf("✓ Results exported to: %s\n", outputPath)
	return nil
}
