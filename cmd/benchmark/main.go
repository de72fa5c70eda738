// ABOUTME: Command-line benchmark runner for the translation pipeline
// ABOUTME: Executes scenario benchmarks and outputs JSON results

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hwei/beamertrans/benchmarks/pipeline"
)

func main() {
	// Command-line flags
	scenarioID := flag.String("scenario", "", "Run specific scenario (small, lecture, filtered, wide). If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	// Print header
	fmt.Println("========================================")
	fmt.Println("beamertrans Pipeline Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	// Scenarios run against a local echo translator, so no API key is needed.
	runner := pipeline.NewBenchmarkRunner(*verbose)

	// Run scenarios
	var results []pipeline.Result
	var err error

	if *scenarioID == "" {
		fmt.Println("Running all pipeline benchmark scenarios...")
		fmt.Println()

		results, err = runner.RunAll()
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		scenario, ok := pipeline.GetScenario(*scenarioID)
		if !ok {
			log.Fatalf("Unknown scenario ID: %s (valid options: small, lecture, filtered, wide)", *scenarioID)
		}

		fmt.Printf("Running scenario: %s\n\n", scenario.Name)

		result, err := runner.RunScenario(scenario)
		if err != nil {
			log.Fatalf("Scenario failed: %v", err)
		}

		results = []pipeline.Result{result}
	}

	// Print summary
	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	passed := 0
	failed := 0

	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.ID, result.Name)
		fmt.Printf("  Units: %d (skipped %d)\n", result.Units, result.Skipped)
		fmt.Printf("  Batches: %d, calls: %d\n", result.Batches, result.Calls)
		fmt.Printf("  Parse: %.2fms, translate: %.2fms, reassemble: %.2fms\n",
			result.ParseMS, result.TranslateMS, result.ReassembleMS)
		fmt.Printf("  Status: %s\n", result.Status)

		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total Scenarios: %d\n", len(results))
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Println("========================================")

	// Export results
	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	// Exit with error code if any scenarios failed
	if failed > 0 {
		os.Exit(1)
	}
}
