// ABOUTME: CLI command translating a Beamer deck end to end
// ABOUTME: Parses, batches, translates and writes the -zh output artifact
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hwei/beamertrans/internal/batch"
	"github.com/hwei/beamertrans/internal/config"
	"github.com/hwei/beamertrans/internal/glossary"
	"github.com/hwei/beamertrans/internal/latex"
	"github.com/hwei/beamertrans/internal/llm"
	"github.com/hwei/beamertrans/internal/models"
	"github.com/hwei/beamertrans/internal/translate"
)

var (
	translateOutput      string
	translateModel       string
	translateBaseURL     string
	translateConfig      string
	translateTemplate    string
	translateGlossary    string
	translateBatchSize   int
	translateMaxTokens   int
	translateConcurrency int
	translateBestEffort  bool
	translateSkipPlain   bool
	translateDryRun      bool
)

// NewTranslateCmd creates the translate command
func NewTranslateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate INPUT",
		Short: "Translate a Beamer deck to Chinese",
		Long: `Translate a LaTeX Beamer deck from English to Chinese.

Parses the deck into frames and section titles, translates them in
size-bounded batches through the configured OpenAI-compatible model,
and writes the result next to the input with a -zh suffix.

Examples:
  beamertrans translate slides.tex
  beamertrans translate slides.tex -o out/slides.zh.tex --model gpt-4o
  beamertrans translate slides.tex --batch-size 5 --concurrency 4
  beamertrans translate slides.tex --skip-plain-markup --best-effort
  beamertrans translate slides.tex --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runTranslate,
	}

	cmd.Flags().StringVarP(&translateOutput, "output", "o", "", "Output file path (default: INPUT with -zh before the extension)")
	cmd.Flags().StringVar(&translateModel, "model", "", "Model name (default: configured model)")
	cmd.Flags().StringVar(&translateBaseURL, "base-url", "", "OpenAI-compatible API base URL")
	cmd.Flags().StringVar(&translateConfig, "config", "", "YAML config file")
	cmd.Flags().StringVar(&translateTemplate, "template", "", "Template .tex file replacing the output preamble and trailer")
	cmd.Flags().StringVar(&translateGlossary, "glossary", "", "Glossary file (key = value per line) merged over the builtin terms")
	cmd.Flags().IntVar(&translateBatchSize, "batch-size", 0, "Maximum units per API request (default: configured)")
	cmd.Flags().IntVar(&translateMaxTokens, "max-tokens", 0, "Soft token limit per batch (default: configured)")
	cmd.Flags().IntVar(&translateConcurrency, "concurrency", 0, "Concurrent batch workers (default: configured)")
	cmd.Flags().BoolVar(&translateBestEffort, "best-effort", false, "Keep original text for units that fail instead of aborting")
	cmd.Flags().BoolVar(&translateSkipPlain, "skip-plain-markup", false, "Leave units without translatable prose untouched")
	cmd.Flags().BoolVar(&translateDryRun, "dry-run", false, "Parse and batch without calling the API or writing output")

	return cmd
}

func runTranslate(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.LoadWithFile(translateConfig)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	applyTranslateFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	inputPath := args[0]
	outputPath := translateOutput
	if outputPath == "" {
		outputPath = latex.DefaultOutputPath(inputPath)
	}

	doc, err := latex.ParseFile(inputPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Parsed %s: %d frames, %d section titles\n",
			inputPath,
			doc.CountKind(models.UnitFrame),
			doc.CountKind(models.UnitSection)+doc.CountKind(models.UnitSubsection))
	}

	var skip func(*models.ContentUnit) bool
	if translateSkipPlain {
		skip = translate.SkipPlainMarkup
	}

	if translateDryRun {
		return runDryRun(cmd, doc, cfg, skip)
	}

	var tpl *latex.Template
	if cfg.TemplatePath != "" {
		tpl, err = latex.LoadTemplate(cfg.TemplatePath)
		if err != nil {
			return fmt.Errorf("loading template: %w", err)
		}
	}

	gloss, err := glossary.Load(cfg.GlossaryPath)
	if err != nil {
		return fmt.Errorf("loading glossary: %w", err)
	}
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Glossary: %d terms\n", gloss.Len())
	}

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:        cfg.OpenAIKey,
		Model:         cfg.Model,
		BaseURL:       cfg.BaseURL,
		Timeout:       cfg.Timeout,
		MaxRetries:    cfg.MaxRetries,
		RetryDelay:    cfg.RetryDelay,
		GlossaryBlock: gloss.PromptBlock(),
	})
	if err != nil {
		return fmt.Errorf("initializing translator: %w", err)
	}

	rep, err := translate.Run(cmd.Context(), doc, translate.Options{
		Client:      client,
		BatchSize:   cfg.BatchSize,
		MaxTokens:   cfg.MaxTokens,
		Concurrency: cfg.Concurrency,
		BestEffort:  translateBestEffort,
		Skip:        skip,
	})
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	if err := latex.WriteOutput(outputPath, latex.Reassemble(doc, tpl)); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Translated %d/%d units in %d batches (%d API calls, model %s)\n",
			rep.Translated(), rep.Units, rep.Batches, rep.Calls, client.Model())
		if len(rep.Skipped) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d units had no translatable prose and kept their original text\n",
				len(rep.Skipped))
		}
		if len(rep.Failed) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d units failed and kept their original text: %v\n",
				len(rep.Failed), rep.Failed)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Output written to %s\n", outputPath)
	}
	return nil
}

// applyTranslateFlags overlays set flags on the loaded configuration.
func applyTranslateFlags(cfg *config.Config) {
	if translateModel != "" {
		cfg.Model = translateModel
	}
	if translateBaseURL != "" {
		cfg.BaseURL = translateBaseURL
	}
	if translateTemplate != "" {
		cfg.TemplatePath = translateTemplate
	}
	if translateGlossary != "" {
		cfg.GlossaryPath = translateGlossary
	}
	if translateBatchSize > 0 {
		cfg.BatchSize = translateBatchSize
	}
	if translateMaxTokens > 0 {
		cfg.MaxTokens = translateMaxTokens
	}
	if translateConcurrency > 0 {
		cfg.Concurrency = translateConcurrency
	}
}

// runDryRun prints the batch plan a run would use and makes no API calls.
func runDryRun(cmd *cobra.Command, doc *models.Document, cfg *config.Config, skip func(*models.ContentUnit) bool) error {
	units := make([]*models.ContentUnit, 0, len(doc.Units))
	skipped := 0
	for _, u := range doc.Units {
		if skip != nil && skip(u) {
			skipped++
			continue
		}
		units = append(units, u)
	}
	batches := batch.Pack(units, cfg.BatchSize, cfg.MaxTokens)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BATCH\tUNITS\tRANGE\tTOKENS\n")
	fmt.Fprintf(w, "-----\t-----\t-----\t------\n")
	for _, b := range batches {
		fmt.Fprintf(w, "%d\t%d\t%d-%d\t%d\n", b.Index, b.Len(), b.From(), b.To(), b.Tokens)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d units in %d batch(es)", len(units), len(batches))
		if skipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ", %d skipped as plain markup", skipped)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Dry run complete. No API calls made.\n")
	}
	return nil
}
