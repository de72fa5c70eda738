// ABOUTME: MCP tool handler implementations for the beamertrans server
// ABOUTME: Wires deck parsing, batching and the translation pipeline to MCP results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hwei/beamertrans/internal/batch"
	"github.com/hwei/beamertrans/internal/config"
	"github.com/hwei/beamertrans/internal/glossary"
	"github.com/hwei/beamertrans/internal/latex"
	"github.com/hwei/beamertrans/internal/llm"
	"github.com/hwei/beamertrans/internal/models"
	"github.com/hwei/beamertrans/internal/translate"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	cfg *config.Config
	// client overrides the OpenAI-backed translator when set; tests inject
	// a fake through it.
	client translate.Translator
}

// TranslateDeck handles the translate_deck tool
func (h *Handlers) TranslateDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inputPath, err := request.RequireString("input_path")
	if err != nil {
		return mcp.NewToolResultError("input_path argument is required and must be a string"), nil
	}

	outputPath := request.GetString("output_path", "")
	if outputPath == "" {
		outputPath = latex.DefaultOutputPath(inputPath)
	}
	model := request.GetString("model", h.cfg.Model)
	batchSize := request.GetInt("batch_size", h.cfg.BatchSize)
	maxTokens := request.GetInt("max_tokens", h.cfg.MaxTokens)
	dryRun := request.GetBool("dry_run", false)

	doc, err := latex.ParseFile(inputPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parsing %s: %v", inputPath, err)), nil
	}

	if dryRun {
		batches := batch.Pack(doc.Units, batchSize, maxTokens)
		response := map[string]interface{}{
			"dry_run":    true,
			"input_path": inputPath,
			"units":      len(doc.Units),
			"batches":    len(batches),
			"plan":       batchPlan(batches),
		}

		responseJSON, err := json.Marshal(response)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(responseJSON)), nil
	}

	var tpl *latex.Template
	if h.cfg.TemplatePath != "" {
		tpl, err = latex.LoadTemplate(h.cfg.TemplatePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("loading template: %v", err)), nil
		}
	}

	client, err := h.translator(model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("initializing translator: %v", err)), nil
	}

	rep, err := translate.Run(ctx, doc, translate.Options{
		Client:      client,
		BatchSize:   batchSize,
		MaxTokens:   maxTokens,
		Concurrency: h.cfg.Concurrency,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("translation failed: %v", err)), nil
	}

	if err := latex.WriteOutput(outputPath, latex.Reassemble(doc, tpl)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("writing %s: %v", outputPath, err)), nil
	}

	response := map[string]interface{}{
		"run_id":      rep.RunID,
		"input_path":  inputPath,
		"output_path": outputPath,
		"model":       model,
		"units":       rep.Units,
		"skipped":     len(rep.Skipped),
		"translated":  rep.Translated(),
		"failed":      len(rep.Failed),
		"batches":     rep.Batches,
		"calls":       rep.Calls,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// InspectDeck handles the inspect_deck tool
func (h *Handlers) InspectDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inputPath, err := request.RequireString("input_path")
	if err != nil {
		return mcp.NewToolResultError("input_path argument is required and must be a string"), nil
	}

	doc, err := latex.ParseFile(inputPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parsing %s: %v", inputPath, err)), nil
	}

	units := make([]map[string]interface{}, 0, len(doc.Units))
	proseUnits := 0
	totalTokens := 0
	for _, u := range doc.Units {
		prose := !translate.SkipPlainMarkup(u)
		if prose {
			proseUnits++
		}
		tokens := batch.EstimateTokens(u.Stripped)
		totalTokens += tokens
		units = append(units, map[string]interface{}{
			"index":  u.Index,
			"kind":   u.Kind.String(),
			"line":   u.Line,
			"tokens": tokens,
			"prose":  prose,
		})
	}

	batches := batch.Pack(doc.Units, h.cfg.BatchSize, h.cfg.MaxTokens)

	response := map[string]interface{}{
		"input_path":       inputPath,
		"units":            units,
		"total_units":      len(doc.Units),
		"prose_units":      proseUnits,
		"estimated_tokens": totalTokens,
		"batches":          batchPlan(batches),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// translator returns the injected test client when present, otherwise builds
// the OpenAI-backed client from configuration.
func (h *Handlers) translator(model string) (translate.Translator, error) {
	if h.client != nil {
		return h.client, nil
	}

	gloss, err := glossary.Load(h.cfg.GlossaryPath)
	if err != nil {
		return nil, fmt.Errorf("loading glossary: %w", err)
	}

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:        h.cfg.OpenAIKey,
		Model:         model,
		BaseURL:       h.cfg.BaseURL,
		Timeout:       h.cfg.Timeout,
		MaxRetries:    h.cfg.MaxRetries,
		RetryDelay:    h.cfg.RetryDelay,
		GlossaryBlock: gloss.PromptBlock(),
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// batchPlan summarizes batches for tool responses
func batchPlan(batches []models.Batch) []map[string]interface{} {
	plan := make([]map[string]interface{}, 0, len(batches))
	for _, b := range batches {
		plan = append(plan, map[string]interface{}{
			"batch":  b.Index,
			"from":   b.From(),
			"to":     b.To(),
			"units":  b.Len(),
			"tokens": b.Tokens,
		})
	}
	return plan
}
