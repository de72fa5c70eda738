// ABOUTME: MCP tool definitions and registration for the beamertrans server
// ABOUTME: Defines JSON schemas for the translate_deck and inspect_deck tools
package mcp

import (
	"github.com/hwei/beamertrans/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, cfg *config.Config) *Handlers {
	handlers := &Handlers{cfg: cfg}

	// 1. translate_deck - Translate a Beamer deck and write the output file
	server.AddTool(mcp.Tool{
		Name:        "translate_deck",
		Description: "Translate a LaTeX Beamer deck from English to Chinese. Parses the deck into frames and section titles, translates them through the configured OpenAI-compatible model, and writes the translated .tex file.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"input_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the input .tex file",
				},
				"output_path": map[string]interface{}{
					"type":        "string",
					"description": "Output file path (default: input path with -zh inserted before the extension)",
				},
				"model": map[string]interface{}{
					"type":        "string",
					"description": "Model name override (default: configured model)",
				},
				"batch_size": map[string]interface{}{
					"type":        "number",
					"description": "Maximum units per translation request (default: configured batch size)",
				},
				"max_tokens": map[string]interface{}{
					"type":        "number",
					"description": "Soft token limit per batch (default: configured limit)",
				},
				"dry_run": map[string]interface{}{
					"type":        "boolean",
					"description": "Parse and batch without calling the translation API or writing output",
				},
			},
			Required: []string{"input_path"},
		},
	}, handlers.TranslateDeck)

	// 2. inspect_deck - Report deck structure and batch plan without API calls
	server.AddTool(mcp.Tool{
		Name:        "inspect_deck",
		Description: "Inspect a LaTeX Beamer deck without calling the translation API. Returns the content units found (frames, sections, subsections) with line numbers and token estimates, plus the batch layout a translation run would use.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"input_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the .tex file to inspect",
				},
			},
			Required: []string{"input_path"},
		},
	}, handlers.InspectDeck)

	return handlers
}
