// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to translate and inspect Beamer decks via stdio
package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwei/beamertrans/internal/config"
	"github.com/hwei/beamertrans/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs beamertrans as an MCP (Model Context Protocol) server, enabling
LLM agents to translate and inspect Beamer decks via stdio.

Exposes two tools: translate_deck runs the full pipeline and writes
the translated file; inspect_deck reports deck structure and the batch
plan without any API call.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  beamertrans mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "beamertrans": {
  #       "command": "beamertrans",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - translate_deck will fail until it is")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"Beamer Deck Translator",
		"0.1.0",
	)

	mcp.RegisterTools(server, cfg)

	if !quiet {
		log.Println("beamertrans MCP server starting on stdio...")
	}
	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
