// ABOUTME: Main entry point for the beamertrans MCP server with stdio transport
// ABOUTME: Loads configuration and serves the deck translation tools
package main

import (
	"log"
	"os"

	"github.com/hwei/beamertrans/internal/config"
	"github.com/hwei/beamertrans/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	// Verify we have required API keys
	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - translate_deck will fail until it is")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Beamer Deck Translator",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, cfg)

	// Start server with stdio transport
	log.Println("beamertrans MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
