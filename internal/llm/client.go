// ABOUTME: OpenAI-compatible chat client for LaTeX translation requests
// ABOUTME: Builds the system instruction and retries transport failures with backoff
package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hwei/beamertrans/internal/util"
)

// DefaultModel is the default model for chat completions.
const DefaultModel = "gpt-4o-mini"

// systemInstruction is the fixed translation contract sent with every
// request. The unit protocol section matches the marker lines the payload
// builder emits.
const systemInstruction = `You are a professional LaTeX Beamer translator for machine learning course slides.

Your task is to translate English text into Chinese while preserving LaTeX structure exactly.

STRICT RULES:
1. DO NOT modify any LaTeX commands, environments, or syntax.
2. DO NOT translate:
   * commands (e.g., \begin, \end, \item)
   * math expressions ($...$, \[...\], equation, align, etc.)
   * labels, refs, citations, URLs, file paths
3. ONLY translate human-readable English text.
4. Preserve:
   * frame boundaries
   * line breaks
   * indentation
5. DO NOT add or remove any content.
6. DO NOT output explanations or markdown.
7. Output must compile as valid LaTeX.
8. If uncertain, leave the text unchanged.

UNIT PROTOCOL:
Each unit in the user message sits between two marker lines:
% >>>>>> UNIT k >>>>>>
...unit text...
% <<<<<< UNIT k <<<<<<
Echo every marker line back verbatim on its own line, keeping the unit
numbers and their order, with the translated unit text between its pair.
Never renumber, merge, drop, or invent units.
If a <glossary> block is present, its term mappings take precedence.`

// ClientConfig holds configuration for the translation client.
type ClientConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// GlossaryBlock, when non-empty, is appended to the system instruction.
	GlossaryBlock string
}

// DefaultConfig returns the default client configuration for the given key.
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:     apiKey,
		Model:      DefaultModel,
		Timeout:    120 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// Client wraps an OpenAI-compatible chat API with retry logic.
type Client struct {
	api        *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	system     string
}

// NewClient creates a translation client. The API key is required; an empty
// model, timeout, or retry setting falls back to the defaults. BaseURL
// points the client at any OpenAI-compatible gateway.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	def := DefaultConfig(cfg.APIKey)
	c := &Client{
		api:        openai.NewClientWithConfig(oc),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		system:     BuildSystemPrompt(cfg.GlossaryBlock),
	}
	if c.model == "" {
		c.model = def.Model
	}
	if c.timeout <= 0 {
		c.timeout = def.Timeout
	}
	if c.maxRetries < 0 {
		c.maxRetries = def.MaxRetries
	}
	if c.retryDelay <= 0 {
		c.retryDelay = def.RetryDelay
	}
	return c, nil
}

// Model returns the model identifier requests are sent with.
func (c *Client) Model() string { return c.model }

// BuildSystemPrompt returns the system instruction, with the glossary block
// appended when one is provided.
func BuildSystemPrompt(glossaryBlock string) string {
	if glossaryBlock == "" {
		return systemInstruction
	}
	return systemInstruction + "\n\n" + glossaryBlock
}

// Translate sends one payload of expected tagged units as a chat completion
// and returns the response text untouched. Transport failures and empty
// completions are retried with backoff up to the retry limit; cancellation
// of ctx aborts immediately.
func (c *Client) Translate(ctx context.Context, payload string, expected int) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[Translator] Retrying batch of %d units (attempt %d/%d): %v",
				expected, attempt+1, c.maxRetries+1, lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(util.Backoff(c.retryDelay, attempt)):
			}
		}

		actx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateChatCompletion(actx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: c.system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: payload,
				},
			},
			Temperature: 0.3,
		})
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		content := resp.Choices[0].Message.Content
		if strings.TrimSpace(content) == "" {
			lastErr = fmt.Errorf("attempt %d: empty completion", attempt+1)
			continue
		}
		return content, nil
	}

	return "", fmt.Errorf("translation failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
