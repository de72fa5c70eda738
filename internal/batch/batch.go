// ABOUTME: Greedy batcher grouping content units for transmission
// ABOUTME: Bounds each batch by unit count and estimated token size
package batch

import (
	"github.com/hwei/beamertrans/internal/models"
)

const (
	// DefaultMaxUnits bounds how many units travel in one request.
	DefaultMaxUnits = 3
	// DefaultMaxTokens bounds the estimated size of one request.
	DefaultMaxTokens = 20000

	charsPerToken = 4
)

// EstimateTokens approximates the token cost of text as one token per four
// bytes, rounded up. Empty text costs nothing.
func EstimateTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// Pack partitions units into ordered batches. A batch closes once it holds
// maxUnits units or once the next unit would push its estimated tokens past
// maxTokens. A single unit larger than maxTokens still ships, alone in its
// own batch. Non-positive limits fall back to the defaults.
//
// Every unit lands in exactly one batch and concatenating the batches in
// index order yields the input sequence unchanged.
func Pack(units []*models.ContentUnit, maxUnits, maxTokens int) []models.Batch {
	if maxUnits <= 0 {
		maxUnits = DefaultMaxUnits
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var batches []models.Batch
	var current []*models.ContentUnit
	tokens := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		batches = append(batches, models.Batch{
			Index:  len(batches),
			Units:  current,
			Tokens: tokens,
		})
		current = nil
		tokens = 0
	}

	for _, u := range units {
		cost := EstimateTokens(u.Stripped)
		if len(current) > 0 && (len(current) >= maxUnits || tokens+cost > maxTokens) {
			flush()
		}
		current = append(current, u)
		tokens += cost
	}
	flush()
	return batches
}
