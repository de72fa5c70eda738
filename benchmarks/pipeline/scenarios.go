// ABOUTME: Benchmark scenarios and synthetic deck generation
// ABOUTME: Builds deterministic Beamer decks of configurable size and shape

package pipeline

import (
	"fmt"
	"strings"
)

// Scenario describes one benchmark configuration.
type Scenario struct {
	ID           string
	Name         string
	Description  string
	Frames       int
	SectionEvery int
	BatchSize    int
	MaxTokens    int
	Concurrency  int
	SkipPlain    bool
}

// GetAllScenarios returns every benchmark scenario in execution order.
func GetAllScenarios() []Scenario {
	return []Scenario{
		{
			ID:           "small",
			Name:         "Small deck, sequential",
			Description:  "20 frames translated one batch at a time.",
			Frames:       20,
			SectionEvery: 5,
			BatchSize:    3,
			MaxTokens:    20000,
			Concurrency:  1,
		},
		{
			ID:           "lecture",
			Name:         "Lecture deck, concurrent",
			Description:  "120 frames across 4 workers.",
			Frames:       120,
			SectionEvery: 8,
			BatchSize:    3,
			MaxTokens:    20000,
			Concurrency:  4,
		},
		{
			ID:           "filtered",
			Name:         "Lecture deck with plain-markup filter",
			Description:  "120 frames with graphics-only frames left untranslated.",
			Frames:       120,
			SectionEvery: 8,
			BatchSize:    3,
			MaxTokens:    20000,
			Concurrency:  4,
			SkipPlain:    true,
		},
		{
			ID:           "wide",
			Name:         "Large deck, wide batches",
			Description:  "400 frames with bigger batches and 8 workers.",
			Frames:       400,
			SectionEvery: 10,
			BatchSize:    8,
			MaxTokens:    40000,
			Concurrency:  8,
		},
	}
}

// GetScenario returns the scenario with the given ID.
func GetScenario(id string) (Scenario, bool) {
	for _, s := range GetAllScenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// BuildDeck returns a synthetic Beamer deck with the requested number of
// frames and a section heading every sectionEvery frames. Frame bodies cycle
// through prose, math, and graphics-only shapes so the deck exercises the
// parser, the batcher, and the plain-markup filter.
func BuildDeck(frames, sectionEvery int) string {
	var sb strings.Builder
	sb.WriteString("\\documentclass{beamer}\n")
	sb.WriteString("\\usetheme{Madrid}\n")
	sb.WriteString("\\title{Statistical Learning}\n")
	sb.WriteString("\n\\begin{document}\n")

	section := 0
	for i := 0; i < frames; i++ {
		if sectionEvery > 0 && i%sectionEvery == 0 {
			section++
			fmt.Fprintf(&sb, "\n\\section{Part %d}\n", section)
		}
		switch i % 3 {
		case 0:
			fmt.Fprintf(&sb, "\n\\begin{frame}{Topic %d}\n", i)
			sb.WriteString("\\begin{itemize}\n")
			sb.WriteString("\\item The estimator trades bias against variance.\n")
			sb.WriteString("\\item Regularization shrinks the weights toward zero.\n")
			sb.WriteString("\\item Cross validation picks the penalty strength.\n")
			sb.WriteString("\\end{itemize}\n")
			sb.WriteString("\\end{frame}\n")
		case 1:
			fmt.Fprintf(&sb, "\n\\begin{frame}{Derivation %d}\n", i)
			sb.WriteString("The closed form solution minimizes the squared loss.\n")
			sb.WriteString("\\begin{align}\n")
			sb.WriteString("\\hat{w} &= (X^T X + \\lambda I)^{-1} X^T y\n")
			sb.WriteString("\\end{align}\n")
			sb.WriteString("\\end{frame}\n")
		case 2:
			sb.WriteString("\n\\begin{frame}\n")
			sb.WriteString("\\centering\n")
			fmt.Fprintf(&sb, "\\includegraphics[width=0.8\\textwidth]{figs/diagram%d.pdf}\n", i)
			fmt.Fprintf(&sb, "\\label{fig:d%d}\n", i)
			sb.WriteString("\\end{frame}\n")
		}
	}

	sb.WriteString("\n\\end{document}\n")
	return sb.String()
}
