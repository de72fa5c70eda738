// ABOUTME: Output artifact helpers for translated decks
// ABOUTME: Derives the default -zh output path and writes files with parent dirs
package latex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputPath derives the output path for a translated deck by
// inserting "-zh" before the extension: slides.tex becomes slides-zh.tex.
// A path without extension gets the suffix appended.
func DefaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return stem + "-zh" + ext
}

// WriteOutput writes the reassembled document text to path, creating parent
// directories as needed.
func WriteOutput(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
