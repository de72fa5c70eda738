// ABOUTME: Tests for output path derivation and artifact writing
// ABOUTME: Verifies -zh suffix placement and parent directory creation
package latex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain tex file", "slides.tex", "slides-zh.tex"},
		{"with directory", "decks/lecture01.tex", "decks/lecture01-zh.tex"},
		{"absolute path", "/home/u/deck.tex", "/home/u/deck-zh.tex"},
		{"multiple dots", "lecture.notes.tex", "lecture.notes-zh.tex"},
		{"no extension", "slides", "slides-zh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultOutputPath(tt.input)
			if got != tt.want {
				t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "nested", "deck-zh.tex")

	const text = "\\documentclass{beamer}\n\\begin{document}\n\\end{document}\n"
	if err := WriteOutput(path, text); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != text {
		t.Errorf("written content = %q, want %q", string(data), text)
	}
}

func TestWriteOutputOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck-zh.tex")

	if err := WriteOutput(path, "first"); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	if err := WriteOutput(path, "second"); err != nil {
		t.Fatalf("WriteOutput() second write error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content after overwrite = %q, want %q", string(data), "second")
	}
}
