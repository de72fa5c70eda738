// ABOUTME: Tests for the terminology glossary
// ABOUTME: Covers builtin table, file merge, parse errors and prompt rendering
package glossary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltin(t *testing.T) {
	g := Builtin()
	if g.Len() != 30 {
		t.Errorf("Builtin().Len() = %d, want 30", g.Len())
	}
	block := g.PromptBlock()
	if !strings.Contains(block, "machine learning = 机器学习") {
		t.Errorf("PromptBlock() missing builtin entry: %q", block)
	}
	if !strings.Contains(block, "transformer = Transformer") {
		t.Errorf("PromptBlock() missing keep-as-is entry: %q", block)
	}
}

func TestLoadMergesFileOverBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "terms.txt")
	text := `# project terms
perceptron = 感知机

epoch = 迭代周期
`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.Len() != 31 {
		t.Errorf("Len() = %d, want 31 (30 builtin + 1 new)", g.Len())
	}
	block := g.PromptBlock()
	if !strings.Contains(block, "perceptron = 感知机") {
		t.Errorf("PromptBlock() missing file entry: %q", block)
	}
	// The file entry overrides the builtin rendering of the same term.
	if !strings.Contains(block, "epoch = 迭代周期") || strings.Contains(block, "epoch = 轮次") {
		t.Errorf("PromptBlock() did not apply file override: %q", block)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	g, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if g.Len() != 30 {
		t.Errorf("Len() = %d, want builtin table", g.Len())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		text string
	}{
		{"missing separator", "machine learning 机器学习\n"},
		{"empty term", "= 机器学习\n"},
		{"empty translation", "machine learning =\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "-")+".txt")
			if err := os.WriteFile(path, []byte(tt.text), 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() error = nil, want parse error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.txt")); err == nil {
			t.Error("Load() error = nil for missing file, want error")
		}
	})
}

func TestPromptBlockSortedAndWrapped(t *testing.T) {
	g := &Glossary{terms: map[string]string{"b term": "乙", "a term": "甲"}}
	block := g.PromptBlock()

	if !strings.HasPrefix(block, "<glossary>\n") || !strings.HasSuffix(block, "</glossary>") {
		t.Errorf("PromptBlock() = %q, want <glossary> container", block)
	}
	if strings.Index(block, "a term") > strings.Index(block, "b term") {
		t.Errorf("PromptBlock() entries not sorted: %q", block)
	}

	empty := &Glossary{terms: map[string]string{}}
	if got := empty.PromptBlock(); got != "" {
		t.Errorf("empty PromptBlock() = %q, want empty string", got)
	}
}
