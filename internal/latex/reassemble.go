// ABOUTME: Reassembles a parsed document back into LaTeX source
// ABOUTME: Emits translated unit text in place, everything else byte for byte
package latex

import (
	"strings"

	"github.com/hwei/beamertrans/internal/models"
)

// Reassemble renders the document back to LaTeX source. Body parts are
// emitted in parse order: passthrough text verbatim, units through their
// Output (translated text when set, original otherwise). With a nil
// template the result of reassembling an untranslated document is
// byte-identical to the parsed input; a non-nil template substitutes its
// preamble and tail.
func Reassemble(doc *models.Document, tpl *Template) string {
	preamble, tail := doc.Preamble, doc.Tail
	if tpl != nil {
		preamble, tail = tpl.Preamble, tpl.Tail
	}

	var sb strings.Builder
	sb.Grow(len(preamble) + len(doc.Begin) + len(doc.End) + len(tail))
	sb.WriteString(preamble)
	sb.WriteString(doc.Begin)
	for _, part := range doc.Parts {
		if part.Unit != nil {
			sb.WriteString(part.Unit.Output())
			continue
		}
		sb.WriteString(part.Text)
	}
	sb.WriteString(doc.End)
	sb.WriteString(tail)
	return sb.String()
}
