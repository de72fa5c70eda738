// ABOUTME: Structural parser for LaTeX Beamer decks
// ABOUTME: Splits source into preamble, translatable units (frames/sections) and tail
package latex

import (
	"fmt"
	"os"
	"strings"

	"github.com/hwei/beamertrans/internal/models"
)

const (
	beginDocument = `\begin{document}`
	endDocument   = `\end{document}`
	beginFrame    = `\begin{frame}`
	endFrame      = `\end{frame}`
)

// ParseError is a structural error in the input document. Line is the
// 1-based source line the error refers to, or 0 when the error concerns the
// document as a whole.
type ParseError struct {
	Line int
	Msg  string

	// offset is the body-relative byte offset of the construct, set by the
	// scanners and resolved to Line once the caller knows the body's
	// position in the input.
	offset int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("latex: line %d: %s", e.Line, e.Msg)
	}
	return "latex: " + e.Msg
}

// Parse splits LaTeX Beamer source into a Document: preamble, an ordered
// body of passthrough text and translatable units, and tail.
//
// Frame environments are matched with a depth counter on the frame tag, so
// a frame nested inside another frame closes the block only when the depth
// returns to zero. Section and subsection declarations are recognized
// outside any open frame, with brace-balanced title arguments. Whole-line
// comments are masked before scanning so commented-out markers never open
// or close a unit.
func Parse(text string) (*models.Document, error) {
	bi := strings.Index(text, beginDocument)
	if bi < 0 {
		return nil, &ParseError{Msg: `missing \begin{document}`}
	}
	bodyOff := bi + len(beginDocument)
	ei := strings.Index(text[bodyOff:], endDocument)
	if ei < 0 {
		return nil, &ParseError{Line: lineOf(text, bi), Msg: `missing \end{document}`}
	}
	ei += bodyOff

	doc := &models.Document{
		Preamble: text[:bi],
		Begin:    text[bi:bodyOff],
		End:      text[ei : ei+len(endDocument)],
		Tail:     text[ei+len(endDocument):],
	}
	body := text[bodyOff:ei]
	masked := maskWholeLineComments(body)

	cursor := 0
	for {
		start, end, kind, err := nextUnit(masked, cursor)
		if err != nil {
			if perr, ok := err.(*ParseError); ok {
				perr.Line = lineOf(text, bodyOff+perr.offset)
			}
			return nil, err
		}
		if start < 0 {
			break
		}
		if cursor < start {
			doc.Parts = append(doc.Parts, models.BodyPart{Text: body[cursor:start]})
		}
		raw := body[start:end]
		unit := &models.ContentUnit{
			Kind:     kind,
			Index:    len(doc.Units),
			Line:     lineOf(text, bodyOff+start),
			Raw:      raw,
			Stripped: StripComments(raw),
		}
		doc.Units = append(doc.Units, unit)
		doc.Parts = append(doc.Parts, models.BodyPart{Unit: unit})
		cursor = end
	}
	if cursor < len(body) {
		doc.Parts = append(doc.Parts, models.BodyPart{Text: body[cursor:]})
	}

	if doc.CountKind(models.UnitFrame) == 0 {
		return nil, &ParseError{Msg: `no \begin{frame} blocks found`}
	}
	return doc, nil
}

// ParseFile reads path and parses its contents.
func ParseFile(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("latex: reading input: %w", err)
	}
	doc, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// nextUnit locates the next translatable unit in the masked body at or after
// cursor. It returns start = -1 when no unit remains. Offsets are relative
// to the masked text; errors carry a body-relative offset for re-anchoring.
func nextUnit(masked string, cursor int) (start, end int, kind models.UnitKind, err error) {
	fi := indexFrom(masked, cursor, beginFrame)
	si, sk := nextSectionCmd(masked, cursor)

	switch {
	case fi < 0 && si < 0:
		return -1, 0, 0, nil
	case fi >= 0 && (si < 0 || fi < si):
		end, err = matchFrameEnd(masked, fi)
		if err != nil {
			return 0, 0, 0, err
		}
		return fi, end, models.UnitFrame, nil
	default:
		end, err = matchSectionEnd(masked, si)
		if err != nil {
			return 0, 0, 0, err
		}
		return si, end, sk, nil
	}
}

// matchFrameEnd returns the offset just past the \end{frame} that closes the
// frame opened at open. Nested \begin{frame} markers increment a depth
// counter; the block closes only when the counter returns to zero.
func matchFrameEnd(masked string, open int) (int, error) {
	pos := open + len(beginFrame)
	depth := 1
	for depth > 0 {
		nb := indexFrom(masked, pos, beginFrame)
		ne := indexFrom(masked, pos, endFrame)
		if ne < 0 {
			return 0, &ParseError{Msg: `unterminated \begin{frame}`, offset: open}
		}
		if nb >= 0 && nb < ne {
			depth++
			pos = nb + len(beginFrame)
			continue
		}
		depth--
		pos = ne + len(endFrame)
	}
	return pos, nil
}

// nextSectionCmd finds the earliest \section or \subsection declaration at
// or after cursor: the command name, an optional star, optional whitespace,
// then an opening brace. A command without its brace is not a declaration
// and is skipped.
func nextSectionCmd(masked string, cursor int) (int, models.UnitKind) {
	for pos := cursor; ; {
		sub := indexFrom(masked, pos, `\subsection`)
		sec := indexFrom(masked, pos, `\section`)

		var at, nameLen int
		var kind models.UnitKind
		switch {
		case sub < 0 && sec < 0:
			return -1, 0
		case sub >= 0 && (sec < 0 || sub < sec):
			at, nameLen, kind = sub, len(`\subsection`), models.UnitSubsection
		default:
			at, nameLen, kind = sec, len(`\section`), models.UnitSection
		}

		// Scan past the optional star and whitespace to the title brace.
		p := at + nameLen
		if p < len(masked) && masked[p] == '*' {
			p++
		}
		for p < len(masked) && isSpace(masked[p]) {
			p++
		}
		if p < len(masked) && masked[p] == '{' {
			return at, kind
		}
		// Not a declaration (e.g. \sectionmark); keep scanning.
		pos = at + nameLen
	}
}

// matchSectionEnd returns the offset just past the brace that closes the
// declaration's title argument, counting nested braces and skipping escaped
// ones.
func matchSectionEnd(masked string, open int) (int, error) {
	p := indexFrom(masked, open, "{")
	depth := 0
	for i := p; i < len(masked); i++ {
		switch masked[i] {
		case '{':
			if !isEscaped(masked, i) {
				depth++
			}
		case '}':
			if !isEscaped(masked, i) {
				depth--
				if depth == 0 {
					return i + 1, nil
				}
			}
		}
	}
	return 0, &ParseError{Msg: "unterminated title argument", offset: open}
}

// maskWholeLineComments blanks every line whose first non-whitespace byte is
// the comment marker, preserving byte positions and line endings, so the
// unit scan never sees commented-out markers. The returned text is the same
// length as the input.
func maskWholeLineComments(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, line := range splitAfterLines(text) {
		content := strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(strings.TrimLeft(content, " \t"), "%") {
			sb.WriteString(strings.Repeat(" ", len(content)))
			sb.WriteString(line[len(content):])
			continue
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// StripComments removes whole-line comments from text: a line whose first
// non-whitespace byte is % is dropped entirely. Inline (trailing) comment
// markers are preserved verbatim, as is an escaped \% at line start.
func StripComments(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "%") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func indexFrom(s string, from int, sub string) int {
	if from >= len(s) {
		return -1
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}

// isEscaped reports whether the byte at i is preceded by an odd run of
// backslashes.
func isEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// lineOf returns the 1-based line number of byte offset off in text.
func lineOf(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	return 1 + strings.Count(text[:off], "\n")
}

// splitAfterLines splits text into lines that keep their trailing newline.
func splitAfterLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
