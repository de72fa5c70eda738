// ABOUTME: Core document model for parsed LaTeX Beamer decks
// ABOUTME: Defines ContentUnit, BodyPart and Document shared by all pipeline stages
package models

import "fmt"

// UnitKind identifies what kind of translatable element a ContentUnit is.
type UnitKind int

const (
	// UnitFrame is a \begin{frame}...\end{frame} environment block.
	UnitFrame UnitKind = iota
	// UnitSection is a \section{...} declaration.
	UnitSection
	// UnitSubsection is a \subsection{...} declaration.
	UnitSubsection
)

// String returns a human-readable kind name for logs and reports.
func (k UnitKind) String() string {
	switch k {
	case UnitFrame:
		return "frame"
	case UnitSection:
		return "section"
	case UnitSubsection:
		return "subsection"
	default:
		return fmt.Sprintf("unit(%d)", int(k))
	}
}

// ContentUnit is one atomic translatable element of a deck: a whole frame
// environment or a single section/subsection declaration.
//
// Index is the unit's zero-based position in document order. Indexes are
// contiguous, strictly increasing and never reused; every later stage keys
// on them. Kind, Line, Raw and Stripped are immutable after parsing.
type ContentUnit struct {
	Kind  UnitKind
	Index int
	// Line is the 1-based source line where the unit starts, for error
	// reporting.
	Line int
	// Raw is the exact original text of the unit, including any comments
	// it contains.
	Raw string
	// Stripped is Raw with whole-line comments removed; this is the text
	// sent for translation.
	Stripped string
	// Translated holds the translated text once validation succeeded.
	// Empty means untranslated: reassembly falls back to Raw, so a unit
	// with no translatable prose simply keeps its original text.
	Translated string
}

// SetTranslated records the unit's translation. It is written exactly once,
// by the recovery engine after a validated response; a second write means
// two recovery paths claimed the same unit and is rejected.
func (u *ContentUnit) SetTranslated(text string) error {
	if u.Translated != "" {
		return fmt.Errorf("unit %d: translation already set", u.Index)
	}
	u.Translated = text
	return nil
}

// Output returns the text the unit contributes to the reassembled document:
// the translation when present, the original text otherwise.
func (u *ContentUnit) Output() string {
	if u.Translated != "" {
		return u.Translated
	}
	return u.Raw
}

// BodyPart is one segment of the document body, in order: either passthrough
// text between units (Unit == nil) or a reference to a translatable unit.
// Gap text is reproduced verbatim so reassembly is byte-exact.
type BodyPart struct {
	Text string
	Unit *ContentUnit
}

// Document is the parsed representation of a Beamer deck.
//
// Preamble and Begin form the header region (everything through the
// \begin{document} marker); End and Tail form the trailer (the
// \end{document} marker through end of input). Parts covers the body in
// order, and Units lists the translatable parts by index. Concatenating
// Preamble + Begin + Parts + End + Tail reproduces the input byte-for-byte
// as long as no unit carries a translation.
type Document struct {
	Preamble string
	Begin    string
	Parts    []BodyPart
	Units    []*ContentUnit
	End      string
	Tail     string
}

// Header returns the text preceding the first content unit's region: the
// preamble plus the \begin{document} marker.
func (d *Document) Header() string {
	return d.Preamble + d.Begin
}

// Trailer returns the text following the last content unit's region: the
// \end{document} marker plus anything after it.
func (d *Document) Trailer() string {
	return d.End + d.Tail
}

// CountKind returns how many units of the given kind the document holds.
func (d *Document) CountKind(k UnitKind) int {
	n := 0
	for _, u := range d.Units {
		if u.Kind == k {
			n++
		}
	}
	return n
}
