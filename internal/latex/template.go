// ABOUTME: Loader for header/trailer template files
// ABOUTME: Extracts replacement preamble and tail from a full LaTeX document
package latex

import (
	"os"
	"strings"
)

// Template carries replacement text for a reassembled document: Preamble
// substitutes everything before \begin{document}, Tail everything after
// \end{document}. The structural markers always come from the parsed input.
type Template struct {
	Preamble string
	Tail     string
}

// TemplateError reports a template file that could not be read or that is
// not a complete LaTeX document.
type TemplateError struct {
	Path string
	Msg  string
	Err  error
}

func (e *TemplateError) Error() string {
	if e.Err != nil {
		return "latex: template " + e.Path + ": " + e.Msg + ": " + e.Err.Error()
	}
	return "latex: template " + e.Path + ": " + e.Msg
}

func (e *TemplateError) Unwrap() error { return e.Err }

// LoadTemplate reads a complete LaTeX document from path and extracts its
// preamble and tail for use as replacements during reassembly. The file
// must contain both document markers.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateError{Path: path, Msg: "reading", Err: err}
	}
	text := string(data)

	bi := strings.Index(text, beginDocument)
	if bi < 0 {
		return nil, &TemplateError{Path: path, Msg: `missing \begin{document}`}
	}
	ei := strings.Index(text[bi+len(beginDocument):], endDocument)
	if ei < 0 {
		return nil, &TemplateError{Path: path, Msg: `missing \end{document}`}
	}
	ei += bi + len(beginDocument)

	return &Template{
		Preamble: text[:bi],
		Tail:     text[ei+len(endDocument):],
	}, nil
}
