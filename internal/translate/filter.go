// ABOUTME: Unit filter predicates for the pipeline runner
// ABOUTME: Detects units with no translatable prose so they can stay verbatim
package translate

import (
	"strings"

	"github.com/hwei/beamertrans/internal/models"
)

// skipArgCommands name commands whose first brace argument is markup, not
// prose: environment names, keys, paths, URLs.
var skipArgCommands = map[string]bool{
	"label":           true,
	"ref":             true,
	"eqref":           true,
	"autoref":         true,
	"pageref":         true,
	"cite":            true,
	"citep":           true,
	"citet":           true,
	"includegraphics": true,
	"graphicspath":    true,
	"input":           true,
	"include":         true,
	"url":             true,
	"href":            true,
	"usepackage":      true,
	"usetheme":        true,
	"usecolortheme":   true,
	"usefonttheme":    true,
}

// mathEnvs name environments whose whole body is mathematics.
var mathEnvs = map[string]bool{
	"equation":    true,
	"equation*":   true,
	"align":       true,
	"align*":      true,
	"gather":      true,
	"gather*":     true,
	"multline":    true,
	"multline*":   true,
	"eqnarray":    true,
	"eqnarray*":   true,
	"displaymath": true,
}

// SkipPlainMarkup reports whether a unit holds no translatable prose, so a
// caller can leave pure markup (graphics, tikz, bare math) untouched.
func SkipPlainMarkup(u *models.ContentUnit) bool {
	return !hasProse(u.Stripped)
}

// hasProse scans LaTeX text for a word of two or more letters outside
// control sequences, math spans, math environments, option groups, and the
// markup arguments of structural commands. Any non-ASCII text counts as
// prose outright.
func hasProse(text string) bool {
	n := len(text)
	i := 0
	letters := 0
	inMath := false

	for i < n {
		c := text[i]
		switch {
		case c == '%':
			for i < n && text[i] != '\n' {
				i++
			}
		case c == '\\':
			i++
			if i >= n {
				break
			}
			if !isLetterByte(text[i]) {
				switch text[i] {
				case '[':
					i = skipPast(text, i+1, `\]`)
				case '(':
					i = skipPast(text, i+1, `\)`)
				default:
					i++
				}
				letters = 0
				continue
			}
			start := i
			for i < n && isLetterByte(text[i]) {
				i++
			}
			name := text[start:i]
			if i < n && text[i] == '*' {
				i++
			}
			i = skipOptionGroups(text, i)
			switch {
			case name == "begin" || name == "end":
				env, next := braceArg(text, i)
				i = next
				if name == "begin" && mathEnvs[env] {
					i = skipPast(text, i, `\end{`+env+`}`)
				}
			case skipArgCommands[name]:
				_, i = braceArg(text, i)
			}
			letters = 0
		case c == '$':
			i++
			if i < n && text[i] == '$' {
				i++
			}
			inMath = !inMath
			letters = 0
		case inMath:
			i++
		case c >= 0x80:
			return true
		case isLetterByte(c):
			letters++
			if letters >= 2 {
				return true
			}
			i++
		default:
			letters = 0
			i++
		}
	}
	return false
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// skipPast returns the index just after the next occurrence of term, or the
// end of text when term never appears.
func skipPast(text string, from int, term string) int {
	if from >= len(text) {
		return len(text)
	}
	j := strings.Index(text[from:], term)
	if j < 0 {
		return len(text)
	}
	return from + j + len(term)
}

// skipOptionGroups advances past any [...] groups (with intervening
// whitespace) attached to a command.
func skipOptionGroups(text string, i int) int {
	for {
		j := skipSpace(text, i)
		if j >= len(text) || text[j] != '[' {
			return i
		}
		depth := 0
		for ; j < len(text); j++ {
			if text[j] == '[' {
				depth++
			} else if text[j] == ']' {
				depth--
				if depth == 0 {
					j++
					break
				}
			}
		}
		i = j
	}
}

// braceArg reads one {...} group (after optional whitespace) and returns
// its trimmed contents plus the index after the closing brace. Without a
// group it returns "" and the original index.
func braceArg(text string, i int) (string, int) {
	j := skipSpace(text, i)
	if j >= len(text) || text[j] != '{' {
		return "", i
	}
	depth := 0
	for k := j; k < len(text); k++ {
		switch text[k] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[j+1 : k]), k + 1
			}
		}
	}
	return "", len(text)
}

func skipSpace(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r') {
		i++
	}
	return i
}
