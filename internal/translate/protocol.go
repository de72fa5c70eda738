// ABOUTME: Wire protocol for tagged translation payloads
// ABOUTME: Marker lines around each unit, payload assembly, strict extraction
package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hwei/beamertrans/internal/models"
)

// Marker lines bracket every unit in both directions. The leading % makes
// them LaTeX comments, so a response that leaks into a document still
// compiles; the arrow runs and the index make collisions with slide text
// implausible.
const (
	beginPrefix = "% >>>>>> UNIT "
	beginSuffix = " >>>>>>"
	endPrefix   = "% <<<<<< UNIT "
	endSuffix   = " <<<<<<"
)

// BeginTag returns the opening marker line for a unit index.
func BeginTag(index int) string {
	return beginPrefix + strconv.Itoa(index) + beginSuffix
}

// EndTag returns the closing marker line for a unit index.
func EndTag(index int) string {
	return endPrefix + strconv.Itoa(index) + endSuffix
}

// BuildPayload composes the user message for one batch: the translation
// request, an explicit unit count, then every unit's stripped text between
// its marker lines.
func BuildPayload(units []*models.ContentUnit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate the following LaTeX Beamer units into Chinese.\n\n")
	fmt.Fprintf(&sb, "The input contains exactly %d units. Return all %d units, each between its own marker lines, markers verbatim.\n\n",
		len(units), len(units))
	for _, u := range units {
		sb.WriteString(BeginTag(u.Index))
		sb.WriteByte('\n')
		sb.WriteString(u.Stripped)
		sb.WriteByte('\n')
		sb.WriteString(EndTag(u.Index))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// parseTag reports whether a line (already trimmed) is a marker line, and
// if so for which unit index and which direction. Only a canonical decimal
// index between the exact prefix and suffix qualifies.
func parseTag(line string) (index int, begin, ok bool) {
	if rest, found := strings.CutPrefix(line, beginPrefix); found {
		if num, found := strings.CutSuffix(rest, beginSuffix); found {
			if i, err := strconv.Atoi(num); err == nil && num == strconv.Itoa(i) {
				return i, true, true
			}
		}
		return 0, false, false
	}
	if rest, found := strings.CutPrefix(line, endPrefix); found {
		if num, found := strings.CutSuffix(rest, endSuffix); found {
			if i, err := strconv.Atoi(num); err == nil && num == strconv.Itoa(i) {
				return i, false, true
			}
		}
	}
	return 0, false, false
}

// ExtractUnits scans a response for marker pairs and returns the text
// between each pair keyed by unit index. Marker lines must stand alone on
// their line; surrounding whitespace is tolerated, nothing else. Text
// outside any pair is ignored. A begin without its end, an end without a
// begin, a crossed pair, or a reused index is a malformed response; the
// pairs collected before the defect are returned alongside the error so
// callers can report how far the response got.
func ExtractUnits(response string) (map[int]string, error) {
	units := make(map[int]string)
	open := -1
	var body []string

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSuffix(line, "\r")
		idx, begin, ok := parseTag(strings.TrimSpace(line))
		if !ok {
			if open >= 0 {
				body = append(body, line)
			}
			continue
		}
		if begin {
			if open >= 0 {
				return units, fmt.Errorf("unit %d opened before unit %d closed", idx, open)
			}
			if _, dup := units[idx]; dup {
				return units, fmt.Errorf("unit %d tagged more than once", idx)
			}
			open = idx
			body = body[:0]
			continue
		}
		if open < 0 {
			return units, fmt.Errorf("closing marker for unit %d without an opening marker", idx)
		}
		if idx != open {
			return units, fmt.Errorf("unit %d closed by marker for unit %d", open, idx)
		}
		units[open] = strings.Join(body, "\n")
		open = -1
	}
	if open >= 0 {
		return units, fmt.Errorf("unit %d has no closing marker", open)
	}
	return units, nil
}
