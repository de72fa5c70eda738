// ABOUTME: Tests for the tagged wire protocol
// ABOUTME: Covers marker format, payload assembly and strict extraction
package translate

import (
	"strings"
	"testing"

	"github.com/hwei/beamertrans/internal/models"
)

func TestTagFormat(t *testing.T) {
	if got, want := BeginTag(0), "% >>>>>> UNIT 0 >>>>>>"; got != want {
		t.Errorf("BeginTag(0) = %q, want %q", got, want)
	}
	if got, want := EndTag(12), "% <<<<<< UNIT 12 <<<<<<"; got != want {
		t.Errorf("EndTag(12) = %q, want %q", got, want)
	}
}

func TestBuildPayload(t *testing.T) {
	units := []*models.ContentUnit{
		{Index: 3, Stripped: "\\section{Basics}"},
		{Index: 4, Stripped: "\\begin{frame}\nHello. % inline\n\\end{frame}"},
	}
	payload := BuildPayload(units)

	if !strings.Contains(payload, "exactly 2 units") {
		t.Errorf("payload missing count instruction: %q", payload)
	}
	for _, want := range []string{
		"% >>>>>> UNIT 3 >>>>>>\n\\section{Basics}\n% <<<<<< UNIT 3 <<<<<<\n",
		"% >>>>>> UNIT 4 >>>>>>\n\\begin{frame}\nHello. % inline\n\\end{frame}\n% <<<<<< UNIT 4 <<<<<<\n",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing tagged unit %q", want)
		}
	}
	if strings.Index(payload, "UNIT 3") > strings.Index(payload, "UNIT 4") {
		t.Errorf("payload units out of order: %q", payload)
	}
}

func TestExtractUnits(t *testing.T) {
	resp := "Sure, here are the translations:\n" +
		"% >>>>>> UNIT 0 >>>>>>\n" +
		"\\section{基础}\n" +
		"% <<<<<< UNIT 0 <<<<<<\n" +
		"  % >>>>>> UNIT 1 >>>>>>  \n" +
		"\\begin{frame}\n" +
		"\n" +
		"第一行。\n" +
		"% <<<<<< UNIT 1 <<<<<<\n" +
		"That is all.\n"
	got, err := ExtractUnits(resp)
	if err != nil {
		t.Fatalf("ExtractUnits() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0] != "\\section{基础}" {
		t.Errorf("unit 0 = %q, want section line", got[0])
	}
	if got[1] != "\\begin{frame}\n\n第一行。" {
		t.Errorf("unit 1 = %q, want body with blank line preserved", got[1])
	}
}

func TestExtractUnitsReordered(t *testing.T) {
	resp := BeginTag(2) + "\n乙\n" + EndTag(2) + "\n" +
		BeginTag(0) + "\n甲\n" + EndTag(0) + "\n"
	got, err := ExtractUnits(resp)
	if err != nil {
		t.Fatalf("ExtractUnits() error = %v", err)
	}
	if got[0] != "甲" || got[2] != "乙" {
		t.Errorf("got = %v, want index-keyed text regardless of order", got)
	}
}

func TestExtractUnitsCRLF(t *testing.T) {
	resp := BeginTag(0) + "\r\nline one\r\nline two\r\n" + EndTag(0) + "\r\n"
	got, err := ExtractUnits(resp)
	if err != nil {
		t.Fatalf("ExtractUnits() error = %v", err)
	}
	if got[0] != "line one\nline two" {
		t.Errorf("unit 0 = %q, want carriage returns stripped", got[0])
	}
}

func TestExtractUnitsEmptyBody(t *testing.T) {
	resp := BeginTag(5) + "\n" + EndTag(5) + "\n"
	got, err := ExtractUnits(resp)
	if err != nil {
		t.Fatalf("ExtractUnits() error = %v", err)
	}
	if text, ok := got[5]; !ok || text != "" {
		t.Errorf("got[5] = %q, %v; want empty string present", text, ok)
	}
}

func TestExtractUnitsMalformed(t *testing.T) {
	tests := []struct {
		name string
		resp string
	}{
		{
			"begin without end",
			BeginTag(0) + "\ntext\n",
		},
		{
			"end without begin",
			"text\n" + EndTag(0) + "\n",
		},
		{
			"crossed pair",
			BeginTag(0) + "\ntext\n" + EndTag(1) + "\n",
		},
		{
			"reopened before close",
			BeginTag(0) + "\n" + BeginTag(1) + "\n" + EndTag(1) + "\n",
		},
		{
			"duplicate index",
			BeginTag(0) + "\na\n" + EndTag(0) + "\n" + BeginTag(0) + "\nb\n" + EndTag(0) + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExtractUnits(tt.resp); err == nil {
				t.Error("ExtractUnits() error = nil, want malformed-response error")
			}
		})
	}
}

func TestExtractUnitsIgnoresNonMarkerNoise(t *testing.T) {
	// Lines that merely resemble markers are content, not markers.
	resp := BeginTag(0) + "\n" +
		"% >>>>>> UNIT x >>>>>>\n" +
		"% >>>>>> UNIT 07 >>>>>>\n" +
		"%>>>>>> UNIT 1 >>>>>> trailing\n" +
		EndTag(0) + "\n"
	got, err := ExtractUnits(resp)
	if err != nil {
		t.Fatalf("ExtractUnits() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if !strings.Contains(got[0], "UNIT x") || !strings.Contains(got[0], "UNIT 07") {
		t.Errorf("near-marker lines were not kept as content: %q", got[0])
	}
}

func TestPayloadRoundTripsThroughExtract(t *testing.T) {
	units := []*models.ContentUnit{
		{Index: 0, Stripped: "\\section{One}"},
		{Index: 1, Stripped: "\\begin{frame}\nBody text.\n\\end{frame}"},
	}
	got, err := ExtractUnits(BuildPayload(units))
	if err != nil {
		t.Fatalf("ExtractUnits(BuildPayload()) error = %v", err)
	}
	for _, u := range units {
		if got[u.Index] != u.Stripped {
			t.Errorf("unit %d round-tripped to %q, want %q", u.Index, got[u.Index], u.Stripped)
		}
	}
}
