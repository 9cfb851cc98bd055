package pipeline

import (
	"strings"
	"testing"
)

func TestWrapSections_OrphansAroundExistingSection(t *testing.T) {
	input := "<body>\n" +
		"<p>orphan1</p>\n" +
		"<sec>\n" +
		"<title>X</title>\n" +
		"</sec>\n" +
		"<p>orphan2</p>\n" +
		"</body>"

	got := WrapSections(input, &seqGenerator{})

	// Three sibling sections: orphan1 wrapped, the existing section with an
	// injected id, orphan2 wrapped.
	if n := strings.Count(got, "<sec id=\"heading-"); n != 3 {
		t.Errorf("expected 3 identified sections, got %d:\n%s", n, got)
	}
	if n := strings.Count(got, "</sec>"); n != 3 {
		t.Errorf("expected 3 closing tags, got %d:\n%s", n, got)
	}

	// No input line dropped or duplicated.
	for _, line := range []string{"<p>orphan1</p>", "<title>X</title>", "<p>orphan2</p>"} {
		if n := strings.Count(got, line); n != 1 {
			t.Errorf("line %q appears %d times, want 1:\n%s", line, n, got)
		}
	}

	// Order preserved.
	i1 := strings.Index(got, "<p>orphan1</p>")
	iX := strings.Index(got, "<title>X</title>")
	i2 := strings.Index(got, "<p>orphan2</p>")
	if !(i1 < iX && iX < i2) {
		t.Errorf("content order changed:\n%s", got)
	}
}

func TestWrapSections_ExistingIDKept(t *testing.T) {
	input := "<body>\n" +
		"<sec id=\"sec-custom\">\n" +
		"<p>content</p>\n" +
		"</sec>\n" +
		"</body>"

	got := WrapSections(input, &seqGenerator{})

	if !strings.Contains(got, `<sec id="sec-custom">`) {
		t.Errorf("pre-existing id should be kept verbatim:\n%s", got)
	}
	if strings.Contains(got, "heading-") {
		t.Errorf("no id should be generated for an already-identified section:\n%s", got)
	}
}

func TestWrapSections_RoundTripNoAdditionalWrapping(t *testing.T) {
	input := "<body>\n" +
		"<sec id=\"heading-aaa\">\n" +
		"<p>one</p>\n" +
		"</sec>\n" +
		"<sec id=\"heading-bbb\">\n" +
		"<p>two</p>\n" +
		"</sec>\n" +
		"</body>"

	got := WrapSections(input, &seqGenerator{})

	if n := strings.Count(got, "<sec"); n != strings.Count(input, "<sec") {
		t.Errorf("section count changed: got %d, want %d:\n%s", n, strings.Count(input, "<sec"), got)
	}
	if n := strings.Count(got, "</sec>"); n != strings.Count(input, "</sec>") {
		t.Errorf("closing tag count changed:\n%s", got)
	}
}

func TestWrapSections_TrailingOrphansFlushedAtEnd(t *testing.T) {
	input := "<body>\n" +
		"<sec id=\"heading-aaa\">\n" +
		"<p>inside</p>\n" +
		"</sec>\n" +
		"<p>tail1</p>\n" +
		"<p>tail2</p>\n" +
		"</body>"

	got := WrapSections(input, &seqGenerator{})

	if n := strings.Count(got, "<sec"); n != 2 {
		t.Errorf("expected 2 sections, got %d:\n%s", n, got)
	}

	// Both trailing lines land in the same synthesized section.
	tail := got[strings.Index(got, "<p>tail1</p>"):]
	if !strings.Contains(tail, "<p>tail2</p>") || strings.Contains(tail[:strings.Index(tail, "<p>tail2</p>")], "<sec") {
		t.Errorf("trailing orphans should share one synthesized section:\n%s", got)
	}
}

func TestWrapSections_BlankLinesNeverFlush(t *testing.T) {
	input := "<body>\n" +
		"<p>first</p>\n" +
		"\n" +
		"<p>second</p>\n" +
		"</body>"

	got := WrapSections(input, &seqGenerator{})

	// One synthesized section holding both paragraphs and the blank line.
	if n := strings.Count(got, "<sec"); n != 1 {
		t.Errorf("expected 1 synthesized section, got %d:\n%s", n, got)
	}
}

func TestWrapSections_WhitespaceOnlyBodyUnchanged(t *testing.T) {
	inputs := []string{
		"<body></body>",
		"<body>\n\n</body>",
		"<body>   </body>",
	}

	for _, input := range inputs {
		got := WrapSections(input, &seqGenerator{})
		if got != input {
			t.Errorf("WrapSections(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestWrapSections_NoBodyUnchanged(t *testing.T) {
	input := "<article><front>meta</front></article>"
	got := WrapSections(input, &seqGenerator{})
	if got != input {
		t.Errorf("WrapSections() = %q, want unchanged %q", got, input)
	}
}

func TestWrapSections_ContentOutsideBodyUntouched(t *testing.T) {
	input := "<front>\n<p>metadata paragraph</p>\n</front>\n" +
		"<body>\n<p>orphan</p>\n</body>"

	got := WrapSections(input, &seqGenerator{})

	if !strings.HasPrefix(got, "<front>\n<p>metadata paragraph</p>\n</front>\n") {
		t.Errorf("front matter should not be rewritten:\n%s", got)
	}
	if !strings.Contains(got, "<sec id=\"heading-") {
		t.Errorf("body orphan should be wrapped:\n%s", got)
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want lineClass
	}{
		{name: "blank", line: "", want: lineBlank},
		{name: "whitespace only", line: "   ", want: lineBlank},
		{name: "open without id", line: "<sec>", want: lineSectionOpen},
		{name: "open with attributes but no id", line: `<sec sec-type="intro">`, want: lineSectionOpen},
		{name: "open with id", line: `<sec id="x">`, want: lineSectionOpenWithID},
		{name: "indented open", line: `  <sec id="x">`, want: lineSectionOpenWithID},
		{name: "close", line: "</sec>", want: lineSectionClose},
		{name: "indented close", line: "  </sec>", want: lineSectionClose},
		{name: "paragraph", line: "<p>text</p>", want: lineOther},
		{name: "plain text", line: "words", want: lineOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyLine(tt.line); got != tt.want {
				t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
