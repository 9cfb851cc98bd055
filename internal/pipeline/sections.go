package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-docx2jats/internal/ident"
)

// bodyPattern isolates the single body container; everything outside it
// passes through untouched.
var bodyPattern = regexp.MustCompile(`(?s)(<body[^>]*>)(.*?)(</body>)`)

// lineClass tags the classification of one body line, computed once so the
// state machine never re-matches patterns.
type lineClass int

const (
	lineBlank lineClass = iota
	lineSectionOpen
	lineSectionOpenWithID
	lineSectionClose
	lineOther
)

// classifyLine tags a body line for the section state machine. The check is
// prefix-based: it tracks only container open/close lines, not full nesting
// depth. Nested sections with unusual line layout may classify oddly; that
// is a documented limitation of this heuristic pass.
func classifyLine(line string) lineClass {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return lineBlank
	case strings.HasPrefix(trimmed, "</sec>"):
		return lineSectionClose
	case strings.HasPrefix(trimmed, "<sec"):
		if strings.Contains(trimmed, "id=") {
			return lineSectionOpenWithID
		}
		return lineSectionOpen
	default:
		return lineOther
	}
}

// WrapSections guarantees every body line is contained in an identified
// <sec> element. Orphan lines found outside any section are wrapped in a
// synthesized section with a fresh id; section opens without an id get one
// injected; everything already inside a section passes through verbatim.
// A whitespace-only body is returned unchanged.
func WrapSections(content string, gen ident.Generator) string {
	return bodyPattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := bodyPattern.FindStringSubmatch(m)
		bodyOpen, body, bodyClose := sub[1], sub[2], sub[3]
		if strings.TrimSpace(body) == "" {
			return bodyOpen + body + bodyClose
		}
		return bodyOpen + "\n" + wrapBodyLines(body, gen) + "\n" + bodyClose
	})
}

// wrapBodyLines runs the two-state machine over the body's lines.
// States: outside a section (accumulating orphans) and inside a section
// (pass-through). Blank lines never trigger a flush; no line is dropped.
func wrapBodyLines(body string, gen ident.Generator) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	var orphans []string
	inSection := false

	flush := func() {
		if len(orphans) == 0 {
			return
		}
		out = append(out, `  <sec id="heading-`+gen.NextToken()+`">`)
		out = append(out, orphans...)
		out = append(out, "  </sec>")
		orphans = nil
	}

	for _, line := range lines {
		switch classifyLine(line) {
		case lineBlank:
			// Blank lines join a non-empty orphan buffer so they stay with
			// the content they separate; otherwise they pass through.
			if !inSection && len(orphans) > 0 {
				orphans = append(orphans, line)
			} else {
				out = append(out, line)
			}

		case lineSectionOpenWithID:
			flush()
			out = append(out, line)
			inSection = true

		case lineSectionOpen:
			flush()
			trimmed := strings.TrimSpace(line)
			withID := strings.Replace(trimmed, "<sec", `<sec id="heading-`+gen.NextToken()+`"`, 1)
			out = append(out, withID)
			inSection = true

		case lineSectionClose:
			out = append(out, line)
			inSection = false

		case lineOther:
			if inSection {
				out = append(out, line)
			} else {
				orphans = append(orphans, line)
			}
		}
	}

	flush()
	return strings.Join(out, "\n")
}
