package pipeline

import (
	"regexp"
	"strings"
)

// maxFixedPointIterations bounds fixed-point rewriting so a rule that
// oscillates between two outputs cannot loop forever. The current rules
// always converge; the bound is a guard, not an expected path.
const maxFixedPointIterations = 1000

// Precompiled regex patterns for performance.
var (
	// Adjacent bold+italic runs: ***a*** ***b***
	boldItalicPair = regexp.MustCompile(`\*\*\*([^*]+?)\*\*\*\s*\*\*\*([^*]+?)\*\*\*`)

	// Bold+italic followed by bold: ***a*** **b**
	boldItalicThenBold = regexp.MustCompile(`\*\*\*([^*]+?)\*\*\*\s*\*\*([^*]+?)\*\*`)

	// Bold followed by bold+italic: **a** ***b***
	boldThenBoldItalic = regexp.MustCompile(`\*\*([^*]+?)\*\*\s*\*\*\*([^*]+?)\*\*\*`)

	// Adjacent bold runs: **a** **b**
	boldPair = regexp.MustCompile(`\*\*([^*]+?)\*\*\s*\*\*([^*]+?)\*\*`)

	// Bold+italic followed by an asymmetrically closed run: ***a*** ***b*
	boldItalicPartialPair = regexp.MustCompile(`\*\*\*([^*]+?)\*\*\*\s*\*\*\*([^*]+?)\*`)

	// Adjacent underscore italic runs: _a_ _b_
	underscoreItalicPair = regexp.MustCompile(`_([^_]+)_\s+_([^_]+)_`)

	// Single asterisk italic run; callers must verify the match is not
	// embedded in ** or *** via neighbor checks (RE2 has no lookaround).
	asteriskItalicRun = regexp.MustCompile(`\*([^*]+)\*`)

	// Adjacent asterisk italic runs separated by whitespace. The inner
	// delimiters border whitespace by construction, so only the outer
	// neighbors need checking.
	asteriskItalicPair = regexp.MustCompile(`\*([^*]+)\*\s+\*([^*]+)\*`)
)

// NormalizeItalics converts single-asterisk italic runs to underscore
// italics so later merge rules cannot confuse them with bold delimiters.
// Runs that are part of **bold** or ***bold italic*** are left alone.
func NormalizeItalics(content string) string {
	return replaceOutsideStrong(content, asteriskItalicRun, func(groups []string) string {
		return "_" + groups[0] + "_"
	})
}

// MergeSplitBold merges adjacent bold segments that the conversion engine
// split apart, typically where bold text mixes with italics or quotes.
// Each rule is applied exactly once, in order; a merge that creates a new
// adjacency is not re-scanned. Documents with three or more adjacent mixed
// runs may therefore consolidate only partially.
func MergeSplitBold(content string) string {
	content = mergeEmphasisPairs(content, boldItalicPair, "***")
	content = mergeEmphasisPairs(content, boldItalicThenBold, "***")
	content = mergeEmphasisPairs(content, boldThenBoldItalic, "***")
	content = mergeEmphasisPairs(content, boldPair, "**")
	content = mergeEmphasisPairs(content, boldItalicPartialPair, "***")
	return content
}

// ConsolidateItalics merges adjacent italic runs into single runs, repeating
// until the buffer stops changing. Iteration is required because merging two
// runs can expose a new adjacency with a third.
func ConsolidateItalics(content string) string {
	content = fixedPoint(content, func(s string) string {
		return mergeEmphasisPairs(s, underscoreItalicPair, "_")
	})
	content = fixedPoint(content, func(s string) string {
		return replaceOutsideStrong(s, asteriskItalicPair, func(groups []string) string {
			return "*" + strings.TrimSpace(groups[0]) + " " + strings.TrimSpace(groups[1]) + "*"
		})
	})
	return content
}

// mergeEmphasisPairs replaces every match of re, which must capture two text
// groups, with a single run delimited by delim and joined by one space.
func mergeEmphasisPairs(content string, re *regexp.Regexp, delim string) string {
	return re.ReplaceAllStringFunc(content, func(m string) string {
		sub := re.FindStringSubmatch(m)
		return delim + strings.TrimSpace(sub[1]) + " " + strings.TrimSpace(sub[2]) + delim
	})
}

// fixedPoint applies a single-pass transform until the buffer stops
// changing, bounded by maxFixedPointIterations.
func fixedPoint(content string, apply func(string) string) string {
	for range maxFixedPointIterations {
		next := apply(content)
		if next == content {
			return content
		}
		content = next
	}
	return content
}

// replaceOutsideStrong applies re across content, accepting a candidate
// match only when the characters immediately before and after it are not
// asterisks. This emulates the lookbehind/lookahead guards that keep italic
// rules away from bold delimiters. A rejected candidate is re-scanned from
// one byte past its start so alternatives inside it can still match.
func replaceOutsideStrong(content string, re *regexp.Regexp, repl func(groups []string) string) string {
	var b strings.Builder
	pos := 0
	for pos < len(content) {
		loc := re.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if (start > 0 && content[start-1] == '*') || (end < len(content) && content[end] == '*') {
			b.WriteString(content[pos : start+1])
			pos = start + 1
			continue
		}
		groups := make([]string, 0, len(loc)/2-1)
		for i := 2; i < len(loc); i += 2 {
			groups = append(groups, content[pos+loc[i]:pos+loc[i+1]])
		}
		b.WriteString(content[pos:start])
		b.WriteString(repl(groups))
		pos = end
	}
	b.WriteString(content[pos:])
	return b.String()
}
