// Package pipeline repairs and restructures text produced by the external
// conversion engine. Each pass is a pure function from one complete buffer
// to another; passes run strictly sequentially and never abort on
// unexpected input: what does not match passes through unchanged.
package pipeline

import (
	"context"

	"github.com/alnah/go-docx2jats/internal/ident"
)

// Postprocessor defines the contract for direction-specific post-processing.
type Postprocessor interface {
	Process(ctx context.Context, content string) string
}

// MarkdownPostprocessor normalizes engine-produced Markdown: emphasis
// markers are disambiguated, fragmented bold and italic runs merged, and
// image dimension annotations removed.
type MarkdownPostprocessor struct{}

// Process applies the Markdown passes in order. Order matters: italics are
// normalized to underscores before any merging so the merge rules cannot
// confuse weak and strong delimiters.
func (p *MarkdownPostprocessor) Process(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = NormalizeItalics(content)
	content = MergeSplitBold(content)
	content = ConsolidateItalics(content)
	content = StripImageDimensions(content)
	return content
}

// JATSPostprocessor restructures engine-produced JATS XML: figure-pattern
// paragraph pairs become <fig> elements and all body content is wrapped in
// identified <sec> containers.
type JATSPostprocessor struct {
	ids ident.Generator
}

// NewJATSPostprocessor creates a JATSPostprocessor. A nil generator falls
// back to random tokens.
func NewJATSPostprocessor(gen ident.Generator) *JATSPostprocessor {
	if gen == nil {
		gen = ident.RandomGenerator{}
	}
	return &JATSPostprocessor{ids: gen}
}

// Process applies figure synthesis, then section wrapping.
func (p *JATSPostprocessor) Process(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = SynthesizeFigures(content, p.ids)
	content = WrapSections(content, p.ids)
	return content
}
