// Package docx2jats converts DOCX documents to Markdown and Markdown
// documents to JATS archiving XML using pandoc, then repairs the converter's
// output.
//
// # Quick Start
//
// Create a service and convert:
//
//	svc := docx2jats.New()
//
//	md, err := svc.ConvertDocx(ctx, "paper.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("paper.md", []byte(md), 0644)
//
// Markdown input converts to JATS XML:
//
//	xml, err := svc.ConvertMarkdown(ctx, mdContent)
//
// ConvertDocxToJATS chains both steps.
//
// # Conversion Pipeline
//
// Pandoc performs the format translation; this package post-processes its
// text output:
//
// DOCX to Markdown:
//
//  1. Normalize single-asterisk italics to underscores
//  2. Merge bold runs pandoc split across formatting boundaries
//  3. Consolidate adjacent italic runs (iterated to a fixed point)
//  4. Strip image dimension annotations
//
// Markdown to JATS:
//
//  1. Synthesize <fig> elements from bold "Figure N" label + inline-graphic
//     paragraph pairs
//  2. Wrap orphan body content in identified <sec> containers
//
// Every pass maps one complete buffer to another; input that does not match
// a pass's pattern flows through unchanged.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := docx2jats.New(
//	    docx2jats.WithTimeout(5 * time.Minute),
//	    docx2jats.WithPandocBinary("/opt/pandoc/bin/pandoc"),
//	)
//
// # Engine Requirements
//
// Conversion requires pandoc on PATH (or a binary set via
// WithPandocBinary). A failed pandoc run aborts the conversion with the
// engine's stderr diagnostic attached; no post-processing runs on partial
// output.
package docx2jats
