package pipeline

import "regexp"

// Attribute blocks the conversion engine appends to image references, e.g.
// {width="6.26in" height="4.07in"}. Two patterns: blocks keyed by width, then
// any remaining blocks keyed by height, so blocks carrying either or both
// keys are removed regardless of which pattern fires first. Surrounding
// whitespace is consumed with the block.
var (
	widthAttrBlock  = regexp.MustCompile(`\s*\{[^}]*width\s*=\s*"[^"]*"[^}]*\}\s*`)
	heightAttrBlock = regexp.MustCompile(`\s*\{[^}]*height\s*=\s*"[^"]*"[^}]*\}\s*`)
)

// StripImageDimensions removes engine-generated image dimension annotations.
// Single pass per pattern; blocks do not nest and removal cannot create new
// matches.
func StripImageDimensions(content string) string {
	content = widthAttrBlock.ReplaceAllString(content, "")
	return heightAttrBlock.ReplaceAllString(content, "")
}
