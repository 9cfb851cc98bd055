package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-docx2jats/internal/ident"
)

// Figure convention in engine-produced JATS: a paragraph holding only a bold
// "Figure N" label, followed by a paragraph holding an inline-graphic plus
// optional trailing caption text.
var (
	figurePattern = regexp.MustCompile(`(?s)(<p[^>]*>\s*<bold[^>]*>Figure\s+\d+</bold>\s*</p>)\s*(<p[^>]*>\s*<inline-graphic[^>]*>.*?</inline-graphic>([^<]*)</p>)`)
	figureLabel   = regexp.MustCompile(`<bold[^>]*>(Figure\s+\d+)</bold>`)
	graphicHref   = regexp.MustCompile(`xlink:href="([^"]+)"`)
	graphicMime   = regexp.MustCompile(`mime-subtype="([^"]+)"`)
)

// Defaults for absent image attributes.
const (
	defaultHref        = "image.png"
	defaultMimeSubtype = "png"
)

// shortIDLength truncates element id tokens; section ids keep full length.
const shortIDLength = 24

const figureTemplate = `<fig id="%s">
        <object-id id="%s">%s</object-id>
        <label>%s</label>
        <caption id="%s">
          <title id="%s" />
          <p id="%s">%s</p>
        </caption>
        <graphic id="%s" mime-subtype="%s" mimetype="image" xlink:href="%s" />
      </fig>`

// SynthesizeFigures rewrites every label+image paragraph pair into a <fig>
// element with fresh ids for the container, object-id, caption, title,
// paragraph and graphic. Non-matching content passes through untouched.
func SynthesizeFigures(content string, gen ident.Generator) string {
	return figurePattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := figurePattern.FindStringSubmatch(m)
		labelPara := sub[1]
		imagePara := sub[2]
		caption := strings.TrimSpace(sub[3])

		label := "Figure"
		if lm := figureLabel.FindStringSubmatch(labelPara); lm != nil {
			label = lm[1]
		}

		href := defaultHref
		if hm := graphicHref.FindStringSubmatch(imagePara); hm != nil {
			href = hm[1]
		}

		mimeSubtype := defaultMimeSubtype
		if mm := graphicMime.FindStringSubmatch(imagePara); mm != nil {
			mimeSubtype = mm[1]
		}

		figID := shortID(gen, "fig")
		objectID := shortID(gen, "object-id")
		captionID := shortID(gen, "caption")
		titleID := shortID(gen, "title")
		pID := shortID(gen, "p")
		graphicID := shortID(gen, "graphic")

		return fmt.Sprintf(figureTemplate,
			figID, objectID, figID, label,
			captionID, titleID, pID, caption,
			graphicID, mimeSubtype, href)
	})
}

// shortID composes a prefixed identifier from a truncated random token.
func shortID(gen ident.Generator, prefix string) string {
	token := gen.NextToken()
	if len(token) > shortIDLength {
		token = token[:shortIDLength]
	}
	return prefix + "-" + token
}
