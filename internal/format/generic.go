package format

import (
	"regexp"
	"strings"
)

var (
	numberedCue = regexp.MustCompile(`(\d+\.\s*)`)
	bulletGlyph = regexp.MustCompile(`[-•]\s*`)
)

// Generic formats unstructured text such as plain chat replies: numbering
// cues are emphasised, bullets normalised to "• ", blank lines separate
// paragraphs and single newlines become <br>.
func Generic(text string) string {
	text = numberedCue.ReplaceAllString(text, "<strong>${1}</strong>")
	text = bulletGlyph.ReplaceAllString(text, "• ")

	var b strings.Builder
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		b.WriteString("<p>" + strings.Join(strings.Split(p, "\n"), "<br>") + "</p>")
	}
	if b.Len() == 0 {
		return text
	}
	return b.String()
}
