package format

import (
	"regexp"
	"strings"
)

// Mode selects how a section body is rendered.
type Mode int

const (
	// List renders the body as a <ul>, one item per split token.
	List Mode = iota
	// Prose renders the trimmed body as a single <p>.
	Prose
	// Score renders the first "N/10" found after the title; the section is
	// dropped when there is none.
	Score
)

// Truncation selects where a section body ends.
type Truncation int

const (
	// TruncateDeclared cuts at the first other section title found in the
	// body, checking titles in declaration order. A title declared earlier
	// wins even when a later-declared title occurs closer.
	TruncateDeclared Truncation = iota
	// TruncateNearest cuts at the closest following title of any other
	// section.
	TruncateNearest
)

// Section describes one titled block of an AI response.
type Section struct {
	Title string
	Icon  string
	Class string
	Mode  Mode

	// Markers are matched in order to find the section; the first one that
	// occurs wins. Empty means the Title itself.
	Markers []string
	// Until lists the titles that end this section. Nil means the titles of
	// every other section in the grammar.
	Until []string
	// Open sections run to the end of the text.
	Open bool
	// OmitEmpty drops the section when its body is blank.
	OmitEmpty bool
}

// Grammar is the declarative description of one feature's response layout.
type Grammar struct {
	// Signals are literal substrings; at least one must be present for the
	// structured layout to apply.
	Signals  []string
	Sections []Section
	// Fold matches titles case-insensitively and without a trailing colon.
	Fold bool
	// Split tokenizes List bodies into items.
	Split *regexp.Regexp

	markers [][]*marker
	stops   [][]*marker
}

var scorePattern = regexp.MustCompile(`\d+/10`)

// marker locates one title in a text.
type marker struct {
	literal string
	re      *regexp.Regexp
}

func newMarker(title string, fold bool) *marker {
	if fold {
		return &marker{re: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(title))}
	}
	return &marker{literal: title + ":"}
}

// find returns the byte span of the first occurrence, or -1, -1.
func (m *marker) find(s string) (int, int) {
	if m.re != nil {
		loc := m.re.FindStringIndex(s)
		if loc == nil {
			return -1, -1
		}
		return loc[0], loc[1]
	}
	i := strings.Index(s, m.literal)
	if i < 0 {
		return -1, -1
	}
	return i, i + len(m.literal)
}

// compile resolves every section's markers and stop list. Grammars are
// package-level values, so this runs once per grammar at init.
func (g *Grammar) compile() *Grammar {
	g.markers = make([][]*marker, len(g.Sections))
	g.stops = make([][]*marker, len(g.Sections))
	for i, s := range g.Sections {
		for _, title := range markerTitles(s) {
			g.markers[i] = append(g.markers[i], newMarker(title, g.Fold))
		}
	}
	for i, s := range g.Sections {
		if s.Open {
			continue
		}
		if s.Until != nil {
			for _, title := range s.Until {
				g.stops[i] = append(g.stops[i], newMarker(title, g.Fold))
			}
			continue
		}
		for j := range g.Sections {
			if j != i {
				g.stops[i] = append(g.stops[i], g.markers[j]...)
			}
		}
	}
	return g
}

func markerTitles(s Section) []string {
	if len(s.Markers) > 0 {
		return s.Markers
	}
	return []string{s.Title}
}

// signalled reports whether any signal title occurs in text.
func (g *Grammar) signalled(text string) bool {
	for _, sig := range g.Signals {
		if strings.Contains(text, sig) {
			return true
		}
	}
	return false
}

// body returns the text belonging to section i, and false when the section
// does not occur.
func (g *Grammar) body(text string, i int, trunc Truncation) (string, bool) {
	start := -1
	for _, m := range g.markers[i] {
		if _, end := m.find(text); end >= 0 {
			start = end
			break
		}
	}
	if start < 0 {
		return "", false
	}
	body := text[start:]
	if g.Fold {
		body = strings.TrimLeft(body, ": \t")
	}
	if g.Sections[i].Mode == Score {
		return body, true
	}
	return cut(body, g.stops[i], trunc), true
}

func cut(body string, stops []*marker, trunc Truncation) string {
	switch trunc {
	case TruncateNearest:
		end := len(body)
		for _, m := range stops {
			if i, _ := m.find(body); i >= 0 && i < end {
				end = i
			}
		}
		return body[:end]
	default:
		for _, m := range stops {
			if i, _ := m.find(body); i >= 0 {
				return body[:i]
			}
		}
		return body
	}
}

// render interprets the grammar over text. The caller has already checked
// the signals.
func (g *Grammar) render(text string, trunc Truncation) string {
	var b strings.Builder
	b.WriteString(`<div class="response-section">`)
	for i, s := range g.Sections {
		body, ok := g.body(text, i, trunc)
		if !ok {
			continue
		}
		g.writeSection(&b, s, body)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (g *Grammar) writeSection(b *strings.Builder, s Section, body string) {
	var inner string
	switch s.Mode {
	case Score:
		score := scorePattern.FindString(body)
		if score == "" {
			return
		}
		inner = `<p class="text-center"><span class="fs-3 fw-bold">` + score + `</span></p>`
	case Prose:
		body = strings.TrimSpace(body)
		if body == "" && s.OmitEmpty {
			return
		}
		inner = "<p>" + body + "</p>"
	default:
		var items strings.Builder
		items.WriteString("<ul>")
		for _, item := range g.Split.Split(body, -1) {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			items.WriteString("<li>" + item + "</li>")
		}
		items.WriteString("</ul>")
		inner = items.String()
	}

	class := "feedback-item"
	if s.Class != "" {
		class += " " + s.Class
	}
	b.WriteString(`<div class="` + class + `">`)
	b.WriteString("<h4>" + s.Icon + " " + s.Title + "</h4>")
	b.WriteString(inner)
	b.WriteString("</div>")
}
