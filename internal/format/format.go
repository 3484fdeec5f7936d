// Package format turns raw AI responses into HTML fragments.
//
// Each feature has a Grammar: the section titles the server's prompts ask
// the model to produce, how each section renders and where it ends. Text
// that carries none of a feature's signal titles falls back to Generic.
// Output interpolates the response verbatim; callers must only feed it
// text from the career-advice backend.
package format

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/careerbot/internal/feature"
)

// Formatter renders responses with a fixed set of options. The zero value
// uses declaration-order truncation and the plain generic fallback.
type Formatter struct {
	Truncation Truncation
	// Markdown renders unstructured replies as GitHub-flavoured markdown
	// instead of the generic paragraph splitter.
	Markdown bool
}

var std = &Formatter{}

// Format renders text for feature id with the default Formatter.
func Format(text string, id feature.ID) string {
	return std.Format(text, id)
}

// Format renders text for feature id.
func (f *Formatter) Format(text string, id feature.ID) string {
	if Formatted(text) {
		return text
	}
	g := grammars[id]
	if g == nil || !g.signalled(text) {
		return f.fallback(text)
	}
	return g.render(text, f.Truncation)
}

func (f *Formatter) fallback(text string) string {
	if f.Markdown {
		if out, err := Markdown(text); err == nil {
			return out
		}
	}
	return Generic(text)
}

// Formatted reports whether text already carries rendered markup, such as
// a cached transcript entry.
func Formatted(text string) bool {
	return strings.Contains(text, "<strong>") ||
		strings.Contains(text, "<ul>") ||
		strings.Contains(text, "<ol>")
}

// ParseTruncation maps a config value to a Truncation.
func ParseTruncation(s string) (Truncation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "declared":
		return TruncateDeclared, nil
	case "nearest":
		return TruncateNearest, nil
	default:
		return TruncateDeclared, fmt.Errorf("invalid truncation %q: must be declared or nearest", s)
	}
}

func (t Truncation) String() string {
	if t == TruncateNearest {
		return "nearest"
	}
	return "declared"
}
