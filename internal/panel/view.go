package panel

import (
	"html"
	"strings"

	"github.com/ziadkadry99/careerbot/internal/api"
	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/format"
)

// Level is an alert severity, named after the page's alert classes.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Danger  Level = "danger"
)

// Result is a formatted answer ready for a panel's result region.
type Result struct {
	Feature feature.ID
	HTML    string
	// Raw is the unformatted server text; it is what Save stores.
	Raw string
	// Savable is set when the session may save the result.
	Savable bool
}

// Entry is one rendered transcript message.
type Entry struct {
	Role      string `json:"role"`
	HTML      string `json:"html"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Alerter shows transient messages.
type Alerter interface {
	Alert(level Level, message string)
}

// View is the output region owned by one panel. Implementations must be
// safe for use from the goroutine that drives the controller; the
// controller never calls a View concurrently with itself.
type View interface {
	Alerter
	ShowResult(Result)
	ShowSuggestions(items []string)
	// ShowTranscript replaces the whole transcript.
	ShowTranscript(entries []Entry)
	// AppendEntry adds one message below the current transcript.
	AppendEntry(Entry)
	SetBusy(busy bool)
}

// RenderTranscript renders server chat history. Only assistant messages
// go through the formatter; every other role is escaped and keeps its role.
func RenderTranscript(f *format.Formatter, id feature.ID, history []api.Message) []Entry {
	entries := make([]Entry, 0, len(history))
	for _, m := range history {
		e := Entry{Role: m.Role, Timestamp: m.Timestamp}
		if m.Role == "assistant" {
			e.HTML = f.Format(m.Content, id)
		} else {
			e.HTML = html.EscapeString(m.Content)
		}
		entries = append(entries, e)
	}
	return entries
}

// Suggestions splits a comma-separated career list, dropping blanks and
// items that look like an error message.
func Suggestions(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" || strings.Contains(strings.ToLower(item), "error") {
			continue
		}
		items = append(items, item)
	}
	return items
}
