// Package panel drives the five feature panels: it validates input, calls
// the career-advice server and pushes formatted results, transcripts and
// alerts into each panel's View.
package panel

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qiniu/x/log"

	"github.com/ziadkadry99/careerbot/internal/api"
	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/format"
)

var (
	// ErrStale is returned when a newer call on the same panel superseded
	// this one; its result was discarded.
	ErrStale = errors.New("panel: superseded by a newer request")
	// ErrLoginRequired is returned by operations that need a logged-in
	// session.
	ErrLoginRequired = errors.New("panel: login required")
	// ErrEmptyInput is returned when required input is blank. The panel
	// has already shown a warning.
	ErrEmptyInput = errors.New("panel: empty input")
)

const (
	chatErrorText  = "Sorry, there was an error processing your message. Please try again."
	suggestFail    = "Error fetching career suggestions. Please try again."
	clearFail      = "Error clearing chat history."
	saveFail       = "Error saving response."
	missingTitle   = "Please enter a title for this response"
	savedText      = "Response saved successfully!"
	clearedText    = "Chat history cleared!"
	timestampStyle = "03:04 PM"
)

// API is the subset of the server client the panels use.
type API interface {
	Ask(ctx context.Context, id feature.ID, input string) (*api.Reply, error)
	AskResume(ctx context.Context, text string, file *api.Upload) (*api.Reply, error)
	Careers(ctx context.Context, interest string) (*api.Reply, error)
	Chat(ctx context.Context, id feature.ID, message string) (*api.Reply, error)
	ClearChat(ctx context.Context, id feature.ID) (*api.Reply, error)
	History(ctx context.Context, id feature.ID) (*api.Reply, error)
	SaveResponse(ctx context.Context, id feature.ID, title, content string) (*api.Reply, error)
	DeleteSavedResponse(ctx context.Context, responseID int64) (*api.Reply, error)
}

// Cache records the latest server state per feature.
type Cache interface {
	PutResult(ctx context.Context, id feature.ID, raw string) error
	PutTranscript(ctx context.Context, id feature.ID, history []api.Message) error
}

// Session describes the caller's login state.
type Session struct {
	LoggedIn bool
}

// Options are shared by every controller in a Registry.
type Options struct {
	Session   Session
	Cache     Cache
	Formatter *format.Formatter
}

// Controller drives one feature panel.
type Controller struct {
	id        feature.ID
	view      View
	api       API
	session   Session
	cache     Cache
	formatter *format.Formatter

	// gen is bumped by every call that writes the panel's regions. Only
	// the call holding the current value may apply its result.
	gen atomic.Uint64
	mu  sync.Mutex
}

// New creates a controller for feature id writing into view.
func New(id feature.ID, view View, client API, opts Options) *Controller {
	f := opts.Formatter
	if f == nil {
		f = &format.Formatter{}
	}
	return &Controller{
		id:        id,
		view:      view,
		api:       client,
		session:   opts.Session,
		cache:     opts.Cache,
		formatter: f,
	}
}

// Feature returns the controller's feature.
func (c *Controller) Feature() feature.ID { return c.id }

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	token := c.gen.Add(1)
	c.view.SetBusy(true)
	return token
}

// finish applies fn and clears the busy state if token is still current.
func (c *Controller) finish(token uint64, fn func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() != token {
		return ErrStale
	}
	fn()
	c.view.SetBusy(false)
	return nil
}

// fail shows a danger alert for a current call and returns err.
func (c *Controller) fail(token uint64, err error, message string) error {
	if stale := c.finish(token, func() { c.view.Alert(Danger, message) }); stale != nil {
		return stale
	}
	return err
}

// Ask runs the feature's primary action with the user's input.
func (c *Controller) Ask(ctx context.Context, input string) error {
	info := c.id.Info()
	if strings.TrimSpace(input) == "" {
		c.view.Alert(Warning, info.EmptyInput)
		return ErrEmptyInput
	}
	token := c.begin()
	reply, err := c.api.Ask(ctx, c.id, input)
	if err != nil {
		return c.fail(token, fmt.Errorf("asking %s: %w", info.Name, err), info.FailMessage)
	}
	return c.finish(token, func() { c.showReply(ctx, reply) })
}

// AskResume asks for resume feedback from pasted text, an uploaded file
// or both.
func (c *Controller) AskResume(ctx context.Context, text string, file *api.Upload) error {
	if c.id != feature.ResumeReview {
		return fmt.Errorf("resume upload is only available for %s", feature.ResumeReview.Info().Name)
	}
	info := c.id.Info()
	text = strings.TrimSpace(text)
	if text == "" && file == nil {
		c.view.Alert(Warning, info.EmptyInput)
		return ErrEmptyInput
	}
	token := c.begin()
	reply, err := c.api.AskResume(ctx, text, file)
	if err != nil {
		return c.fail(token, fmt.Errorf("asking %s: %w", info.Name, err), info.FailMessage)
	}
	return c.finish(token, func() { c.showReply(ctx, reply) })
}

func (c *Controller) showReply(ctx context.Context, reply *api.Reply) {
	raw := reply.Text(c.id.Info().ReplyField)
	c.view.ShowResult(Result{
		Feature: c.id,
		HTML:    c.formatter.Format(raw, c.id),
		Raw:     raw,
		Savable: c.session.LoggedIn,
	})
	if len(reply.ChatHistory) > 0 {
		c.showHistory(ctx, reply.ChatHistory)
	}
	if c.cache != nil {
		if err := c.cache.PutResult(ctx, c.id, raw); err != nil {
			log.Warnf("panel: caching result for feature %s: %v", c.id, err)
		}
	}
}

func (c *Controller) showHistory(ctx context.Context, history []api.Message) {
	c.view.ShowTranscript(RenderTranscript(c.formatter, c.id, history))
	if c.cache != nil {
		if err := c.cache.PutTranscript(ctx, c.id, history); err != nil {
			log.Warnf("panel: caching transcript for feature %s: %v", c.id, err)
		}
	}
}

// Suggest lists careers matching an interest. Only the career paths panel
// offers suggestions.
func (c *Controller) Suggest(ctx context.Context, interest string) ([]string, error) {
	if c.id != feature.CareerPaths {
		return nil, fmt.Errorf("suggestions are only available for %s", feature.CareerPaths.Info().Name)
	}
	if strings.TrimSpace(interest) == "" {
		c.view.Alert(Warning, c.id.Info().EmptyInput)
		return nil, ErrEmptyInput
	}
	token := c.begin()
	reply, err := c.api.Careers(ctx, interest)
	if err != nil {
		return nil, c.fail(token, fmt.Errorf("fetching career suggestions: %w", err), suggestFail)
	}
	items := Suggestions(reply.Insights)
	err = c.finish(token, func() {
		c.view.ShowSuggestions(items)
		if len(reply.ChatHistory) > 0 {
			c.showHistory(ctx, reply.ChatHistory)
		}
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Send posts a chat message. Blank messages are ignored. The server's
// returned history replaces the transcript.
func (c *Controller) Send(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	token := c.begin()
	c.view.AppendEntry(Entry{
		Role:      "user",
		HTML:      html.EscapeString(message),
		Timestamp: time.Now().Format(timestampStyle),
	})
	reply, err := c.api.Chat(ctx, c.id, message)
	if err != nil {
		if stale := c.finish(token, func() {
			c.view.AppendEntry(Entry{Role: "assistant", HTML: chatErrorText})
		}); stale != nil {
			return stale
		}
		return fmt.Errorf("sending chat message: %w", err)
	}
	return c.finish(token, func() { c.showHistory(ctx, reply.ChatHistory) })
}

// Clear empties the feature's chat history on the server and in the view.
func (c *Controller) Clear(ctx context.Context) error {
	token := c.begin()
	reply, err := c.api.ClearChat(ctx, c.id)
	if err != nil {
		return c.fail(token, fmt.Errorf("clearing chat: %w", err), clearFail)
	}
	return c.finish(token, func() {
		if !reply.OK() {
			return
		}
		c.showHistory(ctx, nil)
		c.view.Alert(Success, clearedText)
	})
}

// LoadHistory shows the logged-in user's stored chat history.
func (c *Controller) LoadHistory(ctx context.Context) error {
	if !c.session.LoggedIn {
		return ErrLoginRequired
	}
	token := c.begin()
	reply, err := c.api.History(ctx, c.id)
	if err != nil {
		log.Errorf("panel: loading chat history for feature %s: %v", c.id, err)
		if stale := c.finish(token, func() {}); stale != nil {
			return stale
		}
		return fmt.Errorf("loading chat history: %w", err)
	}
	return c.finish(token, func() {
		if reply.ChatHistory != nil {
			c.showHistory(ctx, reply.ChatHistory)
		}
	})
}

// Save stores content under the user's account and returns its server ID.
// A blank title is rejected with a warning.
func (c *Controller) Save(ctx context.Context, title, content string) (int64, error) {
	if !c.session.LoggedIn {
		return 0, ErrLoginRequired
	}
	if strings.TrimSpace(title) == "" {
		c.view.Alert(Warning, missingTitle)
		return 0, ErrEmptyInput
	}
	reply, err := c.api.SaveResponse(ctx, c.id, title, content)
	if err != nil {
		c.view.Alert(Danger, saveFail)
		return 0, fmt.Errorf("saving response: %w", err)
	}
	if !reply.OK() {
		return 0, fmt.Errorf("saving response: server answered %q", reply.Status)
	}
	c.view.Alert(Success, savedText)
	return reply.ID, nil
}

// DefaultTitle is the title proposed when saving a response on t.
func DefaultTitle(id feature.ID, t time.Time) string {
	prefix := id.Info().SavePrefix
	if prefix == "" {
		prefix = "Response"
	}
	return fmt.Sprintf("%s - %d/%d/%d", prefix, int(t.Month()), t.Day(), t.Year())
}
