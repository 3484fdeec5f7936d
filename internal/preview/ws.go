package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/qiniu/x/xlog"

	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/panel"
)

// localOrigin reports whether the request comes from a page served on
// this machine. Requests without an Origin header are not from a browser.
func localOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

func (p *Preview) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return p.AllowAllOrigins || localOrigin(r)
		},
	}
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type    string `json:"type"` // ask, suggest, chat, clear, history, save, delete
	Feature int    `json:"feature"`
	Content string `json:"content"`
	Title   string `json:"title,omitempty"`
	ID      int64  `json:"id,omitempty"`
}

// wsEvent is the outgoing WebSocket message format.
type wsEvent struct {
	Type    string        `json:"type"` // result, suggestions, transcript, entry, busy, alert, error
	Feature int           `json:"feature,omitempty"`
	HTML    string        `json:"html,omitempty"`
	Raw     string        `json:"raw,omitempty"`
	Savable bool          `json:"savable,omitempty"`
	Items   []string      `json:"items,omitempty"`
	Entries []panel.Entry `json:"entries,omitempty"`
	Entry   *panel.Entry  `json:"entry,omitempty"`
	Busy    *bool         `json:"busy,omitempty"`
	Level   panel.Level   `json:"level,omitempty"`
	Message string        `json:"message,omitempty"`
}

// wsConn serialises writes from the panel goroutines of one connection.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
	xl   *xlog.Logger
}

func (c *wsConn) send(ev wsEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(ev); err != nil {
		c.xl.Warnf("preview: websocket write: %v", err)
	}
}

func (c *wsConn) sendError(id feature.ID, message string) {
	c.send(wsEvent{Type: "error", Feature: int(id), Message: message})
}

// Alert carries messages that belong to no panel.
func (c *wsConn) Alert(level panel.Level, message string) {
	c.send(wsEvent{Type: "alert", Level: level, Message: message})
}

// wsView is the panel.View of one feature on one connection.
type wsView struct {
	c  *wsConn
	id feature.ID
}

func (v wsView) Alert(level panel.Level, message string) {
	v.c.send(wsEvent{Type: "alert", Feature: int(v.id), Level: level, Message: message})
}

func (v wsView) ShowResult(r panel.Result) {
	v.c.send(wsEvent{Type: "result", Feature: int(v.id), HTML: r.HTML, Raw: r.Raw, Savable: r.Savable})
}

func (v wsView) ShowSuggestions(items []string) {
	if items == nil {
		items = []string{}
	}
	v.c.send(wsEvent{Type: "suggestions", Feature: int(v.id), Items: items})
}

func (v wsView) ShowTranscript(entries []panel.Entry) {
	if entries == nil {
		entries = []panel.Entry{}
	}
	v.c.send(wsEvent{Type: "transcript", Feature: int(v.id), Entries: entries})
}

func (v wsView) AppendEntry(e panel.Entry) {
	v.c.send(wsEvent{Type: "entry", Feature: int(v.id), Entry: &e})
}

func (v wsView) SetBusy(busy bool) {
	v.c.send(wsEvent{Type: "busy", Feature: int(v.id), Busy: &busy})
}

func (p *Preview) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	xl := xlog.New(middleware.GetReqID(r.Context()))
	conn, err := p.upgrader().Upgrade(w, r, nil)
	if err != nil {
		xl.Warnf("preview: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	c := &wsConn{conn: conn, xl: xl}
	reg := panel.NewRegistry(p.upstream, c, p.panelOptions())
	for _, id := range feature.All {
		if _, err := reg.Register(id, wsView{c: c, id: id}); err != nil {
			xl.Errorf("preview: registering panel %s: %v", id, err)
			return
		}
	}

	ctx, cancel := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				xl.Warnf("preview: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			c.sendError(0, "invalid message format")
			continue
		}

		// Requests run concurrently so a newer one can supersede a slow
		// call on the same panel.
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.dispatch(ctx, c, reg, req)
		}()
	}
}

func (p *Preview) dispatch(ctx context.Context, c *wsConn, reg *panel.Registry, req wsRequest) {
	if req.Type == "delete" {
		p.report(c, 0, reg.DeleteSaved(ctx, req.ID))
		return
	}

	id := feature.ID(req.Feature)
	ctl, ok := reg.Get(id)
	if !ok {
		c.sendError(id, "feature must be 1-5")
		return
	}

	var err error
	switch req.Type {
	case "ask":
		err = ctl.Ask(ctx, req.Content)
	case "suggest":
		_, err = ctl.Suggest(ctx, req.Content)
	case "chat":
		err = ctl.Send(ctx, req.Content)
	case "clear":
		err = ctl.Clear(ctx)
	case "history":
		err = ctl.LoadHistory(ctx)
	case "save":
		_, err = ctl.Save(ctx, req.Title, req.Content)
	default:
		c.sendError(id, "unknown message type: "+req.Type)
		return
	}
	p.report(c, id, err)
}

// report surfaces errors the panel has not already shown.
func (p *Preview) report(c *wsConn, id feature.ID, err error) {
	switch {
	case err == nil, errors.Is(err, panel.ErrStale), errors.Is(err, panel.ErrEmptyInput):
	case errors.Is(err, panel.ErrLoginRequired):
		c.sendError(id, "log in to use this feature")
	default:
		c.xl.Warnf("preview: feature %d: %v", id, err)
	}
}
