// Package preview serves a local page that drives the feature panels over
// a WebSocket, plus form validation and formatting endpoints.
package preview

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/careerbot/internal/format"
	"github.com/ziadkadry99/careerbot/internal/panel"
)

// Upstream is the career-advice server as seen by the preview.
type Upstream interface {
	panel.API
	Resolve(path string) string
}

// Preview holds the dependencies of the preview routes.
type Preview struct {
	upstream  Upstream
	formatter *format.Formatter
	session   panel.Session
	cache     panel.Cache

	// AllowAllOrigins lets pages from any origin open the panel socket.
	// By default only localhost pages may.
	AllowAllOrigins bool
}

// New creates a Preview. cache may be nil.
func New(upstream Upstream, formatter *format.Formatter, session panel.Session, cache panel.Cache) *Preview {
	if formatter == nil {
		formatter = &format.Formatter{}
	}
	return &Preview{
		upstream:  upstream,
		formatter: formatter,
		session:   session,
		cache:     cache,
	}
}

// RegisterRoutes mounts all preview routes onto the given router. The
// WebSocket route stays outside timeout.
func (p *Preview) RegisterRoutes(r chi.Router, timeout func(http.Handler) http.Handler) {
	r.Get("/ws/panels", p.handleWebSocket)
	r.Group(func(r chi.Router) {
		r.Use(timeout)
		r.Get("/", p.ServeIndex)
		r.Post("/api/format", p.handleFormat)
		r.Post("/forms/{form}", p.handleForm)
	})
}

func (p *Preview) panelOptions() panel.Options {
	return panel.Options{Session: p.session, Cache: p.cache, Formatter: p.formatter}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
