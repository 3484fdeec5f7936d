package panel

import (
	"context"
	"fmt"
	"sort"

	"github.com/ziadkadry99/careerbot/internal/api"
	"github.com/ziadkadry99/careerbot/internal/feature"
)

const (
	deletedText = "Response deleted successfully!"
	deleteFail  = "Error deleting response."
)

// Registry holds the controllers of one page (or one connection).
type Registry struct {
	api    API
	alerts Alerter
	opts   Options
	panels map[feature.ID]*Controller
}

// NewRegistry creates an empty registry. alerts receives messages that
// belong to no panel, such as saved-response deletion.
func NewRegistry(client API, alerts Alerter, opts Options) *Registry {
	return &Registry{
		api:    client,
		alerts: alerts,
		opts:   opts,
		panels: make(map[feature.ID]*Controller),
	}
}

// Register creates the controller for id bound to view, replacing any
// previous one.
func (r *Registry) Register(id feature.ID, view View) (*Controller, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("invalid feature %d", id)
	}
	c := New(id, view, r.api, r.opts)
	r.panels[id] = c
	return c, nil
}

// Get returns the controller for id.
func (r *Registry) Get(id feature.ID) (*Controller, bool) {
	c, ok := r.panels[id]
	return c, ok
}

// Features lists the registered features in ascending order.
func (r *Registry) Features() []feature.ID {
	ids := make([]feature.ID, 0, len(r.panels))
	for id := range r.panels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DeleteSaved removes a saved response by server ID.
func (r *Registry) DeleteSaved(ctx context.Context, responseID int64) error {
	if !r.opts.Session.LoggedIn {
		return ErrLoginRequired
	}
	reply, err := r.api.DeleteSavedResponse(ctx, responseID)
	if err != nil || !reply.OK() {
		r.alerts.Alert(Danger, deleteFail)
		if err == nil {
			err = fmt.Errorf("server answered %q", replyMessage(reply))
		}
		return fmt.Errorf("deleting saved response %d: %w", responseID, err)
	}
	r.alerts.Alert(Success, deletedText)
	return nil
}

func replyMessage(reply *api.Reply) string {
	if reply.Message != "" {
		return reply.Message
	}
	return reply.Status
}
