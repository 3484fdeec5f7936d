package preview

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/forms"
)

// formTargets maps each validated form to the upstream route that
// processes it.
var formTargets = map[string]string{
	"login":    "/login",
	"register": "/register",
	"profile":  "/update_profile",
}

type formatRequest struct {
	Text    string `json:"text"`
	Feature int    `json:"feature"`
}

type formatResponse struct {
	HTML string `json:"html"`
}

func (p *Preview) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	id := feature.ID(req.Feature)
	if req.Feature != 0 && !id.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feature must be 1-5"})
		return
	}
	writeJSON(w, http.StatusOK, formatResponse{HTML: p.formatter.Format(req.Text, id)})
}

// handleForm validates an auth form. Valid submissions are redirected with
// 307 so the browser re-posts the untouched body to the upstream server.
func (p *Preview) handleForm(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "form")
	target, ok := formTargets[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown form " + name})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form body"})
		return
	}

	f, err := forms.FromValues(name, r.PostForm)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := f.Validate(); err != nil {
		var fe *forms.FieldError
		if errors.As(err, &fe) {
			writeJSON(w, http.StatusUnprocessableEntity, fe)
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	http.Redirect(w, r, p.upstream.Resolve(target), http.StatusTemporaryRedirect)
}
