// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	repository "github.com/okian/mergington/internal/adapters/repository"
	service "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/domain/model"
)

// ActivitiesDependencies defines the registry operations the handlers need.
type ActivitiesDependencies interface {
	ListActivities(ctx context.Context) ([]repository.Entry, error)
	GetActivity(ctx context.Context, name string) (model.Activity, error)
	Signup(ctx context.Context, name, email string) (string, error)
	Unregister(ctx context.Context, name, email string) (string, error)
}

// ActivitiesHandler handles the activity listing and signup routes.
type ActivitiesHandler struct {
	deps ActivitiesDependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivitiesDependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// activityList encodes as a JSON object keyed by activity name, keeping
// registry order instead of encoding/json's sorted map keys.
type activityList []repository.Entry

func (l activityList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(e.Activity)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HandleList handles GET /activities requests.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	entries, err := h.deps.ListActivities(r.Context())
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, activityList(entries))
}

// HandleGet handles GET /activities/{name} requests.
func (h *ActivitiesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_activity"
	a, err := h.deps.GetActivity(r.Context(), r.PathValue("name"))
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleSignup handles POST /activities/{name}/signup?email= requests.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	name, email, ok := activityParams(w, r, op)
	if !ok {
		return
	}
	msg, err := h.deps.Signup(r.Context(), name, email)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// HandleUnregister handles DELETE /activities/{name}/unregister?email= requests.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	const op = "api.unregister"
	name, email, ok := activityParams(w, r, op)
	if !ok {
		return
	}
	msg, err := h.deps.Unregister(r.Context(), name, email)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// activityParams extracts the path name and the email query parameter,
// writing a 422 when email is absent.
func activityParams(w http.ResponseWriter, r *http.Request, op string) (string, string, bool) {
	name := r.PathValue("name")
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", WrapKind(op, ErrValidation, service.ErrMissingEmail))
		return "", "", false
	}
	return name, email, true
}
