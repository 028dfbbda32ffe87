package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mkallio/fridgechef/internal/api/response"
	"github.com/mkallio/fridgechef/internal/domain"
)

var validate = validator.New()

// SettingsHandler handles stored-settings endpoints
type SettingsHandler struct {
	store domain.SettingsStore
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store domain.SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// Get returns stored settings for a client
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	settings, err := h.store.Get(r.Context(), clientID)
	if err != nil {
		response.InternalError(w, "failed to load settings")
		return
	}
	if settings == nil {
		response.NotFound(w, "no settings stored for this client")
		return
	}

	response.OK(w, settings)
}

// Put validates and stores settings for a client
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	var settings domain.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		response.BadRequest(w, "invalid settings payload")
		return
	}

	if err := validate.Struct(&settings); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.store.Set(r.Context(), clientID, &settings); err != nil {
		response.InternalError(w, "failed to store settings")
		return
	}

	response.OK(w, settings)
}

// Delete removes stored settings for a client
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	if err := h.store.Delete(r.Context(), clientID); err != nil {
		response.InternalError(w, "failed to delete settings")
		return
	}

	response.NoContent(w)
}
