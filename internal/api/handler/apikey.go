package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mkallio/fridgechef/internal/api/response"
	"github.com/mkallio/fridgechef/internal/service"
)

type validateKeyRequest struct {
	APIKey string `json:"apiKey"`
}

type validateKeyResponse struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// ValidateKey probes a personal API key's format without calling the
// provider. Format problems are reported in the body, not as HTTP errors.
func ValidateKey(w http.ResponseWriter, r *http.Request) {
	var req validateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := service.ValidateAPIKeyFormat(req.APIKey); err != nil {
		response.Raw(w, http.StatusOK, validateKeyResponse{IsValid: false, Error: err.Error()})
		return
	}

	response.Raw(w, http.StatusOK, validateKeyResponse{IsValid: true})
}
