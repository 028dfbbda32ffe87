package service

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mkallio/fridgechef/internal/domain"
	"github.com/mkallio/fridgechef/internal/llm"
)

// User-facing messages are fixed per category. Raw provider or parser output
// is never echoed to the caller.
const (
	MsgNoAPIKey        = "No API key provided"
	MsgBadKeyFormat    = "Invalid API key format"
	MsgInvalidSettings = "Invalid user settings format"

	msgAuthShared     = "The image analysis service is not available right now. Please try again later."
	msgAuthPersonal   = "Your API key was rejected by the provider. Please check it in settings."
	msgRateLimited    = "The image analysis service is busy. Please try again in a moment."
	msgUpstreamFormat = "Could not process the model's response. Please try again."
	msgInternal       = "Something went wrong while analyzing your photo. Please try again."
)

// ValidationError marks malformed request input recovered locally, before
// any network call
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError marks a missing or malformed credential detected locally
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Classify maps any pipeline failure into the {status, message, isAuthError}
// triple surfaced to callers. It is total: every input, including nil,
// produces a classification.
func Classify(err error) domain.ClassifiedError {
	if err == nil {
		return domain.ClassifiedError{Status: http.StatusInternalServerError, Message: msgInternal}
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return domain.ClassifiedError{Status: http.StatusBadRequest, Message: validationErr.Message}
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return domain.ClassifiedError{Status: http.StatusUnauthorized, Message: authErr.Message, IsAuthError: true}
	}

	// Parse failures are classified before any message sniffing: their text
	// can embed model output, and model output must never steer a request
	// into the auth or rate-limit categories.
	var parseErr *llm.ParseError
	if errors.As(err, &parseErr) {
		return domain.ClassifiedError{Status: http.StatusBadGateway, Message: msgUpstreamFormat}
	}

	var providerErr *llm.ProviderError
	hasProviderErr := errors.As(err, &providerErr)

	if isAuthFailure(err, providerErr, hasProviderErr) {
		return domain.ClassifiedError{Status: http.StatusUnauthorized, Message: msgAuthShared, IsAuthError: true}
	}

	if isRateLimit(err, providerErr, hasProviderErr) {
		return domain.ClassifiedError{Status: http.StatusTooManyRequests, Message: msgRateLimited}
	}

	return domain.ClassifiedError{Status: http.StatusInternalServerError, Message: msgInternal}
}

func isAuthFailure(err error, providerErr *llm.ProviderError, hasProviderErr bool) bool {
	if hasProviderErr {
		switch providerErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"api key", "api_key", "unauthorized", "authentication", "credential", "permission denied"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isRateLimit(err error, providerErr *llm.ProviderError, hasProviderErr bool) bool {
	if hasProviderErr && providerErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"rate limit", "quota", "too many requests", "overloaded"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
