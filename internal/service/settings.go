package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mkallio/fridgechef/internal/domain"
)

// Personal credentials must carry the provider's key prefix. The bare prefix
// itself is the minimal valid form.
var apiKeyPattern = regexp.MustCompile(`^sk-ant-api`)

// ProcessUserSettings parses the raw userSettings form field. No settings at
// all is a valid state and returns (nil, nil); settings that are present but
// malformed return (nil, error). Never panics.
func ProcessUserSettings(raw string) (*domain.UserSettings, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var settings domain.UserSettings
	if err := json.Unmarshal([]byte(trimmed), &settings); err != nil {
		return nil, &ValidationError{Message: MsgInvalidSettings}
	}

	return &settings, nil
}

// ExtractLocale normalizes the raw locale tag to a supported locale. Total:
// anything unsupported, including the empty string, maps to the default.
func ExtractLocale(raw string) domain.Locale {
	tag := domain.Locale(strings.ToLower(strings.TrimSpace(raw)))
	for _, supported := range domain.SupportedLocales {
		if tag == supported {
			return supported
		}
	}
	return domain.DefaultLocale
}

// ProcessLegacyDietaryRestrictions parses the legacy JSON-array-as-string
// field. Malformed input degrades silently to no restrictions instead of
// failing the request; this path only carries non-critical preference data.
func ProcessLegacyDietaryRestrictions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	var restrictions []string
	if err := json.Unmarshal([]byte(raw), &restrictions); err != nil {
		return []string{}
	}
	if restrictions == nil {
		return []string{}
	}
	return restrictions
}

// ValidateAPIKeyFormat checks the shape of a personal credential without
// calling the provider
func ValidateAPIKeyFormat(raw string) error {
	if raw == "" {
		return &AuthError{Message: MsgNoAPIKey}
	}
	if !apiKeyPattern.MatchString(raw) {
		return &AuthError{Message: MsgBadKeyFormat}
	}
	return nil
}
