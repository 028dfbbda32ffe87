package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mkallio/fridgechef/internal/domain"
)

var validate = validator.New()

// ParseError marks a model response that could not be understood, as opposed
// to a transport or credential failure. The classifier maps it to an
// upstream-format category.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRecipe extracts the first JSON object embedded in the raw model text
// and validates it against the recipe contract. The model may wrap the JSON
// in prose or code fences.
func ParseRecipe(raw string) (*domain.Recipe, error) {
	payload := extractJSONObject(stripCodeFences(raw))
	if payload == "" {
		return nil, &ParseError{Message: "no JSON object in model output"}
	}

	var recipe domain.Recipe
	if err := json.Unmarshal([]byte(payload), &recipe); err != nil {
		return nil, &ParseError{Message: "malformed JSON in model output", Err: err}
	}

	if err := validate.Struct(&recipe); err != nil {
		return nil, &ParseError{Message: "recipe failed contract validation", Err: err}
	}

	// Difficulty is checked against the canonical token set directly so the
	// contract has a single source of truth
	if !domain.ValidDifficulty(recipe.Difficulty) {
		return nil, &ParseError{
			Message: fmt.Sprintf("difficulty %q is not one of %s, %s, %s",
				recipe.Difficulty, domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard),
		}
	}

	for _, tip := range recipe.Tips {
		if strings.TrimSpace(tip) == "" {
			return nil, &ParseError{Message: "recipe tips contain an empty entry"}
		}
	}

	return &recipe, nil
}

func stripCodeFences(content string) string {
	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(content, marker)
		if start == -1 {
			continue
		}
		inner := content[start+len(marker):]
		end := strings.Index(inner, "```")
		if end == -1 {
			continue
		}
		return strings.TrimSpace(inner[:end])
	}
	return content
}

// extractJSONObject returns the first brace-balanced object in s, respecting
// JSON string literals and escapes
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
