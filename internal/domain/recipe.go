package domain

// Locale identifies a supported UI locale
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleSpanish Locale = "es"

	// DefaultLocale is used when a request carries no locale or an
	// unsupported one
	DefaultLocale = LocaleEnglish
)

// SupportedLocales lists every locale the prompt builder can render
var SupportedLocales = []Locale{LocaleEnglish, LocaleSpanish}

// Difficulty tokens are pinned to English in every locale. The prompt
// templates and the response parser both reference this set, so a localized
// variant coming back from the model is rejected rather than surfaced.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// ValidDifficulty reports whether s is one of the three canonical tokens
func ValidDifficulty(s string) bool {
	return s == DifficultyEasy || s == DifficultyMedium || s == DifficultyHard
}

// Recipe is the structured result extracted from a model response.
// Difficulty always holds one of the canonical tokens regardless of the
// request locale.
type Recipe struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	CookingTime  string   `json:"cookingTime" validate:"required"`
	Difficulty   string   `json:"difficulty" validate:"required"`
	Servings     int      `json:"servings" validate:"required,min=1"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
	Tips         []string `json:"tips,omitempty"`
}
