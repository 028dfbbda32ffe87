package llm_test

import (
	"strings"
	"testing"

	"github.com/mkallio/fridgechef/internal/domain"
	"github.com/mkallio/fridgechef/internal/llm"
)

func TestBuildAnalysisPrompt_DifficultyTokensPinned(t *testing.T) {
	for _, locale := range domain.SupportedLocales {
		t.Run(string(locale), func(t *testing.T) {
			prompt := llm.BuildAnalysisPrompt(llm.PromptParams{Locale: locale})

			mustContain := []string{
				`"difficulty"`,
				`"` + domain.DifficultyEasy + `"`,
				`"` + domain.DifficultyMedium + `"`,
				`"` + domain.DifficultyHard + `"`,
			}

			for _, s := range mustContain {
				if !strings.Contains(prompt, s) {
					t.Errorf("prompt should contain %q", s)
				}
			}
		})
	}
}

func TestBuildAnalysisPrompt_SpanishCounterInstruction(t *testing.T) {
	prompt := llm.BuildAnalysisPrompt(llm.PromptParams{Locale: domain.LocaleSpanish})

	if !strings.HasPrefix(prompt, "Eres un asistente de cocina") {
		t.Errorf("spanish prompt should open with spanish instructions, got %q", prompt[:40])
	}

	// The template forbids translated difficulty values explicitly
	for _, s := range []string{"en inglés", "No lo traduzcas"} {
		if !strings.Contains(prompt, s) {
			t.Errorf("spanish prompt should contain %q", s)
		}
	}
}

func TestBuildAnalysisPrompt_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	prompt := llm.BuildAnalysisPrompt(llm.PromptParams{Locale: domain.Locale("fr")})
	if !strings.HasPrefix(prompt, "You are a professional chef assistant") {
		t.Errorf("unknown locale should render the english template, got %q", prompt[:40])
	}
}

func TestBuildAnalysisPrompt_ContextBlock(t *testing.T) {
	t.Run("empty params add nothing", func(t *testing.T) {
		prompt := llm.BuildAnalysisPrompt(llm.PromptParams{Locale: domain.LocaleEnglish})
		for _, s := range []string{"User preferences:", "Dietary restrictions"} {
			if strings.Contains(prompt, s) {
				t.Errorf("prompt should not contain %q when params are empty", s)
			}
		}
	})

	t.Run("preferences and restrictions folded in", func(t *testing.T) {
		prompt := llm.BuildAnalysisPrompt(llm.PromptParams{
			Locale:              domain.LocaleEnglish,
			Preferences:         "something spicy",
			DietaryRestrictions: []string{"vegetarian", "no nuts"},
		})

		mustContain := []string{
			"User preferences: something spicy",
			"Dietary restrictions (must be respected): vegetarian, no nuts",
		}
		for _, s := range mustContain {
			if !strings.Contains(prompt, s) {
				t.Errorf("prompt should contain %q", s)
			}
		}
	})

	t.Run("stored settings merged with request restrictions", func(t *testing.T) {
		settings := &domain.UserSettings{
			CookingPreferences: domain.CookingPreferences{
				Cuisines:            []string{"thai", "italian"},
				DietaryRestrictions: []string{"gluten-free"},
				SpiceLevel:          "hot",
				DefaultServings:     4,
			},
			KitchenEquipment: domain.KitchenEquipment{
				Appliances: []string{"air fryer"},
				Cookware:   []string{"wok"},
			},
		}

		prompt := llm.BuildAnalysisPrompt(llm.PromptParams{
			Locale:              domain.LocaleEnglish,
			DietaryRestrictions: []string{"vegetarian"},
			Settings:            settings,
		})

		mustContain := []string{
			"vegetarian, gluten-free",
			"Preferred cuisines: thai, italian",
			"Spice level: hot",
			"Servings: 4",
			"Available kitchen equipment: air fryer, wok",
		}
		for _, s := range mustContain {
			if !strings.Contains(prompt, s) {
				t.Errorf("prompt should contain %q", s)
			}
		}
	})

	t.Run("spanish labels in spanish prompt", func(t *testing.T) {
		prompt := llm.BuildAnalysisPrompt(llm.PromptParams{
			Locale:      domain.LocaleSpanish,
			Preferences: "algo rápido",
		})
		if !strings.Contains(prompt, "Preferencias del usuario: algo rápido") {
			t.Error("spanish prompt should carry the spanish preferences label")
		}
	})
}
