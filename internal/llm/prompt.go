package llm

import (
	"fmt"
	"strings"

	"github.com/mkallio/fridgechef/internal/domain"
)

// PromptParams contains everything the prompt builder may personalize on
type PromptParams struct {
	Locale              domain.Locale
	Preferences         string
	DietaryRestrictions []string
	Settings            *domain.UserSettings
}

// BuildAnalysisPrompt renders the locale-specific instruction block for one
// fridge photo. The instruction text follows the request locale, but the
// value space of the "difficulty" field is pinned to the English tokens in
// every template. A model once returned localized difficulty values when the
// Spanish prompt left this implicit, so that template carries an explicit
// counter-instruction.
func BuildAnalysisPrompt(p PromptParams) string {
	switch p.Locale {
	case domain.LocaleSpanish:
		return buildSpanishPrompt(p)
	default:
		return buildEnglishPrompt(p)
	}
}

func buildEnglishPrompt(p PromptParams) string {
	return fmt.Sprintf(`You are a professional chef assistant. Look at this photo of the inside of a refrigerator.

1. Identify the ingredients visible in the photo.
2. Suggest exactly ONE recipe that can be prepared primarily from those ingredients. Common pantry staples (oil, salt, pepper, flour, sugar) may be assumed.
%s
Respond with ONLY a JSON object, no other text, in exactly this shape:
{
  "title": "recipe name",
  "description": "short appetizing description",
  "cookingTime": "e.g. 30 minutes",
  "difficulty": "%s",
  "servings": 2,
  "ingredients": ["ingredient with quantity", "..."],
  "instructions": ["step 1", "step 2", "..."],
  "tips": ["optional tip", "..."]
}

The "difficulty" field must be exactly one of: "%s", "%s", "%s".`,
		contextBlock(p, "en"),
		domain.DifficultyMedium,
		domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard,
	)
}

func buildSpanishPrompt(p PromptParams) string {
	return fmt.Sprintf(`Eres un asistente de cocina profesional. Observa esta foto del interior de un refrigerador.

1. Identifica los ingredientes visibles en la foto.
2. Sugiere exactamente UNA receta que pueda prepararse principalmente con esos ingredientes. Puedes asumir básicos de despensa (aceite, sal, pimienta, harina, azúcar).
%s
Responde SOLO con un objeto JSON, sin ningún otro texto, con exactamente esta forma:
{
  "title": "nombre de la receta",
  "description": "descripción breve y apetitosa",
  "cookingTime": "ej. 30 minutos",
  "difficulty": "%s",
  "servings": 2,
  "ingredients": ["ingrediente con cantidad", "..."],
  "instructions": ["paso 1", "paso 2", "..."],
  "tips": ["consejo opcional", "..."]
}

Los textos de la receta deben estar en español, EXCEPTO el campo "difficulty": debe ser exactamente uno de "%s", "%s" o "%s", en inglés. No lo traduzcas (no uses "Fácil", "Media" ni "Difícil").`,
		contextBlock(p, "es"),
		domain.DifficultyMedium,
		domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard,
	)
}

// contextBlock folds preferences, dietary restrictions and stored settings
// into a short free-text section of the prompt
func contextBlock(p PromptParams, lang string) string {
	var lines []string

	restrictions := p.DietaryRestrictions
	var prefs *domain.CookingPreferences
	if p.Settings != nil {
		prefs = &p.Settings.CookingPreferences
		restrictions = append(restrictions, prefs.DietaryRestrictions...)
	}

	if p.Preferences != "" {
		if lang == "es" {
			lines = append(lines, "Preferencias del usuario: "+p.Preferences)
		} else {
			lines = append(lines, "User preferences: "+p.Preferences)
		}
	}

	if len(restrictions) > 0 {
		if lang == "es" {
			lines = append(lines, "Restricciones dietéticas (obligatorias): "+strings.Join(restrictions, ", "))
		} else {
			lines = append(lines, "Dietary restrictions (must be respected): "+strings.Join(restrictions, ", "))
		}
	}

	if prefs != nil {
		if len(prefs.Cuisines) > 0 {
			if lang == "es" {
				lines = append(lines, "Cocinas preferidas: "+strings.Join(prefs.Cuisines, ", "))
			} else {
				lines = append(lines, "Preferred cuisines: "+strings.Join(prefs.Cuisines, ", "))
			}
		}
		if prefs.SpiceLevel != "" {
			if lang == "es" {
				lines = append(lines, "Nivel de picante: "+prefs.SpiceLevel)
			} else {
				lines = append(lines, "Spice level: "+prefs.SpiceLevel)
			}
		}
		if prefs.CookingTimePreference != "" {
			if lang == "es" {
				lines = append(lines, "Tiempo de cocina preferido: "+prefs.CookingTimePreference)
			} else {
				lines = append(lines, "Cooking time preference: "+prefs.CookingTimePreference)
			}
		}
		if prefs.DefaultServings > 0 {
			if lang == "es" {
				lines = append(lines, fmt.Sprintf("Porciones: %d", prefs.DefaultServings))
			} else {
				lines = append(lines, fmt.Sprintf("Servings: %d", prefs.DefaultServings))
			}
		}
		if prefs.Notes != "" {
			if lang == "es" {
				lines = append(lines, "Notas: "+prefs.Notes)
			} else {
				lines = append(lines, "Notes: "+prefs.Notes)
			}
		}
	}

	if p.Settings != nil {
		eq := p.Settings.KitchenEquipment
		all := append(append(append([]string{}, eq.Appliances...), eq.Cookware...), eq.Tools...)
		if len(all) > 0 {
			if lang == "es" {
				lines = append(lines, "Equipo de cocina disponible: "+strings.Join(all, ", "))
			} else {
				lines = append(lines, "Available kitchen equipment: "+strings.Join(all, ", "))
			}
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return "\n" + strings.Join(lines, "\n") + "\n"
}
