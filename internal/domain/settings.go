package domain

import "time"

// UserSettings is the versioned settings object a client may attach to an
// analysis request. Absence of settings is a valid state and is modeled as a
// nil *UserSettings, distinct from malformed settings which is an error.
type UserSettings struct {
	Version            int                `json:"version"`
	CookingPreferences CookingPreferences `json:"cookingPreferences"`
	KitchenEquipment   KitchenEquipment   `json:"kitchenEquipment"`
	APIConfiguration   APIConfiguration   `json:"apiConfiguration"`
}

// CookingPreferences drives prompt personalization
type CookingPreferences struct {
	Cuisines              []string `json:"cuisines"`
	DietaryRestrictions   []string `json:"dietaryRestrictions"`
	SpiceLevel            string   `json:"spiceLevel" validate:"omitempty,oneof=mild medium hot"`
	CookingTimePreference string   `json:"cookingTimePreference" validate:"omitempty,oneof=quick moderate elaborate"`
	MealTypes             []string `json:"mealTypes"`
	DefaultServings       int      `json:"defaultServings" validate:"omitempty,min=1,max=12"`
	Notes                 string   `json:"notes" validate:"max=500"`
}

// KitchenEquipment lists available equipment by category
type KitchenEquipment struct {
	Appliances []string `json:"appliances"`
	Cookware   []string `json:"cookware"`
	Tools      []string `json:"tools"`
}

// APIConfiguration records the state of a client's personal provider key.
// The key itself is never stored, only metadata about it.
type APIConfiguration struct {
	HasPersonalKey  bool       `json:"hasPersonalKey"`
	KeyValidated    bool       `json:"keyValidated"`
	UsageTracking   bool       `json:"usageTracking"`
	LastValidatedAt *time.Time `json:"lastValidatedAt,omitempty"`
}
