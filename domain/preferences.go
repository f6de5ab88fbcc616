package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PreferenceSet captures the design preferences a caller collects from its
// UI. Room type, design style, budget range and space size are required;
// colors, features and notes may be empty and downstream prompt building
// tolerates that.
type PreferenceSet struct {
	RoomType         string   `json:"room_type" validate:"required,max=120"`
	DesignStyle      string   `json:"design_style" validate:"required,max=120"`
	BudgetRange      string   `json:"budget_range" validate:"required,max=120"`
	SpaceSize        string   `json:"space_size" validate:"required,max=120"`
	ColorPreferences []string `json:"color_preferences" validate:"dive,max=60"`
	SpecialFeatures  []string `json:"special_features" validate:"dive,max=120"`
	AdditionalNotes  string   `json:"additional_notes" validate:"max=500"`
}

var validate = validator.New()

// Validate ensures the preference set satisfies the required contract before
// any provider is called.
func (p PreferenceSet) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}
	return nil
}

// Option catalogs shared with UI layers. Every room and style entry is
// accepted by the normalization lookups in normalize.go.
var (
	RoomTypes = []string{
		"Living Room",
		"Bedroom",
		"Kitchen",
		"Bathroom",
		"Home Office",
		"Dining Room",
		"Children's Room",
		"Master Bedroom",
		"Guest Room",
		"Study Room",
	}

	DesignStyles = []string{
		"Modern",
		"Contemporary",
		"Traditional",
		"Minimalist",
		"Scandinavian",
		"Industrial",
		"Bohemian",
		"Rustic",
		"Mid-Century Modern",
		"Art Deco",
		"Mediterranean",
		"Farmhouse",
	}

	BudgetRanges = []string{
		"Under $1,000",
		"$1,000 - $5,000",
		"$5,000 - $15,000",
		"$15,000 - $30,000",
		"$30,000+",
	}

	SpaceSizes = []string{
		"Small (< 100 sq ft)",
		"Medium (100-200 sq ft)",
		"Large (200-400 sq ft)",
		"Very Large (400+ sq ft)",
	}

	ColorOptions = []string{
		"White", "Black", "Gray", "Beige", "Brown",
		"Blue", "Green", "Red", "Yellow", "Purple",
		"Pink", "Orange", "Cream", "Navy", "Teal",
		"Burgundy", "Gold", "Silver", "Coral", "Sage",
	}

	FeatureOptions = []string{
		"Built-in Storage",
		"Reading Nook",
		"Work Area",
		"Entertainment Center",
		"Walk-in Closet",
		"En-suite Bathroom",
		"Balcony Access",
		"Fireplace",
		"Bay Window",
		"High Ceilings",
		"Natural Light Focus",
		"Smart Home Integration",
		"Custom Lighting",
		"Statement Wall",
		"Multi-functional Furniture",
	}
)
