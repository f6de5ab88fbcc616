// Package prompt assembles the provider prompts and splits completions back
// into individual layout descriptions. Everything here is pure string work.
package prompt

import (
	"fmt"
	"strings"

	"layoutgen/domain"
)

const noneSpecified = "None specified"

// imageDescriptionLimit bounds how much layout text is folded into an image
// prompt. Free-tier generators embed the prompt in the request URL, so the
// snippet has to stay short.
const imageDescriptionLimit = 200

// BuildLayoutPrompt assembles the text-provider prompt for count layout
// concepts.
func BuildLayoutPrompt(prefs domain.PreferenceSet, count int) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Create %d detailed home layout ideas for a %s with the following specifications:\n\n", count, strings.TrimSpace(prefs.RoomType))
	fmt.Fprintf(sb, "Style: %s\n", strings.TrimSpace(prefs.DesignStyle))
	fmt.Fprintf(sb, "Budget Range: %s\n", orNone(prefs.BudgetRange))
	fmt.Fprintf(sb, "Space Size: %s\n", orNone(prefs.SpaceSize))
	fmt.Fprintf(sb, "Color Preferences: %s\n", orNone(strings.Join(prefs.ColorPreferences, ", ")))
	fmt.Fprintf(sb, "Special Features: %s\n", orNone(strings.Join(prefs.SpecialFeatures, ", ")))
	fmt.Fprintf(sb, "Additional Notes: %s\n", orNone(prefs.AdditionalNotes))
	sb.WriteString("\nFor each layout, provide:\n")
	sb.WriteString("1. A descriptive title\n")
	sb.WriteString("2. Detailed layout description (150-200 words)\n")
	sb.WriteString("3. Key features and furniture placement\n")
	sb.WriteString("4. Color scheme and materials\n")
	sb.WriteString("5. Lighting suggestions\n")
	sb.WriteString("6. Budget-conscious tips\n")
	sb.WriteString("\nFormat each layout as:\nLAYOUT [number]:\n[Detailed description]\n")
	sb.WriteString("\nMake each layout unique and practical while staying within the specified parameters.\n")
	return sb.String()
}

// BuildImagePrompt condenses one layout description into a text-to-image
// prompt with the photographic qualifiers image models respond to.
func BuildImagePrompt(description string, prefs domain.PreferenceSet) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Photorealistic interior design photo of a %s style %s",
		strings.TrimSpace(prefs.DesignStyle), strings.TrimSpace(prefs.RoomType))
	if snippet := truncate(strings.TrimSpace(description), imageDescriptionLimit); snippet != "" {
		fmt.Fprintf(sb, ", %s", collapseWhitespace(snippet))
	}
	if len(prefs.ColorPreferences) > 0 {
		fmt.Fprintf(sb, ", color scheme incorporating %s", strings.Join(prefs.ColorPreferences, ", "))
	}
	if size := strings.TrimSpace(prefs.SpaceSize); size != "" {
		fmt.Fprintf(sb, ", %s space", size)
	}
	sb.WriteString(", professional interior photography lighting, clean composition, furniture placement clearly visible, high quality")
	return sb.String()
}

func orNone(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return noneSpecified
	}
	return v
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit]))
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
