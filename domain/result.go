package domain

import "time"

// GenerationResult is one generated layout concept paired with the image
// reference the cascade resolved for it. The struct is JSON-serializable so
// UI layers can hand it to exports without reshaping.
type GenerationResult struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	ImageReference    string        `json:"image_reference"`
	SourcePreferences PreferenceSet `json:"source_preferences"`
	GeneratedAt       time.Time     `json:"generated_at"`
	ProviderUsed      string        `json:"provider_used"`
}

// Summary aggregates a result batch for display headers and exports. Rooms
// and styles are counted by their canonical categories.
type Summary struct {
	Total     int            `json:"total"`
	Rooms     map[Room]int   `json:"rooms"`
	Styles    map[Style]int  `json:"styles"`
	Providers map[string]int `json:"providers"`
	Latest    time.Time      `json:"latest"`
}

// Summarize folds a result slice into a Summary. An empty slice yields a
// zero summary with initialized maps.
func Summarize(results []GenerationResult) Summary {
	summary := Summary{
		Total:     len(results),
		Rooms:     make(map[Room]int),
		Styles:    make(map[Style]int),
		Providers: make(map[string]int),
	}
	for _, result := range results {
		summary.Rooms[NormalizeRoom(result.SourcePreferences.RoomType)]++
		summary.Styles[NormalizeStyle(result.SourcePreferences.DesignStyle)]++
		if result.ProviderUsed != "" {
			summary.Providers[result.ProviderUsed]++
		}
		if result.GeneratedAt.After(summary.Latest) {
			summary.Latest = result.GeneratedAt
		}
	}
	return summary
}

// FilterByRoom keeps the results whose preferences normalize to room.
func FilterByRoom(results []GenerationResult, room Room) []GenerationResult {
	var filtered []GenerationResult
	for _, result := range results {
		if NormalizeRoom(result.SourcePreferences.RoomType) == room {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// FilterByStyle keeps the results whose preferences normalize to style.
func FilterByStyle(results []GenerationResult, style Style) []GenerationResult {
	var filtered []GenerationResult
	for _, result := range results {
		if NormalizeStyle(result.SourcePreferences.DesignStyle) == style {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// FilterByBudget keeps the results whose preferences carry exactly the given
// budget range. Budgets have no canonical form, so matching is literal.
func FilterByBudget(results []GenerationResult, budget string) []GenerationResult {
	var filtered []GenerationResult
	for _, result := range results {
		if result.SourcePreferences.BudgetRange == budget {
			filtered = append(filtered, result)
		}
	}
	return filtered
}
