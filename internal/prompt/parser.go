package prompt

import "strings"

// layoutMarker matches the framing instruction in BuildLayoutPrompt.
const layoutMarker = "LAYOUT"

// ParseLayouts splits a provider completion into individual layout
// descriptions. Text before the first marker is preamble and dropped; each
// remaining segment loses its "n:" prefix and surrounding whitespace. When
// no marker survives but the completion itself has content, the whole
// trimmed completion counts as a single layout. Blank input yields nothing.
func ParseLayouts(raw string) []string {
	var layouts []string
	segments := strings.Split(raw, layoutMarker)
	for _, segment := range segments[1:] {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if idx := strings.Index(segment, ":"); idx >= 0 {
			segment = segment[idx+1:]
		}
		segment = strings.TrimSpace(segment)
		if segment != "" {
			layouts = append(layouts, segment)
		}
	}
	if len(layouts) == 0 {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			return []string{trimmed}
		}
	}
	return layouts
}
