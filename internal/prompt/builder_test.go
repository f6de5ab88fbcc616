package prompt

import (
	"strings"
	"testing"

	"layoutgen/domain"
)

func TestBuildLayoutPrompt(t *testing.T) {
	prefs := domain.PreferenceSet{
		RoomType:         "Living Room",
		DesignStyle:      "Modern",
		BudgetRange:      "$5,000 - $15,000",
		SpaceSize:        "Medium (100-200 sq ft)",
		ColorPreferences: []string{"White", "Gray"},
		SpecialFeatures:  []string{"Fireplace", "Built-in Storage"},
		AdditionalNotes:  "Pet friendly",
	}

	got := BuildLayoutPrompt(prefs, 3)

	checks := []string{
		"Create 3 detailed home layout ideas",
		"Living Room",
		"Style: Modern",
		"Budget Range: $5,000 - $15,000",
		"Space Size: Medium (100-200 sq ft)",
		"Color Preferences: White, Gray",
		"Special Features: Fireplace, Built-in Storage",
		"Additional Notes: Pet friendly",
		"1. A descriptive title",
		"6. Budget-conscious tips",
		"Format each layout as:\nLAYOUT [number]:",
	}
	for _, expect := range checks {
		if !strings.Contains(got, expect) {
			t.Fatalf("layout prompt missing %q:\n%s", expect, got)
		}
	}
}

func TestBuildLayoutPromptEmptyOptionals(t *testing.T) {
	prefs := domain.PreferenceSet{RoomType: "Kitchen", DesignStyle: "Industrial"}

	got := BuildLayoutPrompt(prefs, 1)

	checks := []string{
		"Create 1 detailed home layout ideas",
		"Budget Range: None specified",
		"Space Size: None specified",
		"Color Preferences: None specified",
		"Special Features: None specified",
		"Additional Notes: None specified",
	}
	for _, expect := range checks {
		if !strings.Contains(got, expect) {
			t.Fatalf("layout prompt missing %q:\n%s", expect, got)
		}
	}
}

func TestBuildLayoutPromptIsPure(t *testing.T) {
	prefs := domain.PreferenceSet{RoomType: "Bedroom", DesignStyle: "Bohemian"}
	first := BuildLayoutPrompt(prefs, 2)
	second := BuildLayoutPrompt(prefs, 2)
	if first != second {
		t.Fatal("BuildLayoutPrompt is not deterministic for identical input")
	}
}

func TestBuildImagePrompt(t *testing.T) {
	prefs := domain.PreferenceSet{
		RoomType:         "Living Room",
		DesignStyle:      "Modern",
		SpaceSize:        "Large (200-400 sq ft)",
		ColorPreferences: []string{"White", "Gray"},
	}

	got := BuildImagePrompt("Low-slung sofa facing a stone fireplace, layered rugs.", prefs)

	checks := []string{
		"Modern style Living Room",
		"Low-slung sofa facing a stone fireplace",
		"color scheme incorporating White, Gray",
		"Large (200-400 sq ft) space",
		"professional interior photography lighting",
	}
	for _, expect := range checks {
		if !strings.Contains(got, expect) {
			t.Fatalf("image prompt missing %q:\n%s", expect, got)
		}
	}
}

func TestBuildImagePromptTruncatesDescription(t *testing.T) {
	prefs := domain.PreferenceSet{RoomType: "Bedroom", DesignStyle: "Scandinavian"}
	long := strings.Repeat("calm neutral textures ", 40)

	got := BuildImagePrompt(long, prefs)

	if len(got) > 600 {
		t.Fatalf("image prompt is %d bytes, expected the description snippet to be truncated", len(got))
	}
	if !strings.Contains(got, "calm neutral textures") {
		t.Fatalf("image prompt lost the description snippet:\n%s", got)
	}
}

func TestBuildImagePromptSkipsEmptyParts(t *testing.T) {
	prefs := domain.PreferenceSet{RoomType: "Bathroom", DesignStyle: "Traditional"}

	got := BuildImagePrompt("", prefs)

	if strings.Contains(got, ",  ,") || strings.Contains(got, "incorporating ,") {
		t.Fatalf("image prompt contains empty sections:\n%s", got)
	}
	if !strings.Contains(got, "Traditional style Bathroom") {
		t.Fatalf("image prompt missing room framing:\n%s", got)
	}
}
