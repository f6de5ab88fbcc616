package layoutgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"layoutgen/domain"
	"layoutgen/imagegen"
	"layoutgen/textgen"
)

type fakeGenerator struct {
	completion string
	err        error
	prompts    []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.completion, nil
}

func (f *fakeGenerator) Provider() string { return "fake" }

type echoSource struct{}

func (echoSource) Resolve(_ context.Context, prompt string, _ domain.PreferenceSet) (imagegen.Candidate, error) {
	return imagegen.Candidate{Reference: "img://" + prompt, Origin: "echo"}, nil
}

func (echoSource) Name() string { return "echo" }

func testPrefs() domain.PreferenceSet {
	return domain.PreferenceSet{
		RoomType:         "Living Room",
		DesignStyle:      "Modern",
		BudgetRange:      "$5,000 - $15,000",
		SpaceSize:        "Medium",
		ColorPreferences: []string{"White", "Gray"},
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestPipelineGenerate(t *testing.T) {
	gen := &fakeGenerator{completion: "LAYOUT 1:\nSunlit open concept\nLAYOUT 2:\nCozy reading corner\nLAYOUT 3:\nGallery wall focus"}
	cascade := imagegen.NewCascade(imagegen.CascadeOptions{Sources: []imagegen.Source{echoSource{}}})
	stamp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := New(gen, cascade, Options{Now: func() time.Time { return stamp }, NewID: sequentialIDs()})

	results, err := p.Generate(context.Background(), testPrefs())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "Create 3 detailed home layout ideas") {
		t.Fatalf("layout prompt missing count framing: %q", gen.prompts[0])
	}
	if !strings.Contains(gen.prompts[0], "Living Room") {
		t.Fatalf("layout prompt missing room type: %q", gen.prompts[0])
	}

	wantDescriptions := []string{"Sunlit open concept", "Cozy reading corner", "Gallery wall focus"}
	for i, res := range results {
		if res.ID != fmt.Sprintf("id-%d", i+1) {
			t.Fatalf("results[%d].ID = %q, want %q", i, res.ID, fmt.Sprintf("id-%d", i+1))
		}
		if res.Description != wantDescriptions[i] {
			t.Fatalf("results[%d].Description = %q, want %q", i, res.Description, wantDescriptions[i])
		}
		if res.Title != wantDescriptions[i] {
			t.Fatalf("results[%d].Title = %q, want first line", i, res.Title)
		}
		if !strings.Contains(res.ImageReference, wantDescriptions[i]) {
			t.Fatalf("results[%d].ImageReference = %q, want prompt for its own layout", i, res.ImageReference)
		}
		if !res.GeneratedAt.Equal(stamp) {
			t.Fatalf("results[%d].GeneratedAt = %v, want %v", i, res.GeneratedAt, stamp)
		}
		if res.ProviderUsed != "fake" {
			t.Fatalf("results[%d].ProviderUsed = %q, want %q", i, res.ProviderUsed, "fake")
		}
		if res.SourcePreferences.RoomType != "Living Room" {
			t.Fatalf("results[%d] lost source preferences: %+v", i, res.SourcePreferences)
		}
	}
}

func TestPipelineGenerateClampsLayoutCount(t *testing.T) {
	var completion strings.Builder
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&completion, "LAYOUT %d:\nIdea number %d\n", i, i)
	}
	gen := &fakeGenerator{completion: completion.String()}
	cascade := imagegen.NewCascade(imagegen.CascadeOptions{Sources: []imagegen.Source{echoSource{}}})
	p := New(gen, cascade, Options{LayoutCount: 9})

	results, err := p.Generate(context.Background(), testPrefs())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(results) != MaxLayoutCount {
		t.Fatalf("len(results) = %d, want %d", len(results), MaxLayoutCount)
	}
	if !strings.Contains(gen.prompts[0], "Create 5 detailed home layout ideas") {
		t.Fatalf("layout prompt not clamped: %q", gen.prompts[0])
	}
}

func TestPipelineGenerateDefaultsLayoutCount(t *testing.T) {
	gen := &fakeGenerator{completion: "LAYOUT 1:\nOnly one"}
	cascade := imagegen.NewCascade(imagegen.CascadeOptions{Sources: []imagegen.Source{echoSource{}}})
	p := New(gen, cascade, Options{})

	if _, err := p.Generate(context.Background(), testPrefs()); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "Create 3 detailed home layout ideas") {
		t.Fatalf("layout prompt missing default count: %q", gen.prompts[0])
	}
}

func TestPipelineGenerateTextError(t *testing.T) {
	gen := &fakeGenerator{err: &textgen.Error{Provider: textgen.ProviderGemini, Err: errors.New("boom")}}
	p := New(gen, nil, Options{})

	_, err := p.Generate(context.Background(), testPrefs())
	if err == nil {
		t.Fatal("expected text generation error to surface")
	}
	var provErr *textgen.Error
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *textgen.Error, got %T", err)
	}
	if provErr.Provider != textgen.ProviderGemini {
		t.Fatalf("Provider = %q, want %q", provErr.Provider, textgen.ProviderGemini)
	}
}

func TestPipelineGenerateNoLayouts(t *testing.T) {
	gen := &fakeGenerator{completion: "   \n\t  "}
	p := New(gen, nil, Options{})

	if _, err := p.Generate(context.Background(), testPrefs()); !errors.Is(err, ErrNoLayouts) {
		t.Fatalf("expected ErrNoLayouts, got %v", err)
	}
}

func TestPipelineGenerateInvalidPreferences(t *testing.T) {
	gen := &fakeGenerator{completion: "LAYOUT 1:\nIdea"}
	p := New(gen, nil, Options{})

	_, err := p.Generate(context.Background(), domain.PreferenceSet{RoomType: "Living Room"})
	if !errors.Is(err, domain.ErrInvalidPreferences) {
		t.Fatalf("expected ErrInvalidPreferences, got %v", err)
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("generator called %d times before validation, want 0", len(gen.prompts))
	}
}

func TestPipelineGenerateNilGenerator(t *testing.T) {
	p := New(nil, nil, Options{})
	if _, err := p.Generate(context.Background(), testPrefs()); !errors.Is(err, ErrNoGenerator) {
		t.Fatalf("expected ErrNoGenerator, got %v", err)
	}
}

func TestPipelineGenerateCuratedFallback(t *testing.T) {
	gen := &fakeGenerator{completion: "LAYOUT 1:\nIdea"}
	p := New(gen, nil, Options{Now: func() time.Time { return time.Unix(1000, 0) }})

	results, err := p.Generate(context.Background(), testPrefs())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if !strings.Contains(results[0].ImageReference, "pexels.com") {
		t.Fatalf("ImageReference = %q, want curated catalog url", results[0].ImageReference)
	}
}

func TestDeriveTitle(t *testing.T) {
	prefs := testPrefs()
	cases := []struct {
		name        string
		description string
		ordinal     int
		want        string
	}{
		{"plain first line", "Sunlit Corner\nLong body text follows.", 1, "Sunlit Corner"},
		{"markdown trimmed", "**Gallery Wall Focus**\ndetails", 1, "Gallery Wall Focus"},
		{"skips blank lines", "\n   \n- Reading Nook -\nbody", 2, "Reading Nook"},
		{"long line clamped", strings.Repeat("a", 120), 2, strings.Repeat("a", 80)},
		{"clamp counts runes", strings.Repeat("ß", 120), 3, strings.Repeat("ß", 80)},
		{"clamp drops trailing space", strings.Repeat("x", 79) + " yz", 1, strings.Repeat("x", 79)},
		{"marker-only falls back", "***\n---", 4, "Modern Living Room Layout 4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveTitle(tc.description, prefs, tc.ordinal); got != tc.want {
				t.Fatalf("deriveTitle = %q, want %q", got, tc.want)
			}
		})
	}
}
