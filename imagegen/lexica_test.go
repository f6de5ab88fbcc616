package imagegen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"layoutgen/domain"
)

func TestLexicaResolve(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "scandinavian kitchen" {
			t.Fatalf("q = %q, want %q", got, "scandinavian kitchen")
		}
		_, _ = w.Write([]byte(`{"images":[{"src":""},{"src":"https://image.lexica.art/full/abc.jpg"}]}`))
	}))
	defer ts.Close()

	src := NewLexicaSource(LexicaOptions{BaseURL: ts.URL})
	got, err := src.Resolve(context.Background(), "scandinavian kitchen", domain.PreferenceSet{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.Origin != SourceLexica {
		t.Fatalf("Origin = %q, want %q", got.Origin, SourceLexica)
	}
	if got.Reference != "https://image.lexica.art/full/abc.jpg" {
		t.Fatalf("Reference = %q, want first non-empty src", got.Reference)
	}
}

func TestLexicaResolveNoImages(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"images":[]}`))
	}))
	defer ts.Close()

	src := NewLexicaSource(LexicaOptions{BaseURL: ts.URL})
	if _, err := src.Resolve(context.Background(), "prompt", domain.PreferenceSet{}); err == nil {
		t.Fatal("expected error when search returns nothing")
	}
}

func TestLexicaResolveServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	src := NewLexicaSource(LexicaOptions{BaseURL: ts.URL})
	if _, err := src.Resolve(context.Background(), "prompt", domain.PreferenceSet{}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
