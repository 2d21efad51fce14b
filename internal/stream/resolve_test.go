package stream

import (
	"errors"
	"testing"

	velerrors "github.com/velium/velium/internal/errors"
)

func TestPickVariantPrefers320(t *testing.T) {
	variants := []Variant{
		{Quality: "96kbps", URL: "https://cdn/96.mp4"},
		{Quality: "320kbps", URL: "https://cdn/320.mp4"},
		{Quality: "160kbps", URL: "https://cdn/160.mp4"},
	}
	if got := PickVariant(variants); got != "https://cdn/320.mp4" {
		t.Errorf("PickVariant = %q, want 320kbps entry", got)
	}
}

func TestPickVariantFallsBackToLast(t *testing.T) {
	variants := []Variant{
		{Quality: "48kbps", URL: "https://cdn/48.mp4"},
		{Quality: "96kbps", URL: "https://cdn/96.mp4"},
	}
	if got := PickVariant(variants); got != "https://cdn/96.mp4" {
		t.Errorf("PickVariant = %q, want last entry", got)
	}

	if got := PickVariant(nil); got != "" {
		t.Errorf("PickVariant(nil) = %q, want empty", got)
	}
}

func TestResolvePrecedence(t *testing.T) {
	r := Resolver{ProxyBase: "https://hub.example.com"}

	// Tier 1: variant list wins over everything else.
	got, err := r.Resolve(Source{
		Variants:  []Variant{{Quality: "320kbps", URL: "https://cdn/320.mp4"}},
		Explicit:  "https://cdn/explicit.mp3",
		Candidate: "https://cdn/candidate.mp3",
	})
	if err != nil || got != "https://cdn/320.mp4" {
		t.Errorf("Resolve = %q, %v, want variant URL", got, err)
	}

	// Explicit string beats the candidate.
	got, err = r.Resolve(Source{
		Explicit:  "https://cdn/explicit.mp3",
		Candidate: "https://cdn/candidate.mp3",
	})
	if err != nil || got != "https://cdn/explicit.mp3" {
		t.Errorf("Resolve = %q, %v, want explicit URL", got, err)
	}

	// Tier 2: recognizable direct URL used as-is.
	got, err = r.Resolve(Source{Candidate: "https://aac.saavncdn.com/track"})
	if err != nil || got != "https://aac.saavncdn.com/track" {
		t.Errorf("Resolve = %q, %v, want CDN URL as-is", got, err)
	}

	got, err = r.Resolve(Source{Candidate: "https://somewhere/x.MP3"})
	if err != nil || got != "https://somewhere/x.MP3" {
		t.Errorf("Resolve = %q, %v, extension match should be case-insensitive", got, err)
	}

	// Tier 3: opaque URL goes through the proxy.
	got, err = r.Resolve(Source{Candidate: "https://hub/track/123"})
	want := "https://hub.example.com/api/download?track_url=https%3A%2F%2Fhub%2Ftrack%2F123"
	if err != nil || got != want {
		t.Errorf("Resolve = %q, %v, want %q", got, err, want)
	}
}

func TestResolveNothing(t *testing.T) {
	r := Resolver{ProxyBase: "https://hub.example.com"}
	_, err := r.Resolve(Source{})
	if !errors.Is(err, velerrors.ErrNoStreamURL) {
		t.Errorf("Resolve on empty source = %v, want ErrNoStreamURL", err)
	}
}
