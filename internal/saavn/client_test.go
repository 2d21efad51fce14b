package saavn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/velium/velium/internal/core"
)

const searchBody = `{
  "data": {
    "results": [
      {
        "id": "sv001",
        "name": "Quality Song",
        "primaryArtists": "Artist One",
        "album": {"name": "First Album"},
        "duration": "225",
        "image": [
          {"quality": "50x50", "link": "https://img.test/50.jpg"},
          {"quality": "500x500", "link": "https://img.test/500.jpg"}
        ],
        "downloadUrl": [
          {"quality": "96kbps", "link": "https://cdn.test/96.mp4"},
          {"quality": "320kbps", "link": "https://cdn.test/320.mp4"}
        ]
      },
      {
        "id": "sv002",
        "name": "Legacy Song",
        "primaryArtists": "Artist Two",
        "album": {"name": ""},
        "duration": 180,
        "image": "https://img.test/flat.jpg",
        "downloadUrl": "https://cdn.test/legacy.mp4"
      }
    ]
  }
}`

func TestSearch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := New(srv.URL, "https://proxy.test", srv.Client(), nil, nil)
	tracks, err := c.Search(context.Background(), "quality", "song", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotPath != "/search/songs" {
		t.Errorf("path = %q, want %q", gotPath, "/search/songs")
	}
	if len(tracks) != 2 {
		t.Fatalf("len(tracks) = %d, want 2", len(tracks))
	}

	first := tracks[0]
	if first.StreamURL != "https://cdn.test/320.mp4" {
		t.Errorf("StreamURL = %q, want 320kbps variant", first.StreamURL)
	}
	if first.ArtworkURL != "https://img.test/500.jpg" {
		t.Errorf("ArtworkURL = %q, want last image link", first.ArtworkURL)
	}
	if first.Duration != 225*time.Second {
		t.Errorf("Duration = %v, want 3m45s", first.Duration)
	}
	if first.Album != "First Album" {
		t.Errorf("Album = %q, want %q", first.Album, "First Album")
	}
	if first.Source != core.SourceSaavn {
		t.Errorf("Source = %q, want %q", first.Source, core.SourceSaavn)
	}

	second := tracks[1]
	if second.StreamURL != "https://cdn.test/legacy.mp4" {
		t.Errorf("StreamURL = %q, want legacy URL", second.StreamURL)
	}
	if second.ArtworkURL != "https://img.test/flat.jpg" {
		t.Errorf("ArtworkURL = %q, want flat image URL", second.ArtworkURL)
	}
	if second.Duration != 3*time.Minute {
		t.Errorf("Duration = %v, want 3m", second.Duration)
	}
}

func TestSearchLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := New(srv.URL, "", srv.Client(), nil, nil)
	tracks, err := c.Search(context.Background(), "q", "song", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(tracks) != 1 {
		t.Errorf("len(tracks) = %d, want 1", len(tracks))
	}
}

func TestDataAcceptsBareArray(t *testing.T) {
	var sr SearchResponse
	body := `{"data": [{"id": "x1", "name": "Bare", "duration": "10"}]}`
	if err := json.Unmarshal([]byte(body), &sr); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(sr.Data.Results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(sr.Data.Results))
	}
	if sr.Data.Results[0].Name != "Bare" {
		t.Errorf("Name = %q, want %q", sr.Data.Results[0].Name, "Bare")
	}
}

func TestSecondsAcceptsStringAndNumber(t *testing.T) {
	cases := []struct {
		in   string
		want Seconds
	}{
		{`"90"`, 90},
		{`90`, 90},
		{`null`, 0},
		{`""`, 0},
	}
	for _, tc := range cases {
		var s Seconds
		if err := json.Unmarshal([]byte(tc.in), &s); err != nil {
			t.Errorf("Unmarshal(%s) error = %v", tc.in, err)
			continue
		}
		if s != tc.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tc.in, s, tc.want)
		}
	}
}

func TestNoDownloadSourceIsUnplayable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"results": [{"id": "x", "name": "No Stream", "duration": "10"}]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", srv.Client(), nil, nil)
	tracks, err := c.Search(context.Background(), "q", "song", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if tracks[0].Playable() {
		t.Errorf("Playable() = true, want false")
	}
	if tracks[0].ArtworkURL != core.PlaceholderArtwork {
		t.Errorf("ArtworkURL = %q, want placeholder", tracks[0].ArtworkURL)
	}
}
