package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/velium/velium/internal/core"
)

const searchBody = `{
  "collection": [
    {
      "id": "abc123",
      "song": {
        "name": "Test Song",
        "url": "https://aac.saavncdn.com/track.mp4",
        "duration": {"hours": 0, "minutes": 3, "seconds": 45},
        "img": {"big": "/api/art/big.jpg", "small": "/api/art/small.jpg"}
      },
      "author": {"name": "Test Artist"}
    },
    {
      "id": "def456",
      "song": {
        "name": "Opaque Song",
        "url": "https://example.com/page/12345",
        "duration": {"hours": 1, "minutes": 0, "seconds": 0},
        "img": {}
      },
      "author": {"name": "Other Artist"}
    }
  ]
}`

func TestSearch(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/api/search")
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil, nil)
	tracks, err := c.Search(context.Background(), "test song", "song", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery.Get("query") != "test song" {
		t.Errorf("query = %q, want %q", gotQuery.Get("query"), "test song")
	}
	if gotQuery.Get("limit") != "10" {
		t.Errorf("limit = %q, want %q", gotQuery.Get("limit"), "10")
	}
	if len(tracks) != 2 {
		t.Fatalf("len(tracks) = %d, want 2", len(tracks))
	}

	first := tracks[0]
	if first.ID != "abc123" {
		t.Errorf("ID = %q, want %q", first.ID, "abc123")
	}
	if first.Title != "Test Song" {
		t.Errorf("Title = %q, want %q", first.Title, "Test Song")
	}
	if first.Artist != "Test Artist" {
		t.Errorf("Artist = %q, want %q", first.Artist, "Test Artist")
	}
	if first.Duration != 3*time.Minute+45*time.Second {
		t.Errorf("Duration = %v, want 3m45s", first.Duration)
	}
	if first.Source != core.SourceHub {
		t.Errorf("Source = %q, want %q", first.Source, core.SourceHub)
	}
	// CDN host URLs stream directly.
	if first.StreamURL != "https://aac.saavncdn.com/track.mp4" {
		t.Errorf("StreamURL = %q", first.StreamURL)
	}
	// Relative artwork paths are joined to the hub base.
	if want := srv.URL + "/api/art/big.jpg"; first.ArtworkURL != want {
		t.Errorf("ArtworkURL = %q, want %q", first.ArtworkURL, want)
	}
}

func TestSearchOpaqueURLGoesThroughProxy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil, nil)
	tracks, err := c.Search(context.Background(), "q", "song", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	second := tracks[1]
	if !strings.HasPrefix(second.StreamURL, srv.URL+"/api/download?track_url=") {
		t.Errorf("StreamURL = %q, want proxy URL", second.StreamURL)
	}
	if second.ArtworkURL != core.PlaceholderArtwork {
		t.Errorf("ArtworkURL = %q, want placeholder", second.ArtworkURL)
	}
}

func TestSearchAppendsKind(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("query")
		w.Write([]byte(`{"collection": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil, nil)
	if _, err := c.Search(context.Background(), "daft punk", "album", 0); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got != "daft punk album" {
		t.Errorf("query = %q, want %q", got, "daft punk album")
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil, nil)
	if _, err := c.Search(context.Background(), "q", "song", 0); err == nil {
		t.Error("Search() error = nil, want error")
	}
}
