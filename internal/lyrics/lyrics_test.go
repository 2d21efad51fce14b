package lyrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	velerrors "github.com/velium/velium/internal/errors"
)

func TestCleanQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Song Title (Remastered 2011)", "Song Title"},
		{"Song Title [Live]", "Song Title"},
		{"Title (feat. Someone) [Deluxe]", "Title"},
		{"Plain Title", "Plain Title"},
		{"  Spaced   Out  ", "Spaced Out"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanQuery(tc.in); got != tc.want {
			t.Errorf("CleanQuery(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFetch(t *testing.T) {
	var gotTitle, gotArtist string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.URL.Query().Get("title")
		gotArtist = r.URL.Query().Get("artist")
		w.Write([]byte(`{"data": {"track_name": "Song", "artist_name": "Artist", "lyrics": "la la la"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	res, err := c.Fetch(context.Background(), "Song (Remastered)", "Artist")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotTitle != "Song" {
		t.Errorf("title = %q, want %q", gotTitle, "Song")
	}
	if gotArtist != "Artist" {
		t.Errorf("artist = %q, want %q", gotArtist, "Artist")
	}
	if res.Lyrics != "la la la" {
		t.Errorf("Lyrics = %q", res.Lyrics)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	_, err := c.Fetch(context.Background(), "Unknown", "Nobody")
	if !errors.Is(err, velerrors.ErrLyricsNotFound) {
		t.Errorf("Fetch() error = %v, want ErrLyricsNotFound", err)
	}
}

func TestFetchEmptyLyricsIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"track_name": "Song", "lyrics": ""}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	_, err := c.Fetch(context.Background(), "Song", "Artist")
	if !errors.Is(err, velerrors.ErrLyricsNotFound) {
		t.Errorf("Fetch() error = %v, want ErrLyricsNotFound", err)
	}
}
