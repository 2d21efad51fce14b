package core

import "time"

// Playlist is a named, ordered collection of tracks.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tracks    []Track   `json:"tracks"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Library is the user's persisted collection: liked songs plus playlists.
// It is stored and replaced as a single opaque snapshot.
type Library struct {
	LikedSongs []Track    `json:"liked_songs"`
	Playlists  []Playlist `json:"playlists"`
}

// PlaylistByID returns the playlist with the given ID, or nil.
func (l *Library) PlaylistByID(id string) *Playlist {
	for i := range l.Playlists {
		if l.Playlists[i].ID == id {
			return &l.Playlists[i]
		}
	}
	return nil
}

// PlaylistByName returns the first playlist with the given name, or nil.
func (l *Library) PlaylistByName(name string) *Playlist {
	for i := range l.Playlists {
		if l.Playlists[i].Name == name {
			return &l.Playlists[i]
		}
	}
	return nil
}

// IsLiked reports whether a track with the same identity is in the liked list.
func (l *Library) IsLiked(t Track) bool {
	for _, s := range l.LikedSongs {
		if s.SameAs(t) {
			return true
		}
	}
	return false
}
