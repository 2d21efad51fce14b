package library

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/errors"
)

// Service owns the in-memory library and writes the whole snapshot back
// to the store on every mutation.
type Service struct {
	mu     sync.Mutex
	store  *Store
	lib    *core.Library
	logger *log.Logger
}

// NewService loads the library snapshot and returns a service over it.
func NewService(store *Store, logger *log.Logger) (*Service, error) {
	lib, err := store.Load()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{store: store, lib: lib, logger: logger}, nil
}

// Library returns a copy of the current library snapshot.
func (s *Service) Library() core.Library {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := core.Library{
		LikedSongs: append([]core.Track(nil), s.lib.LikedSongs...),
		Playlists:  make([]core.Playlist, len(s.lib.Playlists)),
	}
	for i, pl := range s.lib.Playlists {
		out.Playlists[i] = pl
		out.Playlists[i].Tracks = append([]core.Track(nil), pl.Tracks...)
	}
	return out
}

// IsLiked reports whether a track with the same identity is liked.
func (s *Service) IsLiked(t core.Track) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lib.IsLiked(t)
}

// LikedSongs returns a copy of the liked songs, newest first.
func (s *Service) LikedSongs() []core.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Track(nil), s.lib.LikedSongs...)
}

// ToggleLike likes an unliked track and unlikes a liked one, matching by
// track identity rather than object equality. New likes go to the front
// of the list. Returns the resulting liked state.
func (s *Service) ToggleLike(t core.Track) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.lib.LikedSongs {
		if existing.SameAs(t) {
			s.lib.LikedSongs = append(s.lib.LikedSongs[:i], s.lib.LikedSongs[i+1:]...)
			return false, s.persistLocked()
		}
	}

	s.lib.LikedSongs = append([]core.Track{t}, s.lib.LikedSongs...)
	return true, s.persistLocked()
}

// CreatePlaylist creates an empty playlist with a fresh ID.
func (s *Service) CreatePlaylist(name string) (core.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl := core.Playlist{
		ID:        uuid.New().String(),
		Name:      name,
		UpdatedAt: time.Now(),
	}
	s.lib.Playlists = append(s.lib.Playlists, pl)
	return pl, s.persistLocked()
}

// Playlists returns a copy of all playlists.
func (s *Service) Playlists() []core.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Playlist, len(s.lib.Playlists))
	for i, pl := range s.lib.Playlists {
		out[i] = pl
		out[i].Tracks = append([]core.Track(nil), pl.Tracks...)
	}
	return out
}

// Playlist returns the playlist with the given ID or name.
func (s *Service) Playlist(idOrName string) (core.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl := s.lib.PlaylistByID(idOrName)
	if pl == nil {
		pl = s.lib.PlaylistByName(idOrName)
	}
	if pl == nil {
		return core.Playlist{}, errors.ErrNotFound
	}
	out := *pl
	out.Tracks = append([]core.Track(nil), pl.Tracks...)
	return out, nil
}

// AddToPlaylist appends a track, rejecting duplicates by identity.
func (s *Service) AddToPlaylist(idOrName string, t core.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl := s.findLocked(idOrName)
	if pl == nil {
		return errors.ErrNotFound
	}
	for _, existing := range pl.Tracks {
		if existing.SameAs(t) {
			return errors.ErrDuplicateTrack
		}
	}
	pl.Tracks = append(pl.Tracks, t)
	pl.UpdatedAt = time.Now()
	return s.persistLocked()
}

// RemoveFromPlaylist removes the track matching by identity.
func (s *Service) RemoveFromPlaylist(idOrName string, t core.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl := s.findLocked(idOrName)
	if pl == nil {
		return errors.ErrNotFound
	}
	for i, existing := range pl.Tracks {
		if existing.SameAs(t) {
			pl.Tracks = append(pl.Tracks[:i], pl.Tracks[i+1:]...)
			pl.UpdatedAt = time.Now()
			return s.persistLocked()
		}
	}
	return errors.ErrNotFound
}

// RenamePlaylist changes a playlist's name.
func (s *Service) RenamePlaylist(idOrName, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl := s.findLocked(idOrName)
	if pl == nil {
		return errors.ErrNotFound
	}
	pl.Name = name
	pl.UpdatedAt = time.Now()
	return s.persistLocked()
}

// DeletePlaylist removes a playlist entirely.
func (s *Service) DeletePlaylist(idOrName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lib.Playlists {
		if s.lib.Playlists[i].ID == idOrName || s.lib.Playlists[i].Name == idOrName {
			s.lib.Playlists = append(s.lib.Playlists[:i], s.lib.Playlists[i+1:]...)
			return s.persistLocked()
		}
	}
	return errors.ErrNotFound
}

func (s *Service) findLocked(idOrName string) *core.Playlist {
	if pl := s.lib.PlaylistByID(idOrName); pl != nil {
		return pl
	}
	return s.lib.PlaylistByName(idOrName)
}

func (s *Service) persistLocked() error {
	if err := s.store.Save(s.lib); err != nil {
		s.logger.Error("failed to persist library", "err", err)
		return err
	}
	return nil
}
