package app

import (
	"sync"

	"lobbywatch/internal/core"
	"lobbywatch/internal/domain"
)

// ViewStore owns the materialized lobby view. All mutation runs under one
// write lock, so per-event application and a full rebuild can never
// interleave; a rebuild assembles its replacement off to the side and swaps
// it in whole through ReplaceAll.
type ViewStore struct {
	mu    sync.RWMutex
	games View
}

func NewViewStore() *ViewStore {
	return &ViewStore{games: make(View)}
}

// Mutate applies one event through the applier.
func (s *ViewStore) Mutate(ev core.Event, deps ApplyDeps) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Apply(s.games, ev, deps)
}

// ReplaceAll atomically swaps the whole view for the given records. Used by
// the rebuild path only.
func (s *ViewStore) ReplaceAll(lobbies []domain.Lobby) {
	next := make(View, len(lobbies))
	for i := range lobbies {
		l := lobbies[i].Clone()
		next[l.ID] = &l
	}
	s.mu.Lock()
	s.games = next
	s.mu.Unlock()
}

// Snapshot returns an independent copy of every record, ordered by game id
// so downstream renders are deterministic.
func (s *ViewStore) Snapshot() []domain.Lobby {
	s.mu.RLock()
	out := make([]domain.Lobby, 0, len(s.games))
	for _, l := range s.games {
		out = append(out, l.Clone())
	}
	s.mu.RUnlock()
	domain.SortLobbies(out)
	return out
}

// Get returns a copy of one record.
func (s *ViewStore) Get(id domain.GameID) (domain.Lobby, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.games[id]
	if !ok {
		return domain.Lobby{}, false
	}
	return l.Clone(), true
}

func (s *ViewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
