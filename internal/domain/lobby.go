// Package domain contains entities without transport or lifecycle logic.
package domain

import "sort"

type (
	GameID string
	UserID string
)

// PlayerRef is one roster slot. The user id is the identity used for all
// membership checks; the label is only ever display material.
type PlayerRef struct {
	UserID UserID `json:"user_id"`
	Label  string `json:"label"`
}

// Lobby is one active game tracked by the view. Players keeps join order.
// The player count is derived from Players so it cannot drift.
type Lobby struct {
	ID          GameID      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Map         string      `json:"map"`
	Mode        string      `json:"mode"`
	Players     []PlayerRef `json:"players"`
	MaxPlayers  int         `json:"max_players"`
}

func (l *Lobby) PlayerCount() int { return len(l.Players) }

func (l *Lobby) HasPlayer(id UserID) bool {
	for _, p := range l.Players {
		if p.UserID == id {
			return true
		}
	}
	return false
}

// AddPlayer appends ref to the roster. It reports false if a ref with the
// same user id is already present; the roster is left untouched in that case.
func (l *Lobby) AddPlayer(ref PlayerRef) bool {
	if l.HasPlayer(ref.UserID) {
		return false
	}
	l.Players = append(l.Players, ref)
	return true
}

// RemovePlayer removes the roster entry with the given user id, preserving
// the order of the rest. It reports false if no such entry exists.
func (l *Lobby) RemovePlayer(id UserID) bool {
	for i, p := range l.Players {
		if p.UserID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with the receiver.
func (l *Lobby) Clone() Lobby {
	out := *l
	out.Players = make([]PlayerRef, len(l.Players))
	copy(out.Players, l.Players)
	return out
}

// SortLobbies orders lobbies by id so renders are deterministic.
func SortLobbies(ls []Lobby) {
	sort.Slice(ls, func(i, j int) bool { return ls[i].ID < ls[j].ID })
}
