package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"lobbywatch/internal/core"
	"lobbywatch/internal/domain"
)

// View is the materialized set of active lobbies, keyed by game id.
type View map[domain.GameID]*domain.Lobby

// ChangeKind classifies what an applied event did to the view, which is all
// the renderer needs to know.
type ChangeKind int

const (
	ChangeNone ChangeKind = iota
	ChangeCreated
	ChangeUpdated
	ChangeDeleted
)

// Change describes the effect of one applied event.
type Change struct {
	Kind ChangeKind
	Game domain.GameID
}

// ResolveLabel maps a user id to a roster entry. Implementations never fail:
// unresolvable names degrade to the sentinel label.
type ResolveLabel func(domain.UserID) domain.PlayerRef

// FetchDetail fills in the fields a creation event does not carry.
type FetchDetail func(domain.GameID) (core.GameSnapshot, error)

// ApplyDeps are the synchronous lookups the applier is allowed to make.
type ApplyDeps struct {
	Resolve ResolveLabel
	Detail  FetchDetail
}

// Apply applies one push event to the view in place and reports what
// changed. The caller must hold the view's write lock.
//
// Every branch tolerates re-delivery: a duplicate or stale event returns a
// benign error and leaves the view exactly as it was. Validation happens
// before any mutation, so an error always means "untouched".
func Apply(view View, ev core.Event, deps ApplyDeps) (Change, error) {
	switch ev := ev.(type) {
	case core.GameCreated:
		// A second delivery must not overwrite the record: joins and
		// leaves may have landed between the two copies.
		if _, ok := view[ev.GameID]; ok {
			return Change{}, fmt.Errorf("game %s: %w", ev.GameID, ErrDuplicateDelivery)
		}
		lobby := &domain.Lobby{
			ID:   ev.GameID,
			Name: ev.Name,
			Map:  ev.Map,
			Mode: ev.Mode,
		}
		var hostID domain.UserID
		if snap, err := deps.Detail(ev.GameID); err != nil {
			// Keep the lobby with what the event carried; the next
			// resync heals capacity and description.
			log.Warn().Str("module", "app.applier").Str("game", string(ev.GameID)).
				Err(err).Msg("detail fetch failed, inserting partial record")
		} else {
			lobby.Description = snap.Description
			lobby.MaxPlayers = snap.MaxPlayers
			hostID = snap.HostID
		}
		lobby.Players = []domain.PlayerRef{domain.LabelFor(hostID, ev.HostName)}
		view[ev.GameID] = lobby
		return Change{Kind: ChangeCreated, Game: ev.GameID}, nil

	case core.PlayerJoined:
		lobby, ok := view[ev.GameID]
		if !ok {
			return Change{}, fmt.Errorf("game %s: %w", ev.GameID, ErrUnknownGame)
		}
		if !lobby.AddPlayer(deps.Resolve(ev.UserID)) {
			// Re-delivered join; appending would double the roster.
			return Change{}, fmt.Errorf("game %s user %s: %w", ev.GameID, ev.UserID, ErrDuplicateDelivery)
		}
		return Change{Kind: ChangeUpdated, Game: ev.GameID}, nil

	case core.PlayerLeft:
		lobby, ok := view[ev.GameID]
		if !ok {
			return Change{}, fmt.Errorf("game %s: %w", ev.GameID, ErrUnknownGame)
		}
		// Removal is by user id, never by rebuilding the display label
		// and matching on it; labels are display-only.
		if !lobby.RemovePlayer(ev.UserID) {
			return Change{}, fmt.Errorf("game %s user %s: %w", ev.GameID, ev.UserID, ErrPlayerNotPresent)
		}
		return Change{Kind: ChangeUpdated, Game: ev.GameID}, nil

	case core.NewRound:
		lobby, ok := view[ev.GameID]
		if !ok {
			return Change{}, fmt.Errorf("game %s: %w", ev.GameID, ErrUnknownGame)
		}
		lobby.Map = ev.Map
		lobby.Mode = ev.Mode
		return Change{Kind: ChangeUpdated, Game: ev.GameID}, nil

	case core.GameDeleted:
		if _, ok := view[ev.GameID]; !ok {
			return Change{}, fmt.Errorf("game %s: %w", ev.GameID, ErrUnknownGame)
		}
		delete(view, ev.GameID)
		return Change{Kind: ChangeDeleted, Game: ev.GameID}, nil

	default:
		return Change{}, fmt.Errorf("unhandled event type %T", ev)
	}
}
