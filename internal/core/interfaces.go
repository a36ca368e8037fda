// Package core holds the contracts between the reconciliation engine and its
// external collaborators. Adapters own the wire formats; nothing here knows
// about HTTP, websockets or Discord.
package core

import (
	"context"
	"errors"

	"lobbywatch/internal/domain"
)

// ErrNotFound reports a game or user the directory does not know about.
var ErrNotFound = errors.New("not found")

// GameSnapshot is the directory's authoritative description of one lobby,
// as returned by the list and detail endpoints.
type GameSnapshot struct {
	ID          domain.GameID
	Name        string
	Description string
	Map         string
	Mode        string
	MaxPlayers  int
	HostID      domain.UserID
	PlayerIDs   []domain.UserID
}

// Directory is the remote lobby directory service. All calls are plain
// request/response; implementations must honor ctx deadlines.
type Directory interface {
	// ListActiveGames returns the full set of currently active lobbies.
	ListActiveGames(ctx context.Context) ([]GameSnapshot, error)
	// GetGameDetail fetches one lobby's detail record; creation events do
	// not carry capacity or description, this does.
	GetGameDetail(ctx context.Context, id domain.GameID) (GameSnapshot, error)
	// ResolveDisplayName looks up a user's display name. Callers substitute
	// the sentinel label on any failure or empty result.
	ResolveDisplayName(ctx context.Context, id domain.UserID) (string, error)
	// OnlinePlayerCount returns the aggregate number of connected players.
	OnlinePlayerCount(ctx context.Context) (int, error)
}

// SurfaceID names one display surface (a chat channel).
type SurfaceID string

// RenderedView is the engine's description of one lobby for display. The
// sink decides what it looks like on the wire.
type RenderedView struct {
	GameID      domain.GameID
	Title       string
	Description string
	Map         string
	Mode        string
	Players     []domain.PlayerRef
	MaxPlayers  int
}

// Sink publishes rendered lobbies to display surfaces.
type Sink interface {
	Surfaces() []SurfaceID
	// ClearSurface removes all prior output from a surface.
	ClearSurface(ctx context.Context, id SurfaceID) error
	// Render publishes one lobby to a surface.
	Render(ctx context.Context, id SurfaceID, view RenderedView) error
	// SetPlayerCount updates the surface's aggregate player counter.
	SetPlayerCount(ctx context.Context, id SurfaceID, n int) error
	// Announce posts a plain status message to a surface.
	Announce(ctx context.Context, id SurfaceID, text string) error
}
