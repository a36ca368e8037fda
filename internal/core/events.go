package core

import "lobbywatch/internal/domain"

// Event is the closed set of push notifications the stream can carry.
// The applier switches exhaustively over these types, so adding a kind
// without handling it shows up immediately instead of as a silently
// dropped frame.
type Event interface{ isEvent() }

// GameCreated announces a new lobby. The stream only carries the host's
// display name and the first round; capacity, description and the host's
// user id live on the detail endpoint.
type GameCreated struct {
	GameID   domain.GameID
	Name     string
	HostName string
	Map      string
	Mode     string
}

type PlayerJoined struct {
	GameID domain.GameID
	UserID domain.UserID
}

type PlayerLeft struct {
	GameID domain.GameID
	UserID domain.UserID
}

// NewRound reports that a lobby rotated to a new map/mode.
type NewRound struct {
	GameID domain.GameID
	Map    string
	Mode   string
}

type GameDeleted struct {
	GameID domain.GameID
}

func (GameCreated) isEvent()  {}
func (PlayerJoined) isEvent() {}
func (PlayerLeft) isEvent()   {}
func (NewRound) isEvent()     {}
func (GameDeleted) isEvent()  {}
