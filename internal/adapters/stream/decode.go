package stream

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"lobbywatch/internal/core"
	"lobbywatch/internal/domain"
)

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// decodeFrame parses one raw frame into a core event. Frames for event
// kinds we did not subscribe to decode to (nil, nil) and are skipped.
func decodeFrame(data []byte) (core.Event, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch f.Event {
	case "game_created":
		var d struct {
			GameID json.Number `json:"game_id"`
			Name   string      `json:"name"`
			Host   string      `json:"host"`
			Rules  []struct {
				Map  string `json:"Map"`
				Mode string `json:"Mode"`
			} `json:"rules"`
		}
		if err := json.Unmarshal(f.Data, &d); err != nil {
			return nil, fmt.Errorf("game_created payload: %w", err)
		}
		ev := core.GameCreated{
			GameID:   domain.GameID(d.GameID.String()),
			Name:     d.Name,
			HostName: repairEscapes(d.Host),
		}
		if len(d.Rules) > 0 {
			ev.Map = domain.TitleCase(d.Rules[0].Map)
			ev.Mode = domain.TitleCase(d.Rules[0].Mode)
		}
		return ev, nil

	case "game_player_joined", "game_player_left":
		var d struct {
			GameID json.Number `json:"game_id"`
			UserID json.Number `json:"user_id"`
		}
		if err := json.Unmarshal(f.Data, &d); err != nil {
			return nil, fmt.Errorf("%s payload: %w", f.Event, err)
		}
		if f.Event == "game_player_joined" {
			return core.PlayerJoined{GameID: domain.GameID(d.GameID.String()), UserID: domain.UserID(d.UserID.String())}, nil
		}
		return core.PlayerLeft{GameID: domain.GameID(d.GameID.String()), UserID: domain.UserID(d.UserID.String())}, nil

	case "game_new_round":
		var d struct {
			GameID json.Number `json:"game_id"`
			Map    string      `json:"map"`
			Mode   string      `json:"mode"`
		}
		if err := json.Unmarshal(f.Data, &d); err != nil {
			return nil, fmt.Errorf("game_new_round payload: %w", err)
		}
		return core.NewRound{
			GameID: domain.GameID(d.GameID.String()),
			Map:    domain.TitleCase(d.Map),
			Mode:   domain.TitleCase(d.Mode),
		}, nil

	case "game_deleted":
		var d struct {
			GameID json.Number `json:"game_id"`
		}
		if err := json.Unmarshal(f.Data, &d); err != nil {
			return nil, fmt.Errorf("game_deleted payload: %w", err)
		}
		return core.GameDeleted{GameID: domain.GameID(d.GameID.String())}, nil

	default:
		log.Debug().Str("module", "stream").Str("event", f.Event).Msg("ignoring unrecognized event kind")
		return nil, nil
	}
}

// repairEscapes undoes the double-encoded \uXXXX sequences the stream emits
// for non-ASCII display names. Directory API responses are already UTF-8
// and must never go through this.
func repairEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	quoted := `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	un, err := strconv.Unquote(quoted)
	if err != nil {
		return s
	}
	return un
}
