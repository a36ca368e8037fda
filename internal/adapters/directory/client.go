// Package directory is the REST client for the remote lobby directory. It
// owns the wire shapes; callers only ever see core.GameSnapshot.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lobbywatch/internal/core"
	"lobbywatch/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given API base URL, e.g.
// "https://api.mgo1.savemgo.com/api/v1". The timeout is a hard cap per
// request; callers usually pass a tighter context deadline as well.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Every directory response wraps its payload in a data envelope.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type gameJSON struct {
	ID           json.Number `json:"id"`
	CurrentRound int         `json:"current_round"`
	HostID       json.Number `json:"user_id"`
	Options      struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		MaxPlayers  int    `json:"max_players"`
		Rules       []struct {
			Map  string `json:"map_string"`
			Mode string `json:"mode_string"`
		} `json:"rules"`
	} `json:"options"`
	Players []struct {
		UserID json.Number `json:"user_id"`
	} `json:"players"`
}

func (g gameJSON) toSnapshot() core.GameSnapshot {
	snap := core.GameSnapshot{
		ID:          domain.GameID(g.ID.String()),
		Name:        g.Options.Name,
		Description: domain.Capitalize(g.Options.Description),
		MaxPlayers:  g.Options.MaxPlayers,
		HostID:      domain.UserID(g.HostID.String()),
	}
	// The live round indexes into the rules list.
	if r := g.CurrentRound; r >= 0 && r < len(g.Options.Rules) {
		snap.Map = domain.TitleCase(g.Options.Rules[r].Map)
		snap.Mode = domain.TitleCase(g.Options.Rules[r].Mode)
	}
	for _, p := range g.Players {
		snap.PlayerIDs = append(snap.PlayerIDs, domain.UserID(p.UserID.String()))
	}
	return snap
}

// ListActiveGames fetches the full snapshot of active lobbies. A null data
// field means no lobbies, not an error.
func (c *Client) ListActiveGames(ctx context.Context) ([]core.GameSnapshot, error) {
	var games []gameJSON
	if err := c.get(ctx, "/games/list", &games); err != nil {
		return nil, err
	}
	out := make([]core.GameSnapshot, 0, len(games))
	for _, g := range games {
		out = append(out, g.toSnapshot())
	}
	return out, nil
}

func (c *Client) GetGameDetail(ctx context.Context, id domain.GameID) (core.GameSnapshot, error) {
	var game gameJSON
	if err := c.get(ctx, "/games/"+string(id), &game); err != nil {
		return core.GameSnapshot{}, err
	}
	if game.ID.String() == "" {
		return core.GameSnapshot{}, fmt.Errorf("game %s: %w", id, core.ErrNotFound)
	}
	return game.toSnapshot(), nil
}

func (c *Client) ResolveDisplayName(ctx context.Context, id domain.UserID) (string, error) {
	var user struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.get(ctx, "/user/"+string(id), &user); err != nil {
		return "", err
	}
	return user.DisplayName, nil
}

// OnlinePlayerCount returns the aggregate number of connected players,
// reported on the first entry of the lobby list.
func (c *Client) OnlinePlayerCount(ctx context.Context) (int, error) {
	var lobbies []struct {
		Players int `json:"players"`
	}
	if err := c.get(ctx, "/lobby/list", &lobbies); err != nil {
		return 0, err
	}
	if len(lobbies) == 0 {
		return 0, fmt.Errorf("lobby list: empty response")
	}
	return lobbies[0].Players, nil
}

// get performs one GET and unmarshals the data envelope into out. A null or
// absent payload leaves out untouched.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("GET %s: %w", path, core.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("GET %s: read body: %w", path, err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("GET %s: parse envelope: %w", path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("GET %s: parse payload: %w", path, err)
	}
	return nil
}
