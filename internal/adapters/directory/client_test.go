package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lobbywatch/internal/core"
	"lobbywatch/internal/domain"
)

const listFixture = `{"data": [
  {
    "id": 101,
    "current_round": 1,
    "options": {
      "name": "Sneaking Only",
      "description": "no headshots please",
      "max_players": 8,
      "rules": [
        {"map_string": "brown town", "mode_string": "capture"},
        {"map_string": "high ice", "mode_string": "deathmatch"}
      ]
    },
    "players": [{"user_id": 1}, {"user_id": 2}]
  }
]}`

const detailFixture = `{"data": {
  "id": 101,
  "current_round": 0,
  "user_id": 7,
  "options": {
    "name": "Sneaking Only",
    "description": "no headshots please",
    "max_players": 8,
    "rules": [{"map_string": "brown town", "mode_string": "capture"}]
  },
  "players": [{"user_id": 7}]
}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second)
}

func TestListActiveGames(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/list", r.URL.Path)
		_, _ = w.Write([]byte(listFixture))
	})

	games, err := c.ListActiveGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)

	g := games[0]
	assert.Equal(t, domain.GameID("101"), g.ID)
	assert.Equal(t, "Sneaking Only", g.Name)
	assert.Equal(t, "No headshots please", g.Description)
	assert.Equal(t, 8, g.MaxPlayers)
	// current_round selects the second rule set, title-cased.
	assert.Equal(t, "High Ice", g.Map)
	assert.Equal(t, "Deathmatch", g.Mode)
	assert.Equal(t, []domain.UserID{"1", "2"}, g.PlayerIDs)
}

func TestListActiveGamesNullData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": null}`))
	})

	games, err := c.ListActiveGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestGetGameDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/101", r.URL.Path)
		_, _ = w.Write([]byte(detailFixture))
	})

	g, err := c.GetGameDetail(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID("7"), g.HostID)
	assert.Equal(t, 8, g.MaxPlayers)
	assert.Equal(t, "Brown Town", g.Map)
}

func TestGetGameDetailNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetGameDetail(context.Background(), "999")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetGameDetailNullData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": null}`))
	})

	_, err := c.GetGameDetail(context.Background(), "999")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestResolveDisplayName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": {"display_name": "Snake"}}`))
	})

	name, err := c.ResolveDisplayName(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Snake", name)
}

func TestOnlinePlayerCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lobby/list", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": [{"players": 57}]}`))
	})

	n, err := c.OnlinePlayerCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 57, n)
}

func TestServerErrorSurfaces(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListActiveGames(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
