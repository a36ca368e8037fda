package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lobbywatch/internal/core"
	"lobbywatch/internal/domain"
)

func TestViewStoreMutateAndSnapshot(t *testing.T) {
	s := NewViewStore()
	deps := testDeps()

	_, err := s.Mutate(created(), deps)
	require.NoError(t, err)
	_, err = s.Mutate(core.PlayerJoined{GameID: "g1", UserID: "u2"}, deps)
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 2, snap[0].PlayerCount())

	// Mutating the snapshot must not reach the store.
	snap[0].Players[0].Label = "changed"
	snap[0].RemovePlayer("u2")

	got, ok := s.Get("g1")
	require.True(t, ok)
	assert.Equal(t, 2, got.PlayerCount())
	assert.Equal(t, "Snake", got.Players[0].Label)
}

func TestViewStoreSnapshotOrdering(t *testing.T) {
	s := NewViewStore()
	s.ReplaceAll([]domain.Lobby{
		{ID: "g3", Name: "c"},
		{ID: "g1", Name: "a"},
		{ID: "g2", Name: "b"},
	})

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, domain.GameID("g1"), snap[0].ID)
	assert.Equal(t, domain.GameID("g2"), snap[1].ID)
	assert.Equal(t, domain.GameID("g3"), snap[2].ID)
}

func TestViewStoreReplaceAllDropsOldEntries(t *testing.T) {
	s := NewViewStore()
	deps := testDeps()

	_, err := s.Mutate(created(), deps)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	s.ReplaceAll([]domain.Lobby{{ID: "g7", Name: "Fresh"}})

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("g1")
	assert.False(t, ok)
	got, ok := s.Get("g7")
	require.True(t, ok)
	assert.Equal(t, "Fresh", got.Name)
}
