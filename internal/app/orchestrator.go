package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"lobbywatch/internal/core"
	"lobbywatch/internal/domain"
)

// Orchestrator wires push events into the view and the view into the sink.
// It owns the absorb-or-propagate decision for applier errors: benign
// conditions end here, everything transport-shaped bubbles to the
// supervisor.
type Orchestrator struct {
	View    *ViewStore
	Dir     core.Directory
	Sink    core.Sink
	Health  *StreamHealth
	Timeout time.Duration
}

// OnEvent applies one decoded push event and republishes the affected
// surfaces. It is called from the subscriber's read loop, one event at a
// time.
func (o *Orchestrator) OnEvent(ctx context.Context, ev core.Event) {
	change, err := o.View.Mutate(ev, o.applyDeps(ctx))
	if err != nil {
		if IsBenign(err) {
			log.Warn().Str("module", "app.orchestrator").Err(err).
				Msg("event references stale state, dropped")
		} else {
			log.Error().Str("module", "app.orchestrator").Err(err).
				Msg("event application failed")
		}
		return
	}

	switch change.Kind {
	case ChangeCreated:
		// A fresh lobby only needs its own embed; everything already on
		// the surfaces is still current.
		o.renderOne(ctx, change.Game)
	case ChangeUpdated, ChangeDeleted:
		o.RenderAll(ctx)
	}
}

// Rebuild replaces the whole view with a fresh snapshot and republishes it.
// Nothing is discarded until the replacement is complete: if the list call
// fails, the prior (possibly stale) view stays in place untouched.
func (o *Orchestrator) Rebuild(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, o.Timeout)
	snaps, err := o.Dir.ListActiveGames(cctx)
	cancel()
	if err != nil {
		return fmt.Errorf("snapshot list: %w", err)
	}

	resolve := o.resolver(ctx)
	lobbies := make([]domain.Lobby, 0, len(snaps))
	for _, snap := range snaps {
		lobby := domain.Lobby{
			ID:          snap.ID,
			Name:        snap.Name,
			Description: snap.Description,
			Map:         snap.Map,
			Mode:        snap.Mode,
			MaxPlayers:  snap.MaxPlayers,
		}
		for _, uid := range snap.PlayerIDs {
			lobby.Players = append(lobby.Players, resolve(uid))
		}
		lobbies = append(lobbies, lobby)
	}

	o.View.ReplaceAll(lobbies)
	log.Info().Str("module", "app.orchestrator").Int("games", len(lobbies)).
		Msg("view rebuilt from snapshot")
	o.RenderAll(ctx)
	return nil
}

// RenderAll clears every surface and republishes every record, in id order.
func (o *Orchestrator) RenderAll(ctx context.Context) {
	lobbies := o.View.Snapshot()
	for _, sfc := range o.Sink.Surfaces() {
		if err := o.Sink.ClearSurface(ctx, sfc); err != nil {
			log.Error().Str("module", "app.orchestrator").Str("surface", string(sfc)).
				Err(err).Msg("clear surface failed")
			continue
		}
		for _, l := range lobbies {
			if err := o.Sink.Render(ctx, sfc, renderView(l)); err != nil {
				log.Error().Str("module", "app.orchestrator").Str("surface", string(sfc)).
					Str("game", string(l.ID)).Err(err).Msg("render failed")
			}
		}
	}
}

func (o *Orchestrator) renderOne(ctx context.Context, id domain.GameID) {
	lobby, ok := o.View.Get(id)
	if !ok {
		return
	}
	for _, sfc := range o.Sink.Surfaces() {
		if err := o.Sink.Render(ctx, sfc, renderView(lobby)); err != nil {
			log.Error().Str("module", "app.orchestrator").Str("surface", string(sfc)).
				Str("game", string(id)).Err(err).Msg("render failed")
		}
	}
}

func (o *Orchestrator) applyDeps(ctx context.Context) ApplyDeps {
	return ApplyDeps{
		Resolve: o.resolver(ctx),
		Detail: func(id domain.GameID) (core.GameSnapshot, error) {
			cctx, cancel := context.WithTimeout(ctx, o.Timeout)
			defer cancel()
			return o.Dir.GetGameDetail(cctx, id)
		},
	}
}

// resolver returns the label lookup used for both event application and
// rebuild. Any failure or empty name degrades to the sentinel label; a
// roster slot never stays unresolved.
func (o *Orchestrator) resolver(ctx context.Context) ResolveLabel {
	return func(id domain.UserID) domain.PlayerRef {
		cctx, cancel := context.WithTimeout(ctx, o.Timeout)
		defer cancel()
		name, err := o.Dir.ResolveDisplayName(cctx, id)
		if err != nil {
			log.Warn().Str("module", "app.orchestrator").Str("user", string(id)).
				Err(err).Msg("display name lookup failed, using sentinel")
			return domain.LabelFor(id, "")
		}
		return domain.LabelFor(id, name)
	}
}

func renderView(l domain.Lobby) core.RenderedView {
	return core.RenderedView{
		GameID:      l.ID,
		Title:       l.Name,
		Description: l.Description,
		Map:         l.Map,
		Mode:        l.Mode,
		Players:     l.Players,
		MaxPlayers:  l.MaxPlayers,
	}
}
