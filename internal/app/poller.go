package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"lobbywatch/internal/core"
)

// Poller periodically refreshes the aggregate online player count shown in
// each surface's title. It shares the directory client with the engine but
// touches nothing else of it.
type Poller struct {
	Dir      core.Directory
	Sink     core.Sink
	Interval time.Duration
	Timeout  time.Duration
}

// Run refreshes once immediately, then on every tick until ctx is
// cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)
	t := time.NewTicker(p.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	n, err := p.Dir.OnlinePlayerCount(cctx)
	cancel()
	if err != nil {
		log.Warn().Str("module", "app.poller").Err(err).Msg("player count fetch failed")
		return
	}
	log.Info().Str("module", "app.poller").Int("players", n).Msg("player count refreshed")
	for _, sfc := range p.Sink.Surfaces() {
		if err := p.Sink.SetPlayerCount(ctx, sfc, n); err != nil {
			log.Warn().Str("module", "app.poller").Str("surface", string(sfc)).
				Err(err).Msg("counter update failed")
		}
	}
}
