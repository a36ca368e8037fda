package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StreamRunner is the push-stream consumer lifecycle the supervisor
// restarts. Run blocks until the transport fails or ctx is cancelled; it
// never reconnects on its own.
type StreamRunner interface {
	Run(ctx context.Context) error
}

const (
	bootstrapNotice = "Kept you waiting huh?"
	recoveryNotice  = "Loyalty to the end!"
)

// Supervisor is the periodic watchdog. Stream health starts down, so the
// very first tick performs the bootstrap rebuild through the exact same
// path a mid-flight recovery takes.
type Supervisor struct {
	Orch     *Orchestrator
	Stream   StreamRunner
	Interval time.Duration

	booted bool
}

// Bootstrap runs one synchronous tick before the ticker starts, so the view
// never begins stale relative to the stream's subscription point. If the
// directory is unreachable at startup this degrades to "retry next tick"
// instead of failing the process.
func (s *Supervisor) Bootstrap(ctx context.Context) {
	s.tick(ctx)
}

// Run drives the watchdog until ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) {
	t := time.NewTicker(s.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *Supervisor) tick(ctx context.Context) {
	if s.Orch.Health.Up() {
		log.Debug().Str("module", "app.supervisor").Msg("stream healthy")
		return
	}

	log.Warn().Str("module", "app.supervisor").Msg("stream down, rebuilding view from snapshot")
	if err := s.Orch.Rebuild(ctx); err != nil {
		// Health stays down: a failed rebuild must never be reported as
		// recovery. The next tick retries.
		log.Error().Str("module", "app.supervisor").Err(err).Msg("rebuild failed, will retry")
		return
	}

	s.startStream(ctx)
	s.Orch.Health.MarkUp()
	s.announce(ctx)
	log.Info().Str("module", "app.supervisor").Msg("stream restarted")
}

// startStream launches one subscriber lifetime. When it dies for any reason
// other than shutdown, health goes down and the next tick rebuilds; retry
// storms are bounded by the watchdog interval.
func (s *Supervisor) startStream(ctx context.Context) {
	go func() {
		err := s.Stream.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		s.Orch.Health.MarkDown()
		log.Error().Str("module", "app.supervisor").Err(err).Msg("stream terminated")
	}()
}

func (s *Supervisor) announce(ctx context.Context) {
	notice := recoveryNotice
	if !s.booted {
		notice = bootstrapNotice
		s.booted = true
	}
	for _, sfc := range s.Orch.Sink.Surfaces() {
		if err := s.Orch.Sink.Announce(ctx, sfc, notice); err != nil {
			log.Warn().Str("module", "app.supervisor").Str("surface", string(sfc)).
				Err(err).Msg("announce failed")
		}
	}
}
