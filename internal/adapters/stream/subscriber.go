// Package stream owns the push-stream connection: dialing, the subscribe
// handshake, and decoding frames into core events. It deliberately has no
// retry logic; one Run call is one connection lifetime and the watchdog
// decides when to start another.
package stream

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"lobbywatch/internal/core"
)

// State is the subscriber's connection state, readable from other
// goroutines (the status endpoint).
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateSubscribed
	StateStreaming
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateStreaming:
		return "streaming"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handler receives each decoded event, one at a time, from the read loop.
type Handler interface {
	OnEvent(ctx context.Context, ev core.Event)
}

// The event names the directory expects in the subscribe request.
var subscribedEvents = []string{
	"EventGameCreated",
	"EventGamePlayerJoined",
	"EventGameNewRound",
	"EventGamePlayerLeft",
	"EventGameDeleted",
}

type subscribeRequest struct {
	Type   string   `json:"type"`
	Events []string `json:"events"`
}

type Subscriber struct {
	url      string
	handler  Handler
	clientID string
	state    atomic.Int32
}

func New(url string, h Handler) *Subscriber {
	return &Subscriber{
		url:      url,
		handler:  h,
		clientID: "lobbywatch-" + uuid.NewString(),
	}
}

func (s *Subscriber) State() State {
	return State(s.state.Load())
}

func (s *Subscriber) setState(st State) {
	s.state.Store(int32(st))
}

// Run drives one connection lifetime: dial, subscribe, then decode frames
// until the transport fails or ctx is cancelled. A frame that fails to
// decode is discarded and logged; only a transport-level error terminates
// the loop.
func (s *Subscriber) Run(ctx context.Context) error {
	s.setState(StateConnecting)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		s.setState(StateFailed)
		return fmt.Errorf("dial %s: %w", s.url, err)
	}
	defer func() { _ = conn.Close() }()

	// Closing the socket is the only way to unblock ReadMessage when the
	// process is shutting down.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	if err := conn.WriteJSON(subscribeRequest{Type: s.clientID, Events: subscribedEvents}); err != nil {
		s.setState(StateFailed)
		return fmt.Errorf("subscribe: %w", err)
	}
	s.setState(StateSubscribed)
	log.Info().Str("module", "stream").Str("url", s.url).Msg("subscribed to game events")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.setState(StateFailed)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}
		s.setState(StateStreaming)

		ev, err := decodeFrame(data)
		if err != nil {
			log.Warn().Str("module", "stream").Err(err).Msg("discarding undecodable frame")
			continue
		}
		if ev == nil {
			continue
		}
		s.handler.OnEvent(ctx, ev)
	}
}
