package app

import (
	"context"
	"sync"
	"sync/atomic"

	"lobbywatch/internal/core"
	"lobbywatch/internal/domain"
)

type fakeDirectory struct {
	mu        sync.Mutex
	games     []core.GameSnapshot
	listErr   error
	listCalls int
	details   map[domain.GameID]core.GameSnapshot
	names     map[domain.UserID]string
	count     int
	countErr  error
}

func (d *fakeDirectory) ListActiveGames(context.Context) ([]core.GameSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listCalls++
	if d.listErr != nil {
		return nil, d.listErr
	}
	return d.games, nil
}

func (d *fakeDirectory) GetGameDetail(_ context.Context, id domain.GameID) (core.GameSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok := d.details[id]; ok {
		return s, nil
	}
	return core.GameSnapshot{}, core.ErrNotFound
}

func (d *fakeDirectory) ResolveDisplayName(_ context.Context, id domain.UserID) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if name, ok := d.names[id]; ok {
		return name, nil
	}
	return "", core.ErrNotFound
}

func (d *fakeDirectory) OnlinePlayerCount(context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.countErr != nil {
		return 0, d.countErr
	}
	return d.count, nil
}

type sinkCall struct {
	op      string // "clear", "render", "count", "announce"
	surface core.SurfaceID
	game    domain.GameID
	text    string
	n       int
}

type fakeSink struct {
	mu       sync.Mutex
	surfaces []core.SurfaceID
	calls    []sinkCall
}

func (s *fakeSink) Surfaces() []core.SurfaceID { return s.surfaces }

func (s *fakeSink) ClearSurface(_ context.Context, id core.SurfaceID) error {
	s.record(sinkCall{op: "clear", surface: id})
	return nil
}

func (s *fakeSink) Render(_ context.Context, id core.SurfaceID, v core.RenderedView) error {
	s.record(sinkCall{op: "render", surface: id, game: v.GameID})
	return nil
}

func (s *fakeSink) SetPlayerCount(_ context.Context, id core.SurfaceID, n int) error {
	s.record(sinkCall{op: "count", surface: id, n: n})
	return nil
}

func (s *fakeSink) Announce(_ context.Context, id core.SurfaceID, text string) error {
	s.record(sinkCall{op: "announce", surface: id, text: text})
	return nil
}

func (s *fakeSink) record(c sinkCall) {
	s.mu.Lock()
	s.calls = append(s.calls, c)
	s.mu.Unlock()
}

func (s *fakeSink) ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.op
	}
	return out
}

func (s *fakeSink) reset() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

type fakeStream struct {
	starts atomic.Int32
}

func (f *fakeStream) Run(ctx context.Context) error {
	f.starts.Add(1)
	<-ctx.Done()
	return ctx.Err()
}
