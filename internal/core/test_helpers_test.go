package core

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// mustNoEvent asserts that no event of the given kind arrives within the
// window. Events of other kinds are drained and ignored.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind, window time.Duration) {
	t.Helper()

	deadline := time.Now().Add(window)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}

type fakeRunner struct {
	mu      sync.Mutex
	calls   int
	lastReq RunRequest
	payload json.RawMessage
	err     error
	gate    chan struct{} // when non-nil, Run blocks until closed
}

func (f *fakeRunner) Run(ctx context.Context, req RunRequest) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payload, f.err
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func startHub(t *testing.T, runner Runner) *Hub {
	t.Helper()

	hub := NewHub(runner, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func joinRoom(hub *Hub, c *Client, room, name string) {
	hub.Dispatch(&Command{Kind: CommandJoin, Client: c, Room: room, Name: name})
}
