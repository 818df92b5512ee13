package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type presenceCall struct {
	UserID string
	Online bool
}

type presenceRecorder struct {
	mu    sync.Mutex
	calls []presenceCall
}

func (p *presenceRecorder) SetOnline(ctx context.Context, userID string, online bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, presenceCall{UserID: userID, Online: online})
	return nil
}

func (p *presenceRecorder) snapshot() []presenceCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]presenceCall(nil), p.calls...)
}

func startHub(t *testing.T) (*Hub, *presenceRecorder) {
	t.Helper()
	p := &presenceRecorder{}
	h := NewHub(p)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h.Start(ctx)
	return h, p
}

func TestPresenceFlipsOnFirstAndLastConnection(t *testing.T) {
	h, p := startHub(t)

	first := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	second := &Client{UserID: "u1", Send: make(chan []byte, 1)}

	h.Register <- first
	h.Register <- second
	h.Unregister <- first
	h.Unregister <- second

	require.Eventually(t, func() bool {
		return len(p.snapshot()) == 2
	}, time.Second, 10*time.Millisecond)

	// One online call for the first connection, one offline for the last;
	// the middle unregister leaves presence alone.
	assert.Equal(t, []presenceCall{{"u1", true}, {"u1", false}}, p.snapshot())
}

func TestUnregisterUnknownClientLeavesPresenceAlone(t *testing.T) {
	h, p := startHub(t)

	stranger := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	h.Unregister <- stranger

	// A later register proves the loop processed the stray unregister
	// without emitting an offline call first.
	known := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	h.Register <- known

	require.Eventually(t, func() bool {
		return len(p.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []presenceCall{{"u1", true}}, p.snapshot())
}
