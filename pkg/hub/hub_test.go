package hub

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeConn is an in-memory websocket connection.
type fakeConn struct {
	mu      sync.Mutex
	written [][]byte
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{closed: make(chan struct{})}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	<-f.closed
	return 0, nil, errors.New("closed")
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, append([]byte(nil), data...))
	return nil
}

func (f *fakeConn) SetReadLimit(int64)                {}
func (f *fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (f *fakeConn) SetPongHandler(func(string) error) {}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, w := range f.written {
		if len(w) > 0 {
			out = append(out, string(w))
		}
	}
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := New("test")
	go h.Run(ctx)

	conn := newFakeConn()
	c := NewClient(h, conn)
	go c.Run()
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	if err := h.BroadcastJSON(map[string]int{"total": 3}); err != nil {
		t.Fatalf("BroadcastJSON() error = %v", err)
	}
	waitFor(t, func() bool { return len(conn.messages()) == 1 })

	if got := conn.messages()[0]; got != `{"total":3}` {
		t.Errorf("message = %s", got)
	}

	conn.Close()
	waitFor(t, func() bool { return h.ClientCount() == 0 })
}

func TestHub_ReplaysLastMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := New("test")
	go h.Run(ctx)

	h.BroadcastJSON("first")
	h.BroadcastJSON("second")
	waitFor(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return h.last != nil && string(h.last.Data) == `"second"`
	})

	conn := newFakeConn()
	c := NewClient(h, conn)
	go c.Run()
	defer conn.Close()

	waitFor(t, func() bool { return len(conn.messages()) == 1 })
	if got := conn.messages()[0]; got != `"second"` {
		t.Errorf("replayed %s, want \"second\"", got)
	}
}

func TestHub_StopReleasesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := New("test")
	go h.Run(ctx)

	conn := newFakeConn()
	c := NewClient(h, conn)
	returned := make(chan struct{})
	go func() {
		c.Run()
		close(returned)
	}()
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	cancel()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after stop", h.ClientCount())
	}
	select {
	case <-conn.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("connection not closed after stop")
	}
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Client.Run still blocked after hub stop")
	}
}

func TestHub_ClientAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := New("test")
	go h.Run(ctx)
	cancel()
	<-h.Done()

	conn := newFakeConn()
	returned := make(chan struct{})
	go func() {
		NewClient(h, conn).Run()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("client of a stopped hub did not return")
	}
	select {
	case <-conn.closed:
	default:
		t.Error("connection left open")
	}
}
