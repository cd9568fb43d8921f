package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-handcar/internal/log"
)

// Websocket timing.
const (
	handshakeTimeout = 10 * time.Second
	readTimeout      = 120 * time.Second
	pingPeriod       = 30 * time.Second
	writeTimeout     = 10 * time.Second
)

// WebsocketURL converts an HTTP realtime endpoint to its websocket form and
// adds the model query parameter.
func WebsocketURL(endpoint, model string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if model != "" {
		q := u.Query()
		q.Set("model", model)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// WSTransport runs the assistant session over a server-side websocket
// instead of WebRTC. Audio is not exchanged; text and function calls are.
type WSTransport struct {
	url     string
	apiKey  string
	handler *Handler
	logger  *slog.Logger

	ws   *websocket.Conn
	wsMu sync.Mutex

	closeOnce sync.Once
	done      chan struct{}
}

// NewWSTransport creates a websocket transport for url.
func NewWSTransport(url, apiKey string, handler *Handler) *WSTransport {
	return &WSTransport{
		url:     url,
		apiKey:  apiKey,
		handler: handler,
		logger:  log.With("component", "realtime-ws"),
		done:    make(chan struct{}),
	}
}

// Connect dials the API and sends the session configuration.
func (t *WSTransport) Connect(ctx context.Context) error {
	header := http.Header{}
	if t.apiKey != "" {
		header.Set("Authorization", "Bearer "+t.apiKey)
	}
	header.Set("OpenAI-Beta", "realtime=v1")

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	ws, _, err := dialer.DialContext(ctx, t.url, header)
	if err != nil {
		return fmt.Errorf("failed to connect to realtime API: %w", err)
	}

	// Respond to ping with pong
	ws.SetPingHandler(func(appData string) error {
		t.wsMu.Lock()
		defer t.wsMu.Unlock()
		return ws.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeTimeout))
	})
	t.ws = ws

	return t.handler.Configure(t)
}

// Run reads events until the connection fails or ctx is cancelled.
func (t *WSTransport) Run(ctx context.Context) error {
	if t.ws == nil {
		return ErrNotConnected
	}

	go t.keepAlive()
	go func() {
		select {
		case <-ctx.Done():
			t.Close()
		case <-t.done:
		}
	}()

	for {
		t.ws.SetReadDeadline(time.Now().Add(readTimeout))
		_, message, err := t.ws.ReadMessage()
		if err != nil {
			select {
			case <-t.done:
				return ctx.Err()
			default:
			}
			return fmt.Errorf("read event: %w", err)
		}
		if err := t.handler.Handle(ctx, t, message); err != nil {
			t.logger.Warn("handle event", "error", err)
		}
	}
}

// SendText adds a user text message and asks for a response.
func (t *WSTransport) SendText(text string) error {
	msg := map[string]any{
		"type": "conversation.item.create",
		"item": map[string]any{
			"type": "message",
			"role": "user",
			"content": []map[string]any{
				{"type": "input_text", "text": text},
			},
		},
	}
	if err := t.Send(msg); err != nil {
		return err
	}
	return t.Send(ResponseCreate{Type: TypeResponseCreate})
}

// Send writes one JSON event.
func (t *WSTransport) Send(v any) error {
	t.wsMu.Lock()
	defer t.wsMu.Unlock()

	if t.ws == nil {
		return ErrNotConnected
	}
	t.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return t.ws.WriteJSON(v)
}

// Close closes the connection.
func (t *WSTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		t.wsMu.Lock()
		defer t.wsMu.Unlock()
		if t.ws != nil {
			err = t.ws.Close()
		}
	})
	return err
}

// keepAlive sends periodic pings until the transport closes.
func (t *WSTransport) keepAlive() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.wsMu.Lock()
			err := t.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			t.wsMu.Unlock()
			if err != nil {
				t.logger.Debug("ping failed", "error", err)
				return
			}
		}
	}
}
