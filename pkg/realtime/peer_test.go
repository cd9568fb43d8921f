package realtime

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/teslashibe/go-handcar/pkg/session"
	"github.com/teslashibe/go-handcar/pkg/signaling"
)

func TestPeer_SendBeforeOpen(t *testing.T) {
	p := NewPeer(NewHandler(session.New(session.Options{}), Config{}), nil)
	select {
	case <-p.Ready():
		t.Fatal("Ready() closed before the data channel opened")
	default:
	}
	if stats := p.AudioStats(); stats != (TrackSnapshot{}) {
		t.Errorf("AudioStats() = %+v before any track", stats)
	}
	if err := p.Send(ResponseCreate{Type: TypeResponseCreate}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send() error = %v, want ErrNotConnected", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestPeer_ConnectSendsOfferAndReportsNegotiationFailure(t *testing.T) {
	var offer string
	relayDown := &signaling.TransportError{Op: "post", URL: "http://relay", Err: errors.New("connection refused")}
	neg := signaling.NegotiatorFunc(func(ctx context.Context, sdp string) (string, error) {
		offer = sdp
		return "", relayDown
	})

	p := NewPeer(NewHandler(session.New(session.Options{}), Config{}), neg)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := p.Connect(ctx)
	var te *signaling.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Connect() error = %v, want TransportError", err)
	}

	if !strings.HasPrefix(offer, "v=0") {
		t.Errorf("offer does not look like SDP: %q", offer)
	}
	if !strings.Contains(offer, "m=audio") {
		t.Error("offer has no audio section")
	}
	if !strings.Contains(offer, "m=application") {
		t.Error("offer has no data channel section")
	}
}
