package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/pion/webrtc/v3"

	"github.com/teslashibe/go-handcar/internal/log"
	"github.com/teslashibe/go-handcar/pkg/signaling"
)

// DataChannelLabel is the label of the event channel.
const DataChannelLabel = "response"

// ErrNotConnected is returned when sending before the channel is open.
var ErrNotConnected = errors.New("realtime: not connected")

// Peer is a headless WebRTC client for the assistant. It receives the
// assistant's audio, exchanges events on the "response" data channel and
// performs the offer/answer handshake through a signaling.Negotiator.
type Peer struct {
	handler    *Handler
	negotiator signaling.Negotiator
	iceServers []webrtc.ICEServer
	logger     *slog.Logger

	pc *webrtc.PeerConnection
	dc *webrtc.DataChannel

	mu     sync.Mutex
	open   bool
	closed bool

	audio *TrackStats
	ready chan struct{}
}

// NewPeer creates a peer. iceServers are STUN/TURN URLs; none is fine for
// a relay that answers with host candidates.
func NewPeer(handler *Handler, negotiator signaling.Negotiator, iceServers ...string) *Peer {
	p := &Peer{
		handler:    handler,
		negotiator: negotiator,
		logger:     log.With("component", "peer"),
		audio:      &TrackStats{},
		ready:      make(chan struct{}),
	}
	if len(iceServers) > 0 {
		p.iceServers = []webrtc.ICEServer{{URLs: iceServers}}
	}
	return p
}

// Connect runs the one-shot handshake: create the peer connection and data
// channel, gather candidates, send the offer and apply the answer.
// A failed handshake is not retried.
func (p *Peer) Connect(ctx context.Context) error {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{ICEServers: p.iceServers})
	if err != nil {
		return fmt.Errorf("create peer connection: %w", err)
	}
	p.pc = pc

	// The assistant speaks back on an audio track.
	if _, err := pc.AddTransceiverFromKind(webrtc.RTPCodecTypeAudio, webrtc.RTPTransceiverInit{
		Direction: webrtc.RTPTransceiverDirectionRecvonly,
	}); err != nil {
		return fmt.Errorf("add audio transceiver: %w", err)
	}

	pc.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		p.logger.Info("remote track", "kind", track.Kind().String(), "codec", track.Codec().MimeType)
		go p.drain(track)
	})

	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		p.logger.Info("connection state", "state", state.String())
	})

	dc, err := pc.CreateDataChannel(DataChannelLabel, nil)
	if err != nil {
		return fmt.Errorf("create data channel: %w", err)
	}
	p.dc = dc

	dc.OnOpen(func() {
		p.logger.Info("data channel open")
		p.mu.Lock()
		p.open = true
		p.mu.Unlock()
		close(p.ready)

		if err := p.handler.Configure(p); err != nil {
			p.logger.Error("configure session", "error", err)
		}
	})

	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		if err := p.handler.Handle(ctx, p, msg.Data); err != nil {
			p.logger.Warn("handle event", "error", err)
		}
	})

	offer, err := pc.CreateOffer(nil)
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}

	gathered := webrtc.GatheringCompletePromise(pc)
	if err := pc.SetLocalDescription(offer); err != nil {
		return fmt.Errorf("set local description: %w", err)
	}

	select {
	case <-gathered:
	case <-ctx.Done():
		return ctx.Err()
	}

	answer, err := p.negotiator.Negotiate(ctx, pc.LocalDescription().SDP)
	if err != nil {
		return fmt.Errorf("negotiate: %w", err)
	}

	if err := pc.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeAnswer,
		SDP:  answer,
	}); err != nil {
		return fmt.Errorf("set remote description: %w", err)
	}

	p.logger.Info("answer applied, waiting for data channel")
	return nil
}

// Ready is closed once the data channel opens.
func (p *Peer) Ready() <-chan struct{} {
	return p.ready
}

// Send encodes v as JSON and writes it to the data channel.
func (p *Peer) Send(v any) error {
	p.mu.Lock()
	open := p.open && !p.closed
	p.mu.Unlock()
	if !open {
		return ErrNotConnected
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.dc.SendText(string(data))
}

// AudioStats returns counters for the inbound audio track.
func (p *Peer) AudioStats() TrackSnapshot {
	return p.audio.Snapshot()
}

// Close tears down the peer connection.
func (p *Peer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	if p.pc == nil {
		return nil
	}
	return p.pc.Close()
}

// drain reads the remote track until it ends. Nothing plays the audio; the
// packets are only counted.
func (p *Peer) drain(track *webrtc.TrackRemote) {
	for {
		pkt, _, err := track.ReadRTP()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.logger.Debug("track read ended", "error", err)
			}
			snap := p.audio.Snapshot()
			p.logger.Info("track closed", "packets", snap.Packets, "lost", snap.Lost)
			return
		}
		p.audio.Observe(pkt)
	}
}
