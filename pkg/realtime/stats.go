package realtime

import (
	"sync"

	"github.com/pion/rtp"
)

// TrackStats counts RTP packets of an inbound track and detects sequence gaps.
type TrackStats struct {
	mu      sync.Mutex
	started bool
	lastSeq uint16
	snap    TrackSnapshot
}

// TrackSnapshot is a copy of TrackStats counters.
type TrackSnapshot struct {
	Packets  uint64 `json:"packets"`
	Bytes    uint64 `json:"bytes"`
	Lost     uint64 `json:"lost"`
	LastSSRC uint32 `json:"ssrc"`
}

// Observe records one packet.
func (s *TrackStats) Observe(pkt *rtp.Packet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		// uint16 arithmetic handles sequence wraparound.
		gap := pkt.SequenceNumber - s.lastSeq
		if gap > 1 && gap < 1<<15 {
			s.snap.Lost += uint64(gap - 1)
		}
	}
	s.started = true
	s.lastSeq = pkt.SequenceNumber
	s.snap.Packets++
	s.snap.Bytes += uint64(len(pkt.Payload))
	s.snap.LastSSRC = pkt.SSRC
}

// Snapshot returns the current counters.
func (s *TrackStats) Snapshot() TrackSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
