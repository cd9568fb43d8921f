// Package session owns the state of one demo session (a car and a pair of
// hands), executes actions against it and runs the animation tick.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-handcar/internal/log"
	"github.com/teslashibe/go-handcar/pkg/actions"
	"github.com/teslashibe/go-handcar/pkg/car"
	"github.com/teslashibe/go-handcar/pkg/hands"
)

// DefaultTick is the animation tick rate (about 60 Hz).
const DefaultTick = 16 * time.Millisecond

// Observer receives a snapshot whenever the visible state changes.
type Observer interface {
	Publish(Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

// Publish calls f(s).
func (f ObserverFunc) Publish(s Snapshot) { f(s) }

// Options configures a Session.
type Options struct {
	// Bounds is the area the car moves in.
	Bounds car.Bounds

	// Tick is the animation tick rate. Zero means DefaultTick.
	Tick time.Duration

	// Observer is notified after every action and every tick that moved the car.
	Observer Observer
}

// Session is a single demo controller. All state access goes through its
// mutex, so actions and ticks never interleave.
type Session struct {
	id       string
	bounds   car.Bounds
	tick     time.Duration
	observer Observer
	logger   *slog.Logger

	mu    sync.Mutex
	car   *car.Car
	hands *hands.State
	count int
	ticks uint64
}

// New creates a session with a stopped car and all fingers down.
func New(opts Options) *Session {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.Bounds == (car.Bounds{}) {
		opts.Bounds = car.Bounds{Width: 600, Height: 400}
	}

	id := uuid.NewString()
	s := &Session{
		id:       id,
		bounds:   opts.Bounds,
		tick:     opts.Tick,
		observer: opts.Observer,
		logger:   log.With("component", "session", "session", id),
		car:      car.New(),
		hands:    hands.New(),
	}
	s.hands.OnCount(func(total int) { s.count = total })
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Invoke is the name-based entry point: it decodes the action name and its
// JSON arguments, then dispatches. Only unknown names and undecodable
// arguments are reported as errors.
func (s *Session) Invoke(ctx context.Context, name string, rawArgs []byte) (actions.Result, error) {
	call, err := actions.Decode(name, rawArgs)
	if err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, call), nil
}

// Dispatch executes a decoded action and publishes the resulting state.
func (s *Session) Dispatch(ctx context.Context, call actions.Call) actions.Result {
	s.mu.Lock()
	result := s.dispatchLocked(call)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "action", "name", call.Kind.String(), "success", result.Success())
	s.publish(snap)
	return result
}

func (s *Session) dispatchLocked(call actions.Call) actions.Result {
	switch call.Kind {
	case actions.MoveCar:
		return s.moveCar(call.Args)
	case actions.StopCar:
		return s.stopCar()
	case actions.SetCarSpeed:
		return s.setCarSpeed(call.Args)
	case actions.CalculateMath:
		return s.calculateMath(call.Args)
	case actions.ShowGesture:
		return s.showGesture(call.Args)
	case actions.ResetHands:
		return s.resetHands()
	default:
		return actions.Fail("unknown action " + call.Kind.String())
	}
}

// Step advances the car by one tick and publishes when it moved.
func (s *Session) Step() {
	s.mu.Lock()
	x, y := s.car.X, s.car.Y
	s.car.Step(s.bounds)
	s.ticks++
	moved := s.car.X != x || s.car.Y != y
	var snap Snapshot
	if moved {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if moved {
		s.publish(snap)
	}
}

// Run ticks the session until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	s.logger.Info("animation loop started", "tick", s.tick)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("animation loop stopped", "ticks", s.Ticks())
			return ctx.Err()
		case <-ticker.C:
			s.Step()
		}
	}
}

// Ticks returns the number of steps taken so far.
func (s *Session) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Count returns the value of the raised-finger counter.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Snapshot returns a copy of the current visible state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) publish(snap Snapshot) {
	if s.observer != nil {
		s.observer.Publish(snap)
	}
}

// Snapshot is the serializable view of a session used by renderers.
type Snapshot struct {
	Session string    `json:"session"`
	Car     CarView   `json:"car"`
	Hands   HandsView `json:"hands"`
}

// CarView is the car part of a Snapshot.
type CarView struct {
	car.Car
	Rotation float64 `json:"rotation"`
}

// HandsView is the hands part of a Snapshot.
type HandsView struct {
	Left  [hands.FingerCount]bool `json:"leftHand"`
	Right [hands.FingerCount]bool `json:"rightHand"`
	Total int                     `json:"total"`
}

// JSON encodes the snapshot.
func (s Snapshot) JSON() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Session: s.id,
		Car: CarView{
			Car:      *s.car,
			Rotation: s.car.Direction.Rotation(),
		},
		Hands: HandsView{
			Left:  s.hands.Left,
			Right: s.hands.Right,
			Total: s.count,
		},
	}
}
