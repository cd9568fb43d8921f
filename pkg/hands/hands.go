// Package hands models a pair of five-fingered hands whose fingers are either
// raised or lowered, and the free-text interpreter that decides which fingers
// to raise.
package hands

import "strings"

// Finger indexes a finger within a hand, in canonical order.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
)

// FingerCount is the number of fingers on each hand.
const FingerCount = 5

// Names holds the canonical finger names, index-aligned with Finger.
var Names = [FingerCount]string{"thumb", "index", "middle", "ring", "pinky"}

// String returns the canonical name of the finger.
func (f Finger) String() string {
	if f < 0 || int(f) >= FingerCount {
		return "unknown"
	}
	return Names[f]
}

// Lookup resolves a finger name case-insensitively.
func Lookup(name string) (Finger, bool) {
	name = strings.ToLower(name)
	for i, n := range Names {
		if n == name {
			return Finger(i), true
		}
	}
	return 0, false
}

// Config names the fingers to raise on each hand.
// Entries are treated as a set: duplicates and unknown names are harmless.
type Config struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// NewConfig returns an empty configuration with non-nil slices.
func NewConfig() Config {
	return Config{Left: []string{}, Right: []string{}}
}

// Empty reports whether the configuration names no fingers at all.
func (c Config) Empty() bool {
	return len(c.Left) == 0 && len(c.Right) == 0
}

// State holds the up/down flag of every finger on both hands.
// The zero value has all fingers down and is ready to use.
// State is not safe for concurrent use; callers serialize access.
type State struct {
	Left  [FingerCount]bool `json:"leftHand"`
	Right [FingerCount]bool `json:"rightHand"`

	display func(total int)
}

// New creates a State with all fingers down.
func New() *State {
	return &State{}
}

// OnCount registers a callback that receives the raised-finger total after
// every Apply or Reset. It plays the role of the visible counter.
func (s *State) OnCount(fn func(total int)) {
	s.display = fn
}

// Reset lowers every finger and returns the new total, always 0.
func (s *State) Reset() int {
	s.Left = [FingerCount]bool{}
	s.Right = [FingerCount]bool{}
	s.show(0)
	return 0
}

// Apply lowers every finger, raises the fingers named in cfg and returns the
// number of raised fingers across both hands (0-10).
// Applying the same configuration twice yields the same state.
func (s *State) Apply(cfg Config) int {
	s.Left = [FingerCount]bool{}
	s.Right = [FingerCount]bool{}

	raise(&s.Left, cfg.Left)
	raise(&s.Right, cfg.Right)

	total := s.Total()
	s.show(total)
	return total
}

// Total counts the raised fingers on both hands.
func (s *State) Total() int {
	n := 0
	for i := 0; i < FingerCount; i++ {
		if s.Left[i] {
			n++
		}
		if s.Right[i] {
			n++
		}
	}
	return n
}

// Raised returns the names of the raised fingers of each hand in canonical order.
func (s *State) Raised() Config {
	cfg := NewConfig()
	for i := 0; i < FingerCount; i++ {
		if s.Left[i] {
			cfg.Left = append(cfg.Left, Names[i])
		}
		if s.Right[i] {
			cfg.Right = append(cfg.Right, Names[i])
		}
	}
	return cfg
}

func (s *State) show(total int) {
	if s.display != nil {
		s.display(total)
	}
}

func raise(hand *[FingerCount]bool, names []string) {
	for _, name := range names {
		if f, ok := Lookup(name); ok {
			hand[f] = true
		}
	}
}
