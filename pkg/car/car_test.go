package car

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

var testBounds = Bounds{Width: 600, Height: 400}

func TestNew(t *testing.T) {
	c := New()
	if c.X != DefaultX || c.Y != DefaultY {
		t.Errorf("position = (%v, %v), want (%v, %v)", c.X, c.Y, DefaultX, DefaultY)
	}
	if c.Speed != 0 || c.Moving {
		t.Errorf("new car should be stopped, got speed=%v moving=%v", c.Speed, c.Moving)
	}
	if c.Direction != Right {
		t.Errorf("Direction = %q, want %q", c.Direction, Right)
	}
}

func TestMove_Lowercases(t *testing.T) {
	c := New()
	got := c.Move("UP")
	if got != Up || c.Direction != Up {
		t.Errorf("Move(UP) = %q, direction %q; want %q", got, c.Direction, Up)
	}
	if !c.Moving {
		t.Error("Move should set Moving")
	}
}

func TestStop(t *testing.T) {
	c := New()
	c.Move("left")
	c.Stop()
	if c.Moving {
		t.Error("Stop should clear Moving")
	}
	if c.Direction != Left {
		t.Errorf("Stop changed direction to %q", c.Direction)
	}
}

func TestSetSpeed(t *testing.T) {
	tests := []struct {
		name  string
		prior float64
		input string
		want  float64
	}{
		{"in range", 0, "3", 3},
		{"fraction", 1, "2.5", 2.5},
		{"zero", 4, "0", 0},
		{"max", 1, "5", 5},
		{"above max", 2, "10", 2},
		{"negative", 2, "-1", 2},
		{"not a number", 3, "fast", 3},
		{"empty", 3, "", 3},
		{"NaN", 3, "NaN", 3},
		{"padded", 0, " 4 ", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Speed = tt.prior
			got := c.SetSpeed(tt.input)
			if !floatEquals(got, tt.want) || !floatEquals(c.Speed, tt.want) {
				t.Errorf("SetSpeed(%q) = %v (speed %v), want %v", tt.input, got, c.Speed, tt.want)
			}
		})
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		dir          string
		wantX, wantY float64
	}{
		{"right", 302, 200},
		{"left", 298, 200},
		{"up", 300, 198},
		{"down", 300, 202},
		{"sideways", 300, 200},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			c := New()
			c.SetSpeed("2")
			c.Move(tt.dir)
			c.Step(testBounds)
			if !floatEquals(c.X, tt.wantX) || !floatEquals(c.Y, tt.wantY) {
				t.Errorf("after Step: (%v, %v), want (%v, %v)", c.X, c.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestStep_StoppedDoesNotMove(t *testing.T) {
	c := New()
	c.SetSpeed("5")
	c.Step(testBounds)
	if c.X != DefaultX || c.Y != DefaultY {
		t.Errorf("stopped car moved to (%v, %v)", c.X, c.Y)
	}
}

func TestStep_ClampsToBounds(t *testing.T) {
	c := New()
	c.SetSpeed("5")
	c.Move("right")
	for i := 0; i < 200; i++ {
		c.Step(testBounds)
	}
	if want := testBounds.Width - c.Width/2; !floatEquals(c.X, want) {
		t.Errorf("X = %v, want %v", c.X, want)
	}

	c.Move("up")
	for i := 0; i < 200; i++ {
		c.Step(testBounds)
	}
	if want := c.Height / 2; !floatEquals(c.Y, want) {
		t.Errorf("Y = %v, want %v", c.Y, want)
	}
}

func TestDirection_Rotation(t *testing.T) {
	tests := []struct {
		dir  Direction
		want float64
	}{
		{Right, 0},
		{Left, math.Pi},
		{Up, -math.Pi / 2},
		{Down, math.Pi / 2},
		{Direction("diagonal"), 0},
	}
	for _, tt := range tests {
		if got := tt.dir.Rotation(); !floatEquals(got, tt.want) {
			t.Errorf("%q.Rotation() = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestDirection_Known(t *testing.T) {
	tests := []struct {
		dir  Direction
		want bool
	}{
		{Right, true},
		{Left, true},
		{Up, true},
		{Down, true},
		{"forward", false},
		{"", false},
		{"UP", false},
	}
	for _, tt := range tests {
		if got := tt.dir.Known(); got != tt.want {
			t.Errorf("Direction(%q).Known() = %v, want %v", tt.dir, got, tt.want)
		}
	}
}
