// Package car holds the state of the toy car and advances it one tick at a time.
package car

import (
	"math"
	"strconv"
	"strings"
)

// Direction is the heading of the car. Any string is accepted; only the four
// known headings produce movement.
type Direction string

const (
	Right Direction = "right"
	Left  Direction = "left"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Rotation returns the drawing angle in radians for the heading.
// Unknown headings keep the default orientation.
func (d Direction) Rotation() float64 {
	switch d {
	case Left:
		return math.Pi
	case Up:
		return -math.Pi / 2
	case Down:
		return math.Pi / 2
	default:
		return 0
	}
}

// Known reports whether d is one of the four movement headings.
func (d Direction) Known() bool {
	switch d {
	case Right, Left, Up, Down:
		return true
	}
	return false
}

// Default car geometry and limits.
const (
	DefaultX        = 300
	DefaultY        = 200
	DefaultWidth    = 60
	DefaultHeight   = 30
	DefaultMaxSpeed = 5
)

// Bounds is the drawable area the car is confined to.
type Bounds struct {
	Width  float64
	Height float64
}

// Car is the kinematic state of the car. Position is the centre of the body.
type Car struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Speed     float64   `json:"speed"`
	MaxSpeed  float64   `json:"maxSpeed"`
	Direction Direction `json:"direction"`
	Moving    bool      `json:"moving"`
}

// New returns a stopped car at the default position, facing right.
func New() *Car {
	return &Car{
		X:         DefaultX,
		Y:         DefaultY,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		MaxSpeed:  DefaultMaxSpeed,
		Direction: Right,
	}
}

// Move lowercases the heading, stores it and starts the car.
func (c *Car) Move(direction string) Direction {
	c.Direction = Direction(strings.ToLower(direction))
	c.Moving = true
	return c.Direction
}

// Stop clears the moving flag. Position and speed are kept.
func (c *Car) Stop() {
	c.Moving = false
}

// SetSpeed parses speed as a float and applies it when it lies in
// [0, MaxSpeed]. Anything else leaves the speed unchanged.
// It returns the current speed.
func (c *Car) SetSpeed(speed string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(speed), 64)
	if err == nil && !math.IsNaN(v) && v >= 0 && v <= c.MaxSpeed {
		c.Speed = v
	}
	return c.Speed
}

// Step advances a moving car by Speed along its heading and keeps the body
// inside b.
func (c *Car) Step(b Bounds) {
	if !c.Moving {
		return
	}

	switch c.Direction {
	case Right:
		c.X += c.Speed
	case Left:
		c.X -= c.Speed
	case Up:
		c.Y -= c.Speed
	case Down:
		c.Y += c.Speed
	}

	c.X = clamp(c.X, c.Width/2, b.Width-c.Width/2)
	c.Y = clamp(c.Y, c.Height/2, b.Height-c.Height/2)
}

// clamp restricts v to [lo, hi], checking lo first like the drawing code does.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
