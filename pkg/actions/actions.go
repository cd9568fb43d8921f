// Package actions defines the closed set of operations a voice assistant can
// invoke on the demo, their argument schemas and their results.
//
// Name-based invocation happens only at the boundary: Parse translates a wire
// name into a Kind once, and everything past that point switches on Kind.
package actions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Kind identifies an action.
type Kind int

const (
	MoveCar Kind = iota
	StopCar
	SetCarSpeed
	CalculateMath
	ShowGesture
	ResetHands

	numKinds
)

var names = [numKinds]string{
	MoveCar:       "moveCar",
	StopCar:       "stopCar",
	SetCarSpeed:   "setCarSpeed",
	CalculateMath: "calculateMath",
	ShowGesture:   "showGesture",
	ResetHands:    "resetHands",
}

// ErrUnknownAction is returned when a wire name matches no action.
var ErrUnknownAction = errors.New("unknown action")

// All returns every action kind in declaration order.
func All() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the wire name of the action.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return names[k]
}

// Parse maps a wire name to its Kind. Names are case-sensitive.
func Parse(name string) (Kind, error) {
	for i, n := range names {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Args carries the arguments of every action. Each action reads only its own field.
type Args struct {
	Direction  string `json:"direction,omitempty"`
	Speed      Text   `json:"speed,omitempty"`
	Expression string `json:"expression,omitempty"`
	Gesture    string `json:"gesture,omitempty"`
}

// Call is a decoded action invocation.
type Call struct {
	Kind Kind
	Args Args
}

// Decode parses a wire name and its JSON argument object into a Call.
// Empty or null arguments decode to zero Args.
func Decode(name string, raw []byte) (Call, error) {
	kind, err := Parse(name)
	if err != nil {
		return Call{}, err
	}

	call := Call{Kind: kind}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return call, nil
	}
	if err := json.Unmarshal(raw, &call.Args); err != nil {
		return Call{}, fmt.Errorf("decode %s arguments: %w", kind, err)
	}
	return call, nil
}

// Text is a string argument that also accepts a bare JSON number,
// since assistants do not always quote numeric values.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*t = Text(n.String())
	return nil
}
