package session

import (
	"strconv"
	"strings"

	"github.com/teslashibe/go-handcar/pkg/actions"
	"github.com/teslashibe/go-handcar/pkg/hands"
)

// Messages returned inside action results.
const (
	msgInvalidExpression = "Invalid expression"
	msgHandsReset        = "Hands reset"
)

func (s *Session) moveCar(args actions.Args) actions.Result {
	dir := s.car.Move(args.Direction)
	if !dir.Known() {
		s.logger.Debug("heading will not move the car", "direction", string(dir))
	}
	return actions.Ok("direction", string(dir))
}

func (s *Session) stopCar() actions.Result {
	s.car.Stop()
	return actions.Ok()
}

func (s *Session) setCarSpeed(args actions.Args) actions.Result {
	speed := s.car.SetSpeed(string(args.Speed))
	return actions.Ok("speed", speed)
}

// calculateMath supports "<int> + <int>" only. A malformed expression fails
// without touching the hands.
func (s *Session) calculateMath(args actions.Args) actions.Result {
	sum, ok := addition(args.Expression)
	if !ok {
		s.logger.Warn("math calculation failed", "expression", args.Expression)
		return actions.Fail(msgInvalidExpression)
	}
	s.hands.Apply(hands.ForNumber(sum))
	return actions.Ok("result", sum)
}

func (s *Session) showGesture(args actions.Args) actions.Result {
	total := s.hands.Apply(hands.Interpret(args.Gesture))
	return actions.Ok("gesture", args.Gesture, "totalFingers", total)
}

func (s *Session) resetHands() actions.Result {
	s.hands.Reset()
	return actions.Ok("message", msgHandsReset)
}

// addition parses "a + b" where a and b are decimal integers. A sum that
// overflows int is rejected.
func addition(expr string) (int, bool) {
	parts := strings.Split(expr, "+")
	if len(parts) != 2 {
		return 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, false
	}
	return sum, true
}
