package hands

import (
	"math"
	"strconv"
	"strings"
)

// Hand keywords recognised by Interpret.
const (
	keywordBoth  = "both"
	keywordLeft  = "left"
	keywordRight = "right"
)

// Interpret turns a free-text gesture command into a finger configuration.
//
// Every canonical finger name found in the command goes to a hand chosen by
// the hand keyword present anywhere in the command ("both", then "left", then
// "right", defaulting to left). The keyword is not scoped to the finger it sits
// next to: "left index and thumb" raises both fingers on the left hand.
//
// Independently, the first decimal number N in the command raises the first N
// fingers of the left hand, spilling the remainder (at most five) onto the right.
func Interpret(command string) Config {
	cfg := NewConfig()
	text := strings.ToLower(command)

	for _, name := range Names {
		if !strings.Contains(text, name) {
			continue
		}
		switch {
		case strings.Contains(text, keywordBoth):
			cfg.Left = append(cfg.Left, name)
			cfg.Right = append(cfg.Right, name)
		case strings.Contains(text, keywordLeft):
			cfg.Left = append(cfg.Left, name)
		case strings.Contains(text, keywordRight):
			cfg.Right = append(cfg.Right, name)
		default:
			cfg.Left = append(cfg.Left, name)
		}
	}

	if n, ok := firstNumber(text); ok {
		left := min(n, FingerCount)
		cfg.Left = append(cfg.Left, Names[:left]...)
		if n > FingerCount {
			right := min(n-FingerCount, FingerCount)
			cfg.Right = append(cfg.Right, Names[:right]...)
		}
	}

	return cfg
}

// ForNumber returns the configuration that shows n raised fingers.
func ForNumber(n int) Config {
	return Interpret(strconv.Itoa(n))
}

// firstNumber finds the first run of ASCII digits in text.
// Runs too long for an int saturate to math.MaxInt.
func firstNumber(text string) (int, bool) {
	start := strings.IndexFunc(text, isDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(text) && isDigit(rune(text[end])) {
		end++
	}
	n, err := strconv.Atoi(text[start:end])
	if err != nil {
		return math.MaxInt, true
	}
	return n, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
