// Package domain defines core data structures shared by the prediction controller and its surfaces.
package domain

import "fmt"

// Mode data source consulted for predictions.
type Mode string

const (
	// ModeLive remote prediction service.
	ModeLive Mode = "live"
	// ModeDemo fixed local dataset.
	ModeDemo Mode = "demo"
)

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// IsValid checks if the Mode value is valid.
func (m Mode) IsValid() bool {
	return m == ModeLive || m == ModeDemo
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeDemo {
		return ModeLive
	}
	return ModeDemo
}

// ParseMode converts a config or CLI value into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unsupported mode %q, expected %q or %q", s, ModeLive, ModeDemo)
	}
	return m, nil
}
