package domain

import (
	"fmt"
	"strings"
)

// Mode selects which option classes are quoted and checked.
type Mode string

const (
	ModeCalls Mode = "calls"
	ModePuts  Mode = "puts"
	ModeBoth  Mode = "both"
)

// ParseMode accepts the long names and the single-letter forms c, p and b.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "call", "calls", "callsonly":
		return ModeCalls, nil
	case "p", "put", "puts", "putsonly":
		return ModePuts, nil
	case "b", "both":
		return ModeBoth, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Includes reports whether the mode quotes the given class.
func (m Mode) Includes(class OptionClass) bool {
	switch m {
	case ModeBoth:
		return true
	case ModeCalls:
		return class == Call
	case ModePuts:
		return class == Put
	default:
		return false
	}
}

// Classes returns the quoted classes, calls first.
func (m Mode) Classes() []OptionClass {
	var out []OptionClass
	for _, c := range []OptionClass{Call, Put} {
		if m.Includes(c) {
			out = append(out, c)
		}
	}
	return out
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeCalls || m == ModePuts || m == ModeBoth
}

// UnmarshalText lets JSON and YAML payloads use any ParseMode spelling.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText always emits the long form.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}
