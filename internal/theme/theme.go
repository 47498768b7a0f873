// Package theme holds the app-wide color scheme selection.
package theme

import (
	"fmt"
	"strings"
)

// Theme is one of the supported color schemes.
type Theme string

const (
	Dark  Theme = "dark"
	White Theme = "white"
	Blue  Theme = "blue"
)

// Default is the theme of a fresh state.
const Default = White

// Colors is the background/foreground pair of a theme.
type Colors struct {
	Background string
	Foreground string
}

var palette = map[Theme]Colors{
	Dark:  {Background: "#222222", Foreground: "#FFFFFF"},
	White: {Background: "#81C784", Foreground: "#222222"},
	Blue:  {Background: "#1D3D47", Foreground: "#A1CEDC"},
}

// All returns the themes in display order.
func All() []Theme {
	return []Theme{Dark, White, Blue}
}

// Parse converts s (case-insensitive, trimmed) to a Theme.
func Parse(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown theme: %s (want dark, white or blue)", s)
	}
	return t, nil
}

// Valid reports whether t is a member of the enumeration.
func (t Theme) Valid() bool {
	_, ok := palette[t]
	return ok
}

// Colors returns the theme's color pair. Unknown themes use the default.
func (t Theme) Colors() Colors {
	if c, ok := palette[t]; ok {
		return c
	}
	return palette[Default]
}

// Next returns the theme after t in display order, wrapping around.
func (t Theme) Next() Theme {
	all := All()
	for i, v := range all {
		if v == t {
			return all[(i+1)%len(all)]
		}
	}
	return Default
}

// Store holds the current theme.
type Store struct {
	current Theme
}

// NewStore returns a store set to initial, or Default if initial is invalid.
func NewStore(initial Theme) *Store {
	if !initial.Valid() {
		initial = Default
	}
	return &Store{current: initial}
}

// Set replaces the current theme. Unknown themes are ignored and reported
// as false.
func (s *Store) Set(t Theme) bool {
	if !t.Valid() {
		return false
	}
	s.current = t
	return true
}

// Current returns the current theme.
func (s *Store) Current() Theme {
	return s.current
}
