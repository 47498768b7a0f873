package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]Theme{
		"dark":    Dark,
		" White ": White,
		"BLUE":    Blue,
	} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := Parse("pink")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme: pink")
}

func TestStore(t *testing.T) {
	s := NewStore("")
	assert.Equal(t, White, s.Current())

	assert.True(t, s.Set(Blue))
	assert.Equal(t, Blue, s.Current())

	assert.Equal(t, Dark, NewStore(Dark).Current())
}

func TestStore_SetIgnoresUnknown(t *testing.T) {
	s := NewStore(Dark)

	for _, bad := range []Theme{"", "neon", "DARK"} {
		assert.False(t, s.Set(bad), "Set(%q)", bad)
		assert.Equal(t, Dark, s.Current())
	}
}

func TestNext(t *testing.T) {
	assert.Equal(t, White, Dark.Next())
	assert.Equal(t, Blue, White.Next())
	assert.Equal(t, Dark, Blue.Next())
	assert.Equal(t, Default, Theme("x").Next())
}

func TestColors(t *testing.T) {
	assert.Equal(t, Colors{Background: "#1D3D47", Foreground: "#A1CEDC"}, Blue.Colors())
	assert.Equal(t, White.Colors(), Theme("nope").Colors())
	assert.Equal(t, []Theme{Dark, White, Blue}, All())
}
