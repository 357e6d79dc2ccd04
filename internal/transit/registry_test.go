package transit_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/transit"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func TestColorFor_knownLines(t *testing.T) {
	cases := map[string]string{
		"A":           "#0039A6",
		"1":           "#EE352E",
		"7":           "#B933AD",
		"G":           "#6CBE45",
		"L":           "#A7A9AC",
		"LIRR":        "#808183",
		"METRO-NORTH": "#808183",
		"A,1,M15":     "#0039A6", // first token wins
		" N , R":      "#FCCC0A",
		"lirr":        "#808183", // case-insensitive
	}

	for line, want := range cases {
		require.Equal(t, want, transit.ColorFor(line), "line %q", line)
	}
}

func TestColorFor_isTotal(t *testing.T) {
	inputs := []string{"", "X9", "🚕", "M15", "unknown,line", "   "}
	for _, in := range inputs {
		color := transit.ColorFor(in)
		require.Regexp(t, hexColor, color, "input %q", in)
		require.Equal(t, "#333333", color, "unknown input %q should fall back to gray", in)
	}
}

func TestModeColor(t *testing.T) {
	require.Equal(t, "#4285F4", transit.ModeColor(models.ModeWalk))
	require.Equal(t, "#FF6D00", transit.ModeColor(models.ModeBus))
	require.Equal(t, "#000000", transit.ModeColor(models.ModeTaxi))
	require.Equal(t, "#333333", transit.ModeColor(models.TransitMode("hovercraft")))
}

func TestSymbolFor(t *testing.T) {
	require.Equal(t, "A", transit.SymbolFor(models.ModeSubway, "A,1"))
	require.Equal(t, "S", transit.SymbolFor(models.ModeSubway, ""))
	require.Equal(t, "L", transit.SymbolFor(models.ModeLIRR, ""))
	require.Equal(t, "B", transit.SymbolFor(models.ModeBus, "M15"))
	require.Equal(t, "W", transit.SymbolFor(models.ModeWalk, ""))
	require.Equal(t, "?", transit.SymbolFor(models.TransitMode("hovercraft"), ""))
}
