// Package transit maps NYC transit lines to display styling and live MTA
// feed data.
package transit

import (
	"strings"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
)

// DefaultColor is the neutral fallback for anything the registry does not know.
const DefaultColor = "#333333"

// Official MTA line colors, keyed by route symbol.
var lineColors = map[string]string{
	"1": "#EE352E", "2": "#EE352E", "3": "#EE352E",
	"4": "#00933C", "5": "#00933C", "6": "#00933C",
	"7": "#B933AD",
	"A": "#0039A6", "C": "#0039A6", "E": "#0039A6",
	"B": "#FF6319", "D": "#FF6319", "F": "#FF6319", "M": "#FF6319",
	"N": "#FCCC0A", "Q": "#FCCC0A", "R": "#FCCC0A", "W": "#FCCC0A",
	"L": "#A7A9AC",
	"G": "#6CBE45",
	"J": "#996633", "Z": "#996633",
	"S": "#808183",

	"LIRR":        "#808183",
	"METRO-NORTH": "#808183",
	"BUS":         "#FF6D00",
	"WALK":        "#4285F4",
	"TAXI":        "#000000",
	"UBER":        "#000000",
}

// Per-mode defaults used when an option carries no usable line identifier.
var modeColors = map[models.TransitMode]string{
	models.ModeSubway:     DefaultColor,
	models.ModeBus:        "#FF6D00",
	models.ModeWalk:       "#4285F4",
	models.ModeTaxi:       "#000000",
	models.ModeUber:       "#000000",
	models.ModeLIRR:       "#808183",
	models.ModeMetroNorth: "#808183",
	models.ModeMultimodal: "#4285F4",
}

// ColorFor resolves a line identifier to its display color. It is total:
// any input, including the empty string, yields a valid hex color.
func ColorFor(line string) string {
	if color, ok := lineColors[strings.ToUpper(FirstLine(line))]; ok {
		return color
	}
	return DefaultColor
}

// ModeColor returns the default color for a transit mode, falling back to
// the neutral gray for unknown modes.
func ModeColor(mode models.TransitMode) string {
	if color, ok := modeColors[mode]; ok {
		return color
	}
	return DefaultColor
}

// SymbolFor returns the one-character bullet drawn for an option: the leading
// route symbol for subway lines, otherwise a mode initial.
func SymbolFor(mode models.TransitMode, line string) string {
	switch mode {
	case models.ModeSubway:
		if symbol := FirstLine(line); symbol != "" {
			return symbol
		}
		return "S"
	case models.ModeLIRR:
		return "L"
	case models.ModeMetroNorth:
		return "M"
	case models.ModeBus:
		return "B"
	case models.ModeWalk:
		return "W"
	case models.ModeTaxi:
		return "T"
	case models.ModeUber:
		return "U"
	case models.ModeMultimodal:
		return "M"
	}
	return "?"
}

// FirstLine extracts the leading route symbol from a possibly comma-separated
// line field like "A,1,M15".
func FirstLine(line string) string {
	first, _, _ := strings.Cut(line, ",")
	return strings.TrimSpace(first)
}
