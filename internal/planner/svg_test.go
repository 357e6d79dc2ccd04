package planner_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/planner"
)

func TestCompassSVG_stripsFencesFromModelOutput(t *testing.T) {
	chat := &mockChat{content: "```svg\n<svg viewBox=\"0 0 500 500\"><circle cx=\"250\" cy=\"250\" r=\"200\"/></svg>\n```"}
	svc := planner.New(chat, &mockRealtime{}, fixedClock())

	svg, source := svc.CompassSVG(context.Background(), []models.Venue{penn, fiveIron}, &penn)

	require.Equal(t, planner.SourceModel, source)
	require.True(t, strings.HasPrefix(svg, "<svg"))
	require.NotContains(t, svg, "```")
}

func TestCompassSVG_fallbackOnNonSVG(t *testing.T) {
	chat := &mockChat{content: "I cannot draw maps, but here is a description..."}
	svc := planner.New(chat, &mockRealtime{}, fixedClock())

	svg, source := svc.CompassSVG(context.Background(), []models.Venue{penn, fiveIron}, &penn)

	require.Equal(t, planner.SourceFallback, source)
	require.True(t, strings.HasPrefix(svg, "<svg"))
	require.Contains(t, svg, "NORTH")
	require.Contains(t, svg, penn.ShortName)
	require.Contains(t, svg, fiveIron.ShortName)
}

func TestCompassSVG_fallbackOnChatError(t *testing.T) {
	svc := planner.New(&mockChat{err: errors.New("down")}, &mockRealtime{}, fixedClock())

	svg, source := svc.CompassSVG(context.Background(), []models.Venue{penn}, nil)

	require.Equal(t, planner.SourceFallback, source)
	require.True(t, strings.HasPrefix(svg, "<svg"))
}

func TestFallbackSVG_layout(t *testing.T) {
	svg := planner.FallbackSVG([]models.Venue{penn, fiveIron}, &penn)

	// Center venue sits at the compass center.
	require.Contains(t, svg, `cx="250" cy="250" r="15" fill="#4285F4"`)
	// The other venue is drawn as a smaller marker in its own color.
	require.Contains(t, svg, `fill="#DB4437"`)
	require.Contains(t, svg, "5i")
	require.Contains(t, svg, "EAST")
}

func TestFallbackSVG_noVenues(t *testing.T) {
	svg := planner.FallbackSVG(nil, nil)

	require.True(t, strings.HasPrefix(svg, "<svg"))
	require.Contains(t, svg, "No venues to display")
}
