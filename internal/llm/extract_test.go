package llm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/llm"
)

func TestExtractJSONArray_withProseAndFences(t *testing.T) {
	content := "Sure! Here are your options:\n```json\n[{\"type\": \"walk\"}, {\"type\": \"subway\"}]\n```\nLet me know if you need more."

	got, err := llm.ExtractJSONArray(content)

	require.NoError(t, err)
	require.Equal(t, `[{"type": "walk"}, {"type": "subway"}]`, got)
}

func TestExtractJSONArray_spansNestedArrays(t *testing.T) {
	content := `[{"pros": ["fast", "cheap"]}]`

	got, err := llm.ExtractJSONArray(content)

	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestExtractJSONArray_missing(t *testing.T) {
	_, err := llm.ExtractJSONArray("I could not find any routes, sorry.")
	require.Error(t, err)

	_, err = llm.ExtractJSONArray("] backwards [")
	require.Error(t, err)
}

func TestExtractJSONObject(t *testing.T) {
	content := "The coordinates are {\"lat\": 40.7128, \"lng\": -74.0060} approximately."

	got, err := llm.ExtractJSONObject(content)

	require.NoError(t, err)
	require.Equal(t, `{"lat": 40.7128, "lng": -74.0060}`, got)
}

func TestExtractJSONObject_missing(t *testing.T) {
	_, err := llm.ExtractJSONObject("no json here")
	require.Error(t, err)

	_, err = llm.ExtractJSONObject("open { but never closed")
	require.Error(t, err)
}

func TestExtractSVG_stripsFences(t *testing.T) {
	content := "```svg\n<svg viewBox=\"0 0 500 500\"><circle/></svg>\n```"

	got, err := llm.ExtractSVG(content)

	require.NoError(t, err)
	require.Equal(t, `<svg viewBox="0 0 500 500"><circle/></svg>`, got)
}

func TestExtractSVG_rejectsNonSVG(t *testing.T) {
	_, err := llm.ExtractSVG("Here is a description of a map instead of markup.")
	require.Error(t, err)
}

func TestStripFences_idempotentOnCleanInput(t *testing.T) {
	clean := `<svg viewBox="0 0 500 500"></svg>`
	require.Equal(t, clean, llm.StripFences(clean))
}
