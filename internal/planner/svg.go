package planner

import (
	"fmt"
	"strings"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/geo"
	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
)

const (
	svgSize       = 500
	svgCenter     = 250
	compassRadius = 200
	// markerRadius keeps the farthest venue inside the outer ring.
	markerRadius = 180
)

// FallbackSVG renders a deterministic compass when the model cannot. Venues
// are projected onto a flat plane around the center venue and scaled so the
// farthest one sits just inside the compass ring.
func FallbackSVG(venues []models.Venue, center *models.Venue) string {
	if len(venues) == 0 {
		return emptyCompass()
	}

	centerVenue := venues[0]
	if center != nil {
		centerVenue = *center
	}

	// Scale from the farthest venue; a lone center point needs no scale.
	var maxDist float64
	for _, v := range venues {
		if d := geo.Haversine(centerVenue.Lat, centerVenue.Lng, v.Lat, v.Lng); d > maxDist {
			maxDist = d
		}
	}
	scale := 0.0
	if maxDist > 0 {
		scale = markerRadius / maxDist
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, svgSize, svgSize))
	b.WriteString(fmt.Sprintf(`
  <circle cx="%d" cy="%d" r="%d" fill="#f0f0f0" stroke="#333" stroke-width="2"/>
  <circle cx="%d" cy="%d" r="%d" fill="none" stroke="#ccc" stroke-width="1"/>
  <circle cx="%d" cy="%d" r="%d" fill="none" stroke="#ccc" stroke-width="1"/>
  <line x1="50" y1="%d" x2="450" y2="%d" stroke="#333" stroke-width="1"/>
  <line x1="%d" y1="50" x2="%d" y2="450" stroke="#333" stroke-width="1"/>
  <text x="%d" y="30" text-anchor="middle" font-family="Arial" font-size="16" font-weight="bold">NORTH</text>
  <text x="%d" y="480" text-anchor="middle" font-family="Arial" font-size="16" font-weight="bold">SOUTH</text>
  <text x="30" y="%d" text-anchor="middle" font-family="Arial" font-size="16" font-weight="bold">WEST</text>
  <text x="470" y="%d" text-anchor="middle" font-family="Arial" font-size="16" font-weight="bold">EAST</text>`,
		svgCenter, svgCenter, compassRadius,
		svgCenter, svgCenter, compassRadius*2/3,
		svgCenter, svgCenter, compassRadius/3,
		svgCenter, svgCenter,
		svgCenter, svgCenter,
		svgCenter, svgCenter, svgCenter, svgCenter))

	for _, v := range venues {
		if v.ID == centerVenue.ID {
			b.WriteString(fmt.Sprintf(`
  <circle cx="%d" cy="%d" r="15" fill="%s" stroke="#333" stroke-width="2"/>
  <text x="%d" y="%d" text-anchor="middle" font-family="Arial" font-size="10" fill="white" font-weight="bold">%s</text>`,
				svgCenter, svgCenter, v.Color, svgCenter, svgCenter+5, v.ShortName))
			continue
		}

		x, y := geo.Offset(centerVenue.Lat, centerVenue.Lng, v.Lat, v.Lng)
		// SVG y grows downward; north is up.
		px := float64(svgCenter) + x*scale
		py := float64(svgCenter) - y*scale

		b.WriteString(fmt.Sprintf(`
  <circle cx="%.1f" cy="%.1f" r="10" fill="%s" stroke="#333" stroke-width="2"/>
  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="Arial" font-size="8" fill="white" font-weight="bold">%s</text>`,
			px, py, v.Color, px, py+5, v.ShortName))
	}

	b.WriteString("\n</svg>")
	return b.String()
}

func emptyCompass() string {
	return fmt.Sprintf(`<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
  <circle cx="%d" cy="%d" r="%d" fill="#f0f0f0" stroke="#333" stroke-width="2"/>
  <text x="%d" y="%d" text-anchor="middle" font-family="Arial" font-size="14">No venues to display</text>
</svg>`, svgSize, svgSize, svgCenter, svgCenter, compassRadius, svgCenter, svgCenter)
}
