package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DannyMichaels/nyc-navigation-helper/internal/models"
)

const geocodeSystemPrompt = `You are a specialized AI that converts addresses to coordinates.`

const suggestSystemPrompt = `You are a specialized AI that provides NYC transit information.`

const enhanceSystemPrompt = `You are a hyper-detailed NYC transit routing AI.
- Expert in routes across the New York City metropolitan area, including LIRR and Metro-North
- Precise about train lines, transfer points
- Considers real-time transit constraints
- Prioritizes efficiency and passenger convenience`

const svgSystemPrompt = `You are a specialized AI that generates SVG code for map visualizations. You excel at creating accurate, mathematical representations of geographic data.`

const assistSystemPrompt = `You are a specialized NYC navigation assistant that provides extremely detailed and specific directions, transit options, and timetables. You provide multiple options and include very specific information like street names, subway entrances, transfer points, and walking directions. You are expert at calculating travel times in NYC. Use Markdown formatting to structure your responses in a clear, readable way; if there are multiple routes, you can also add a table with headers such as: Route Details, Estimated Travel Time, Pros, and Cons depending on the requirements.`

func geocodePrompt(address string) string {
	return fmt.Sprintf(`I need to convert this New York City address to approximate latitude and longitude coordinates:
%q

Please respond ONLY with a JSON object containing latitude and longitude, like this:
{"lat": 40.7128, "lng": -74.0060}

Do not include any explanation, just the JSON.`, address)
}

func suggestPrompt(from, to models.Venue) string {
	return fmt.Sprintf(`I need a transit suggestion from %q (%s) to %q (%s) in New York City.

Please respond ONLY with a JSON object containing:
1. type: "subway", "bus", or "walk"
2. description: A brief description of the route
3. duration: Estimated travel time in minutes
4. line: Subway or bus line(s) if applicable

Respond with JSON only, no explanation.`, from.Name, from.Address, to.Name, to.Address)
}

func enhancePrompt(from, to models.Venue, departureTime string, maxTravelMinutes int, arrival string) string {
	if arrival == "" {
		arrival = "Not specified"
	}
	return fmt.Sprintf(`You are an expert NYC transit router. Provide comprehensive transit options from %q (%s) to %q (%s) in the New York City metropolitan area.

CURRENT ROUTING CONTEXT:
- Current Time: %s
- Maximum Travel Time: %d minutes
- Desired Arrival Time: %s

SPECIFIC ROUTING REQUIREMENTS:
1. Provide MULTIPLE route options, including direct rail routes, rail + subway combinations, and alternative transit methods
2. For EACH ROUTE, provide exact train lines, transfer points, estimated travel time, cost, and pros and cons
3. Prioritize routes that arrive before the desired time, minimize total travel time, consider rush hour dynamics, and transfer efficiently

DETAILED ROUTE INFORMATION FORMAT:
{
  "type": "lirr" | "metro-north" | "subway" | "bus" | "multimodal" | "walk",
  "name": "Route Description",
  "line": "Specific Train Lines",
  "direction": "Travel Direction",
  "description": "Detailed Step-by-Step Route",
  "duration": Minutes,
  "cost": Total Cost in USD,
  "pros": ["Advantage 1", "Advantage 2"],
  "cons": ["Disadvantage 1", "Disadvantage 2"],
  "steps": ["Step 1", "Step 2"]
}

Respond with ONLY a valid JSON array of transit options.`,
		from.Name, from.Address, to.Name, to.Address, departureTime, maxTravelMinutes, arrival)
}

func compassPrompt(venues []models.Venue, center *models.Venue) string {
	venuesJSON, _ := json.MarshalIndent(venues, "", "  ")

	centerLine := "Use the first venue as the center point."
	if center != nil {
		centerJSON, _ := json.MarshalIndent(center, "", "  ")
		centerLine = fmt.Sprintf("The center/reference point of the map should be: %s", centerJSON)
	}

	return fmt.Sprintf(`You are a specialized AI assistant that generates SVG code for displaying locations on an NYC map/compass.

Here are the venues that need to be placed on the map:
%s

%s

Please generate valid SVG code for a compass/map visualization that:
1. Shows all venues relative to their geographic positions with VERY HIGH ACCURACY based on the coordinates
2. Has a clean, modern design with a circular compass rose and concentric distance rings
3. Uses the provided colors for the venue markers
4. Includes direction indicators (N/S/E/W)
5. Shows major NYC avenues and streets as reference lines - specifically include 5th Ave, 6th Ave, 7th Ave, Broadway, etc.
6. Represents distance accurately to scale based on the latitude/longitude values
7. Includes a clear legend showing what each marker represents
8. Places markers precisely based on the mathematical calculation from the coordinates

The SVG should include:
- A proper NYC grid overlay showing the main avenues and streets
- Distance rings to indicate approximate walking times (5min, 10min, 15min)
- Proper handling of the Manhattan grid's angle (approx. 29 degrees from true north)
- Clear, readable labels for all markers and streets

Return ONLY the raw SVG code with no explanation or markdown. The SVG should have viewBox="0 0 500 500" and no width/height attributes so it can be responsive.`,
		venuesJSON, centerLine)
}

func assistPrompt(query string, venues []models.Venue, center *models.Venue) string {
	lines := make([]string, 0, len(venues))
	for _, v := range venues {
		lines = append(lines, fmt.Sprintf("%s (%s): %s, coordinates: [%g, %g]",
			v.Name, v.ShortName, v.Address, v.Lat, v.Lng))
	}

	centerContext := "No center point set."
	if center != nil {
		centerContext = fmt.Sprintf("The current center/reference point is: %s at %s", center.Name, center.Address)
	}

	return fmt.Sprintf(`As an NYC navigation assistant, please answer this question with SPECIFIC, DETAILED information:

%q

Here are the locations currently on my map:
%s

%s

When providing directions or transit options:
1. Give MULTIPLE route options (2-3 different ways to get there)
2. For each option, include SPECIFIC subway lines, bus routes, or walking directions with street names
3. List estimated travel times for each option
4. Note pros and cons of each transit option (crowds, reliability, scenic views, etc.)
5. If applicable, mention estimated costs
6. Give specific street-by-street walking directions when relevant
7. If asked about timing, calculate when someone should leave to arrive at a specific time

Your response should be COMPREHENSIVE and SPECIFIC, focusing on NYC navigation, venues, transit options, and directions.

Format your response using proper Markdown formatting:
- Use **bold** for important information like subway line names, travel times, and costs
- Use *italics* for pros and cons
- Use Markdown headings (## and ###) to organize different route options
- Use numbered lists for step-by-step directions
- Use bullet points for pros and cons lists
- Use tables when comparing multiple options side by side`,
		query, strings.Join(lines, "\n"), centerContext)
}
