package llm

import (
	"fmt"
	"strings"
)

// Models wrap payloads in markdown fences and prose no matter how firmly the
// prompt forbids it. These helpers carve the useful span out of the noise;
// validating the extracted text is the caller's job.

// ExtractJSONArray returns the span from the first '[' through the last ']'.
func ExtractJSONArray(content string) (string, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON array found in model output")
	}
	return content[start : end+1], nil
}

// ExtractJSONObject returns the span from the first '{' through the first '}'
// after it. Nested objects are deliberately not handled: the payloads this
// service asks for are flat.
func ExtractJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object found in model output")
	}
	end := strings.Index(content[start:], "}")
	if end == -1 {
		return "", fmt.Errorf("unterminated JSON object in model output")
	}
	return content[start : start+end+1], nil
}

// StripFences removes markdown code fence markers and surrounding whitespace.
func StripFences(content string) string {
	content = strings.ReplaceAll(content, "```svg", "")
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```xml", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// ExtractSVG strips fences and validates that the remaining text is raw SVG
// markup starting with an <svg tag.
func ExtractSVG(content string) (string, error) {
	svg := StripFences(content)
	if !strings.HasPrefix(svg, "<svg") {
		return "", fmt.Errorf("model output is not SVG markup")
	}
	return svg, nil
}
