package styles

import (
	"bytes"
	"encoding/xml"
)

const (
	// fontCharWidth approximates average glyph width as a fraction of
	// font size for the sans-serif stack used in the SVG output.
	fontCharWidth = 0.55

	// fontAscentRatio approximates the ascent height as a fraction of
	// font size, used for bounding boxes.
	fontAscentRatio = 0.8
)

// TextWidth estimates the rendered width of s at the given font size.
// Exact metrics would require embedding font tables; the approximation
// only feeds collision boxes and fitting heuristics.
func TextWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * fontCharWidth
}

// TextHeight estimates the rendered height of a single line at the given
// font size.
func TextHeight(fontSize float64) float64 {
	return fontSize * fontAscentRatio
}

// EscapeXML escapes s for embedding in SVG text nodes and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
