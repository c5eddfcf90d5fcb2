// Package pdf implements the invoice document pipeline: text flow, font
// registration, QR image generation and the single-page layout engine,
// orchestrated by Renderer.
package pdf

import (
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
)

// Measurer reports the rendered width of a string in the currently selected
// font. Layout math depends on real glyph metrics, so wrapping must always be
// computed against the font that will draw the text.
type Measurer interface {
	StringWidth(s string) float64
}

type fpdfMeasurer struct {
	doc *gofpdf.Fpdf
}

// NewMeasurer wraps a document so layout math uses its live font metrics
func NewMeasurer(doc *gofpdf.Fpdf) Measurer {
	return fpdfMeasurer{doc: doc}
}

func (m fpdfMeasurer) StringWidth(s string) float64 {
	return m.doc.GetStringWidth(s)
}

// Wrap splits text into lines no wider than maxWidth. Explicit newlines are
// preserved as hard breaks; each logical line then wraps greedily at
// whitespace. A single word wider than maxWidth stays on its own line
// unbroken. gofpdf's own SplitText is not used here because it force-breaks
// over-long words mid-word.
func Wrap(m Measurer, text string, maxWidth float64) []string {
	var lines []string
	for _, logical := range strings.Split(text, "\n") {
		words := strings.Fields(logical)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if m.StringWidth(candidate) <= maxWidth {
				current = candidate
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	return lines
}

// Height returns the vertical space a wrapped block occupies. An empty block
// still reserves one line.
func Height(lineCount int, lineHeight float64) float64 {
	if lineCount < 1 {
		lineCount = 1
	}
	return float64(lineCount) * lineHeight
}
