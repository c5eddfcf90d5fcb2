package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// runeMeasurer pretends every rune is exactly one unit wide
type runeMeasurer struct{}

func (runeMeasurer) StringWidth(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrapBreaksAtWhitespace(t *testing.T) {
	lines := Wrap(runeMeasurer{}, "AAAA BBBB", 4)
	assert.Equal(t, []string{"AAAA", "BBBB"}, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, runeMeasurer{}.StringWidth(line), 4.0)
	}
}

func TestWrapLosesNoCharacters(t *testing.T) {
	in := "the quick brown fox jumps over the lazy dog"
	lines := Wrap(runeMeasurer{}, in, 10)
	assert.Equal(t, in, strings.Join(lines, " "))
}

func TestWrapPreservesExplicitNewlines(t *testing.T) {
	lines := Wrap(runeMeasurer{}, "first line\nsecond", 100)
	assert.Equal(t, []string{"first line", "second"}, lines)
}

func TestWrapKeepsBlankLines(t *testing.T) {
	lines := Wrap(runeMeasurer{}, "a\n\nb", 100)
	assert.Equal(t, []string{"a", "", "b"}, lines)
}

func TestWrapOverlongWordStaysUnbroken(t *testing.T) {
	lines := Wrap(runeMeasurer{}, "short Neverendingsupercalifragilistic end", 8)
	assert.Contains(t, lines, "Neverendingsupercalifragilistic")
	assert.Equal(t, []string{"short", "Neverendingsupercalifragilistic", "end"}, lines)
}

func TestWrapEmptyInput(t *testing.T) {
	assert.Equal(t, []string{""}, Wrap(runeMeasurer{}, "", 10))
}

func TestHeight(t *testing.T) {
	assert.Equal(t, 5.0, Height(0, 5))
	assert.Equal(t, 5.0, Height(1, 5))
	assert.Equal(t, 15.0, Height(3, 5))
}
