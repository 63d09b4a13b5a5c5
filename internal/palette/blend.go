package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// CountryColor computes the display color for a country given the colours
// of every player who visited it. Zero visitors means no color (the
// country stays unfilled), a single visitor keeps their own colour, and
// overlapping visitors get a blend.
func CountryColor(colours []string) (string, bool) {
	switch len(colours) {
	case 0:
		return "", false
	case 1:
		return colours[0], true
	default:
		return Blend(colours), true
	}
}

// Blend returns the channel-wise average of the given hex colors as a
// lowercase "#rrggbb" string. The result depends only on the multiset of
// inputs, not their order. Unparseable entries are skipped; if nothing
// parses (including an empty input) the first parseable-looking input is
// returned as-is, or "" when there is none.
func Blend(colours []string) string {
	var r, g, b float64
	n := 0
	for _, c := range colours {
		col, err := colorful.Hex(strings.ToLower(c))
		if err != nil {
			continue
		}
		r += col.R
		g += col.G
		b += col.B
		n++
	}
	if n == 0 {
		if len(colours) == 0 {
			return ""
		}
		return colours[0]
	}

	mix := colorful.Color{R: r / float64(n), G: g / float64(n), B: b / float64(n)}
	return mix.Clamped().Hex()
}
