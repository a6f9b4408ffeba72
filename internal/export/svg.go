package export

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/san-kum/datavis3d/internal/viz"
)

// CanvasToSVG draws every lit braille dot as a circle, grouped by colour.
// scale is the size of one dot in SVG units.
func CanvasToSVG(c *viz.Canvas, scale float64, bg color.RGBA) string {
	if c == nil {
		return ""
	}
	w, h := c.Dots()
	width, height := float64(w)*scale, float64(h)*scale

	groups := make(map[string][]string)
	r := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.Lit(x, y) {
				continue
			}
			col := hex(c.Colors[y/4][x/2])
			groups[col] = append(groups[col], fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>`,
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, r))
		}
	}
	colors := make([]string, 0, len(groups))
	for k := range groups {
		colors = append(colors, k)
	}
	sort.Strings(colors)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, hex(bg))
	for _, col := range colors {
		fmt.Fprintf(&sb, "<g fill=\"%s\">\n", col)
		for _, dot := range groups[col] {
			sb.WriteString(dot)
			sb.WriteByte('\n')
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// ProfileToSVG draws values as a polyline filling width x height.
func ProfileToSVG(values []float64, width, height int, stroke string) string {
	if len(values) < 2 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`, width, height, width, height, stroke)
	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
