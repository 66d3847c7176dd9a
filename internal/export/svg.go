package export

import (
	"fmt"
	"strings"
)

// SurfaceSVG converts braille canvas text, as produced by render.Snapshot,
// to an SVG with one dot per set braille pixel.
func SurfaceSVG(braille string, scale float64, fill string) string {
	rows := strings.Split(braille, "\n")
	cols := 0
	for _, row := range rows {
		cols = max(cols, len([]rune(row)))
	}
	if braille == "" || cols == 0 {
		return ""
	}

	width := float64(cols) * scale * 2
	height := float64(len(rows)) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill))

	// braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row, line := range rows {
		for col, r := range []rune(line) {
			if r < 0x2800 || r > 0x28ff {
				continue
			}
			pattern := int(r - 0x2800)
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SliceSVG draws u(x) for one time slice as a polyline.
func SliceSVG(x, u []float64, width, height int, stroke string) string {
	if len(x) < 2 || len(x) != len(u) {
		return ""
	}

	minX, maxX := x[0], x[0]
	minU, maxU := u[0], u[0]
	for i := range x {
		minX, maxX = min(minX, x[i]), max(maxX, x[i])
		minU, maxU = min(minU, u[i]), max(maxU, u[i])
	}

	rangeX := maxX - minX
	rangeU := maxU - minU
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeU == 0 {
		rangeU = 1
	}
	// 10% vertical headroom
	minU -= rangeU * 0.1
	rangeU *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke))

	for i := range x {
		px := (x[i] - minX) / rangeX * float64(width)
		py := float64(height) - (u[i]-minU)/rangeU*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
