// Package export renders a run's orbital trajectories to SVG.
package export

import (
	"fmt"
	"math"
	"strings"
)

// OrbitSVG draws the two stars' center-of-mass trails as polylines on a dark
// background, scaled to fit the given pixel size with a small margin.
func OrbitSVG(orbit1, orbit2 [][2]float64, width, height int) string {
	if len(orbit1) < 2 || len(orbit2) < 2 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, trail := range [][][2]float64{orbit1, orbit2} {
		for _, p := range trail {
			minX = math.Min(minX, p[0])
			maxX = math.Max(maxX, p[0])
			minY = math.Min(minY, p[1])
			maxY = math.Max(maxY, p[1])
		}
	}

	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	const margin = 20.0
	scaleX := (float64(width) - 2*margin) / spanX
	scaleY := (float64(height) - 2*margin) / spanY

	toPixel := func(p [2]float64) (float64, float64) {
		x := margin + (p[0]-minX)*scaleX
		// SVG y grows downward
		y := float64(height) - margin - (p[1]-minY)*scaleY
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	writeTrail(&sb, orbit1, toPixel, "#00ccff")
	writeTrail(&sb, orbit2, toPixel, "#ff8800")

	// final star positions
	for i, trail := range [][][2]float64{orbit1, orbit2} {
		color := "#00ccff"
		if i == 1 {
			color = "#ff8800"
		}
		x, y := toPixel(trail[len(trail)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeTrail(sb *strings.Builder, trail [][2]float64, toPixel func([2]float64) (float64, float64), color string) {
	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, color))
	for i, p := range trail {
		if i > 0 {
			sb.WriteByte(' ')
		}
		x, y := toPixel(p)
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}
	sb.WriteString("\"/>\n")
}
