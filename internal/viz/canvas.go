// Package viz renders orbit trails to the terminal using Braille pixels.
package viz

import "strings"

// Braille patterns: a character cell holds 2x4 dots, offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels; out-of-range coordinates are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.Grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PlotOrbits draws both CoM trails scaled to fill the canvas.
func PlotOrbits(orbit1, orbit2 [][2]float64, width, height int) *Canvas {
	c := NewCanvas(width, height)
	if len(orbit1) == 0 && len(orbit2) == 0 {
		return c
	}

	minX, maxX := orbitBound(orbit1, orbit2, 0)
	minY, maxY := orbitBound(orbit1, orbit2, 1)
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	subW, subH := float64(width*2-1), float64(height*4-1)
	for _, trail := range [][][2]float64{orbit1, orbit2} {
		for _, p := range trail {
			x := int((p[0] - minX) / spanX * subW)
			// terminal y grows downward
			y := int((maxY - p[1]) / spanY * subH)
			c.Set(x, y)
		}
	}
	return c
}

func orbitBound(orbit1, orbit2 [][2]float64, d int) (min, max float64) {
	first := true
	for _, trail := range [][][2]float64{orbit1, orbit2} {
		for _, p := range trail {
			if first {
				min, max = p[d], p[d]
				first = false
				continue
			}
			if p[d] < min {
				min = p[d]
			}
			if p[d] > max {
				max = p[d]
			}
		}
	}
	return min, max
}
