package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type glyph struct {
	r  rune
	fg string
}

// canvas is a braille microgrid (2x4 dots per cell) with one ink colour per
// cell, plus a glyph layer for overlays and a background layer for the basemap.
type canvas struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	ink  [][]string
	over [][]glyph
	bg   [][]glyph
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.m = make([][]uint8, h)
	c.ink = make([][]string, h)
	c.over = make([][]glyph, h)
	c.bg = make([][]glyph, h)
	for i := 0; i < h; i++ {
		c.m[i] = make([]uint8, w)
		c.ink[i] = make([]string, w)
		c.over[i] = make([]glyph, w)
		c.bg[i] = make([]glyph, w)
	}
	return c
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setDot sets a micro-pixel at micro coords (2x4 per cell)
func (c *canvas) setDot(mx, my int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	c.m[cy][cx] |= dotBits[rx][ry]
	c.ink[cy][cx] = color
}

// brush sets a width x width block of dots anchored at (mx, my).
func (c *canvas) brush(mx, my, width int, color string) {
	if width <= 1 {
		c.setDot(mx, my, color)
		return
	}
	for dy := 0; dy < width; dy++ {
		for dx := 0; dx < width; dx++ {
			c.setDot(mx+dx-width/2, my+dy-width/2, color)
		}
	}
}

// line draws on the microgrid using Bresenham
func (c *canvas) line(x0, y0, x1, y1, width int, color string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	// keep far-off segments from spinning forever
	if dx-dy > 1<<16 {
		return
	}
	err := dx + dy
	for {
		c.brush(x0, y0, width, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fill paints the inside of rings using the even-odd rule per dot scanline,
// so holes stay empty.
func (c *canvas) fill(rings [][][2]int, color string) {
	hMic := c.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for _, r := range rings {
			for i := 0; i < len(r); i++ {
				a := r[i]
				b := r[(i+1)%len(r)]
				if a[1] == b[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], b[1]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(a[0])+t*float64(b[0]-a[0])))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1] && xMic < c.w*2; xMic++ {
				c.setDot(xMic, yMic, color)
			}
		}
	}
}

// put places an overlay glyph in a cell; overlays win over dots.
func (c *canvas) put(cx, cy int, r rune, color string) {
	if cx < 0 || cy < 0 || cx >= c.w || cy >= c.h {
		return
	}
	c.over[cy][cx] = glyph{r: r, fg: color}
}

// background places a glyph that only shows where nothing else is drawn.
func (c *canvas) background(cx, cy int, r rune, color string) {
	if cx < 0 || cy < 0 || cx >= c.w || cy >= c.h {
		return
	}
	c.bg[cy][cx] = glyph{r: r, fg: color}
}

func (c *canvas) cell(x, y int) glyph {
	if g := c.over[y][x]; g.r != 0 {
		return g
	}
	if mask := c.m[y][x]; mask != 0 {
		return glyph{r: rune(0x2800 + int(mask)), fg: c.ink[y][x]}
	}
	if g := c.bg[y][x]; g.r != 0 {
		return g
	}
	return glyph{r: ' '}
}

// toLines renders each row, colouring runs of cells that share an ink.
func (c *canvas) toLines() []string {
	styles := map[string]lipgloss.Style{}
	paint := func(color, s string) string {
		if color == "" {
			return s
		}
		st, ok := styles[color]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			styles[color] = st
		}
		return st.Render(s)
	}
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		var run []rune
		runColor := ""
		for x := 0; x < c.w; x++ {
			g := c.cell(x, y)
			if g.fg != runColor && len(run) > 0 {
				b.WriteString(paint(runColor, string(run)))
				run = run[:0]
			}
			runColor = g.fg
			run = append(run, g.r)
		}
		if len(run) > 0 {
			b.WriteString(paint(runColor, string(run)))
		}
		out[y] = b.String()
	}
	return out
}

// plain returns the rows without colour, for tests and clipboard use.
func (c *canvas) plain() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			row[x] = c.cell(x, y).r
		}
		out[y] = string(row)
	}
	return out
}
