package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/ifsgen/pkg/ifs"
)

// brailleBase is U+2800, the empty braille pattern.
const brailleBase = 0x2800

// brailleBits maps a micro-pixel (column, row) inside a cell to its dot bit.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type brailleBuf struct {
	w, h int     // in cells
	m    []uint8 // per-cell 8-bit mask, row major
}

func newBrailleBuf(w, h int) *brailleBuf {
	return &brailleBuf{w: w, h: h, m: make([]uint8, w*h)}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell).
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= b.w || cy >= b.h {
		return
	}
	b.m[cy*b.w+cx] |= brailleBits[mx%2][my%4]
}

func (b *brailleBuf) lines() []string {
	out := make([]string, b.h)
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		sb.Reset()
		for _, mask := range b.m[y*b.w : (y+1)*b.w] {
			if mask == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteRune(rune(brailleBase + int(mask)))
			}
		}
		out[y] = sb.String()
	}
	return out
}

// BrailleLines draws the points into cols×rows terminal cells, one string
// per row. Each cell holds a 2x4 grid of dots.
func BrailleLines(points ifs.PointCloud, cols, rows int, opts ...Option) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	c := newConfig(opts)
	view := c.viewRect(points)
	buf := newBrailleBuf(cols, rows)
	mw, mh := cols*2, rows*4
	for _, p := range points {
		x, y, ok := project(view, mw, mh, p)
		if !ok {
			continue
		}
		buf.setPixel(int(math.Floor(x)), int(math.Floor(y)))
	}
	return buf.lines()
}

// RenderBraille is BrailleLines joined with newlines.
func RenderBraille(points ifs.PointCloud, cols, rows int, opts ...Option) []byte {
	lines := BrailleLines(points, cols, rows, opts...)
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
