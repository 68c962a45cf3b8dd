package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/jbeda/geom"

	"github.com/matzehuels/ifsgen/pkg/ifs"
)

// RenderSVG draws one circle per finite point. The viewBox is the viewport
// with y negated, so circles are written at (x, -y).
func RenderSVG(points ifs.PointCloud, opts ...Option) []byte {
	c := newConfig(opts)
	view := c.viewRect(points)
	box := geom.Rect{
		Min: geom.Coord{X: view.Min.X, Y: -view.Max.Y},
		Max: geom.Coord{X: view.Max.X, Y: -view.Min.Y},
	}

	// One pixel spans this many point-space units.
	unit := box.Width() / float64(c.width)
	radius := c.radius * unit
	if radius <= 0 {
		radius = unit / 2
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g" width="%d" height="%d">`+"\n",
		box.Min.X, box.Min.Y, box.Width(), box.Height(), c.width, c.height)
	fmt.Fprintf(&buf, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n",
		box.Min.X, box.Min.Y, box.Width(), box.Height(), html.EscapeString(c.background))
	fmt.Fprintf(&buf, `<g fill="%s">`+"\n", html.EscapeString(c.foreground))
	for _, p := range points {
		x, y := float64(p.X()), float64(p.Y())
		if !finite(x) || !finite(y) {
			continue
		}
		fmt.Fprintf(&buf, `<circle cx="%g" cy="%g" r="%g"/>`+"\n", x, -y, radius)
	}
	buf.WriteString("</g>\n</svg>\n")
	return buf.Bytes()
}
