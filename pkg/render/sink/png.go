package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/ifsgen/pkg/ifs"
)

// RenderPNG rasterises the points with gg. With a zero radius each point
// sets one pixel; otherwise points are filled circles.
func RenderPNG(points ifs.PointCloud, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", c.width, c.height)
	}
	view := c.viewRect(points)

	dc := gg.NewContext(c.width, c.height)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(c.background))

	fg := gg.Hex(c.foreground)
	pxRadius := c.radius
	if pxRadius < 0.5 {
		for _, p := range points {
			x, y, ok := project(view, c.width, c.height, p)
			if !ok {
				continue
			}
			ix, iy := int(math.Floor(x)), int(math.Floor(y))
			if ix < 0 || iy < 0 || ix >= c.width || iy >= c.height {
				continue
			}
			dc.SetPixel(ix, iy, fg)
		}
	} else {
		dc.SetRGBA(fg.R, fg.G, fg.B, fg.A)
		for _, p := range points {
			x, y, ok := project(view, c.width, c.height, p)
			if !ok {
				continue
			}
			if x < -pxRadius || y < -pxRadius || x > float64(c.width)+pxRadius || y > float64(c.height)+pxRadius {
				continue
			}
			dc.DrawPoint(x, y, pxRadius)
		}
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("fill points: %w", err)
		}
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
