package sink

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/ifsgen/pkg/ifs"
)

func cloud(xy ...float32) ifs.PointCloud {
	out := make(ifs.PointCloud, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, ifs.Point{xy[i], xy[i+1]})
	}
	return out
}

func TestRenderVerticesLayout(t *testing.T) {
	points := cloud(1, -2, 0.5, 3)
	data := RenderVertices(points)
	if len(data) != 2*VertexStride {
		t.Fatalf("len = %d, want %d", len(data), 2*VertexStride)
	}
	want := []float32{1, -2, 0.5, 3}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
		if got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestRenderVerticesEmpty(t *testing.T) {
	if data := RenderVertices(nil); len(data) != 0 {
		t.Errorf("len = %d, want 0", len(data))
	}
}

func TestDecodeVertices(t *testing.T) {
	points := cloud(0.25, 0.75, -1, 1)
	back, err := DecodeVertices(RenderVertices(points))
	if err != nil {
		t.Fatalf("DecodeVertices() error: %v", err)
	}
	if len(back) != len(points) {
		t.Fatalf("len = %d, want %d", len(back), len(points))
	}
	for i := range points {
		if back[i] != points[i] {
			t.Errorf("point %d = %v, want %v", i, back[i], points[i])
		}
	}

	if _, err := DecodeVertices(make([]byte, 7)); err == nil {
		t.Error("DecodeVertices(7 bytes) should fail")
	}
}

func TestAppendVerticesKeepsPrefix(t *testing.T) {
	dst := []byte{0xff}
	out := AppendVertices(dst, cloud(1, 1))
	if len(out) != 1+VertexStride || out[0] != 0xff {
		t.Errorf("AppendVertices() = %v", out)
	}
}

func TestRenderJSON(t *testing.T) {
	nan := float32(math.NaN())
	points := cloud(0, 0, 1, 0.5, nan, 1)
	maps := []ifs.AffineMap{ifs.Identity()}

	data, err := RenderJSON(points, WithJSONMaps(maps), WithJSONSource("sierpinski", 10, "origin"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Count != 3 {
		t.Errorf("Count = %d, want 3", out.Count)
	}
	if out.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", out.Skipped)
	}
	if len(out.Points) != 2 {
		t.Errorf("Points = %d, want 2", len(out.Points))
	}
	if out.Bounds == nil || out.Bounds.MaxX != 1 || out.Bounds.MaxY != 0.5 {
		t.Errorf("Bounds = %+v", out.Bounds)
	}
	if len(out.Maps) != 1 || out.Maps[0].Size != [2]float32{1, 1} {
		t.Errorf("Maps = %+v", out.Maps)
	}
	if out.Preset != "sierpinski" || out.Iterations != 10 || out.Seed != "origin" {
		t.Errorf("source = %q %d %q", out.Preset, out.Iterations, out.Seed)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(nil)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	want := `{"count":0,"bounds":null,"points":[]}`
	if string(data) != want {
		t.Errorf("RenderJSON(nil) = %s, want %s", data, want)
	}
}

func TestRenderSVG(t *testing.T) {
	points := cloud(0, 0.5, 0.25, -0.25)
	svg := string(RenderSVG(points, WithSize(100, 100), WithRadius(2)))

	if !strings.HasPrefix(svg, "<svg") {
		t.Errorf("missing <svg prefix: %q", svg[:20])
	}
	if !strings.Contains(svg, `viewBox="-1 -1 2 2"`) {
		t.Errorf("default viewBox missing in %s", svg)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	if !strings.Contains(svg, `cy="-0.5"`) {
		t.Errorf("y axis not flipped in %s", svg)
	}
	if !strings.Contains(svg, `fill="#000000"`) || !strings.Contains(svg, `fill="#ffffff"`) {
		t.Errorf("default colors missing in %s", svg)
	}
}

func TestRenderSVGRadiusInPixels(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   string
	}{
		// The default view is 2 units across 100 pixels.
		{"two pixels", 2, `r="0.04"`},
		{"zero is half a pixel", 0, `r="0.01"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(cloud(0, 0), WithSize(100, 100), WithRadius(tt.radius)))
			if !strings.Contains(svg, tt.want) {
				t.Errorf("missing %s in %s", tt.want, svg)
			}
		})
	}
}

func TestRenderSVGEscapesColors(t *testing.T) {
	svg := string(RenderSVG(nil, WithColors(`red" onload="x`, "<b>")))
	if strings.Contains(svg, `onload="x"`) || strings.Contains(svg, "<b>") {
		t.Errorf("colors not escaped in %s", svg)
	}
	if !strings.Contains(svg, `fill="red&#34; onload=&#34;x"`) {
		t.Errorf("escaped foreground missing in %s", svg)
	}
}

func TestRenderSVGAutoBounds(t *testing.T) {
	points := cloud(0, 0, 10, 20)
	svg := string(RenderSVG(points, WithAutoBounds()))
	// x spans [0,10] padded to [-0.5,10.5]; y spans [0,20] padded to [-1,21], flipped.
	if !strings.Contains(svg, `viewBox="-0.5 -21 11 22"`) {
		t.Errorf("auto viewBox wrong in %s", svg[:120])
	}
}

func TestRenderPNG(t *testing.T) {
	points := cloud(0, 0, 0.5, 0.5)
	data, err := RenderPNG(points, WithSize(16, 8))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("size = %dx%d, want 16x8", b.Dx(), b.Dy())
	}
	// (0,0) lands in the centre pixel, (0.5,0.5) in the upper right quadrant.
	if r, _, _, _ := img.At(8, 4).RGBA(); r == 0 {
		t.Error("centre pixel not lit")
	}
	if r, _, _, _ := img.At(12, 2).RGBA(); r == 0 {
		t.Error("upper right pixel not lit")
	}
	if r, _, _, _ := img.At(0, 7).RGBA(); r != 0 {
		t.Error("corner pixel should be background")
	}
}

func TestRenderPNGRadiusInPixels(t *testing.T) {
	data, err := RenderPNG(cloud(0, 0), WithSize(100, 100), WithRadius(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	lit := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r != 0 {
				lit++
			}
		}
	}
	// A 2px circle covers about 12.6 pixels; allow for antialiasing.
	if lit == 0 || lit > 40 {
		t.Errorf("lit pixels = %d, want a small disc", lit)
	}
	if r, _, _, _ := img.At(50, 50).RGBA(); r == 0 {
		t.Error("centre pixel not lit")
	}
}

func TestRenderPNGInvalidSize(t *testing.T) {
	if _, err := RenderPNG(nil, WithSize(0, 10)); err == nil {
		t.Error("RenderPNG(0x10) should fail")
	}
}

func TestBrailleLines(t *testing.T) {
	tests := []struct {
		name   string
		points ifs.PointCloud
		want   []string
	}{
		{
			name:   "empty",
			points: nil,
			want:   []string{"  "},
		},
		{
			name:   "top left dot",
			points: cloud(-0.9, 0.9),
			want:   []string{"⠁ "},
		},
		{
			name:   "bottom right dot",
			points: cloud(0.9, -0.9),
			want:   []string{" ⢀"},
		},
		{
			name:   "outside viewport",
			points: cloud(5, 5),
			want:   []string{"  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BrailleLines(tt.points, 2, 1)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("BrailleLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBrailleLinesZeroSize(t *testing.T) {
	if got := BrailleLines(cloud(0, 0), 0, 3); got != nil {
		t.Errorf("BrailleLines(0 cols) = %q, want nil", got)
	}
}
