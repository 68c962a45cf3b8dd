package pipeline

import (
	"fmt"

	"github.com/matzehuels/ifsgen/pkg/ifs"
	"github.com/matzehuels/ifsgen/pkg/render/sink"
)

// Render encodes points in every requested format.
func Render(points ifs.PointCloud, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(points, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(points ifs.PointCloud, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatVertices:
		return sink.RenderVertices(points), nil
	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONSource(opts.Preset, opts.Iterations, opts.Seed)}
		if set := opts.MapSet(); set != nil {
			jsonOpts = append(jsonOpts, sink.WithJSONMaps(set.Maps()))
		}
		return sink.RenderJSON(points, jsonOpts...)
	case FormatSVG:
		return sink.RenderSVG(points, buildSinkOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(points, buildSinkOptions(opts)...)
	case FormatText:
		return sink.RenderBraille(points, opts.Columns, opts.Rows, buildSinkOptions(opts)...), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func buildSinkOptions(opts Options) []sink.Option {
	out := []sink.Option{
		sink.WithSize(opts.Width, opts.Height),
		sink.WithRadius(opts.Radius),
	}
	if opts.Bounds != nil {
		out = append(out, sink.WithBounds(*opts.Bounds))
	}
	if opts.AutoBounds {
		out = append(out, sink.WithAutoBounds())
	}
	if opts.Foreground != "" || opts.Background != "" {
		fg, bg := opts.Foreground, opts.Background
		if fg == "" {
			fg = sink.DefaultForeground
		}
		if bg == "" {
			bg = sink.DefaultBackground
		}
		out = append(out, sink.WithColors(fg, bg))
	}
	return out
}
