package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ifsgen/pkg/pipeline"
	"github.com/matzehuels/ifsgen/pkg/preset"
)

// stdoutPath makes render write its single output to stdout.
const stdoutPath = "-"

// renderFlags holds the flags of the render command that do not map
// directly onto pipeline.Options.
type renderFlags struct {
	file    string
	formats string
	bounds  string
	output  string
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "Generate a point cloud and write it to files",
		Long: `Generate a point cloud from a preset and write it in one or more formats.

The preset is looked up in the built-in catalogue (see 'ifsgen presets') and
in --preset-dir, or read from a TOML file with --file. Without either, the
default preset is used.

Formats: vertices (raw little-endian float32 pairs), json, svg, png, txt
(braille). Generated points and artifacts are cached, so re-rendering the
same preset in another format skips generation.`,
		Example: `  ifsgen render sierpinski -f png,svg
  ifsgen render fern -n 12 --seed grid:32 -o fern.png -f png
  ifsgen render -F my.toml -f txt -o -`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Preset = args[0]
			}
			opts.Formats = parseFormats(flags.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			b, err := parseBounds(flags.bounds)
			if err != nil {
				return err
			}
			opts.Bounds = b
			return c.runRender(cmd.Context(), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "F", "", "read the preset from a TOML file")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", 0, fmt.Sprintf("rounds of the map set (default from preset, else %d)", pipeline.DefaultIterations))
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "starting points: origin, square, grid[:N], random[:N] (default from preset, else "+pipeline.DefaultSeed+")")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even when cached")

	cmd.Flags().IntVar(&opts.Width, "width", pipeline.DefaultWidth, "image width in pixels (svg, png)")
	cmd.Flags().IntVar(&opts.Height, "height", pipeline.DefaultHeight, "image height in pixels (svg, png)")
	cmd.Flags().IntVar(&opts.Columns, "columns", pipeline.DefaultColumns, "terminal columns (txt)")
	cmd.Flags().IntVar(&opts.Rows, "rows", pipeline.DefaultRows, "terminal rows (txt)")
	cmd.Flags().Float64Var(&opts.Radius, "radius", 0, "point radius in pixels (svg, png; default a single pixel)")
	cmd.Flags().StringVar(&flags.bounds, "bounds", "", "viewport minX,minY,maxX,maxY (default -1,-1,1,1)")
	cmd.Flags().BoolVar(&opts.AutoBounds, "auto-bounds", false, "fit the viewport to the points")
	cmd.Flags().StringVar(&opts.Foreground, "fg", "", "point color (svg, png)")
	cmd.Flags().StringVar(&opts.Background, "bg", "", "background color (svg, png)")

	return cmd
}

// runRender resolves the preset, runs the pipeline and writes one file per
// format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	cat, err := c.renderCatalog(flags.file, &opts)
	if err != nil {
		return err
	}
	opts.Catalog = cat
	opts.Logger = c.Logger

	if flags.output == stdoutPath && len(opts.Formats) > 1 {
		return fmt.Errorf("output to stdout needs exactly one format, got %d", len(opts.Formats))
	}

	if p, err := cat.Get(presetOrDefault(opts.Preset)); err == nil {
		warnExpanding(c, p)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, os.Stderr, fmt.Sprintf("Generating %s...", presetOrDefault(opts.Preset)))
	if flags.output != stdoutPath {
		spin.Start()
	}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	if flags.output == stdoutPath {
		_, err := c.Out.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(flags.output, presetOrDefault(opts.Preset), opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
	}
	prog.done("wrote outputs", "files", len(paths))

	printSuccess(c.Out, "Rendered %s", presetOrDefault(opts.Preset))
	printStats(c.Out, result.Stats.MapCount, result.Stats.PointCount, result.CacheInfo.GenerateHit)
	for _, format := range opts.Formats {
		printFile(c.Out, paths[format])
	}
	return nil
}

// renderCatalog returns the catalogue a render resolves its preset from.
// With a file, the catalogue holds only that preset and opts.Preset is set
// to its name.
func (c *CLI) renderCatalog(file string, opts *pipeline.Options) (*preset.Catalog, error) {
	if file == "" {
		return c.catalog()
	}
	if opts.Preset != "" {
		return nil, fmt.Errorf("give either a preset name or --file, not both")
	}
	p, err := preset.Load(file)
	if err != nil {
		return nil, err
	}
	opts.Preset = p.Name
	return preset.NewCatalog(p), nil
}

func presetOrDefault(name string) string {
	if name == "" {
		return pipeline.DefaultPreset
	}
	return name
}

// warnExpanding logs maps that do not contract; their points drift away
// from the attractor.
func warnExpanding(c *CLI, p *preset.Preset) {
	if idx := p.Expanding(); len(idx) > 0 {
		c.Logger.Warn("preset has non-contracting maps", "preset", p.Name, "maps", idx)
	}
}

// outputPaths maps each format to the file it is written to. A single
// format is written to output verbatim; several formats share output as a
// base path with any known extension stripped. Without output, base is used.
func outputPaths(output, base string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	if output != "" {
		base = output
		if ext := filepath.Ext(output); slices.Contains(extensions(), ext) {
			base = strings.TrimSuffix(output, ext)
		}
	}
	for _, f := range formats {
		paths[f] = base + pipeline.FormatExtensions[f]
	}
	return paths
}

func extensions() []string {
	out := make([]string, 0, len(pipeline.FormatExtensions))
	for _, ext := range pipeline.FormatExtensions {
		out = append(out, ext)
	}
	return out
}
