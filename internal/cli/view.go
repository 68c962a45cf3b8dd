package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ifsgen/pkg/errors"
	"github.com/matzehuels/ifsgen/pkg/ifs"
	"github.com/matzehuels/ifsgen/pkg/pipeline"
	"github.com/matzehuels/ifsgen/pkg/render/sink"
)

const (
	defaultViewFPS = 10
	maxViewFPS     = 60
	maxZoom        = 256
	minZoom        = 0.05
	zoomStep       = 1.2
	panStep        = 0.1 // fraction of the visible extent
)

// viewCommand creates the view command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		file string
		fps  int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "view [preset]",
		Short: "Animate a preset in the terminal",
		Long: `Animate a preset in the terminal.

Every frame regenerates the point cloud from the starting points and draws it
with braille characters. Keys: +/- zoom, arrows pan, [ ] halve or double the
iterations, space pause, a refit, 0 reset, ? help, q quit.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Preset = args[0]
			}
			if fps <= 0 || fps > maxViewFPS {
				return fmt.Errorf("fps must be in [1, %d], got %d", maxViewFPS, fps)
			}
			return c.runView(cmd.Context(), opts, file, fps)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "F", "", "read the preset from a TOML file")
	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", 0, "rounds per frame (default from preset)")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "starting points: origin, square, grid[:N], random[:N]")
	cmd.Flags().IntVar(&fps, "fps", defaultViewFPS, "frames per second")
	cmd.Flags().BoolVar(&opts.AutoBounds, "auto-bounds", false, "fit the viewport to the first frame")

	return cmd
}

func (c *CLI) runView(ctx context.Context, opts pipeline.Options, file string, fps int) error {
	cat, err := c.renderCatalog(file, &opts)
	if err != nil {
		return err
	}
	opts.Catalog = cat
	opts.Logger = c.Logger
	if err := opts.ValidateForGenerate(); err != nil {
		return err
	}
	if p, err := cat.Get(presetOrDefault(opts.Preset)); err == nil {
		warnExpanding(c, p)
	}

	m := newViewModel(presetOrDefault(opts.Preset), opts.MapSet(), opts.StartPoints(), opts.Iterations, fps)
	m.autoBounds = opts.AutoBounds

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}
	if vm, ok := final.(viewModel); ok {
		c.Logger.Info("view closed", "preset", vm.name, "frames", vm.frames)
	}
	return nil
}

// =============================================================================
// viewModel - per-frame terminal renderer
// =============================================================================

// frameMsg asks the model to generate and draw the next frame.
type frameMsg time.Time

// viewModel owns a private snapshot of the map set and its own Generator.
// Each frame regenerates from the starting points into a reused buffer.
type viewModel struct {
	name       string
	set        *ifs.MapSet
	start      ifs.PointCloud
	iterations int
	fps        int

	gen    *ifs.Generator
	points ifs.PointCloud

	width, height int
	base          ifs.Bounds
	autoBounds    bool
	fitted        bool
	zoom          float32
	panX, panY    float32

	paused    bool
	help      bool
	frames    int
	frameTime time.Duration
	status    string
}

func newViewModel(name string, set *ifs.MapSet, start ifs.PointCloud, iterations, fps int) viewModel {
	return viewModel{
		name:       name,
		set:        set.Snapshot(),
		start:      start,
		iterations: iterations,
		fps:        fps,
		gen:        new(ifs.Generator),
		width:      pipeline.DefaultColumns,
		height:     pipeline.DefaultRows,
		base:       sink.DefaultBounds,
		zoom:       1,
	}
}

func (m viewModel) Init() tea.Cmd {
	return func() tea.Msg { return frameMsg(time.Now()) }
}

func (m viewModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if !m.paused {
			m.step()
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// step generates one frame.
func (m *viewModel) step() {
	start := time.Now()
	m.points = m.gen.AppendGenerate(m.points[:0], m.set, m.iterations, m.start)
	m.frameTime = time.Since(start)
	m.frames++
	if m.autoBounds && !m.fitted {
		m.fit()
	}
}

// fit makes the current frame's bounding box the base viewport.
func (m *viewModel) fit() {
	m.fitted = true
	if b, ok := m.points.Bounds(); ok && !b.Empty() {
		m.base = b
		m.zoom, m.panX, m.panY = 1, 0, 0
	}
}

func (m viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "+", "=":
		if m.zoom < maxZoom {
			m.zoom *= zoomStep
		}
		m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
	case "-", "_":
		if m.zoom > minZoom {
			m.zoom /= zoomStep
		}
		m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
	case "up", "k":
		m.panY += m.base.Height() / m.zoom * panStep
	case "down", "j":
		m.panY -= m.base.Height() / m.zoom * panStep
	case "left", "h":
		m.panX -= m.base.Width() / m.zoom * panStep
	case "right", "l":
		m.panX += m.base.Width() / m.zoom * panStep
	case "[":
		if m.iterations > 1 {
			m.iterations /= 2
		}
		m.status = fmt.Sprintf("iterations: %d", m.iterations)
	case "]":
		if m.iterations*2 <= errors.MaxIterations {
			m.iterations *= 2
		}
		m.status = fmt.Sprintf("iterations: %d", m.iterations)
	case " ":
		m.paused = !m.paused
		m.status = "running"
		if m.paused {
			m.status = "paused"
		}
	case "a":
		m.fit()
		m.status = "refit"
	case "0":
		m.base = sink.DefaultBounds
		m.zoom, m.panX, m.panY = 1, 0, 0
		m.status = "reset"
	case "?":
		m.help = !m.help
	}
	return m, nil
}

// viewport returns the visible region after zoom and pan.
func (m viewModel) viewport() ifs.Bounds {
	cx := (m.base.MinX+m.base.MaxX)/2 + m.panX
	cy := (m.base.MinY+m.base.MaxY)/2 + m.panY
	hw := m.base.Width() / 2 / m.zoom
	hh := m.base.Height() / 2 / m.zoom
	return ifs.Bounds{MinX: cx - hw, MinY: cy - hh, MaxX: cx + hw, MaxY: cy + hh}
}

// mapRows is the number of terminal rows left for the drawing after the
// header and footer.
func (m viewModel) mapRows() int {
	return max(1, m.height-2)
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName+" view") + StyleDim.Render(" · ") + StyleValue.Render(m.name))
	b.WriteString("\n")

	lines := sink.BrailleLines(m.points, max(1, m.width), m.mapRows(), sink.WithBounds(m.viewport()))
	b.WriteString(styleFrame.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if m.help {
		b.WriteString(StyleDim.Render("+/- zoom  arrows pan  [ ] iterations  space pause  a refit  0 reset  q quit"))
		return b.String()
	}
	footer := fmt.Sprintf("%d points · %d iterations · frame %d · %s",
		len(m.points), m.iterations, m.frames, m.frameTime.Round(time.Microsecond))
	if m.status != "" {
		footer += " · " + m.status
	}
	b.WriteString(StyleDim.Render(footer))
	return b.String()
}
