package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ifsgen/pkg/buildinfo"
	"github.com/matzehuels/ifsgen/pkg/cache"
	"github.com/matzehuels/ifsgen/pkg/ifs"
	"github.com/matzehuels/ifsgen/pkg/pipeline"
	"github.com/matzehuels/ifsgen/pkg/preset"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "ifsgen"

	// envRedisAddr selects the Redis cache when --redis-addr is not given.
	envRedisAddr = "IFSGEN_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output (tables, file lists, terminal frames).
	Out io.Writer

	presetDir string
	redisAddr string
}

// New creates a new CLI instance. Log lines go to w, command output to
// stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ifsgen generates fractal point clouds from affine map sets",
		Long: `ifsgen iterates a set of affine contraction maps over a starting point set
and renders the resulting point cloud as a vertex buffer, JSON, SVG, PNG or
terminal braille, live in the terminal, or as a websocket frame stream.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			gg.SetLogger(slog.New(c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	root.PersistentFlags().StringVar(&c.presetDir, "preset-dir", "", "directory of additional preset TOML files")
	root.PersistentFlags().StringVar(&c.redisAddr, "redis-addr", os.Getenv(envRedisAddr), "use a Redis cache at host:port (env "+envRedisAddr+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Keys are scoped to the
// build version so a new release never reads an older release's artifacts.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+"/")
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache picks the Redis cache when an address is configured and the file
// cache otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.redisAddr})
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		c.Logger.Debug("using redis cache", "addr", c.redisAddr)
		return rc, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("using file cache", "dir", dir)
	return fc, nil
}

// catalog returns the built-in presets plus those in --preset-dir.
func (c *CLI) catalog() (*preset.Catalog, error) {
	if c.presetDir == "" {
		return preset.Builtin()
	}
	return preset.LoadDir(c.presetDir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseBounds reads "minX,minY,maxX,maxY". An empty string means no bounds.
func parseBounds(s string) (*ifs.Bounds, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid bounds %q: want minX,minY,maxX,maxY", s)
	}
	var v [4]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		v[i] = float32(f)
	}
	return &ifs.Bounds{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}, nil
}
