package cli

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ifsgen/pkg/observability"
	"github.com/matzehuels/ifsgen/pkg/pipeline"
	"github.com/matzehuels/ifsgen/pkg/stream"
)

const defaultAddr = "localhost:8080"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		iterations int
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve presets, rendered artifacts and websocket frame streams",
		Long: `Serve presets, rendered artifacts and websocket frame streams over HTTP.

Routes:
  GET /healthz
  GET /presets
  GET /presets/{name}
  GET /render/{name}.{format}
  GET /ws?preset=NAME&iterations=N&seed=KIND&fps=F&frames=N

Use --redis-addr to share the artifact cache between several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, iterations, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", defaultAddr, "listen address")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, fmt.Sprintf("stream iterations when neither query nor preset set them (default %d)", pipeline.DefaultIterations))
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching of /render artifacts")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, iterations int, noCache bool) error {
	cat, err := c.catalog()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	hooks := newLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetStreamHooks(hooks)
	defer observability.Reset()

	srv, err := stream.NewServer(stream.Config{
		Catalog:           cat,
		Runner:            runner,
		Logger:            c.Logger,
		DefaultIterations: iterations,
	})
	if err != nil {
		return err
	}

	printInfo(c.Out, "Serving %d presets on %s", len(cat.Names()), StyleValue.Render("http://"+addr))
	err = srv.ListenAndServe(ctx, addr)
	hooks.summary()
	if errors.Is(err, context.Canceled) {
		printSuccess(c.Out, "Server stopped")
	}
	return err
}

// =============================================================================
// logHooks - observability hooks backed by the CLI logger
// =============================================================================

// logHooks logs pipeline, cache and stream events at debug level and keeps
// running totals for the shutdown summary.
type logHooks struct {
	logger *log.Logger

	clients atomic.Int64
	frames  atomic.Int64
	hits    atomic.Int64
	misses  atomic.Int64
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnGenerateStart(_ context.Context, maps, iterations int) {
	h.logger.Debug("generate start", "maps", maps, "iterations", iterations)
}

func (h *logHooks) OnGenerateComplete(_ context.Context, points int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("generate failed", "err", err)
		return
	}
	h.logger.Debug("generate done", "points", points, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.hits.Add(1)
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.misses.Add(1)
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnConnect(_ context.Context, clientID, preset string) {
	h.clients.Add(1)
	h.logger.Debug("stream hook connect", "client", clientID, "preset", preset)
}

func (h *logHooks) OnFrame(_ context.Context, clientID string, points int, d time.Duration) {
	h.frames.Add(1)
	h.logger.Debug("frame", "client", clientID, "points", points, "duration", d)
}

func (h *logHooks) OnDisconnect(_ context.Context, clientID string, frames int, err error) {
	h.logger.Debug("stream hook disconnect", "client", clientID, "frames", frames, "err", err)
}

func (h *logHooks) summary() {
	h.logger.Info("server summary",
		"clients", h.clients.Load(),
		"frames", h.frames.Load(),
		"cache_hits", h.hits.Load(),
		"cache_misses", h.misses.Load())
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.StreamHooks   = (*logHooks)(nil)
)
