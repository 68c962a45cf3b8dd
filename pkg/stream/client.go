package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	ifserrors "github.com/matzehuels/ifsgen/pkg/errors"
	"github.com/matzehuels/ifsgen/pkg/ifs"
	"github.com/matzehuels/ifsgen/pkg/observability"
	"github.com/matzehuels/ifsgen/pkg/pipeline"
	"github.com/matzehuels/ifsgen/pkg/render/sink"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = time.Second
	// Maximum message size accepted from the peer; clients only send control frames.
	maxMessageSize = 512
	// Time allowed between pongs before the peer is considered gone.
	pongWait = 10 * time.Second
	// Pings are sent at this period, which must be less than pongWait.
	pingPeriod = pongWait * 9 / 10
	// Time to wait for the peer's close reply after the last frame.
	closeGracePeriod = time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Hello is the first message of every stream.
type Hello struct {
	ClientID   string `json:"client_id"`
	Preset     string `json:"preset,omitempty"`
	Maps       int    `json:"maps"`
	Iterations int    `json:"iterations"`
	Seed       string `json:"seed"`
	Points     int    `json:"points"`
	Stride     int    `json:"stride"`
	FPS        int    `json:"fps"`
}

// errPeerClosed ends the group when the client goes away normally.
var errPeerClosed = errors.New("peer closed")

type query struct {
	preset     string
	iterations int
	seed       string
	fps        int
	frames     int
	auto       bool
}

func parseQuery(r *http.Request) (query, error) {
	v := r.URL.Query()
	q := query{
		preset: v.Get("preset"),
		seed:   v.Get("seed"),
		fps:    DefaultFPS,
	}
	ints := []struct {
		key string
		dst *int
		min int
		max int
	}{
		{"iterations", &q.iterations, 0, ifserrors.MaxIterations},
		{"fps", &q.fps, 1, MaxFPS},
		{"frames", &q.frames, 0, 1 << 30},
	}
	for _, f := range ints {
		raw := v.Get(f.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < f.min || n > f.max {
			return q, ifserrors.New(ifserrors.ErrCodeInvalidInput, "%s must be an integer in [%d, %d], got %q", f.key, f.min, f.max, raw)
		}
		*f.dst = n
	}
	if raw := v.Get("auto"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return q, ifserrors.New(ifserrors.ErrCodeInvalidInput, "auto must be a boolean, got %q", raw)
		}
		q.auto = b
	}
	return q, nil
}

// client runs one websocket frame loop.
type client struct {
	id         uuid.UUID
	conn       *websocket.Conn
	logger     *log.Logger
	set        *ifs.MapSet
	start      ifs.PointCloud
	iterations int
	fps        int
	frames     int

	sent int
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := pipeline.Options{
		Preset:     q.preset,
		Iterations: q.iterations,
		Seed:       q.seed,
		Catalog:    s.catalog,
	}
	if err := opts.ValidateForGenerate(); err != nil {
		writeError(w, err)
		return
	}
	if q.iterations == 0 {
		if p, err := s.catalog.Get(opts.Preset); err == nil && p.Iterations == 0 {
			opts.Iterations = s.iterations
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		id:         uuid.New(),
		conn:       conn,
		set:        opts.MapSet().Snapshot(),
		start:      opts.StartPoints(),
		iterations: opts.Iterations,
		fps:        q.fps,
		frames:     q.frames,
	}
	c.logger = s.logger.With("client", c.id.String())

	hooks := observability.Stream()
	hooks.OnConnect(r.Context(), c.id.String(), opts.Preset)
	c.logger.Info("stream opened", "preset", opts.Preset, "iterations", c.iterations, "seed", opts.Seed, "fps", c.fps)

	err = c.run(r.Context(), Hello{
		ClientID:   c.id.String(),
		Preset:     opts.Preset,
		Maps:       c.set.Len(),
		Iterations: c.iterations,
		Seed:       opts.Seed,
		Points:     len(c.start),
		Stride:     sink.VertexStride,
		FPS:        c.fps,
	})
	hooks.OnDisconnect(r.Context(), c.id.String(), c.sent, err)
	if err != nil {
		c.logger.Warn("stream failed", "frames", c.sent, "error", err)
		return
	}
	c.logger.Info("stream closed", "frames", c.sent)
}

// run streams frames until the peer leaves, the frame budget is spent or
// ctx is cancelled.
func (c *client) run(ctx context.Context, hello Hello) error {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(hello); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	// A blocked ReadMessage only returns once the connection is closed.
	stop := context.AfterFunc(groupCtx, func() { c.conn.Close() })
	defer stop()

	group.Go(func() error { return c.readMessages() })
	group.Go(func() error { return c.pingPong(groupCtx) })
	group.Go(func() error { return c.publish(groupCtx) })

	err := group.Wait()
	if errors.Is(err, errPeerClosed) || ctx.Err() != nil {
		return nil
	}
	return err
}

// readMessages drains client messages so control frames are processed.
func (c *client) readMessages() error {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if isError(err) {
				return fmt.Errorf("read: %w", err)
			}
			return errPeerClosed
		}
	}
}

func (c *client) pingPong(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}

// publish regenerates the point cloud once per tick and sends its vertex
// buffer. Both buffers are reused across frames.
func (c *client) publish(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(c.fps))
	defer ticker.Stop()

	var (
		gen    ifs.Generator
		points ifs.PointCloud
		buf    []byte
	)
	hooks := observability.Stream()
	for {
		start := time.Now()
		points = gen.AppendGenerate(points[:0], c.set, c.iterations, c.start)
		buf = sink.AppendVertices(buf[:0], points)

		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
			if isError(err) {
				return fmt.Errorf("publish: %w", err)
			}
			return errPeerClosed
		}
		c.sent++
		hooks.OnFrame(ctx, c.id.String(), len(points), time.Since(start))
		if c.frames > 0 && c.sent >= c.frames {
			break
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}

	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(writeWait))
	// The read loop ends when the peer echoes the close.
	_ = c.conn.SetReadDeadline(time.Now().Add(closeGracePeriod))
	return nil
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}
