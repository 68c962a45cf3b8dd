package cache

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeRedis speaks enough RESP2 for RedisCache: PING, GET, SET, DEL and
// SCAN with a trailing-star MATCH. Everything else, including the HELLO
// handshake, gets an unknown-command error, which the client tolerates.
type fakeRedis struct {
	ln   net.Listener
	mu   sync.Mutex
	data map[string]string
}

func newFakeRedis(t *testing.T) *fakeRedis {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	f := &fakeRedis{ln: ln, data: make(map[string]string)}
	go f.serve()
	t.Cleanup(func() { ln.Close() })
	return f
}

func (f *fakeRedis) addr() string { return f.ln.Addr().String() }

func (f *fakeRedis) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.data))
	for k := range f.data {
		out = append(out, k)
	}
	return out
}

func (f *fakeRedis) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeRedis) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		f.reply(w, args)
		if r.Buffered() == 0 {
			if err := w.Flush(); err != nil {
				return
			}
		}
	}
}

func (f *fakeRedis) reply(w *bufio.Writer, args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch strings.ToUpper(args[0]) {
	case "PING":
		w.WriteString("+PONG\r\n")
	case "GET":
		v, ok := f.data[args[1]]
		if !ok {
			w.WriteString("$-1\r\n")
			return
		}
		writeBulk(w, v)
	case "SET":
		f.data[args[1]] = args[2]
		w.WriteString("+OK\r\n")
	case "DEL":
		n := 0
		for _, k := range args[1:] {
			if _, ok := f.data[k]; ok {
				delete(f.data, k)
				n++
			}
		}
		fmt.Fprintf(w, ":%d\r\n", n)
	case "SCAN":
		prefix := ""
		for i := 2; i+1 < len(args); i += 2 {
			if strings.EqualFold(args[i], "MATCH") {
				prefix = strings.TrimSuffix(args[i+1], "*")
			}
		}
		var matched []string
		for k := range f.data {
			if strings.HasPrefix(k, prefix) {
				matched = append(matched, k)
			}
		}
		w.WriteString("*2\r\n")
		writeBulk(w, "0")
		fmt.Fprintf(w, "*%d\r\n", len(matched))
		for _, k := range matched {
			writeBulk(w, k)
		}
	default:
		fmt.Fprintf(w, "-ERR unknown command '%s'\r\n", args[0])
	}
}

func writeBulk(w *bufio.Writer, s string) {
	fmt.Fprintf(w, "$%d\r\n%s\r\n", len(s), s)
}

func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("unexpected %q", line)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("bad array header %q", line)
	}
	args := make([]string, n)
	for i := range args {
		hdr, err := readLine(r)
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimPrefix(hdr, "$"))
		if err != nil {
			return nil, fmt.Errorf("bad bulk header %q", hdr)
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args[i] = string(buf[:size])
	}
	return args, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\r\n"), nil
}

func newTestRedisCache(t *testing.T, f *fakeRedis, prefix string) *RedisCache {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rc, err := NewRedisCache(ctx, RedisConfig{Addr: f.addr(), Prefix: prefix})
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	t.Cleanup(func() { rc.Close() })
	return rc
}

func TestRedisCacheGetSetDelete(t *testing.T) {
	f := newFakeRedis(t)
	rc := newTestRedisCache(t, f, "")
	ctx := context.Background()

	if _, ok, err := rc.Get(ctx, "points:a"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want miss", ok, err)
	}

	if err := rc.Set(ctx, "points:a", []byte("cloud"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, ok, err := rc.Get(ctx, "points:a")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v; want hit", ok, err)
	}
	if string(got) != "cloud" {
		t.Errorf("Get() = %q, want %q", got, "cloud")
	}
	if keys := f.keys(); len(keys) != 1 || keys[0] != DefaultRedisPrefix+"points:a" {
		t.Errorf("stored keys = %v, want default prefix", keys)
	}

	if err := rc.Delete(ctx, "points:a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := rc.Get(ctx, "points:a"); ok {
		t.Error("entry still present after Delete")
	}
}

func TestRedisCacheClearKeepsOtherPrefixes(t *testing.T) {
	f := newFakeRedis(t)
	mine := newTestRedisCache(t, f, "mine:")
	other := newTestRedisCache(t, f, "other:")
	ctx := context.Background()

	for _, k := range []string{"points:a", "artifact:b"} {
		if err := mine.Set(ctx, k, []byte("x"), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := other.Set(ctx, "points:a", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}

	if err := mine.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, ok, _ := mine.Get(ctx, "points:a"); ok {
		t.Error("cleared entry still present")
	}
	if got, ok, _ := other.Get(ctx, "points:a"); !ok || string(got) != "y" {
		t.Errorf("other prefix = %q, %v; want kept", got, ok)
	}
}
