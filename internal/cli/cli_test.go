package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/matzehuels/ifsgen/pkg/cache"
)

// newTestCLI returns a CLI writing to a buffer, with the cache directory in
// a temp dir and no Redis address from the environment.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv(envRedisAddr, "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	return c, &out
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()

	want := []string{"render", "view", "serve", "presets", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,vertices", []string{"svg", "png", "vertices"}},
		{"spaces and empty items", " json, ,txt", []string{"json", "txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantNil bool
		wantErr bool
	}{
		{"empty", "", true, false},
		{"valid", "-2,-1.5,2,1.5", false, false},
		{"too few", "0,0,1", false, true},
		{"not a number", "0,0,1,x", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := parseBounds(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBounds(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (b == nil) != tt.wantNil {
				t.Fatalf("parseBounds(%q) = %v, wantNil %v", tt.input, b, tt.wantNil)
			}
			if b != nil && (b.MinX != -2 || b.MinY != -1.5 || b.MaxX != 2 || b.MaxY != 1.5) {
				t.Errorf("parseBounds(%q) = %+v", tt.input, *b)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	c, _ := newTestCLI(t)
	ctx := context.Background()

	cc, err := c.newCache(ctx, true)
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := cc.(cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want cache.NullCache", cc)
	}

	cc, err = c.newCache(ctx, false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	if _, ok := cc.(*cache.FileCache); !ok {
		t.Errorf("newCache() = %T, want *cache.FileCache", cc)
	}

	c.redisAddr = "127.0.0.1:1"
	if _, err := c.newCache(ctx, false); err == nil {
		t.Error("newCache() with unreachable redis should fail")
	}
}

func TestCatalogPresetDir(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	writeFile(t, dir, "mine.toml", twoMapPreset)
	c.presetDir = dir

	cat, err := c.catalog()
	if err != nil {
		t.Fatalf("catalog() error: %v", err)
	}
	for _, name := range []string{"mine", "sierpinski"} {
		if _, err := cat.Get(name); err != nil {
			t.Errorf("catalog missing %q: %v", name, err)
		}
	}
}
