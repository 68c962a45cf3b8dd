package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/ifsgen/pkg/errors"
	"github.com/matzehuels/ifsgen/pkg/render/sink"
)

const twoMapPreset = `name = "mine"
description = "two halves"
iterations = 2
seed = "square"

[[maps]]
center = [0.5, 0.0]
size = [0.5, 0.5]

[[maps]]
center = [-0.5, 0.0]
size = [0.5, 0.5]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		base    string
		formats []string
		want    map[string]string
	}{
		{"default single", "", "fern", []string{"png"}, map[string]string{"png": "fern.png"}},
		{"explicit single", "out/x.img", "fern", []string{"png"}, map[string]string{"png": "out/x.img"}},
		{"default multiple", "", "fern", []string{"svg", "vertices"}, map[string]string{"svg": "fern.svg", "vertices": "fern.f32"}},
		{"base with known extension", "out/leaf.png", "fern", []string{"png", "json"}, map[string]string{"png": "out/leaf.png", "json": "out/leaf.json"}},
		{"base with other extension", "out/leaf.v2", "fern", []string{"png", "txt"}, map[string]string{"png": "out/leaf.v2.png", "txt": "out/leaf.v2.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.base, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestRenderWritesFiles(t *testing.T) {
	c, out := newTestCLI(t)
	dir := t.TempDir()
	base := filepath.Join(dir, "spiral.svg")

	err := execute(t, c, "render", "spiral", "-n", "3", "--seed", "origin", "-f", "vertices,json", "-o", base)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "spiral.f32"))
	if err != nil {
		t.Fatalf("read vertices: %v", err)
	}
	if len(data) != sink.VertexStride {
		t.Errorf("vertex file size = %d, want %d", len(data), sink.VertexStride)
	}
	if _, err := os.Stat(filepath.Join(dir, "spiral.json")); err != nil {
		t.Errorf("json output missing: %v", err)
	}
	if !strings.Contains(out.String(), "spiral.f32") {
		t.Errorf("output %q should list the written files", out.String())
	}
}

func TestRenderFromFileToStdout(t *testing.T) {
	c, out := newTestCLI(t)
	path := writeFile(t, t.TempDir(), "mine.toml", twoMapPreset)

	if err := execute(t, c, "render", "-F", path, "-f", "json", "-o", "-", "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	var got struct {
		Count  int    `json:"count"`
		Preset string `json:"preset"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out.String())
	}
	if got.Count != 4 {
		t.Errorf("count = %d, want 4 (square seed)", got.Count)
	}
}

func TestRenderBrailleToStdout(t *testing.T) {
	c, out := newTestCLI(t)
	err := execute(t, c, "render", "sierpinski", "-n", "2", "--seed", "grid:8",
		"-f", "txt", "-o", "-", "--columns", "20", "--rows", "6")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if n := strings.Count(out.String(), "\n"); n != 6 {
		t.Errorf("braille output has %d lines, want 6", n)
	}
}

func TestRenderErrors(t *testing.T) {
	presetFile := writeFile(t, t.TempDir(), "mine.toml", twoMapPreset)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"invalid format", []string{"render", "sierpinski", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"unknown preset", []string{"render", "nosuch", "--no-cache"}, errors.ErrCodePresetNotFound},
		{"bad seed", []string{"render", "sierpinski", "--seed", "blob", "--no-cache"}, errors.ErrCodeInvalidSeed},
		{"missing file", []string{"render", "-F", "/nonexistent/p.toml"}, errors.ErrCodeFileNotFound},
		{"preset and file", []string{"render", "fern", "-F", presetFile}, ""},
		{"stdout with two formats", []string{"render", "fern", "-f", "svg,png", "-o", "-"}, ""},
		{"bad bounds", []string{"render", "fern", "--bounds", "1,2"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			err := execute(t, c, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}
