package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/ifsgen/pkg/errors"
	"github.com/matzehuels/ifsgen/pkg/preset"
)

func TestPresetsList(t *testing.T) {
	for _, args := range [][]string{{"presets"}, {"presets", "list"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			c, out := newTestCLI(t)
			if err := execute(t, c, args...); err != nil {
				t.Fatalf("%v error: %v", args, err)
			}
			for _, name := range []string{"sierpinski", "fern", "dragon", "Description"} {
				if !strings.Contains(out.String(), name) {
					t.Errorf("list output missing %q", name)
				}
			}
		})
	}
}

func TestPresetsListIncludesPresetDir(t *testing.T) {
	c, out := newTestCLI(t)
	dir := t.TempDir()
	writeFile(t, dir, "mine.toml", twoMapPreset)

	if err := execute(t, c, "--preset-dir", dir, "presets"); err != nil {
		t.Fatalf("presets error: %v", err)
	}
	if !strings.Contains(out.String(), "two halves") {
		t.Errorf("list output missing user preset:\n%s", out.String())
	}
}

func TestPresetsShowRoundTrip(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(t, c, "presets", "show", "sierpinski"); err != nil {
		t.Fatalf("presets show error: %v", err)
	}

	p, err := preset.Decode(strings.NewReader(out.String()))
	if err != nil {
		t.Fatalf("show output is not a valid preset: %v\n%s", err, out.String())
	}
	if p.Name != "sierpinski" || len(p.Maps) != 3 {
		t.Errorf("decoded %q with %d maps, want sierpinski with 3", p.Name, len(p.Maps))
	}
}

func TestPresetsShowUnknown(t *testing.T) {
	c, _ := newTestCLI(t)
	err := execute(t, c, "presets", "show", "nosuch")
	if !errors.Is(err, errors.ErrCodePresetNotFound) {
		t.Errorf("error = %v, want PRESET_NOT_FOUND", err)
	}
}

func TestPresetTable(t *testing.T) {
	out := presetTable([]*preset.Preset{{Name: "a", Description: "first", Maps: make([]preset.MapDef, 2)}})
	for _, want := range []string{"Preset", "a", "first", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestExamplePresetsLoad(t *testing.T) {
	cat, err := preset.LoadDir(filepath.Join("..", "..", "examples", "presets"))
	if err != nil {
		t.Fatalf("LoadDir(examples/presets) error: %v", err)
	}
	for _, name := range []string{"vicsek", "pinwheel"} {
		p, err := cat.Get(name)
		if err != nil {
			t.Errorf("example preset %q: %v", name, err)
			continue
		}
		if idx := p.Expanding(); len(idx) > 0 {
			t.Errorf("example preset %q has non-contracting maps %v", name, idx)
		}
	}
}
