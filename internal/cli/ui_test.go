package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/ifsgen/pkg/errors"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		cached bool
		want   string
	}{
		{"fresh", false, "fresh"},
		{"cached", true, "cached"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := statsLine(3, 2000, tt.cached)
			for _, want := range []string{"3 maps", "2000 points", tt.want} {
				if !strings.Contains(line, want) {
					t.Errorf("statsLine() = %q, missing %q", line, want)
				}
			}
		})
	}
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	printSuccess(&buf, "done %d", 1)
	printInfo(&buf, "info")
	printFile(&buf, "out.png")
	printDetail(&buf, "detail")

	out := buf.String()
	for _, want := range []string{iconSuccess, "done 1", "info", "out.png", "detail"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if n := strings.Count(out, "\n"); n != 4 {
		t.Errorf("got %d lines, want 4", n)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		wantHint bool
	}{
		{"coded with hint", fmt.Errorf("invalid options: %w", errors.New(errors.ErrCodePresetNotFound, "unknown preset %q", "koch")), `unknown preset "koch"`, true},
		{"coded without hint", errors.New(errors.ErrCodeInternal, "boom"), "boom", false},
		{"plain", fmt.Errorf("write png: disk full"), "write png: disk full", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorMessage(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("ErrorMessage() = %q, missing %q", got, tt.want)
			}
			if hasHint := strings.Contains(got, "\n"); hasHint != tt.wantHint {
				t.Errorf("ErrorMessage() = %q, hint present = %v, want %v", got, hasHint, tt.wantHint)
			}
		})
	}
}
