package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompletionScripts(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			c, out := newTestCLI(t)
			if err := execute(t, c, "completion", shell); err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out.String(), "ifsgen") {
				t.Errorf("%s script does not mention ifsgen", shell)
			}
		})
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	c, _ := newTestCLI(t)
	if err := execute(t, c, "completion", "tcsh"); err == nil {
		t.Error("expected error for unknown shell")
	}
}

func TestCompletePresets(t *testing.T) {
	c, _ := newTestCLI(t)

	names, dir := c.completePresets(&cobra.Command{}, nil, "")
	if dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v, want NoFileComp", dir)
	}
	if !slices.Contains(names, "sierpinski") {
		t.Errorf("completions %v missing sierpinski", names)
	}

	names, _ = c.completePresets(&cobra.Command{}, []string{"fern"}, "")
	if len(names) != 0 {
		t.Errorf("second argument completions = %v, want none", names)
	}
}
