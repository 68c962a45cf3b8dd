package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ifsgen/pkg/preset"
)

// presetsCommand creates the presets command. Without a subcommand it
// lists the catalogue.
func (c *CLI) presetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "presets",
		Aliases: []string{"preset"},
		Short:   "List or print map-set presets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPresetsList()
		},
	}

	cmd.AddCommand(c.presetsListCommand())
	cmd.AddCommand(c.presetsShowCommand())

	return cmd
}

func (c *CLI) presetsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the preset catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPresetsList()
		},
	}
}

func (c *CLI) presetsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print a preset as TOML",
		Long: `Print a preset as TOML.

The output is a valid preset file: save it, edit the maps and pass it to
'ifsgen render --file'.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalog()
			if err != nil {
				return err
			}
			p, err := cat.Get(args[0])
			if err != nil {
				return err
			}
			return preset.Encode(c.Out, p)
		},
	}
}

func (c *CLI) runPresetsList() error {
	cat, err := c.catalog()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, presetTable(cat.All()))
	printDetail(c.Out, "ifsgen presets show NAME prints a preset as TOML")
	return nil
}

// presetTable renders the catalogue as a bordered table.
func presetTable(presets []*preset.Preset) string {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		iterations := "-"
		if p.Iterations > 0 {
			iterations = strconv.Itoa(p.Iterations)
		}
		seed := p.Seed
		if seed == "" {
			seed = "-"
		}
		rows = append(rows, []string{p.Name, strconv.Itoa(len(p.Maps)), iterations, seed, p.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Maps", "Iterations", "Seed", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col == 1 || col == 2:
				return base.Foreground(colorWhite).Align(lipgloss.Right)
			default:
				return base.Foreground(colorGray)
			}
		})
	return t.Render()
}
