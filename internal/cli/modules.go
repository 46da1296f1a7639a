package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/network"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
	"github.com/matzehuels/ecolayout/pkg/style"
)

// modulesCommand creates the modules command for summarizing communities.
func (c *CLI) modulesCommand() *cobra.Command {
	var (
		output  string
		palette []string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "modules [network.json|network.yaml]",
		Short: "Summarize the modules of a network",
		Long: heredoc.Doc(`
			Summarize the modules of a network.

			Prints one row per module: id, size, dominant phylum and the palette color
			used to draw it. Palette colors wrap around when there are more modules than
			colors.

			With --detect, module ids are recomputed by label propagation before
			summarizing; add --output to save the relabeled network.
		`),
		Example: heredoc.Doc(`
			ecolayout modules gut.yaml
			ecolayout modules gut.yaml --detect --min-corr 0.25 -o gut.modules.yaml
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(palette) > 0 {
				opts.Palette = palette
			}
			c.applyConfig(cmd, &opts)
			return c.runModules(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the prepared network to this file (.json, .yaml)")
	cmd.Flags().Float64Var(&opts.MinCorrelation, "min-corr", opts.MinCorrelation, "drop edges with |correlation| below this threshold")
	cmd.Flags().BoolVar(&opts.DropIsolated, "drop-isolated", opts.DropIsolated, "drop nodes left without edges after filtering")
	cmd.Flags().BoolVar(&opts.DetectModules, "detect", opts.DetectModules, "detect modules by label propagation")
	cmd.Flags().StringSliceVar(&palette, "palette", nil, "module palette as hex colors (comma-separated)")

	return cmd
}

func (c *CLI) runModules(ctx context.Context, input string, opts pipeline.Options, output string) error {
	n, err := graph.ReadNetworkFile(input)
	if err != nil {
		return fmt.Errorf("load network %s: %w", input, err)
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	work := runner.Prepare(ctx, n, opts)
	palette := opts.Palette
	if len(palette) == 0 {
		palette = style.DefaultPalette
	}
	modules := network.Summarize(work, palette)

	fmt.Println(modulesTable(modules))
	printStats(work.NodeCount(), work.EdgeCount(), false)

	if output != "" {
		if err := graph.WriteNetworkFile(work, output); err != nil {
			return fmt.Errorf("write network %s: %w", output, err)
		}
		printSuccess("Wrote network with %d modules", len(modules))
		printFile(output)
	}
	return nil
}

// modulesTable renders module summaries as a bordered table with a color
// swatch per row.
func modulesTable(modules []network.Module) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(modules))
	for i, m := range modules {
		phylum := m.DominantPhylum
		if phylum == "" {
			phylum = "unknown"
		}
		rows[i] = []string{
			strconv.Itoa(m.ID),
			strconv.Itoa(m.Size),
			phylum,
			lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Render("●") + " " + m.Color,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Module", "Size", "Dominant phylum", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		})

	return t.Render()
}
