package cli

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
	"github.com/matzehuels/ecolayout/pkg/style"
)

// previewCommand creates the preview command, an interactive terminal view.
func (c *CLI) previewCommand() *cobra.Command {
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "preview [network.json|network.yaml]",
		Short: "Explore layouts interactively in the terminal",
		Long: heredoc.Doc(`
			Explore layouts interactively in the terminal.

			Keys:
			  1-4  switch layout mode (circle, radial, organic, force)
			  m/M  highlight the next/previous module
			  t    cycle color mode (taxonomy, module, enrichment)
			  o    toggle overlay symbols
			  ?    show all keys
			  q    quit

			Switching modes recomputes the layout; color and highlight changes only
			restyle the current positions.
		`),
		Example: heredoc.Doc(`
			ecolayout preview gut.yaml --mode radial
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runPreview(cmd.Context(), args[0], opts)
		},
	}

	addPrepareFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.ColorMode, "color", "c", opts.ColorMode, "initial color mode")
	_ = cmd.RegisterFlagCompletionFunc("color", fixedValues(colorModeNames()...))

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options) error {
	n, err := graph.ReadNetworkFile(input)
	if err != nil {
		return fmt.Errorf("load network %s: %w", input, err)
	}

	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	colorMode, err := style.ParseColorMode(opts.ColorMode)
	if err != nil {
		return err
	}

	work := pipeline.Prepare(n, opts)
	model := NewPreviewModel(work, opts.LayoutMode(), colorMode)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
