package cli

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
)

// visualizeCommand creates the visualize command for drawing from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		layoutFile string
		output     string
		noCache    bool
		sf         = styleFlags{highlight: -1}
	)
	opts := pipeline.Options{}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "visualize [network.json] --layout [layout.json]",
		Short: "Draw a network from a computed layout",
		Long: heredoc.Doc(`
			Draw a network from a computed layout.

			The visualize command takes a network file and a layout.json file (produced
			by 'layout') and draws it. Positions come from the layout file, matched to
			nodes by id; nodes missing from the layout are drawn at the origin. Styling
			reads module, taxonomy and enrichment attributes from the network file.

			Use 'render' as a shortcut to go directly from a network to visual output.
		`),
		Example: heredoc.Doc(`
			ecolayout layout gut.yaml
			ecolayout visualize gut.yaml --layout gut.layout.json --color enrichment
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf.apply(&opts)
			c.applyConfig(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if layoutFile == "" {
				layoutFile = layoutPath(args[0])
			}
			return c.runVisualize(cmd.Context(), args[0], layoutFile, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&layoutFile, "layout", "l", "", "layout file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addStyleFlags(cmd, &opts, &sf)

	return cmd
}

// runVisualize loads the network and layout, then renders.
func (c *CLI) runVisualize(ctx context.Context, input, layoutFile string, opts pipeline.Options, output string, noCache bool) error {
	n, err := graph.ReadNetworkFile(input)
	if err != nil {
		return fmt.Errorf("load network %s: %w", input, err)
	}
	l, err := graph.ReadLayoutFile(layoutFile)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", layoutFile, err)
	}
	if len(l.Nodes) != n.NodeCount() {
		c.Logger.Warn("layout and network differ in size; unmatched nodes are drawn at the origin",
			"layout_nodes", len(l.Nodes), "network_nodes", n.NodeCount())
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	prog := newProgress(c.Logger)
	artifacts, cacheHit, err := runner.Render(ctx, n, l, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	prog.done("Rendered "+string(l.Mode)+" layout", "formats", opts.Formats)

	paths, err := writeArtifacts(artifacts, opts.Formats, output, input)
	if err != nil {
		return err
	}

	printSuccess("Visualization complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(n.NodeCount(), n.EdgeCount(), cacheHit)
	return nil
}
