package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "layout [network.json|network.yaml]",
		Short: "Compute node positions for a co-abundance network",
		Long: heredoc.Doc(`
			Compute node positions for a co-abundance network.

			The layout command reads a network file and computes one (x, y) position per
			node with the selected mode:

			  circle   nodes evenly spaced on the unit circle, in input order
			  radial   highest-degree node at the center, others on concentric rings
			  organic  Fruchterman-Reingold with simulated annealing
			  force    inverse-square repulsion with correlation-weighted springs

			The output is a layout.json file that 'visualize' can draw. Layouts are
			deterministic: the same network and mode always give the same positions.
			An unknown mode falls back to force.

			Results are cached locally for faster subsequent runs.
		`),
		Example: heredoc.Doc(`
			ecolayout layout gut.yaml
			ecolayout layout gut.json --mode radial -o gut.layout.json
			ecolayout layout gut.yaml --min-corr 0.3 --drop-isolated --detect
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addPrepareFlags(cmd, &opts)

	return cmd
}

// runLayout loads the network, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	n, err := graph.ReadNetworkFile(input)
	if err != nil {
		return fmt.Errorf("load network %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	work := runner.Prepare(ctx, n, opts)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Mode))
	spinner.Start()

	prog := newProgress(c.Logger)
	l, cacheHit, err := runner.Layout(ctx, work, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done("Computed "+string(l.Mode)+" layout", "nodes", len(l.Nodes), "cached", cacheHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}

	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(work.NodeCount(), work.EdgeCount(), cacheHit)
	printNextStep("Render", appName+" visualize "+input+" --layout "+outputPath)

	return nil
}

// layoutPath derives the default layout file path for a network file.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
