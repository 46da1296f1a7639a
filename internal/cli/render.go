package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
	"github.com/matzehuels/ecolayout/pkg/style"
)

// styleFlags are the flags shared by render and visualize.
type styleFlags struct {
	formats   string
	highlight int
	palette   []string
}

// renderCommand creates the render command: layout and drawing in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		sf      = styleFlags{highlight: -1}
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [network.json|network.yaml]",
		Short: "Lay out and draw a co-abundance network",
		Long: heredoc.Doc(`
			Lay out and draw a co-abundance network.

			Nodes are colored by module (default), taxonomy or enrichment class and sized
			by degree. Positive correlations are drawn solid, negative ones dashed, with
			width scaled by |correlation|. --highlight dims every node and edge outside
			the given module without moving anything.

			Formats: svg, dot (Graphviz with pinned positions), png (via Graphviz), json
			(the styled scene, for external chart libraries).
		`),
		Example: heredoc.Doc(`
			ecolayout render gut.yaml
			ecolayout render gut.yaml -f svg,png --mode organic --color taxonomy
			ecolayout render gut.yaml --highlight 2 --labels --title "Gut, week 4"
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf.apply(&opts)
			c.applyConfig(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addPrepareFlags(cmd, &opts)
	addStyleFlags(cmd, &opts, &sf)

	return cmd
}

// addStyleFlags registers styling and output flags.
func addStyleFlags(cmd *cobra.Command, opts *pipeline.Options, sf *styleFlags) {
	cmd.Flags().StringVarP(&sf.formats, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.ColorMode, "color", "c", opts.ColorMode, "color mode: "+strings.Join(colorModeNames(), ", "))
	cmd.Flags().IntVar(&sf.highlight, "highlight", sf.highlight, "module id to highlight (-1 for none)")
	cmd.Flags().BoolVar(&opts.Overlay, "overlay", opts.Overlay, "encode overlay coefficients in borders and symbols")
	cmd.Flags().StringSliceVar(&sf.palette, "palette", nil, "module palette as hex colors (comma-separated)")
	cmd.Flags().Float64Var(&opts.MinSize, "min-size", opts.MinSize, "smallest node size")
	cmd.Flags().Float64Var(&opts.MaxSize, "max-size", opts.MaxSize, "largest node size")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().BoolVar(&opts.Labels, "labels", opts.Labels, "draw node labels")
	cmd.Flags().BoolVar(&opts.NoLegend, "no-legend", opts.NoLegend, "omit the module legend from SVG output")
	cmd.Flags().StringVar(&opts.Title, "title", opts.Title, "title drawn above the network")
	registerStyleCompletion(cmd)
}

func (sf *styleFlags) apply(opts *pipeline.Options) {
	opts.Formats = parseFormats(sf.formats)
	opts.Highlight = highlightPtr(sf.highlight)
	if len(sf.palette) > 0 {
		opts.Palette = sf.palette
	}
}

// runRender loads the network and runs the full pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	n, err := graph.ReadNetworkFile(input)
	if err != nil {
		return fmt.Errorf("load network %s: %w", input, err)
	}
	c.Logger.Debug("loaded network", "path", input, "nodes", n.NodeCount(), "edges", n.EdgeCount())

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, n, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, input)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s layout", result.Layout.Mode)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	printDetail("%d modules · colored by %s", result.Stats.ModuleCount, opts.ColorMode)
	return nil
}

// writeArtifacts writes one file per format and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	var paths []string
	for _, path := range outputPaths(formats, output, input) {
		format := strings.TrimPrefix(filepath.Ext(path), ".")
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPaths derives one output path per format. A single format with an
// explicit output uses it verbatim (with the format's extension appended if
// missing).
func outputPaths(formats []string, output, input string) []string {
	if len(formats) == 1 && output != "" {
		if strings.TrimPrefix(filepath.Ext(output), ".") == formats[0] {
			return []string{output}
		}
		return []string{output + "." + formats[0]}
	}

	base := basePath(output, input)
	seen := make(map[string]bool, len(formats))
	var out []string
	for _, f := range formats {
		if seen[f] {
			continue
		}
		seen[f] = true
		path := base + "." + f
		if path == input {
			// never overwrite the network file with the json scene
			path = base + ".scene." + f
		}
		out = append(out, path)
	}
	return out
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.IsFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// colorModeNames lists color modes for help and validation messages.
func colorModeNames() []string {
	return []string{style.Taxonomy.String(), style.Module.String(), style.Enrichment.String()}
}
