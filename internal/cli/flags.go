package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ecolayout/pkg/layout"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
)

// flagForKey maps config keys to the flag that overrides them.
var flagForKey = map[string]string{
	"mode":            "mode",
	"min_correlation": "min-corr",
	"drop_isolated":   "drop-isolated",
	"detect_modules":  "detect",
	"color_mode":      "color",
	"min_size":        "min-size",
	"max_size":        "max-size",
	"overlay":         "overlay",
	"palette":         "palette",
	"width":           "width",
	"height":          "height",
	"formats":         "format",
	"labels":          "labels",
}

// applyConfig fills options from the config file wherever the matching
// flag was not given on the command line.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	c.Config.Apply(opts, func(key string) bool {
		name, ok := flagForKey[key]
		if !ok {
			return false
		}
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	})
}

// addPrepareFlags registers the filtering and layout flags shared by several
// commands.
func addPrepareFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", opts.Mode, "layout mode: "+strings.Join(layout.ModeNames(), ", "))
	cmd.Flags().Float64Var(&opts.MinCorrelation, "min-corr", opts.MinCorrelation, "drop edges with |correlation| below this threshold")
	cmd.Flags().BoolVar(&opts.DropIsolated, "drop-isolated", opts.DropIsolated, "drop nodes left without edges after filtering")
	cmd.Flags().BoolVar(&opts.DetectModules, "detect", opts.DetectModules, "detect modules by label propagation")
	registerModeCompletion(cmd)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// highlightPtr converts the --highlight flag (negative means none).
func highlightPtr(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}
