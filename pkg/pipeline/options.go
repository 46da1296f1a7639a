package pipeline

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecolayout/pkg/cache"
	"github.com/matzehuels/ecolayout/pkg/errors"
	"github.com/matzehuels/ecolayout/pkg/layout"
	"github.com/matzehuels/ecolayout/pkg/network"
	"github.com/matzehuels/ecolayout/pkg/render"
	"github.com/matzehuels/ecolayout/pkg/style"
)

// Output formats.
const (
	FormatSVG  = render.FormatSVG
	FormatDOT  = render.FormatDOT
	FormatPNG  = render.FormatPNG
	FormatJSON = render.FormatJSON
)

// Formats lists every output format in the order help texts show them.
var Formats = []string{FormatSVG, FormatDOT, FormatPNG, FormatJSON}

var (
	DefaultMode      = layout.DefaultMode.String()
	DefaultColorMode = style.DefaultColorMode.String()
)

// IsFormat reports whether f names a supported output format.
func IsFormat(f string) bool {
	return slices.Contains(Formats, f)
}

// ValidateFormats returns an ErrCodeInvalidFormat error for the first
// unsupported entry in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !IsFormat(f) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of: %s)", f, strings.Join(Formats, ", "))
		}
	}
	return nil
}

// Options configures every pipeline stage. The JSON form is the body of
// the HTTP API's layout and render requests.
type Options struct {
	MinCorrelation float64 `json:"min_correlation,omitempty"`
	DropIsolated   bool    `json:"drop_isolated,omitempty"`
	DetectModules  bool    `json:"detect_modules,omitempty"`

	// Mode selects the layout. Unknown names fall back to force.
	Mode string `json:"mode,omitempty"`

	ColorMode string   `json:"color_mode,omitempty"`
	Highlight *int     `json:"highlight,omitempty"`
	MinSize   float64  `json:"min_size,omitempty"`
	MaxSize   float64  `json:"max_size,omitempty"`
	Overlay   bool     `json:"overlay,omitempty"`
	Palette   []string `json:"palette,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	NoLegend bool     `json:"no_legend,omitempty"`
	Title    string   `json:"title,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults validates the options for a full run. Repeated
// calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *Options) ensureLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetLayoutDefaults fills in the mode. An unknown mode is logged and
// replaced with the default rather than rejected.
func (o *Options) SetLayoutDefaults() {
	o.ensureLogger()
	if o.Mode == "" {
		o.Mode = DefaultMode
		return
	}
	m, err := layout.ParseMode(o.Mode)
	if err != nil {
		o.Logger.Warn("unknown layout mode, using default", "mode", o.Mode, "default", DefaultMode)
		m = layout.DefaultMode
	}
	o.Mode = m.String()
}

// ValidateForLayout applies layout defaults and checks the prepare options.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.MinCorrelation < 0 || o.MinCorrelation > 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			"min_correlation must be within [0, 1], got %v", o.MinCorrelation)
	}
	return nil
}

// SetRenderDefaults fills in zero-valued styling and rendering options.
func (o *Options) SetRenderDefaults() {
	o.ensureLogger()
	if o.ColorMode == "" {
		o.ColorMode = DefaultColorMode
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, d := range []struct {
		field *float64
		value float64
	}{
		{&o.MinSize, style.DefaultMinSize},
		{&o.MaxSize, style.DefaultMaxSize},
		{&o.Width, render.DefaultWidth},
		{&o.Height, render.DefaultHeight},
	} {
		if *d.field == 0 {
			*d.field = d.value
		}
	}
}

// ValidateForRender applies all defaults and checks every option.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()

	if _, err := style.ParseColorMode(o.ColorMode); err != nil {
		return err
	}
	switch {
	case o.MinSize < 0 || o.MaxSize < o.MinSize:
		return errors.New(errors.ErrCodeInvalidInput, "invalid size range [%v, %v]", o.MinSize, o.MaxSize)
	case o.Width < 0 || o.Height < 0:
		return errors.New(errors.ErrCodeInvalidInput, "width and height must be positive")
	case o.Highlight != nil && *o.Highlight < 0:
		return errors.New(errors.ErrCodeInvalidInput, "highlight module must be non-negative, got %d", *o.Highlight)
	}
	if len(o.Palette) > 0 {
		if err := style.Palette(o.Palette).Validate(); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

// LayoutMode parses Mode, falling back to the default.
func (o *Options) LayoutMode() layout.Mode {
	if m, err := layout.ParseMode(o.Mode); err == nil {
		return m
	}
	return layout.DefaultMode
}

// FilterOptions returns the edge and node filter of the prepare stage.
func (o *Options) FilterOptions() network.FilterOptions {
	return network.FilterOptions{
		MinAbsCorrelation: o.MinCorrelation,
		DropIsolated:      o.DropIsolated,
	}
}

// StyleOptions converts the styling fields for [style.Assemble]. Call after
// validation.
func (o *Options) StyleOptions() style.Options {
	cm, err := style.ParseColorMode(o.ColorMode)
	if err != nil {
		cm = style.DefaultColorMode
	}
	return style.Options{
		ColorMode: cm,
		Highlight: o.Highlight,
		MinSize:   o.MinSize,
		MaxSize:   o.MaxSize,
		Overlay:   o.Overlay,
		Palette:   style.Palette(o.Palette),
	}
}

// LayoutKeyOpts lists the options a cached layout depends on.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Mode:           o.LayoutMode().String(),
		MinCorrelation: o.MinCorrelation,
		DropIsolated:   o.DropIsolated,
		DetectModules:  o.DetectModules,
	}
}

// ArtifactKeyOpts lists the options a cached artifact of format depends on.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		ColorMode: o.ColorMode,
		Highlight: o.Highlight,
		MinSize:   o.MinSize,
		MaxSize:   o.MaxSize,
		Overlay:   o.Overlay,
		Width:     o.Width,
		Height:    o.Height,
		Labels:    o.Labels,
		NoLegend:  o.NoLegend,
		Title:     o.Title,
		Palette:   o.Palette,
	}
}

func (o *Options) needsFilter() bool {
	return o.MinCorrelation > 0 || o.DropIsolated
}
