package style

import "github.com/matzehuels/ecolayout/pkg/errors"

// Palette is an ordered list of hex colors.
type Palette []string

// DefaultPalette is used for module and taxonomy coloring.
var DefaultPalette = Palette{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// At returns the color for index i. Indices wrap modulo the palette
// length, so any number of modules can be colored; colors repeat once
// the palette is exhausted. Negative indices wrap as well.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return colorUnknown
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Validate checks that the palette is non-empty and holds hex colors.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "palette cannot be empty")
	}
	for _, c := range p {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// Fixed encoding colors.
const (
	colorUnknown = "#bdbdbd"

	colorClass0 = "#2c7bb6"
	colorClass1 = "#d7191c"

	colorPositive = "#d62728"
	colorNegative = "#1f77b4"

	colorEdgePositive = "#4caf50"
	colorEdgeNegative = "#e53935"

	colorBorderDefault = "#ffffff"
)
