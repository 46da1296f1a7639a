package style

import "github.com/matzehuels/ecolayout/pkg/errors"

// ColorMode selects how node fill colors are derived.
type ColorMode int

// Supported color modes.
const (
	Taxonomy ColorMode = iota
	Module
	Enrichment
)

// DefaultColorMode is the color mode used when none is given.
const DefaultColorMode = Module

// String returns the lowercase mode name.
func (m ColorMode) String() string {
	switch m {
	case Taxonomy:
		return "taxonomy"
	case Module:
		return "module"
	case Enrichment:
		return "enrichment"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a color mode name. Names match exactly.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "taxonomy":
		return Taxonomy, nil
	case "module":
		return Module, nil
	case "enrichment":
		return Enrichment, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidColorMode,
			"invalid color mode: %q (must be one of: taxonomy, module, enrichment)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ColorMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ColorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
