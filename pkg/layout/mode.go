package layout

import "github.com/matzehuels/ecolayout/pkg/errors"

// Mode names a layout strategy.
type Mode string

// Supported layout modes.
const (
	ModeCircle  Mode = "circle"
	ModeRadial  Mode = "radial"
	ModeOrganic Mode = "organic"
	ModeForce   Mode = "force"
)

// DefaultMode is used by [Compute] for unrecognized mode strings.
const DefaultMode = ModeForce

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeCircle, ModeRadial, ModeOrganic, ModeForce}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeCircle, ModeRadial, ModeOrganic, ModeForce:
		return true
	}
	return false
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// ParseMode parses a mode name. Names match exactly, as in [Compute]; "CIRCLE"
// is unknown to both. Unlike Compute, which silently falls back to force, it
// reports unknown names so that callers can reject them at the input boundary.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", errors.New(errors.ErrCodeInvalidMode,
			"invalid layout mode: %q (must be one of: circle, radial, organic, force)", s)
	}
	return m, nil
}

// ModeNames returns the supported mode names, useful for flag help text.
func ModeNames() []string {
	out := make([]string, len(Modes))
	for i, m := range Modes {
		out[i] = string(m)
	}
	return out
}
