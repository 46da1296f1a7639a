package errors

import (
	"math"
	"regexp"
	"unicode"
)

// maxNodeIDLength bounds node identifiers; taxon names in practice stay well below it.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier from an input network.
//
// The rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNetwork, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNetwork, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNetwork, "node id %q contains invalid control characters", id)
		}
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb color literals.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a color supplied by the caller, either on a node
// (taxonomy color) or in a custom palette. Only hex literals are accepted
// since every render sink understands them.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color %q (expected #rgb or #rrggbb)", color)
	}
	return nil
}

// ValidateCorrelation checks that an edge weight lies in [-1, 1].
func ValidateCorrelation(c float64) error {
	if math.IsNaN(c) || c < -1 || c > 1 {
		return New(ErrCodeInvalidNetwork, "correlation %v out of range [-1, 1]", c)
	}
	return nil
}
