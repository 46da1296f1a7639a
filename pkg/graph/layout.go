package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/matzehuels/ecolayout/pkg/errors"
	"github.com/matzehuels/ecolayout/pkg/layout"
	"github.com/matzehuels/ecolayout/pkg/network"
)

// =============================================================================
// Layout - Serialized Positions
// =============================================================================

// Layout is the serialization format for computed node positions.
type Layout struct {
	// Mode is the layout mode that produced the positions. Unknown modes
	// are stored as the mode they fell back to.
	Mode layout.Mode `json:"mode"`

	// NetworkHash is the content hash of the network the layout was
	// computed for. Empty when unknown.
	NetworkHash string `json:"network_hash,omitempty"`

	// Nodes holds one point per node, in network order.
	Nodes []Point `json:"nodes"`
}

// Point is a positioned node.
type Point struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// FromCoordinates pairs coords with the node ids of n.
func FromCoordinates(mode layout.Mode, n *network.Network, coords layout.Coordinates) Layout {
	if !mode.Valid() {
		mode = layout.DefaultMode
	}
	l := Layout{Mode: mode, Nodes: make([]Point, len(n.Nodes))}
	for i, node := range n.Nodes {
		p := Point{ID: node.ID}
		if i < coords.Len() {
			p.X, p.Y = coords.At(i)
		}
		l.Nodes[i] = p
	}
	return l
}

// ToCoordinates realigns the stored points to the node order of n.
// Nodes without a stored point are placed at the origin.
func ToCoordinates(l Layout, n *network.Network) layout.Coordinates {
	byID := make(map[string]Point, len(l.Nodes))
	for _, p := range l.Nodes {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}
	coords := layout.Coordinates{
		X: make([]float64, len(n.Nodes)),
		Y: make([]float64, len(n.Nodes)),
	}
	for i, node := range n.Nodes {
		if p, ok := byID[node.ID]; ok {
			coords.X[i], coords.Y[i] = p.X, p.Y
		}
	}
	return coords
}

// Validate checks the mode, point ids and that every coordinate is finite.
func (l *Layout) Validate() error {
	if !l.Mode.Valid() {
		return errors.New(errors.ErrCodeInvalidMode, "layout has unknown mode %q", l.Mode)
	}
	for i, p := range l.Nodes {
		if p.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "layout point %d has no id", i)
		}
		if !finite(p.X) || !finite(p.Y) {
			return errors.New(errors.ErrCodeInvalidInput, "layout point %q has a non-finite coordinate", p.ID)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	if l.Nodes == nil {
		l.Nodes = []Point{}
	}
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes and validates JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	if l.Nodes == nil {
		l.Nodes = []Point{}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s not found", path)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
