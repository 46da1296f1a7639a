package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ecolayout/pkg/errors"
	"github.com/matzehuels/ecolayout/pkg/network"
)

// Format is a network file encoding.
type Format string

// Supported network encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported network file %q (expected .json, .yaml or .yml)", filepath.Base(path))
	}
}

// =============================================================================
// Network Serialization API
// =============================================================================

// ReadNetworkFile reads and validates a network file.
func ReadNetworkFile(path string) (*network.Network, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "network file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadNetwork(f, format)
}

// ReadNetwork decodes a network from r and validates it.
func ReadNetwork(r io.Reader, format Format) (*network.Network, error) {
	var n network.Network
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&n); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json network")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&n); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml network")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown network format %q", format)
	}
	if n.Nodes == nil {
		n.Nodes = []network.Node{}
	}
	if n.Edges == nil {
		n.Edges = []network.Edge{}
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarshalNetwork converts a network to indented JSON bytes. The output is
// stable for a given network and is used as the basis for content hashes.
func MarshalNetwork(n *network.Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteNetwork(n, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteNetwork encodes n to w.
func WriteNetwork(n *network.Network, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown network format %q", format)
	}
}

// WriteNetworkFile writes n to path, encoded according to its extension.
func WriteNetworkFile(n *network.Network, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteNetwork(n, f, format)
}
