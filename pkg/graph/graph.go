package graph

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/panel"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a panel graph to JSON bytes.
func MarshalGraph(g *panel.Graph, src Source) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a panel graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *panel.Graph, src Source, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeGraphTo(g, src, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteGraph writes a panel graph as JSON to an io.Writer.
func WriteGraph(g *panel.Graph, src Source, w io.Writer) error {
	return writeGraphTo(g, src, w)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*panel.Graph, Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Source{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*panel.Graph, Source, error) {
	return readGraphFrom(r)
}

// Hash returns the hex SHA-256 of the serialized graph. Equal graphs from
// equal sources hash equally.
func Hash(g *panel.Graph, src Source) (string, error) {
	data, err := MarshalGraph(g, src)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *panel.Graph, src Source, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromPanel(g, src)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*panel.Graph, Source, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, Source{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode graph")
	}
	g, err := ToPanel(data)
	if err != nil {
		return nil, Source{}, err
	}
	return g, data.Source, nil
}
