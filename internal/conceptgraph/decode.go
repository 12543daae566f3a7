package conceptgraph

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// Decode reads a graph document from r and builds the Graph.
func Decode(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graph document: %w", err)
	}
	return FromDocument(doc)
}

// LoadFile reads a graph document from a local data file.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
