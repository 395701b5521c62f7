// Package catalog provides the fixed, immutable catalog of device categories
// and their precomputed embedding vectors.
package catalog

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Catalog is an ordered, immutable set of (category name, embedding) pairs.
// It is built once at startup and never modified afterwards; accessors return
// copies so callers cannot mutate shared state.
type Catalog struct {
	dimensions int
	names      []string
	vectors    [][]float32
}

// New builds a catalog from parallel name and vector slices. Names must be
// unique and non-empty, and every vector must have the same dimension.
func New(names []string, vectors [][]float32) (*Catalog, error) {
	if len(names) != len(vectors) {
		return nil, fmt.Errorf("names and vectors length mismatch: %d vs %d", len(names), len(vectors))
	}
	dims := 0
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("empty category name at index %d", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate category name: %q", name)
		}
		seen[name] = true
		if dims == 0 {
			dims = len(vectors[i])
		}
		if len(vectors[i]) == 0 || len(vectors[i]) != dims {
			return nil, fmt.Errorf("vector dimension mismatch for %q: got %d, expected %d", name, len(vectors[i]), dims)
		}
	}
	c := &Catalog{
		dimensions: dims,
		names:      make([]string, len(names)),
		vectors:    make([][]float32, len(vectors)),
	}
	copy(c.names, names)
	for i, v := range vectors {
		vec := make([]float32, len(v))
		copy(vec, v)
		c.vectors[i] = vec
	}
	return c, nil
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Dimensions returns the embedding dimension, or 0 for an empty catalog.
func (c *Catalog) Dimensions() int {
	return c.dimensions
}

// Names returns a copy of the category names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// At returns the category name and embedding at index i. The vector must be
// treated as read-only.
func (c *Catalog) At(i int) (string, []float32) {
	return c.names[i], c.vectors[i]
}

// Save persists the catalog to path. Directory is created if needed.
// Format: dimensions (4), n (4), then per entry: nameLen (4), name bytes,
// vector (dimensions*4 bytes), all little-endian.
func (c *Catalog) Save(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create catalog file: %w", err)
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, uint32(c.dimensions)); err != nil {
		return fmt.Errorf("write dimensions: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(c.names))); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	for i, name := range c.names {
		nameBytes := []byte(name)
		if err := binary.Write(f, binary.LittleEndian, uint32(len(nameBytes))); err != nil {
			return fmt.Errorf("write name len: %w", err)
		}
		if _, err := f.Write(nameBytes); err != nil {
			return fmt.Errorf("write name: %w", err)
		}
		if _, err := f.Write(float32SliceToBytes(c.vectors[i])); err != nil {
			return fmt.Errorf("write vector: %w", err)
		}
	}
	return nil
}

// Load reads a catalog previously written by Save.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()
	var dims, n uint32
	if err := binary.Read(f, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("read dimensions: %w", err)
	}
	if err := binary.Read(f, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	names := make([]string, 0, n)
	vectors := make([][]float32, 0, n)
	buf := make([]byte, dims*4)
	for i := uint32(0); i < n; i++ {
		var nameLen uint32
		if err := binary.Read(f, binary.LittleEndian, &nameLen); err != nil {
			return nil, fmt.Errorf("read name len: %w", err)
		}
		nameBytes := make([]byte, nameLen)
		if _, err := f.Read(nameBytes); err != nil {
			return nil, fmt.Errorf("read name: %w", err)
		}
		if _, err := f.Read(buf); err != nil {
			return nil, fmt.Errorf("read vector: %w", err)
		}
		names = append(names, string(nameBytes))
		vectors = append(vectors, bytesToFloat32Slice(buf))
	}
	return New(names, vectors)
}

// LoadNames reads a JSON array of category names (the catalog source file).
func LoadNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	return names, nil
}

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
