package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/losm"
)

// =============================================================================
// JSON Serialization API
// =============================================================================

// MarshalGraph converts a store to indented JSON bytes.
func MarshalGraph(s *losm.Store) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a store to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(s *losm.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileOpen, err, "cannot create file").At(path, 0)
	}
	if err := writeGraphTo(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteGraph writes a store as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(s *losm.Store, w io.Writer) error {
	return writeGraphTo(s, w)
}

// ReadGraphFile reads a JSON snapshot and rebuilds the store.
func ReadGraphFile(path string, opts losm.Options) (*losm.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileOpen, err, "cannot open file").At(path, 0)
	}
	defer f.Close()
	return readGraphFrom(f, opts)
}

// ReadGraph decodes a JSON snapshot from an io.Reader into a store.
func ReadGraph(r io.Reader, opts losm.Options) (*losm.Store, error) {
	return readGraphFrom(r, opts)
}

// UnmarshalGraph parses JSON bytes into a Graph without building a store.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot")
	}
	return g, nil
}

// =============================================================================
// BSON Serialization API
// =============================================================================

// MarshalBSON encodes a store as a BSON document, the form kept in the
// snapshot cache.
func MarshalBSON(s *losm.Store) ([]byte, error) {
	data, err := bson.Marshal(FromStore(s))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	return data, nil
}

// UnmarshalBSON decodes a BSON snapshot and rebuilds the store.
func UnmarshalBSON(data []byte, opts losm.Options) (*losm.Store, error) {
	var g Graph
	if err := bson.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot")
	}
	return ToStore(g, opts)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(s *losm.Store, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromStore(s)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	return nil
}

func readGraphFrom(r io.Reader, opts losm.Options) (*losm.Store, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot")
	}
	return ToStore(g, opts)
}
