// Package embedding loads one embedding vector per structural domain from a
// directory of single-column tables and keeps them in memory, inserting each
// vector into a similarity index as it is loaded.
package embedding

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrMalformed marks an embedding file or filename that cannot be parsed.
	ErrMalformed = errors.New("malformed embedding")

	// ErrDuplicate marks a second file mapping to an already loaded identifier.
	ErrDuplicate = errors.New("duplicate domain identifier")
)

// Indexer receives every loaded vector under its domain identifier.
type Indexer interface {
	Add(ids []string, vectors [][]float32) error
}

// Store maps domain identifiers to embedding vectors. It is read-only after
// Load returns.
type Store struct {
	ids     []string
	vectors map[string][]float32
}

// IdentifierFromFilename drops the last two dot-separated segments of name:
// "d1a2b_.pt.csv" gives "d1a2b_". Names with fewer than three segments give
// an empty identifier.
func IdentifierFromFilename(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[:len(parts)-2], ".")
}

// Load reads every regular file in dir in lexical order. Each file yields one
// domain; its vector is added to idx before the next file is read, so the
// store and the index hold the same identifiers whenever Load succeeds.
func Load(dir string, idx Indexer) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}
	s := &Store{vectors: make(map[string][]float32, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() {
			slog.Debug("skipping directory", "dir", dir, "name", entry.Name())
			continue
		}
		name := entry.Name()
		id := IdentifierFromFilename(name)
		if id == "" {
			return nil, fmt.Errorf("embedding: %s: %w: no identifier before the last two extensions", name, ErrMalformed)
		}
		if _, ok := s.vectors[id]; ok {
			return nil, fmt.Errorf("embedding: %s: %w %q", name, ErrDuplicate, id)
		}
		vec, err := parseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("embedding: %s: %w", name, err)
		}
		if err := idx.Add([]string{id}, [][]float32{vec}); err != nil {
			return nil, fmt.Errorf("embedding: index %q: %w", id, err)
		}
		s.ids = append(s.ids, id)
		s.vectors[id] = vec
	}
	slog.Info("embeddings loaded", "dir", dir, "domains", len(s.ids), "dim", s.Dim())
	return s, nil
}

func parseFile(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseVector(f)
}

// ParseVector reads a comma-delimited table with a header row and returns the
// first column of every data row. A table without data rows or with a
// non-numeric first cell is ErrMalformed.
func ParseVector(r io.Reader) ([]float32, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty table", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}
	var vec []float32
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		cell := strings.TrimSpace(record[0])
		v, err := strconv.ParseFloat(cell, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q is not a number", ErrMalformed, row, cell)
		}
		vec = append(vec, float32(v))
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformed)
	}
	return vec, nil
}

// IDs returns the identifiers in load order.
func (s *Store) IDs() []string { return append([]string(nil), s.ids...) }

// Vector returns the stored slice for id; callers must not modify it.
func (s *Store) Vector(id string) ([]float32, bool) {
	v, ok := s.vectors[id]
	return v, ok
}

// Len reports the number of loaded domains.
func (s *Store) Len() int { return len(s.ids) }

// Dim reports the length of the first loaded vector, 0 when empty.
func (s *Store) Dim() int {
	if len(s.ids) == 0 {
		return 0
	}
	return len(s.vectors[s.ids[0]])
}
