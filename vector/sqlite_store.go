package vector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/embedbench/engine"
)

// SQLiteStore persists domain embeddings in a SQLite domains table and ranks
// them with the vec_cosine SQL function. It satisfies index.Index, so it can
// stand in for an in-memory index when the vectors should outlive the run;
// call Reset before reloading a database written by an earlier run.
type SQLiteStore struct {
	db     *sql.DB
	owned  bool
	dim    int
	dimSet bool
}

// NewSQLiteStore wraps an open database; the database must have been opened
// through engine.Open so vec_cosine is available. The domains schema is
// created if missing.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// OpenSQLiteStore opens dsn with engine.Open and returns a store that closes
// the database on Close.
func OpenSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := engine.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("vector: open %s: %w", dsn, err)
	}
	s, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// AddDomains inserts domains in one transaction.
func (s *SQLiteStore) AddDomains(ctx context.Context, domains []Domain) error {
	if len(domains) == 0 {
		return nil
	}
	for _, d := range domains {
		if d.ID == "" {
			return fmt.Errorf("vector: Domain.ID must be set")
		}
		if !s.dimSet {
			s.dim, s.dimSet = len(d.Embedding), true
		}
		if len(d.Embedding) != s.dim {
			return fmt.Errorf("vector: inconsistent vector dims for %q: %d vs %d", d.ID, len(d.Embedding), s.dim)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO domains(id, embedding) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range domains {
		if _, err := stmt.ExecContext(ctx, d.ID, EncodeEmbedding(d.Embedding)); err != nil {
			return fmt.Errorf("vector: insert %q: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

// SimilaritySearch ranks every stored domain by vec_cosine against
// queryEmbedding. Zero-magnitude rows score NULL and are skipped; ties keep
// insertion order.
func (s *SQLiteStore) SimilaritySearch(ctx context.Context, queryEmbedding []float32, k int) ([]Match, error) {
	if Magnitude(queryEmbedding) == 0 {
		return nil, nil
	}
	limit := k
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, score FROM (
    SELECT rowid AS rid, id, vec_cosine(embedding, ?) AS score FROM domains
)
WHERE score IS NOT NULL
ORDER BY score DESC, rid
LIMIT ?`, EncodeEmbedding(queryEmbedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.Score); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count reports the number of rows in the domains table.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM domains`).Scan(&n)
	return n, err
}

// Reset deletes every stored domain so the store can be loaded again.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM domains`); err != nil {
		return fmt.Errorf("vector: reset: %w", err)
	}
	s.dim, s.dimSet = 0, false
	return nil
}

// Add implements index.Index.
func (s *SQLiteStore) Add(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("vector: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	domains := make([]Domain, len(ids))
	for i := range ids {
		domains[i] = Domain{ID: ids[i], Embedding: vectors[i]}
	}
	return s.AddDomains(context.Background(), domains)
}

// Query implements index.Index.
func (s *SQLiteStore) Query(query []float32, k int) ([]string, []float64, error) {
	if s.dimSet && len(query) != s.dim {
		return nil, nil, fmt.Errorf("vector: query dim %d != store dim %d", len(query), s.dim)
	}
	matches, err := s.SimilaritySearch(context.Background(), query, k)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, len(matches))
	scores := make([]float64, len(matches))
	for i, m := range matches {
		ids[i], scores[i] = m.ID, m.Score
	}
	return ids, scores, nil
}

// Len implements index.Index; it returns -1 when the count query fails so a
// size check against the embedding store cannot pass by accident.
func (s *SQLiteStore) Len() int {
	n, err := s.Count(context.Background())
	if err != nil {
		return -1
	}
	return n
}

// Close closes the database when the store opened it.
func (s *SQLiteStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
