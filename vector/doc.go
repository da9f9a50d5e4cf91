// Package vector holds the vector math and SQLite persistence shared by the
// benchmark:
//   - Cosine and Magnitude
//   - Embedding encoding (little-endian float32 BLOB)
//   - SQLiteStore: a domains table ranked with vec_cosine, usable as an index
package vector
