// Package index defines the similarity index consumed by the benchmark:
// vectors are added under string identifiers and queried by raw vector,
// ranked by cosine similarity. Implementations live in the sub-packages and
// in vector.SQLiteStore; New selects one by kind.
package index
