// Package cover provides a vantage-point tree index for cosine kNN queries.
// Pruning runs on angular distance, which satisfies the triangle inequality,
// while results are reported as cosine similarity.
package cover
