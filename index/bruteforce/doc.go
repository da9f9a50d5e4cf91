// Package bruteforce provides an exact vector index that answers kNN queries
// by scanning all vectors and scoring via cosine similarity.
package bruteforce
