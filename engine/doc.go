// Package engine opens modernc.org/sqlite connections with the vec_cosine
// scalar function registered, so embedding BLOBs can be ranked in SQL.
package engine
