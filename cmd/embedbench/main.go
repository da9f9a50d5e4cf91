// Package main provides the embedbench CLI.
//
// Usage:
//
//	embedbench [flags] <command>
//
// Commands:
//
//	run      - pair counts, PR-AUC, retrieval listings and summary
//	pairs    - positive and negative pair counts
//	auc      - pair counts and PR-AUC
//	retrieve - nearest-neighbour listings per domain
//
// Without flags the embeddings are read from ./embedding and the labels from
// ./labels.tsv.
package main

import (
	"fmt"
	"os"

	"github.com/viant/embedbench/cmd/embedbench/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
