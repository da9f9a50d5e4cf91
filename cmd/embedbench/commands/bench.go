package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/viant/embedbench/dataset"
	"github.com/viant/embedbench/eval"
)

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full benchmark: pair counts, PR-AUC and retrieval",
		Args:  cobra.NoArgs,
		RunE:  runFull(opts),
	}
}

func runFull(opts *options) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withDataset(opts, func(d *dataset.Dataset) error {
			out := cmd.OutOrStdout()
			if err := printSeparability(out, d); err != nil {
				return err
			}
			return printRetrieval(out, d, opts)
		})
	}
}

func newPairsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pairs",
		Short: "Count same-class and different-class labeled pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDataset(opts, func(d *dataset.Dataset) error {
				s := d.Pairs()
				for _, ok := s.Next(); ok; _, ok = s.Next() {
				}
				printCounts(cmd.OutOrStdout(), s.Positives(), s.Negatives())
				return nil
			})
		},
	}
}

func newAUCCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "auc",
		Short: "Compute the PR-AUC of cosine similarity over labeled pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDataset(opts, func(d *dataset.Dataset) error {
				return printSeparability(cmd.OutOrStdout(), d)
			})
		},
	}
}

func newRetrieveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "retrieve",
		Short: "List the nearest neighbours of every domain with their classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDataset(opts, func(d *dataset.Dataset) error {
				return printRetrieval(cmd.OutOrStdout(), d, opts)
			})
		},
	}
}

func withDataset(opts *options, fn func(d *dataset.Dataset) error) error {
	d, err := dataset.Load(opts.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			slog.Warn("failed to close index", "err", err)
		}
	}()
	return fn(d)
}

func printSeparability(out io.Writer, d *dataset.Dataset) error {
	report, err := eval.Separability(d.Pairs(), d.Store)
	if err != nil {
		return err
	}
	printCounts(out, report.Positives, report.Negatives)
	fmt.Fprintln(out, formatFloat(report.AUC))
	return nil
}

func printRetrieval(out io.Writer, d *dataset.Dataset, opts *options) error {
	results, err := eval.Retrieval(d.Store, d.Index, d.Labels, eval.RetrievalOptions{
		TopK:        opts.cfg.Retrieval.TopK,
		IncludeSelf: opts.cfg.Retrieval.IncludeSelf,
	})
	if err != nil {
		return err
	}
	for i := range results {
		r := &results[i]
		fmt.Fprintln(out, r.Query)
		fmt.Fprintln(out, formatList(r.IDs()))
		fmt.Fprintln(out, formatList(r.Classes()))
		fmt.Fprintln(out, r.Population)
	}
	s := eval.Summarize(results)
	fmt.Fprintf(out, "Mean hit rate: %s, top-1 hits: %d/%d\n", formatFloat(s.MeanHitRate), s.TopHits, s.Queries)
	return nil
}
