// Package commands implements the embedbench subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/viant/embedbench/internal/config"
	"github.com/viant/embedbench/internal/logging"
)

// options holds the persistent flag values of one command tree.
type options struct {
	configFile   string
	embeddingDir string
	labelFile    string
	indexKind    string
	topK         int
	excludeSelf  bool
	strictLabels bool
	sqliteDSN    string
	logLevel     string

	cfg config.Config
}

// Execute runs the command line.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "embedbench",
		Short: "Benchmark structural-domain embeddings against class labels",
		Long: `embedbench measures how well embedding vectors of protein structural
domains separate domains of the same class from the rest (PR-AUC over all
labeled pairs) and lists every domain's nearest neighbours with their classes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}
	// a bare invocation runs the full benchmark
	root.RunE = runFull(opts)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	flags.StringVar(&opts.embeddingDir, "embedding-dir", "", "directory with one embedding table per domain (default \"embedding\")")
	flags.StringVar(&opts.labelFile, "labels", "", "tab-separated domain class file (default \"labels.tsv\")")
	flags.StringVar(&opts.indexKind, "index", "", "similarity index: brute, cover, tree or sqlite (default \"brute\")")
	flags.IntVar(&opts.topK, "top-k", 0, "neighbours listed per domain, negative for all (default 10)")
	flags.BoolVar(&opts.excludeSelf, "exclude-self", false, "drop the query domain from its own neighbour list")
	flags.BoolVar(&opts.strictLabels, "strict-labels", false, "fail when an embedded domain has no label")
	flags.StringVar(&opts.sqliteDSN, "sqlite-dsn", "", "SQLite database for the sqlite index (default \":memory:\")")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (default \"info\")")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newPairsCommand(opts))
	root.AddCommand(newAUCCommand(opts))
	root.AddCommand(newRetrieveCommand(opts))
	return root
}

// resolve layers defaults, the config file, environment and explicit flags.
func (o *options) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("embedding-dir") {
		cfg.EmbeddingDir = o.embeddingDir
	}
	if flags.Changed("labels") {
		cfg.LabelFile = o.labelFile
	}
	if flags.Changed("index") {
		cfg.Index.Kind = o.indexKind
	}
	if flags.Changed("top-k") {
		cfg.Retrieval.TopK = o.topK
	}
	if flags.Changed("exclude-self") {
		cfg.Retrieval.IncludeSelf = !o.excludeSelf
	}
	if flags.Changed("strict-labels") {
		cfg.StrictLabels = o.strictLabels
	}
	if flags.Changed("sqlite-dsn") {
		cfg.Index.DSN = o.sqliteDSN
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.InitWriter(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel))
	o.cfg = cfg
	return nil
}
