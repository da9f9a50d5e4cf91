package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/embedbench/index/bruteforce"
	"github.com/viant/embedbench/index/cover"
	"github.com/viant/embedbench/index/tree"
	"github.com/viant/embedbench/vector"
)

// Index kinds accepted by New.
const (
	KindBrute  = "brute"
	KindCover  = "cover"
	KindTree   = "tree"
	KindSQLite = "sqlite"
)

// Kinds lists the accepted kinds in display order.
var Kinds = []string{KindBrute, KindCover, KindTree, KindSQLite}

// Options configures New.
type Options struct {
	// TreeBase is the cover-tree expansion base (tree kind).
	TreeBase float32
	// DSN is the SQLite database for the sqlite kind; ":memory:" when empty.
	// Domains stored by an earlier run are deleted on open.
	DSN string
}

// New builds an empty index of the given kind. Kinds that hold external
// resources also implement io.Closer.
func New(kind string, opts Options) (Index, error) {
	switch strings.ToLower(kind) {
	case KindBrute, "bruteforce", "":
		return bruteforce.New(), nil
	case KindCover, "vp":
		return cover.New(), nil
	case KindTree, "covertree":
		return tree.New(opts.TreeBase), nil
	case KindSQLite:
		dsn := opts.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		s, err := openSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("index: unknown kind %q (want one of %s)", kind, strings.Join(Kinds, ", "))
}

// openSQLite opens dsn and empties domains left by an earlier run, so every
// index starts without entries.
func openSQLite(dsn string) (*vector.SQLiteStore, error) {
	s, err := vector.OpenSQLiteStore(dsn)
	if err != nil {
		return nil, err
	}
	if err := s.Reset(context.Background()); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

var (
	_ Index = (*bruteforce.Index)(nil)
	_ Index = (*cover.Index)(nil)
	_ Index = (*tree.Index)(nil)
	_ Index = (*vector.SQLiteStore)(nil)
)
