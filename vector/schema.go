package vector

import (
	"database/sql"
)

const domainsSchema = `
CREATE TABLE IF NOT EXISTS domains (
    id TEXT PRIMARY KEY,
    embedding BLOB NOT NULL
);
`

// EnsureSchema creates the domains table if it does not already exist.
// Rows are ranked by rowid on ties, so insertion order is preserved.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(domainsSchema)
	return err
}
