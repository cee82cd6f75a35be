package dataset

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3" // Import SQLite driver
)

// DefaultQuery reads memberships from a table named sets.
const DefaultQuery = `SELECT "set", element FROM sets ORDER BY rowid`

type membership struct {
	Set     any `db:"set"`
	Element any `db:"element"`
}

// LoadSQLite runs query against the SQLite database at path. The query must
// return the columns set and element. Values keep their storage class:
// INTEGER becomes int64 and TEXT becomes string.
func LoadSQLite(ctx context.Context, path, query string) (*Dataset, error) {
	if query == "" {
		query = DefaultQuery
	}

	db, err := sqlx.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	b := newBuilder()
	for rows.Next() {
		var m membership
		if err := rows.StructScan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		b.add(sqlValue(m.Set), sqlValue(m.Element))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read memberships: %w", err)
	}
	return b.dataset(), nil
}

// readOnlyDSN escapes path so that '?', '#' and '%' in file names are not
// read as URI syntax.
func readOnlyDSN(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
}

// sqlValue turns driver byte slices into strings so they can be map keys.
func sqlValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
