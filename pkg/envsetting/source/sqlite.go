package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/randalmurphal/envsetting/pkg/envsetting"
)

// DefaultTable is the table read by OpenSQLite when table is empty.
const DefaultTable = "settings"

// ErrInvalidTable indicates a table name that is not a plain identifier.
var ErrInvalidTable = errors.New("invalid table name")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FromDB reads every row of table into a mapping. The table must have
// text columns named key and value. Rows with a NULL value are treated as
// absent keys.
func FromDB(ctx context.Context, db *sql.DB, table string) (envsetting.Map, error) {
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT "key", "value" FROM "%s"`, table))
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	m := envsetting.Map{}
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting row: %w", err)
		}
		if value.Valid {
			m[key] = value.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return m, nil
}

// OpenSQLite opens the SQLite database at path, reads table with FromDB,
// and closes the database. An empty table means DefaultTable.
func OpenSQLite(ctx context.Context, path, table string) (envsetting.Map, error) {
	if table == "" {
		table = DefaultTable
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return FromDB(ctx, db, table)
}
