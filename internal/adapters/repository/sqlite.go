package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/okian/tunify/internal/domain/catalogue"
)

var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads tracks from a table in a SQLite database. Key and mode
// are stored as text, the same as in the CSV dataset.
type SQLiteSource struct {
	path  string
	table string
}

// NewSQLiteSource validates table and returns a Source for the database at path.
func NewSQLiteSource(path, table string) (*SQLiteSource, error) {
	if !tablePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return &SQLiteSource{path: path, table: table}, nil
}

// Load reads every row of the table in rowid order.
func (s *SQLiteSource) Load(ctx context.Context) (*catalogue.Catalogue, error) {
	// The driver creates missing files; a catalogue must already exist.
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenSource, err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %w", ErrOpenSource, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+s.table+`" ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %w", ErrOpenSource, s.table, err)
	}
	defer func() { _ = rows.Close() }()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var records [][]string
	vals := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(records)+1, err)
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = v.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return catalogue.FromRecords(header, records)
}
