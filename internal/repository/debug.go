package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// appTables is the fixed set of tables the development table-dump view shows.
// Keeping the list static avoids interpolating identifiers.
var appTables = []string{"users", "password_resets", "energy_usage", "energy_tips"}

// TableDump is a snapshot of one table for the development tables view.
type TableDump struct {
	Name    string
	Columns []string
	Rows    [][]string
	Count   int
}

// DumpTables reads every application table for the development tables view.
// Never mounted outside the development environment.
func DumpTables(ctx context.Context, db *sql.DB) ([]TableDump, error) {
	dumps := make([]TableDump, 0, len(appTables))
	for _, name := range appTables {
		dump, err := dumpTable(ctx, db, name)
		if err != nil {
			return nil, fmt.Errorf("dumping %s: %w", name, err)
		}
		dumps = append(dumps, dump)
	}
	return dumps, nil
}

func dumpTable(ctx context.Context, db *sql.DB, name string) (TableDump, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+name)
	if err != nil {
		return TableDump{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return TableDump{}, err
	}

	dump := TableDump{Name: name, Columns: columns}
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return TableDump{}, err
		}

		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		dump.Rows = append(dump.Rows, row)
	}

	dump.Count = len(dump.Rows)
	return dump, rows.Err()
}
