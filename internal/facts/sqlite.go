package facts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// A fact database stores every relation as a table with one INTEGER column
// per attribute.  Tables are read in name order.

// LoadDB reads every table of the SQLite database at path.
func LoadDB(ctx context.Context, path string) (*Base, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, err
	}

	rels := make([]Relation, 0, len(names))
	for _, name := range names {
		r, err := readTable(ctx, db, name)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded table", "path", path, "name", name, "tuples", len(r.Tuples))
		rels = append(rels, r)
	}
	return NewBase(rels...)
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to list tables: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readTable(ctx context.Context, db *sql.DB, name string) (Relation, error) {
	if !identRe.MatchString(name) {
		return Relation{}, fmt.Errorf("invalid relation name %q", name)
	}
	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+name+`"`)
	if err != nil {
		return Relation{}, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Relation{}, fmt.Errorf("failed to read table %s: %w", name, err)
	}

	r := Relation{Name: name, Heading: cols, Tuples: [][]int{}}
	vals := make([]sql.NullInt64, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return Relation{}, fmt.Errorf("table %s: expected integer values: %w", name, err)
		}
		tup := make([]int, len(cols))
		for i, v := range vals {
			if !v.Valid {
				return Relation{}, fmt.Errorf("table %s: NULL in column %s", name, cols[i])
			}
			tup[i] = int(v.Int64)
		}
		r.Tuples = append(r.Tuples, tup)
	}
	if err := rows.Err(); err != nil {
		return Relation{}, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	return r, nil
}

// SaveDB writes the fact base into the SQLite database at path, creating it
// if needed.  Existing tables with the same names are replaced.
func SaveDB(ctx context.Context, path string, b *Base) (err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, r := range b.Relations {
		if err := r.validate(); err != nil {
			return err
		}
		if err := writeTable(ctx, tx, r); err != nil {
			return err
		}
		slog.Debug("saved table", "path", path, "name", r.Name, "tuples", len(r.Tuples))
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func writeTable(ctx context.Context, tx *sql.Tx, r Relation) error {
	cols := make([]string, len(r.Heading))
	marks := make([]string, len(r.Heading))
	for i, h := range r.Heading {
		cols[i] = `"` + h + `" INTEGER NOT NULL`
		marks[i] = "?"
	}
	stmts := []string{
		`DROP TABLE IF EXISTS "` + r.Name + `"`,
		`CREATE TABLE "` + r.Name + `" (` + strings.Join(cols, ", ") + `)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO "`+r.Name+`" VALUES (`+strings.Join(marks, ", ")+`)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", r.Name, err)
	}
	defer insert.Close()

	args := make([]any, len(r.Heading))
	for _, tup := range r.Tuples {
		for i, v := range tup {
			args[i] = v
		}
		if _, err := insert.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", r.Name, err)
		}
	}
	return nil
}
