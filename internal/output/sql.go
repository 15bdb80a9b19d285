// internal/output/sql.go
package output

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Drivers for the supported SQL export targets.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hwcatalog/harvester/internal/hardware"
)

type sqlDialect int

const (
	dialectSQLite sqlDialect = iota
	dialectMySQL
	dialectPostgres
)

// sqlSink replaces a category's rows inside one shared table. All three
// categories land in the same table keyed by id, with the full record JSON
// in the specs column.
type sqlSink struct {
	driver  string
	dsn     string
	table   string
	dialect sqlDialect
}

func (s *sqlSink) Name() string { return s.driver + ":" + s.dsn }

func (s *sqlSink) Export(ctx context.Context, cat hardware.Category, records hardware.Dataset) error {
	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.driver, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to reach %s: %w", s.driver, err)
	}

	table := tableName(s.table, cat)
	if err := s.ensureTable(ctx, db, table); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE category = %s", table, s.placeholder(1)),
		string(cat)); err != nil {
		return fmt.Errorf("failed to clear %s rows: %w", cat, err)
	}

	insert := s.insertStatement(table)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		row, err := exportRow(rec)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to insert %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

func (s *sqlSink) ensureTable(ctx context.Context, db *sql.DB, table string) error {
	priceType := "REAL"
	if s.dialect == dialectMySQL {
		priceType = "DOUBLE"
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id           VARCHAR(64) PRIMARY KEY,
		category     VARCHAR(16) NOT NULL,
		brand        VARCHAR(64) NOT NULL,
		model        VARCHAR(255) NOT NULL,
		release_date VARCHAR(10),
		price        %s,
		source       VARCHAR(128),
		specs        TEXT NOT NULL
	)`, table, priceType)

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure table %s: %w", table, err)
	}
	return nil
}

func (s *sqlSink) insertStatement(table string) string {
	marks := make([]string, len(exportColumns))
	for i := range exportColumns {
		marks[i] = s.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(exportColumns, ", "), strings.Join(marks, ", "))
}

func (s *sqlSink) placeholder(n int) string {
	if s.dialect == dialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
