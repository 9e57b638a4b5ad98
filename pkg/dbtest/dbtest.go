// Package dbtest prepares a PostgreSQL database for integration tests.
package dbtest

import (
	"fmt"
	"os"
	"strings"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/jmoiron/sqlx"
)

// EnvDSN names the variable with the test database DSN.
const EnvDSN = "TEST_PG_DSN"

// Connect opens the database from EnvDSN, drops the given tables and applies
// the schema files. The test is skipped when EnvDSN is not set.
func Connect(t testing.TB, schemaFiles []string, tables ...string) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Fatalf("sqlx.Connect: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	if err := Reset(db, schemaFiles, tables...); err != nil {
		t.Fatalf("dbtest.Reset: %v", err)
	}

	return db
}

// Reset drops tables in one statement and executes every schema file.
func Reset(db *sqlx.DB, schemaFiles []string, tables ...string) error {
	if len(tables) > 0 {
		if _, err := db.Exec(`DROP TABLE IF EXISTS ` + strings.Join(tables, ", ")); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}

	for _, fileName := range schemaFiles {
		schema, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err := db.Exec(string(schema)); err != nil {
			return fmt.Errorf("db.Exec %s: %w", fileName, err)
		}
	}

	return nil
}
