package persistence

import (
	"context"
	_ "embed"

	"github.com/jmoiron/sqlx"

	"dutch_market/internal/domain"
	"dutch_market/pkg/errcodes"
)

//go:embed schema.sql
var schemaSQL string

// Migrate создаёт таблицы, если их ещё нет.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to apply schema")
	}

	return nil
}
