package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/errcodes"
)

const auctionColumns = `
	idx, item, seller, starting_price::text AS starting_price, discount_rate::text AS discount_rate,
	started_at, ends_at, stopped, final_price::text AS final_price, buyer, settled_at, updated_at`

type AuctionRepository struct {
	db *sqlx.DB
}

func NewAuctionRepository(db *sqlx.DB) *AuctionRepository {
	return &AuctionRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *AuctionRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return withTx(ctx, r.db, fn)
}

// Create назначает индекс max(idx)+1. Блокировка таблицы сериализует
// создание между процессами, поэтому индексы идут подряд без пропусков.
func (r *AuctionRepository) Create(ctx context.Context, auction *entity.Auction) (value.AuctionIndex, error) {
	var index int64

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE auctions IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to lock auctions")
		}

		if err := tx.GetContext(ctx, &index, `SELECT COALESCE(MAX(idx) + 1, 0) FROM auctions`); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to allocate auction index")
		}

		schema := fromAuction(auction)
		schema.Index = index

		query := `
			INSERT INTO auctions (
				idx, item, seller, starting_price, discount_rate,
				started_at, ends_at, stopped, updated_at
			) VALUES (
				:idx, :item, :seller, CAST(:starting_price AS NUMERIC), CAST(:discount_rate AS NUMERIC),
				:started_at, :ends_at, FALSE, :updated_at
			)`

		if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to create auction")
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	auction.Index = value.AuctionIndex(index)

	return auction.Index, nil
}

func (r *AuctionRepository) GetByIndex(ctx context.Context, index value.AuctionIndex) (*entity.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE idx = $1`

	var schema auctionSchema
	if err := r.db.GetContext(ctx, &schema, query, int64(index)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Errorf(errcodes.AuctionNotFound, "auction %d not found", index)
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get auction")
	}

	return schema.toDomain()
}

func (r *AuctionRepository) List(ctx context.Context, limit, offset int) ([]entity.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions ORDER BY idx ASC LIMIT $1 OFFSET $2`

	var schemas []auctionSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit, offset); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list auctions")
	}

	result := make([]entity.Auction, 0, len(schemas))
	for _, s := range schemas {
		a, err := s.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	return result, nil
}

// Close делает CAS по флагу stopped: закрыть аукцион может только один процесс.
func (r *AuctionRepository) Close(ctx context.Context, index value.AuctionIndex, closure entity.Closure) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		return closeAuction(ctx, tx, index, closure)
	})
}

func closeAuction(ctx context.Context, tx *sqlx.Tx, index value.AuctionIndex, closure entity.Closure) error {
	var stopped bool

	err := tx.GetContext(ctx, &stopped, `SELECT stopped FROM auctions WHERE idx = $1 FOR UPDATE`, int64(index))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Errorf(errcodes.AuctionNotFound, "auction %d not found", index)
		}
		return domain.WrapError(err, errcodes.InternalServerError, "failed to lock auction")
	}

	if stopped {
		return domain.Errorf(errcodes.AuctionStopped, "auction %d is stopped", index)
	}

	query := `
		UPDATE auctions
		SET stopped = TRUE,
		    final_price = CAST($1 AS NUMERIC),
		    buyer = $2,
		    settled_at = $3,
		    updated_at = $4
		WHERE idx = $5 AND stopped = FALSE`

	res, err := tx.ExecContext(ctx, query,
		closure.FinalPrice.String(), closure.Buyer.String(), int64(closure.SettledAt), time.Now(), int64(index))
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to close auction")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		return domain.Errorf(errcodes.AuctionStopped, "auction %d is stopped", index)
	}

	return nil
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}
