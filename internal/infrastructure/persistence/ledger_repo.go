package persistence

import (
	"context"
	"strconv"

	"github.com/jmoiron/sqlx"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/errcodes"
)

// LedgerRepository журнал движений средств в ledger_entries.
// Все строки одного расчёта пишутся одной транзакцией, а Settle добавляет
// в неё и закрытие аукциона.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Apply(ctx context.Context, settlement entity.Settlement) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return insertSettlement(ctx, tx, settlement)
	})
}

// Settle закрывает аукцион и пишет движения средств одной транзакцией.
// Строка аукциона блокируется FOR UPDATE, поэтому конкурирующие процессы
// ждут её и видят уже закрытый аукцион.
func (r *LedgerRepository) Settle(ctx context.Context, settlement entity.Settlement, closure entity.Closure) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := closeAuction(ctx, tx, settlement.AuctionIndex, closure); err != nil {
			return err
		}

		return insertSettlement(ctx, tx, settlement)
	})
}

func insertSettlement(ctx context.Context, tx *sqlx.Tx, settlement entity.Settlement) error {
	var exists bool

	err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM ledger_entries WHERE settlement_id = $1)`, settlement.ID)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check settlement")
	}

	if exists {
		return domain.Errorf(errcodes.SettlementConflict, "settlement %s already applied", settlement.ID)
	}

	query := `
		INSERT INTO ledger_entries (settlement_id, auction_idx, account, kind, delta)
		VALUES (:settlement_id, :auction_idx, :account, :kind, CAST(:delta AS NUMERIC))`

	for _, e := range toLedgerEntries(settlement) {
		if _, err := tx.NamedExecContext(ctx, query, e); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert ledger entry")
		}
	}

	return nil
}

func (r *LedgerRepository) Revert(ctx context.Context, settlementID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ledger_entries WHERE settlement_id = $1`, settlementID)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to revert settlement")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		return domain.Errorf(errcodes.NotFound, "settlement %s not found", settlementID)
	}

	return nil
}

func (r *LedgerRepository) Balance(ctx context.Context, account value.AccountID) (int64, error) {
	var balance string

	err := r.db.GetContext(ctx, &balance,
		`SELECT COALESCE(SUM(delta), 0)::text FROM ledger_entries WHERE account = $1`, account.String())
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to get balance")
	}

	v, err := strconv.ParseInt(balance, 10, 64)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.ArithmeticOverflow, "balance does not fit int64")
	}

	return v, nil
}

func toLedgerEntries(settlement entity.Settlement) []ledgerEntrySchema {
	transfers := settlement.Transfers()
	entries := make([]ledgerEntrySchema, 0, len(transfers))

	for _, t := range transfers {
		base := ledgerEntrySchema{
			SettlementID: settlement.ID,
			AuctionIndex: int64(settlement.AuctionIndex),
			Kind:         string(t.Kind),
		}

		if t.From != "" {
			e := base
			e.Account = t.From.String()
			e.Delta = formatDelta(t.Amount, true)
			entries = append(entries, e)
		}

		if t.To != "" {
			e := base
			e.Account = t.To.String()
			e.Delta = formatDelta(t.Amount, false)
			entries = append(entries, e)
		}
	}

	return entries
}
