package persistence

import (
	"database/sql"
	"time"

	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/value"
)

// auctionSchema внутренняя структура для маппинга строки auctions.
// Суммы хранятся в NUMERIC(20) и передаются строками: uint64 не помещается в BIGINT.
type auctionSchema struct {
	Index         int64          `db:"idx"`
	Item          string         `db:"item"`
	Seller        string         `db:"seller"`
	StartingPrice string         `db:"starting_price"`
	DiscountRate  string         `db:"discount_rate"`
	StartedAt     int64          `db:"started_at"`
	EndsAt        int64          `db:"ends_at"`
	Stopped       bool           `db:"stopped"`
	FinalPrice    sql.NullString `db:"final_price"`
	Buyer         sql.NullString `db:"buyer"`
	SettledAt     sql.NullInt64  `db:"settled_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func fromAuction(a *entity.Auction) *auctionSchema {
	return &auctionSchema{
		Index:         int64(a.Index),
		Item:          a.Item,
		Seller:        a.Seller.String(),
		StartingPrice: a.StartingPrice.String(),
		DiscountRate:  a.DiscountRate.String(),
		StartedAt:     int64(a.StartedAt),
		EndsAt:        int64(a.EndsAt),
		UpdatedAt:     time.Now(),
	}
}

func (s *auctionSchema) toDomain() (*entity.Auction, error) {
	startingPrice, err := parseAmount(s.StartingPrice)
	if err != nil {
		return nil, err
	}

	discountRate, err := parseAmount(s.DiscountRate)
	if err != nil {
		return nil, err
	}

	a := &entity.Auction{
		Index:         value.AuctionIndex(s.Index),
		Item:          s.Item,
		Seller:        value.AccountID(s.Seller),
		StartingPrice: startingPrice,
		DiscountRate:  value.Rate(discountRate),
		StartedAt:     value.Timestamp(s.StartedAt),
		EndsAt:        value.Timestamp(s.EndsAt),
		State:         entity.AuctionOpen,
	}

	if !s.Stopped {
		return a, nil
	}

	finalPrice, err := parseAmount(s.FinalPrice.String)
	if err != nil {
		return nil, err
	}

	a.Close(entity.Closure{
		FinalPrice: finalPrice,
		Buyer:      value.AccountID(s.Buyer.String),
		SettledAt:  value.Timestamp(s.SettledAt.Int64),
	})

	return a, nil
}

// ledgerEntrySchema строка ledger_entries.
type ledgerEntrySchema struct {
	SettlementID string `db:"settlement_id"`
	AuctionIndex int64  `db:"auction_idx"`
	Account      string `db:"account"`
	Kind         string `db:"kind"`
	Delta        string `db:"delta"`
}
