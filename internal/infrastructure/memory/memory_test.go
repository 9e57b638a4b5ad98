package memory_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/value"
	"dutch_market/internal/infrastructure/memory"
	"dutch_market/pkg/errcodes"
)

func TestAuctionRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := memory.NewAuctionRepository()

	for i := range 3 {
		a := &entity.Auction{Item: "item", Seller: "seller", StartingPrice: 100, StartedAt: 1000, EndsAt: 1060}

		index, err := repo.Create(ctx, a)
		rq.NoError(err)
		rq.Equal(value.AuctionIndex(i), index)
		rq.Equal(index, a.Index)
	}

	got, err := repo.GetByIndex(ctx, 1)
	rq.NoError(err)
	rq.Equal(value.AuctionIndex(1), got.Index)
	rq.False(got.Stopped())

	// Снимок не связан с хранилищем
	got.Item = "changed"
	again, err := repo.GetByIndex(ctx, 1)
	rq.NoError(err)
	rq.Equal("item", again.Item)

	_, err = repo.GetByIndex(ctx, 3)
	rq.True(domain.HasCode(err, errcodes.AuctionNotFound))

	rq.NoError(repo.Close(ctx, 1, entity.Closure{FinalPrice: 90, Buyer: "buyer", SettledAt: 1010}))

	err = repo.Close(ctx, 1, entity.Closure{FinalPrice: 1, Buyer: "other", SettledAt: 1011})
	rq.True(domain.HasCode(err, errcodes.AuctionStopped))

	closed, err := repo.GetByIndex(ctx, 1)
	rq.NoError(err)
	rq.True(closed.Stopped())
	rq.Equal(value.Amount(90), closed.FinalPrice)
	rq.Equal(value.AccountID("buyer"), closed.Buyer)

	err = repo.Close(ctx, 7, entity.Closure{})
	rq.True(domain.HasCode(err, errcodes.AuctionNotFound))

	list, err := repo.List(ctx, 2, 1)
	rq.NoError(err)
	rq.Len(list, 2)
	rq.Equal(value.AuctionIndex(1), list[0].Index)
	rq.Equal(value.AuctionIndex(2), list[1].Index)

	list, err = repo.List(ctx, 10, 5)
	rq.NoError(err)
	rq.Empty(list)
}

func TestLedger(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	ledger := memory.NewLedger()

	settlement := entity.Settlement{
		ID:           "s-1",
		Buyer:        "buyer",
		Seller:       "seller",
		Platform:     "platform",
		Paid:         150,
		Price:        100,
		Fee:          10,
		SellerAmount: 90,
		Refund:       50,
	}

	rq.NoError(ledger.Apply(ctx, settlement))

	balance := func(account value.AccountID) int64 {
		b, err := ledger.Balance(ctx, account)
		rq.NoError(err)

		return b
	}

	rq.Equal(int64(-100), balance("buyer"))
	rq.Equal(int64(90), balance("seller"))
	rq.Equal(int64(10), balance("platform"))

	err := ledger.Apply(ctx, settlement)
	rq.True(domain.HasCode(err, errcodes.SettlementConflict))
	rq.Equal(int64(90), balance("seller"))

	rq.NoError(ledger.Revert(ctx, "s-1"))
	rq.Zero(balance("buyer"))
	rq.Zero(balance("seller"))
	rq.Zero(balance("platform"))

	err = ledger.Revert(ctx, "s-1")
	rq.True(domain.HasCode(err, errcodes.NotFound))
}

func TestLedgerRejectsOverflowAtomically(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	ledger := memory.NewLedger()

	rq.NoError(ledger.Apply(ctx, entity.Settlement{
		ID: "s-1", Buyer: "b1", Seller: "seller", Platform: "platform",
		Paid: math.MaxInt64, Price: math.MaxInt64, SellerAmount: math.MaxInt64,
	}))

	err := ledger.Apply(ctx, entity.Settlement{
		ID: "s-2", Buyer: "b2", Seller: "seller", Platform: "platform",
		Paid: 10, Price: 10, Fee: 1, SellerAmount: 9,
	})
	rq.True(domain.HasCode(err, errcodes.ArithmeticOverflow))

	b2, err := ledger.Balance(ctx, "b2")
	rq.NoError(err)
	rq.Zero(b2)

	platform, err := ledger.Balance(ctx, "platform")
	rq.NoError(err)
	rq.Zero(platform)

	err = ledger.Apply(ctx, entity.Settlement{ID: "s-3", Buyer: "b3", Paid: math.MaxUint64})
	rq.True(domain.HasCode(err, errcodes.ArithmeticOverflow))
}
