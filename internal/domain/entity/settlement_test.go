package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dutch_market/internal/domain/entity"
)

func TestSettlementTransfers(t *testing.T) {
	rq := require.New(t)

	s := entity.Settlement{
		ID:           "s-1",
		Buyer:        "buyer",
		Seller:       "seller",
		Platform:     "platform",
		Paid:         120,
		Price:        100,
		Fee:          10,
		SellerAmount: 90,
		Refund:       20,
	}

	transfers := s.Transfers()
	rq.Len(transfers, 4)

	var in, out uint64
	for _, tr := range transfers {
		if tr.Kind == entity.TransferPayment {
			in += uint64(tr.Amount)
			continue
		}
		out += uint64(tr.Amount)
	}

	rq.Equal(in, out, "escrow must be empty after settlement")

	s.Refund = 0
	s.Paid = 100
	rq.Len(s.Transfers(), 3)
}

func TestAuctionClose(t *testing.T) {
	rq := require.New(t)

	a := entity.Auction{StartedAt: 1000, EndsAt: 1060}
	rq.False(a.Stopped())
	rq.EqualValues(60, a.Duration())
	rq.False(a.Expired(1060))
	rq.True(a.Expired(1061))

	a.Close(entity.Closure{FinalPrice: 100, Buyer: "buyer", SettledAt: 1001})
	rq.True(a.Stopped())
	rq.Equal(entity.AuctionClosed, a.State)
	rq.Equal("closed", a.State.String())
}
