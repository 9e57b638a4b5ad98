package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/service/auction"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/contextx"
	"dutch_market/pkg/errcodes"
	"dutch_market/pkg/rest"
)

func newCreateParams(request rest.CreateAuctionRequest) auction.CreateParams {
	return auction.CreateParams{
		StartingPrice: value.Amount(*request.StartingPrice),
		DiscountRate:  value.Rate(*request.DiscountRate),
		Item:          request.Item,
		Duration:      value.Seconds(*request.Duration),
	}
}

func newRESTAuction(a entity.Auction) rest.Auction {
	result := rest.Auction{
		Index:         uint64(a.Index),
		Item:          a.Item,
		Seller:        a.Seller.String(),
		StartingPrice: uint64(a.StartingPrice),
		DiscountRate:  uint64(a.DiscountRate),
		StartedAt:     int64(a.StartedAt),
		EndsAt:        int64(a.EndsAt),
		State:         rest.AuctionStateOpen,
	}

	if a.Stopped() {
		finalPrice := uint64(a.FinalPrice)
		buyer := a.Buyer.String()
		settledAt := int64(a.SettledAt)

		result.State = rest.AuctionStateClosed
		result.FinalPrice = &finalPrice
		result.Buyer = &buyer
		result.SettledAt = &settledAt
	}

	return result
}

func newRESTQuote(q entity.Quote) rest.Quote {
	return rest.Quote{
		Index:   uint64(q.AuctionIndex),
		Price:   uint64(q.Price),
		At:      int64(q.At),
		Expired: q.Expired,
	}
}

func newRESTReceipt(r entity.Receipt) rest.Receipt {
	return rest.Receipt{
		SettlementID: r.SettlementID,
		Index:        uint64(r.AuctionIndex),
		FinalPrice:   uint64(r.FinalPrice),
		Fee:          uint64(r.Fee),
		SellerAmount: uint64(r.SellerAmount),
		Refund:       uint64(r.Refund),
		Buyer:        r.Buyer.String(),
		Seller:       r.Seller.String(),
		SettledAt:    int64(r.SettledAt),
	}
}

func auctionIndexParam(r *http.Request) (value.AuctionIndex, error) {
	index, err := value.ParseAuctionIndex(chi.URLParam(r, "index"))
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InvalidAuctionIndex, "invalid auction index")
	}

	return index, nil
}

func accountParam(r *http.Request) (value.AccountID, error) {
	account, err := value.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		return "", domain.WrapError(err, errcodes.InvalidAccountID, "invalid account")
	}

	return account, nil
}

// callerAccount идентификатор вызывающего, положенный middlewarex.BearerIdentity.
func callerAccount(ctx context.Context) (value.AccountID, error) {
	caller, err := contextx.AccountFromContext(ctx)
	if err != nil {
		return "", domain.WrapError(err, errcodes.Unauthorized, "caller is not identified")
	}

	account, err := value.ParseAccountID(caller.String())
	if err != nil {
		return "", domain.WrapError(err, errcodes.InvalidAccountID, "invalid caller account")
	}

	return account, nil
}
