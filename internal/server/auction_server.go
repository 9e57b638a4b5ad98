package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/internal/domain/service/auction"
	"dutch_market/internal/domain/value"
	"dutch_market/pkg/errcodes"
	"dutch_market/pkg/httpx/reply"
	"dutch_market/pkg/httpx/req"
	"dutch_market/pkg/lox"
	"dutch_market/pkg/rest"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type auctionService interface {
	CreateAuction(ctx context.Context, seller value.AccountID, params auction.CreateParams) (value.AuctionIndex, error)
	Buy(ctx context.Context, index value.AuctionIndex, buyer value.AccountID, paid value.Amount) (entity.Receipt, error)
	GetAuction(ctx context.Context, index value.AuctionIndex) (entity.Auction, error)
	ListAuctions(ctx context.Context, limit, offset int) ([]entity.Auction, error)
	CurrentPrice(ctx context.Context, index value.AuctionIndex) (entity.Quote, error)
}

type AuctionServer struct {
	auctionService auctionService
}

func NewAuctionServer(auctionService auctionService) AuctionServer {
	return AuctionServer{
		auctionService: auctionService,
	}
}

func (s AuctionServer) postV1Auction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	seller, err := callerAccount(ctx)
	if err != nil {
		return fmt.Errorf("callerAccount: %w", err)
	}

	var request rest.CreateAuctionRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	index, err := s.auctionService.CreateAuction(ctx, seller, newCreateParams(request))
	if err != nil {
		return fmt.Errorf("auctionService.CreateAuction: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, rest.CreateAuctionResponse{Index: uint64(index)})

	return nil
}

func (s AuctionServer) getV1Auctions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, offset, err := parsePaging(r)
	if err != nil {
		return fmt.Errorf("parsePaging: %w", err)
	}

	auctions, err := s.auctionService.ListAuctions(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("auctionService.ListAuctions: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.AuctionList{
		Items:  lox.Map(auctions, newRESTAuction),
		Limit:  limit,
		Offset: offset,
	})

	return nil
}

func (s AuctionServer) getV1Auction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	index, err := auctionIndexParam(r)
	if err != nil {
		return fmt.Errorf("auctionIndexParam: %w", err)
	}

	a, err := s.auctionService.GetAuction(ctx, index)
	if err != nil {
		return fmt.Errorf("auctionService.GetAuction: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAuction(a))

	return nil
}

func (s AuctionServer) getV1AuctionPrice(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	index, err := auctionIndexParam(r)
	if err != nil {
		return fmt.Errorf("auctionIndexParam: %w", err)
	}

	quote, err := s.auctionService.CurrentPrice(ctx, index)
	if err != nil {
		return fmt.Errorf("auctionService.CurrentPrice: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTQuote(quote))

	return nil
}

func (s AuctionServer) postV1AuctionBuy(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	buyer, err := callerAccount(ctx)
	if err != nil {
		return fmt.Errorf("callerAccount: %w", err)
	}

	index, err := auctionIndexParam(r)
	if err != nil {
		return fmt.Errorf("auctionIndexParam: %w", err)
	}

	var request rest.BuyRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	receipt, err := s.auctionService.Buy(ctx, index, buyer, value.Amount(*request.PaidAmount))
	if err != nil {
		return fmt.Errorf("auctionService.Buy: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTReceipt(receipt))

	return nil
}

func parsePaging(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	limit, err := intQuery(query.Get("limit"), defaultLimit)
	if err != nil {
		return 0, 0, domain.WrapError(err, errcodes.InvalidPaging, "invalid limit")
	}

	offset, err := intQuery(query.Get("offset"), 0)
	if err != nil {
		return 0, 0, domain.WrapError(err, errcodes.InvalidPaging, "invalid offset")
	}

	if limit <= 0 || limit > maxLimit {
		return 0, 0, domain.Errorf(errcodes.InvalidPaging, "limit must be in 1..%d", maxLimit)
	}

	if offset < 0 {
		return 0, 0, domain.NewError(errcodes.InvalidPaging, "offset must not be negative")
	}

	return limit, offset, nil
}

func intQuery(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("strconv.Atoi: %w", err)
	}

	return v, nil
}
