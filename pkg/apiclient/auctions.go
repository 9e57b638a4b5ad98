package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"dutch_market/pkg/rest"
)

// Error ответ API с кодом не из 2xx.
type Error struct {
	StatusCode int
	Body       rest.Error
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d %s: %s (support id %s)", e.StatusCode, e.Body.Code, e.Body.Message, e.Body.SupportID)
}

// AuctionClient типизированная обёртка над HTTP API движка.
type AuctionClient struct {
	api APIClient
}

func NewAuctionClient(api APIClient) AuctionClient {
	return AuctionClient{api: api}
}

func (c AuctionClient) CreateAuction(
	ctx context.Context,
	request rest.CreateAuctionRequest,
) (rest.CreateAuctionResponse, error) {
	var response rest.CreateAuctionResponse

	err := c.do(ctx, http.MethodPost, "/v1/auctions", request, &response)

	return response, err
}

func (c AuctionClient) ListAuctions(ctx context.Context, limit, offset int) (rest.AuctionList, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var response rest.AuctionList

	err := c.do(ctx, http.MethodGet, "/v1/auctions?"+query.Encode(), nil, &response)

	return response, err
}

func (c AuctionClient) GetAuction(ctx context.Context, index uint64) (rest.Auction, error) {
	var response rest.Auction

	err := c.do(ctx, http.MethodGet, auctionPath(index), nil, &response)

	return response, err
}

func (c AuctionClient) Price(ctx context.Context, index uint64) (rest.Quote, error) {
	var response rest.Quote

	err := c.do(ctx, http.MethodGet, auctionPath(index)+"/price", nil, &response)

	return response, err
}

func (c AuctionClient) Buy(ctx context.Context, index, paidAmount uint64) (rest.Receipt, error) {
	var response rest.Receipt

	err := c.do(ctx, http.MethodPost, auctionPath(index)+"/buy", rest.BuyRequest{PaidAmount: &paidAmount}, &response)

	return response, err
}

func (c AuctionClient) Balance(ctx context.Context, account string) (rest.Balance, error) {
	var response rest.Balance

	err := c.do(ctx, http.MethodGet, "/v1/accounts/"+url.PathEscape(account)+"/balance", nil, &response)

	return response, err
}

func (c AuctionClient) do(ctx context.Context, method, endpoint string, request, dest any) error {
	var (
		errBody rest.Error
		resp    *http.Response
		err     error
	)

	switch method {
	case http.MethodPost:
		resp, err = c.api.Post(ctx, endpoint, http.Header{}, request, dest, &errBody)
	default:
		resp, err = c.api.Get(ctx, endpoint, http.Header{}, dest, &errBody)
	}

	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{StatusCode: resp.StatusCode, Body: errBody}
	}

	return nil
}

func auctionPath(index uint64) string {
	return "/v1/auctions/" + strconv.FormatUint(index, 10)
}
