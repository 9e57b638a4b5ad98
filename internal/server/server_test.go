package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"dutch_market/internal/domain/service/auction"
	"dutch_market/internal/infrastructure/clock"
	"dutch_market/internal/infrastructure/memory"
	"dutch_market/internal/server"
	"dutch_market/pkg/apiclient"
	"dutch_market/pkg/httpx"
	"dutch_market/pkg/rest"
)

type testEnv struct {
	clock  *clock.Manual
	url    string
	public apiclient.AuctionClient
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	clk := clock.NewManual(1000)
	ledger := memory.NewLedger()
	service := auction.NewAuctionService(memory.NewAuctionRepository(), ledger, clk, "platform")

	handler := server.NewHandler(
		server.NewServer(server.NewAuctionServer(service), server.NewLedgerServer(ledger)),
		server.HandlerOptions{LogBodies: true, LogFieldMaxLen: 1024},
	)

	httpServer := httptest.NewServer(handler)
	t.Cleanup(httpServer.Close)

	return testEnv{
		clock:  clk,
		url:    httpServer.URL,
		public: apiclient.NewAuctionClient(apiclient.NewAPIClient(httpServer.URL, nil)),
	}
}

func (e testEnv) as(account string) apiclient.AuctionClient {
	httpClient := &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(http.DefaultTransport, httpx.StaticToken(account)),
	}

	return apiclient.NewAuctionClient(apiclient.NewAPIClient(e.url, httpClient))
}

func ptr[T any](v T) *T {
	return &v
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr), "expected api error, got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, rest.ErrorCode(code), apiErr.Body.Code)
	require.NotEmpty(t, apiErr.Body.SupportID)
}

func TestAuctionLifecycle(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	env := newTestEnv(t)
	seller := env.as("seller")
	buyer := env.as("buyer")

	created, err := seller.CreateAuction(ctx, rest.CreateAuctionRequest{
		StartingPrice: ptr[uint64](100),
		DiscountRate:  ptr[uint64](1),
		Item:          "vase",
		Duration:      ptr[int64](50),
	})
	rq.NoError(err)
	rq.Equal(uint64(0), created.Index)

	env.clock.Advance(10)

	quote, err := env.public.Price(ctx, created.Index)
	rq.NoError(err)
	rq.Equal(uint64(90), quote.Price)
	rq.Equal(int64(1010), quote.At)
	rq.False(quote.Expired)

	_, err = buyer.Buy(ctx, created.Index, 89)
	requireAPIError(t, err, http.StatusPaymentRequired, "InsufficientPayment")

	receipt, err := buyer.Buy(ctx, created.Index, 95)
	rq.NoError(err)
	rq.Equal(uint64(90), receipt.FinalPrice)
	rq.Equal(uint64(9), receipt.Fee)
	rq.Equal(uint64(81), receipt.SellerAmount)
	rq.Equal(uint64(5), receipt.Refund)
	rq.Equal("buyer", receipt.Buyer)
	rq.Equal("seller", receipt.Seller)

	_, err = env.as("late").Buy(ctx, created.Index, 1000)
	requireAPIError(t, err, http.StatusConflict, "AuctionStopped")

	_, err = env.public.Price(ctx, created.Index)
	requireAPIError(t, err, http.StatusConflict, "AuctionStopped")

	got, err := env.public.GetAuction(ctx, created.Index)
	rq.NoError(err)
	rq.Equal(rest.AuctionStateClosed, got.State)
	rq.Equal(uint64(90), *got.FinalPrice)
	rq.Equal("buyer", *got.Buyer)
	rq.Equal(int64(1010), *got.SettledAt)

	balances := map[string]int64{"buyer": -90, "seller": 81, "platform": 9}
	for account, want := range balances {
		balance, err := env.public.Balance(ctx, account)
		rq.NoError(err)
		rq.Equal(want, balance.Balance, account)
	}
}

func TestCreateAuctionErrors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	testCases := []struct {
		name    string
		client  apiclient.AuctionClient
		request rest.CreateAuctionRequest
		status  int
		code    string
	}{
		{
			name:   "anonymous",
			client: env.public,
			request: rest.CreateAuctionRequest{
				StartingPrice: ptr[uint64](100), DiscountRate: ptr[uint64](1), Item: "vase", Duration: ptr[int64](50),
			},
			status: http.StatusUnauthorized,
			code:   "Unauthorized",
		},
		{
			name:   "missing field",
			client: env.as("seller"),
			request: rest.CreateAuctionRequest{
				StartingPrice: ptr[uint64](100), Item: "vase", Duration: ptr[int64](50),
			},
			status: http.StatusBadRequest,
			code:   "ValidationError",
		},
		{
			name:   "price below rate * duration",
			client: env.as("seller"),
			request: rest.CreateAuctionRequest{
				StartingPrice: ptr[uint64](10), DiscountRate: ptr[uint64](1), Item: "vase", Duration: ptr[int64](50),
			},
			status: http.StatusBadRequest,
			code:   "InvalidAuctionParameters",
		},
		{
			name:   "zero duration",
			client: env.as("seller"),
			request: rest.CreateAuctionRequest{
				StartingPrice: ptr[uint64](10), DiscountRate: ptr[uint64](0), Item: "vase", Duration: ptr[int64](0),
			},
			status: http.StatusBadRequest,
			code:   "InvalidAuctionParameters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.client.CreateAuction(ctx, tc.request)
			requireAPIError(t, err, tc.status, tc.code)
		})
	}
}

func TestQueryErrors(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	env := newTestEnv(t)

	_, err := env.public.GetAuction(ctx, 42)
	requireAPIError(t, err, http.StatusNotFound, "AuctionNotFound")

	_, err = env.as("buyer").Buy(ctx, 42, 1)
	requireAPIError(t, err, http.StatusNotFound, "AuctionNotFound")

	_, err = env.public.ListAuctions(ctx, 0, 0)
	requireAPIError(t, err, http.StatusBadRequest, "InvalidPaging")

	api := apiclient.NewAPIClient(env.url, nil)

	var errBody rest.Error

	resp, err := api.Get(ctx, "/v1/auctions/abc", http.Header{}, nil, &errBody)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("InvalidAuctionIndex"), errBody.Code)
}

func TestListAuctions(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	env := newTestEnv(t)
	seller := env.as("seller")

	for range 3 {
		_, err := seller.CreateAuction(ctx, rest.CreateAuctionRequest{
			StartingPrice: ptr[uint64](100), DiscountRate: ptr[uint64](0), Item: "vase", Duration: ptr[int64](60),
		})
		rq.NoError(err)
	}

	list, err := env.public.ListAuctions(ctx, 2, 1)
	rq.NoError(err)
	rq.Len(list.Items, 2)
	rq.Equal(uint64(1), list.Items[0].Index)
	rq.Equal(uint64(2), list.Items[1].Index)
	rq.Equal(rest.AuctionStateOpen, list.Items[0].State)
	rq.Nil(list.Items[0].FinalPrice)
}
