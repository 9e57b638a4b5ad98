package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"dutch_market/internal/domain/service/auction"
	"dutch_market/internal/infrastructure/clock"
	"dutch_market/internal/infrastructure/memory"
	"dutch_market/internal/server"
	"dutch_market/pkg/rest"
)

func TestRun(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	ledger := memory.NewLedger()
	service := auction.NewAuctionService(memory.NewAuctionRepository(), ledger, clock.NewManual(100), "platform")

	httpServer := httptest.NewServer(server.NewHandler(
		server.NewServer(server.NewAuctionServer(service), server.NewLedgerServer(ledger)),
		server.HandlerOptions{},
	))
	defer httpServer.Close()

	seller := newClient(httpServer.URL, "seller", false)
	buyer := newClient(httpServer.URL, "buyer", true)

	result, err := run(ctx, seller, []string{"create", "100", "0", "60", "lamp"})
	rq.NoError(err)
	rq.Equal(rest.CreateAuctionResponse{Index: 0}, result)

	result, err = run(ctx, buyer, []string{"buy", "0", "100"})
	rq.NoError(err)
	rq.Equal(uint64(100), result.(rest.Receipt).FinalPrice)

	result, err = run(ctx, buyer, []string{"balance", "seller"})
	rq.NoError(err)
	rq.Equal(int64(90), result.(rest.Balance).Balance)

	_, err = run(ctx, buyer, []string{"buy", "0", "100"})
	rq.ErrorContains(err, "AuctionStopped")

	testCases := [][]string{
		nil,
		{"create", "100"},
		{"unknown"},
		{"get"},
	}

	for _, args := range testCases {
		_, err := run(ctx, seller, args)
		rq.ErrorIs(err, errUsage)
	}
}
