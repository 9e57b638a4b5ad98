package metrics_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/internal/infrastructure/metrics"
	"dutch_market/pkg/errcodes"
)

func TestRecorder(t *testing.T) {
	rq := require.New(t)

	reg := prometheus.NewPedanticRegistry()
	r := metrics.NewRecorder(reg)

	r.AuctionCreated()
	r.AuctionCreated()
	r.Settled(entity.Settlement{Price: 75, Fee: 7, SellerAmount: 68, Refund: 5})
	r.Rejected("buy", domain.NewError(errcodes.AuctionStopped, "stopped"))
	r.Rejected("buy", domain.NewError(errcodes.AuctionStopped, "stopped"))
	r.Rejected("create", errors.New("db is down"))

	testCases := []struct {
		name   string
		metric string
		value  float64
	}{
		{name: "created", metric: "dutch_market_auctions_created_total", value: 2},
		{name: "settlements", metric: "dutch_market_settlements_total", value: 1},
		{name: "settled amount", metric: "dutch_market_settled_amount_total", value: 75},
		{name: "fees", metric: "dutch_market_fees_total", value: 7},
		{name: "refunds", metric: "dutch_market_refunds_total", value: 5},
	}

	mfs, err := reg.Gather()
	rq.NoError(err)

	values := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetType().String() != "COUNTER" || len(mf.GetMetric()) != 1 {
			continue
		}
		values[mf.GetName()] = mf.GetMetric()[0].GetCounter().GetValue()
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.value, values[tc.metric], 0.0001)
		})
	}

	expected := `
# HELP dutch_market_rejections_total Number of rejected operations by operation and error code.
# TYPE dutch_market_rejections_total counter
dutch_market_rejections_total{code="AuctionStopped",op="buy"} 2
dutch_market_rejections_total{code="InternalServerError",op="create"} 1
`

	rq.NoError(testutil.GatherAndCompare(reg, strings.NewReader(expected), "dutch_market_rejections_total"))
}
