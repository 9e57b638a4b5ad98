package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"dutch_market/internal/domain"
	"dutch_market/internal/domain/entity"
	"dutch_market/pkg/errcodes"
)

const namespace = "dutch_market"

// Recorder счётчики движка в Prometheus.
type Recorder struct {
	created       prometheus.Counter
	settlements   prometheus.Counter
	rejections    *prometheus.CounterVec
	settledAmount prometheus.Counter
	fees          prometheus.Counter
	refunds       prometheus.Counter
}

// NewRecorder создаёт счётчики и регистрирует их в reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auctions_created_total",
			Help:      "Number of auctions created.",
		}),
		settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Number of successful buys.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Number of rejected operations by operation and error code.",
		}, []string{"op", "code"}),
		settledAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settled_amount_total",
			Help:      "Sum of final prices of settled auctions.",
		}),
		fees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fees_total",
			Help:      "Sum of platform fees.",
		}),
		refunds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_total",
			Help:      "Sum of excess payments refunded to buyers.",
		}),
	}

	reg.MustRegister(r.created, r.settlements, r.rejections, r.settledAmount, r.fees, r.refunds)

	return r
}

func (r *Recorder) AuctionCreated() {
	r.created.Inc()
}

func (r *Recorder) Settled(settlement entity.Settlement) {
	r.settlements.Inc()
	r.settledAmount.Add(float64(settlement.Price))
	r.fees.Add(float64(settlement.Fee))
	r.refunds.Add(float64(settlement.Refund))
}

func (r *Recorder) Rejected(op string, err error) {
	code, ok := domain.GetCode(err)
	if !ok {
		code = errcodes.InternalServerError
	}

	r.rejections.WithLabelValues(op, code.String()).Inc()
}
