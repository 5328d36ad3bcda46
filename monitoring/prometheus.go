package monitoring

import (
	"net/http"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tmalone1250/mtk-sale/logx"
	"github.com/Tmalone1250/mtk-sale/types"
)

type OpRejectedReason string

var (
	OpRejectedUnauthorized          OpRejectedReason = "unauthorized"
	OpRejectedPaused                OpRejectedReason = "paused"
	OpRejectedMaxSupply             OpRejectedReason = "max_supply_reached"
	OpRejectedInsufficientBalance   OpRejectedReason = "insufficient_balance"
	OpRejectedInsufficientAllowance OpRejectedReason = "insufficient_allowance"
	OpRejectedInsufficientReserve   OpRejectedReason = "insufficient_reserve"
	OpRejectedReentrantCall         OpRejectedReason = "reentrant_call"
	OpRejectedUnknown               OpRejectedReason = "other"
)

type ledgerPromMetrics struct {
	upUnixSeconds   prometheus.Gauge
	totalSupply     prometheus.Gauge
	appliedOpCount  prometheus.Counter
	rejectedOpCount *prometheus.CounterVec
	purchaseCount   prometheus.Counter
	saleCount       prometheus.Counter
	panicCount      prometheus.Counter
}

func newLedgerPromMetrics() *ledgerPromMetrics {
	return &ledgerPromMetrics{
		upUnixSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "mtk_up_timestamp_unix_seconds",
				Help: "Unix timestamp of process start",
			},
		),
		totalSupply: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "mtk_total_supply_whole_tokens",
				Help: "Current total supply in whole tokens",
			},
		),
		appliedOpCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mtk_applied_op_count",
				Help: "The total number of successfully applied state transitions",
			},
		),
		rejectedOpCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mtk_rejected_op_count",
				Help: "The total number of rejected operations",
			},
			[]string{"reason"},
		),
		purchaseCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mtk_exchange_purchase_count",
				Help: "The total number of completed exchange purchases",
			},
		),
		saleCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mtk_exchange_sale_count",
				Help: "The total number of completed exchange sales",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mtk_panic_count",
				Help: "The total number of recovered panics in background goroutines",
			},
		),
	}
}

var ledgerMetrics *ledgerPromMetrics

// InitMetrics initializes metrics but does not expose them yet. Components
// tolerate uninitialized metrics, so library users and tests can skip this.
func InitMetrics() {
	ledgerMetrics = newLedgerPromMetrics()
	ledgerMetrics.upUnixSeconds.SetToCurrentTime()
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("MONITORING", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

func SetTotalSupply(supply *uint256.Int) {
	if ledgerMetrics == nil {
		return
	}
	whole := new(uint256.Int).Div(supply, types.Scale)
	ledgerMetrics.totalSupply.Set(float64(whole.Uint64()))
}

func IncreaseAppliedOpCount() {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.appliedOpCount.Inc()
}

func IncreaseRejectedOpCount(reason OpRejectedReason) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.rejectedOpCount.With(prometheus.Labels{
		"reason": string(reason),
	}).Inc()
}

func IncreasePurchaseCount() {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.purchaseCount.Inc()
}

func IncreaseSaleCount() {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.saleCount.Inc()
}

func IncreasePanicCount() {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.panicCount.Inc()
}
