package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fuelsync_"

	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

var (
	registerOnce sync.Once

	readingRecordTotal   *prometheus.CounterVec
	readingRecordLatency *prometheus.HistogramVec
	readingEditTotal     *prometheus.CounterVec
	readingCascadeLength prometheus.Histogram

	priceResolveTotal *prometheus.CounterVec

	reconciliationTotal   *prometheus.CounterVec
	reconciliationLatency *prometheus.HistogramVec

	creditExtendTotal *prometheus.CounterVec
	settlementTotal   *prometheus.CounterVec
)

// Init registers the ledger metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		readingRecordTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reading_record_total",
				Help: "Total recorded nozzle readings by result",
			},
			[]string{"result"},
		)
		readingRecordLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "reading_record_latency_seconds",
				Help:    "Reading record latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		readingEditTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reading_edit_total",
				Help: "Total reading edits by result",
			},
			[]string{"result"},
		)
		readingCascadeLength = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "reading_cascade_length",
				Help:    "Number of rows recomputed per reading edit",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
			},
		)

		priceResolveTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "price_resolve_total",
				Help: "Total fuel price resolutions by result",
			},
			[]string{"result"},
		)

		reconciliationTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "daily_reconciliation_total",
				Help: "Total daily transaction reconciliations by result",
			},
			[]string{"result"},
		)
		reconciliationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "daily_reconciliation_latency_seconds",
				Help:    "Daily reconciliation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		creditExtendTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "credit_extend_total",
				Help: "Total credit extensions by result",
			},
			[]string{"result"},
		)
		settlementTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settlement_total",
				Help: "Total settlements by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			readingRecordTotal,
			readingRecordLatency,
			readingEditTotal,
			readingCascadeLength,
			priceResolveTotal,
			reconciliationTotal,
			reconciliationLatency,
			creditExtendTotal,
			settlementTotal,
		)
	})
}

// ObserveReadingRecord records a reading insert with its duration and result.
func ObserveReadingRecord(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if readingRecordTotal != nil {
		readingRecordTotal.WithLabelValues(result).Inc()
	}
	if readingRecordLatency != nil {
		readingRecordLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveReadingEdit records a reading edit and the length of the recomputed chain.
func ObserveReadingEdit(result string, cascadeLen int) {
	if result == "" {
		result = resultSuccess
	}
	if readingEditTotal != nil {
		readingEditTotal.WithLabelValues(result).Inc()
	}
	if result == resultSuccess && cascadeLen > 0 && readingCascadeLength != nil {
		readingCascadeLength.Observe(float64(cascadeLen))
	}
}

// IncPriceResolve increments the price resolution counter.
func IncPriceResolve(result string) {
	if result == "" {
		result = resultSuccess
	}
	if priceResolveTotal != nil {
		priceResolveTotal.WithLabelValues(result).Inc()
	}
}

// ObserveReconciliation records a daily reconciliation attempt.
func ObserveReconciliation(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if reconciliationTotal != nil {
		reconciliationTotal.WithLabelValues(result).Inc()
	}
	if reconciliationLatency != nil {
		reconciliationLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncCreditExtend increments the credit extension counter.
func IncCreditExtend(result string) {
	if result == "" {
		result = resultSuccess
	}
	if creditExtendTotal != nil {
		creditExtendTotal.WithLabelValues(result).Inc()
	}
}

// IncSettlement increments the settlement counter.
func IncSettlement(result string) {
	if result == "" {
		result = resultSuccess
	}
	if settlementTotal != nil {
		settlementTotal.WithLabelValues(result).Inc()
	}
}

// Exported result labels for callers.
const (
	ResultSuccess  = resultSuccess
	ResultRejected = resultRejected
	ResultError    = resultError
)
