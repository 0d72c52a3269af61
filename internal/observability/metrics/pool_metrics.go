package metrics

import (
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var registerPoolOnce sync.Once

// RegisterPool exposes pgx connection pool gauges.
func RegisterPool(pool *pgxpool.Pool) {
	if pool == nil {
		return
	}
	registerPoolOnce.Do(func() {
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: metricPrefix + "db_pool_total_conns",
				Help: "Total connections in the pool",
			},
			func() float64 { return float64(pool.Stat().TotalConns()) },
		))

		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: metricPrefix + "db_pool_acquired_conns",
				Help: "Connections currently acquired",
			},
			func() float64 { return float64(pool.Stat().AcquiredConns()) },
		))

		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: metricPrefix + "db_pool_idle_conns",
				Help: "Idle connections in the pool",
			},
			func() float64 { return float64(pool.Stat().IdleConns()) },
		))
	})
}
