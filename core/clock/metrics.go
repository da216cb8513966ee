package clock

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/mailclock/base/metrics"
)

type clockMetrics struct {
	ready              prometheus.Gauge
	syncAttempts       prometheus.Counter
	syncErrors         prometheus.Counter
	syncRateLimited    prometheus.Counter
	networkTimeAdopted prometheus.Counter
}

var clkMetrics atomic.Pointer[clockMetrics]

func init() {
	clkMetrics.Store(newClockMetrics())
}

func newClockMetrics() *clockMetrics {
	return &clockMetrics{
		ready: promauto.NewGauge(prometheus.GaugeOpts{
			Name: metrics.ClockReadyN,
			Help: metrics.ClockReadyH,
		}),
		syncAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.ClockSyncAttemptsN,
			Help: metrics.ClockSyncAttemptsH,
		}),
		syncErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.ClockSyncErrorsN,
			Help: metrics.ClockSyncErrorsH,
		}),
		syncRateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.ClockSyncRateLimitedN,
			Help: metrics.ClockSyncRateLimitedH,
		}),
		networkTimeAdopted: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.ClockNetworkTimeAdoptN,
			Help: metrics.ClockNetworkTimeAdoptH,
		}),
	}
}
