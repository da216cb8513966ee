package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/mailclock/base/metrics"
	"example.com/mailclock/base/timebase"
	"example.com/mailclock/base/timemath"
	"example.com/mailclock/base/zaplog"
	"example.com/mailclock/core/client"
)

const defaultTimeout = time.Second

var (
	errNoMeasurement = errors.New("failed to measure clock offset: no server responded")

	sysMetrics atomic.Pointer[sysClockMetrics]
)

type sysClockMetrics struct {
	steps prometheus.Counter
	corr  prometheus.Gauge
}

func init() {
	sysMetrics.Store(&sysClockMetrics{
		steps: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.DriverClockStepsN,
			Help: metrics.DriverClockStepsH,
		}),
		corr: promauto.NewGauge(prometheus.GaugeOpts{
			Name: metrics.DriverClockCorrN,
			Help: metrics.DriverClockCorrH,
		}),
	})
}

// SystemClock is a pull style platform. It behaves like a device without a
// real time clock: Now reads 0 until the first successful Sync, afterwards
// the local clock corrected by the median offset measured to the servers.
type SystemClock struct {
	// LocalAddr is the local address NTP requests are sent from.
	LocalAddr string
	// Timeout bounds the measurement against a single server.
	Timeout time.Duration
	Client  *client.IPClient

	log    *zap.Logger
	clk    clockwork.Clock
	uptime uptimeFunc

	synced bool
	corr   time.Duration
	loc    *time.Location
}

var (
	_ timebase.Platform      = (*SystemClock)(nil)
	_ timebase.NetworkSyncer = (*SystemClock)(nil)
)

// NewSystemClock returns a SystemClock reading clk, or the real clock if clk
// is nil.
func NewSystemClock(log *zap.Logger, clk clockwork.Clock) *SystemClock {
	isReal := clk == nil
	if isReal {
		clk = clockwork.NewRealClock()
	}
	return &SystemClock{
		Timeout: defaultTimeout,
		Client:  &client.IPClient{Clock: clk},
		log:     zaplog.Or(log),
		clk:     clk,
		uptime:  newUptime(clk, isReal),
		loc:     time.UTC,
	}
}

func (c *SystemClock) Now() int64 {
	if !c.synced {
		return 0
	}
	return c.clk.Now().Add(c.corr).Unix()
}

func (c *SystemClock) Location() *time.Location {
	return c.loc
}

func (c *SystemClock) UptimeMillis() uint64 {
	return millis(c.uptime())
}

// Sync measures the clock offset to each server and applies the median. The
// local time zone is set from the offsets, given in seconds, even if no
// server responds.
func (c *SystemClock) Sync(ctx context.Context, servers []string, gmtOffset, dstOffset int64) error {
	c.loc = time.FixedZone("", int(gmtOffset+dstOffset))

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	offs := make([]time.Duration, 0, len(servers))
	for _, s := range servers {
		if ctx.Err() != nil {
			break
		}
		off, err := c.measure(ctx, s, timeout)
		if err != nil {
			c.log.Info("failed to measure clock offset", zap.String("server", s), zap.Error(err))
			continue
		}
		offs = append(offs, off)
	}
	if len(offs) == 0 {
		return errNoMeasurement
	}

	corr := timemath.Median(offs)
	c.corr = corr
	c.synced = true

	mtrcs := sysMetrics.Load()
	mtrcs.steps.Inc()
	mtrcs.corr.Set(timemath.Seconds(corr))
	c.log.Debug("clock corrected",
		zap.Duration("correction", corr),
		zap.Int("measurements", len(offs)),
	)
	return nil
}

func (c *SystemClock) measure(ctx context.Context, server string, timeout time.Duration) (
	time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	addr, err := client.ResolveServer(ctx, server)
	if err != nil {
		return 0, err
	}
	_, off, err := client.MeasureClockOffsetIP(ctx, c.log, c.Client, c.LocalAddr, addr)
	return off, err
}
