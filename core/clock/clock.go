// Package clock keeps an epoch seconds clock for hosts without a reliable
// real time clock and decides when to resynchronize it.
package clock

import (
	"context"

	"go.uber.org/zap"

	"example.com/mailclock/base/timebase"
	"example.com/mailclock/base/zaplog"
	"example.com/mailclock/core/datetime"
)

const (
	// ReadySentinel is 2020-01-01T00:00:00Z. A clock at or below this value
	// has never been set validly.
	ReadySentinel int64 = 1577836800

	// DefaultServers is used when a server list is empty or names more than
	// three servers.
	DefaultServers = "pool.ntp.org,time.nist.gov"

	syncIntervalMillis = 5000
	maxNumServers      = 3
)

// Synchronizer owns the clock state. It is not safe for concurrent use.
type Synchronizer struct {
	log   *zap.Logger
	mtrcs *clockMetrics
	p     timebase.Platform
	src   TimeSource

	now       int64
	gmtOffset float64
	dstOffset float64

	attempted      bool
	lastSyncMillis uint64

	hasBaseline bool
	msecDiff    int64
}

// New returns a Synchronizer reading platform p and acquiring time through
// src. A nil log selects the process logger.
func New(log *zap.Logger, p timebase.Platform, src TimeSource) *Synchronizer {
	if p == nil {
		panic("platform must not be nil")
	}
	if src == nil {
		panic("time source must not be nil")
	}
	return &Synchronizer{
		log:   zaplog.Or(log),
		mtrcs: clkMetrics.Load(),
		p:     p,
		src:   src,
	}
}

func (s *Synchronizer) ready() bool {
	return s.now > ReadySentinel
}

func (s *Synchronizer) updateReady() bool {
	r := s.ready()
	if r {
		s.mtrcs.ready.Set(1)
	} else {
		s.mtrcs.ready.Set(0)
	}
	return r
}

func (s *Synchronizer) setBaseline() {
	s.hasBaseline = true
	s.msecDiff = s.now*1000 - int64(s.p.UptimeMillis())
}

// Synchronize records the zone offsets and, if due, synchronizes the clock.
// gmtOffset is given in fractional hours, dstOffset in minutes. servers is a
// comma separated list of up to three time servers. Synchronize reports
// whether the clock is ready afterwards; callers poll it until it is.
func (s *Synchronizer) Synchronize(ctx context.Context, gmtOffset, dstOffset float64, servers string) bool {
	newConfig := s.gmtOffset != gmtOffset || s.dstOffset != dstOffset
	s.gmtOffset = gmtOffset
	s.dstOffset = dstOffset
	s.src.synchronize(ctx, s, newConfig, servers)
	return s.updateReady()
}

// ClockReady rereads the platform clock and reports whether it is ready.
func (s *Synchronizer) ClockReady() bool {
	s.src.refresh(s)
	return s.updateReady()
}

// CurrentTimestamp returns the current epoch seconds. It never triggers a
// network sync.
func (s *Synchronizer) CurrentTimestamp() int64 {
	s.src.refresh(s)
	return s.now
}

// CurrentTimestampMillis interpolates the current epoch milliseconds from the
// uptime counter and the baseline captured at the last sync. Without a
// baseline it falls back to whole seconds. The result is best effort and not
// monotonic across uptime counter overflow.
func (s *Synchronizer) CurrentTimestampMillis() int64 {
	if !s.hasBaseline {
		return s.CurrentTimestamp() * 1000
	}
	return int64(s.p.UptimeMillis()) + s.msecDiff
}

// DateTimeString returns the current time formatted for a mail Date header.
func (s *Synchronizer) DateTimeString() string {
	s.src.refresh(s)
	return datetime.Format(s.p.Location(), s.now, s.gmtOffset)
}

// Timestamp converts calendar fields to epoch seconds using the platform's
// local time rules. month is in range [1, 12].
func (s *Synchronizer) Timestamp(year, month, day, hour, minute, second int) int64 {
	return datetime.Timestamp(s.p.Location(), year, month, day, hour, minute, second)
}

// Parse converts a mail header date to epoch seconds using the platform's
// local time rules, see datetime.Parse.
func (s *Synchronizer) Parse(date string, gmt bool) int64 {
	return datetime.Parse(s.p.Location(), date, gmt)
}

func (s *Synchronizer) GMTOffset() float64 { return s.gmtOffset }

func (s *Synchronizer) DSTOffset() float64 { return s.dstOffset }
