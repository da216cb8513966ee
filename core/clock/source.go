package clock

import (
	"context"
	"math"

	"go.uber.org/zap"

	"example.com/mailclock/base/timebase"
	"example.com/mailclock/base/timemath"
	"example.com/mailclock/base/tokens"
)

// TimeSource selects how a Synchronizer acquires wall time. It is
// implemented by PushSynced and PullSynced.
type TimeSource interface {
	refresh(s *Synchronizer)
	synchronize(ctx context.Context, s *Synchronizer, newConfig bool, servers string)
}

// PushSynced adopts the wall time maintained by the platform's network stack.
type PushSynced struct {
	Network timebase.NetworkTimer
}

// PullSynced requests wall time from network time servers, at most once per
// rate limit window.
type PullSynced struct {
	Network timebase.NetworkSyncer
}

var (
	_ TimeSource = PushSynced{}
	_ TimeSource = PullSynced{}
)

func (src PushSynced) refresh(s *Synchronizer) {
	if ts := src.Network.NetworkTime(); ts > 0 {
		s.now = ts + timemath.OffsetSeconds(s.gmtOffset)
	}
}

func (src PushSynced) synchronize(_ context.Context, s *Synchronizer, newConfig bool, _ string) {
	s.now = s.p.Now()
	ts := src.Network.NetworkTime()
	if ts <= 0 {
		return
	}
	s.now = ts
	if newConfig {
		s.now += timemath.OffsetSeconds(s.gmtOffset)
	}
	s.setBaseline()
	s.mtrcs.networkTimeAdopted.Inc()
	s.log.Debug("adopted network time", zap.Int64("epoch", s.now), zap.Bool("new config", newConfig))
}

func (src PullSynced) refresh(s *Synchronizer) {
	s.now = s.p.Now()
}

func (src PullSynced) synchronize(ctx context.Context, s *Synchronizer, newConfig bool, servers string) {
	s.now = s.p.Now()

	if s.ready() && !newConfig {
		return
	}
	// A configuration change reopens the rate limit window.
	up := s.p.UptimeMillis()
	if s.attempted && up-s.lastSyncMillis <= syncIntervalMillis && !newConfig {
		s.mtrcs.syncRateLimited.Inc()
		return
	}

	s.attempted = true
	s.lastSyncMillis = up

	svs := tokens.Split(servers, ',')
	if len(svs) == 0 || len(svs) > maxNumServers {
		svs = tokens.Split(DefaultServers, ',')
	}

	s.mtrcs.syncAttempts.Inc()
	s.log.Debug("synchronizing clock",
		zap.Strings("servers", svs),
		zap.Float64("gmt offset", s.gmtOffset),
		zap.Float64("dst offset", s.dstOffset),
	)
	err := src.Network.Sync(ctx, svs,
		timemath.OffsetSeconds(s.gmtOffset), int64(math.Round(s.dstOffset*60)))
	if err != nil {
		s.mtrcs.syncErrors.Inc()
		s.log.Info("failed to synchronize clock", zap.Strings("servers", svs), zap.Error(err))
	}

	s.now = s.p.Now()
	s.setBaseline()
}
