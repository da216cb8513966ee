package clock

import (
	"time"

	"github.com/jonboulle/clockwork"

	"example.com/mailclock/base/timebase"
)

// HostClock trusts the wall time of the operating system, typically kept by
// an NTP daemon of the host. It is a push style platform.
type HostClock struct {
	clk    clockwork.Clock
	uptime uptimeFunc
}

var (
	_ timebase.Platform     = (*HostClock)(nil)
	_ timebase.NetworkTimer = (*HostClock)(nil)
)

// NewHostClock returns a HostClock reading clk, or the real clock if clk is
// nil.
func NewHostClock(clk clockwork.Clock) *HostClock {
	isReal := clk == nil
	if isReal {
		clk = clockwork.NewRealClock()
	}
	return &HostClock{clk: clk, uptime: newUptime(clk, isReal)}
}

func (c *HostClock) Now() int64 {
	return c.clk.Now().Unix()
}

func (c *HostClock) NetworkTime() int64 {
	t := c.clk.Now().Unix()
	if t <= 0 {
		return 0
	}
	return t
}

func (c *HostClock) Location() *time.Location {
	return time.UTC
}

func (c *HostClock) UptimeMillis() uint64 {
	return millis(c.uptime())
}
