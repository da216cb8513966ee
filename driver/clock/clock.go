// Package clock provides the platforms a clock.Synchronizer runs on: a
// software corrected system clock synchronized over NTP and the host clock
// as maintained by the operating system.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type uptimeFunc func() time.Duration

// newUptime returns an uptime counter. With the real clock the counter
// starts at boot where the platform supports it, otherwise at the time of
// the call.
func newUptime(clk clockwork.Clock, isReal bool) uptimeFunc {
	if isReal {
		if _, ok := bootUptime(); ok {
			return func() time.Duration {
				d, _ := bootUptime()
				return d
			}
		}
	}
	start := clk.Now()
	return func() time.Duration {
		return clk.Since(start)
	}
}

func millis(d time.Duration) uint64 {
	if d < 0 {
		return 0
	}
	return uint64(d.Milliseconds())
}
