package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

// bootUptime returns the time elapsed since boot, including time spent in
// suspend.
func bootUptime() (time.Duration, bool) {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts)
	if err != nil {
		return 0, false
	}
	return time.Duration(ts.Nano()), true
}
