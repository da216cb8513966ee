//go:build !linux

package clock

import (
	"time"
)

func bootUptime() (time.Duration, bool) {
	return 0, false
}
