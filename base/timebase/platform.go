package timebase

import (
	"context"
	"time"
)

// Platform is the device facility wall time and uptime are read from.
type Platform interface {
	// Now returns the current epoch seconds as known to the platform. The
	// value may be stale or unset.
	Now() int64
	// Location returns the local time rules used for calendar conversions.
	Location() *time.Location
	// UptimeMillis returns a non-decreasing millisecond counter.
	UptimeMillis() uint64
}

// NetworkTimer is implemented by platforms whose network stack maintains
// wall time independently.
type NetworkTimer interface {
	// NetworkTime returns epoch seconds, or 0 if wall time is not known yet.
	NetworkTime() int64
}

// NetworkSyncer is implemented by platforms that must contact time servers
// explicitly. Offsets are given in seconds.
type NetworkSyncer interface {
	Sync(ctx context.Context, servers []string, gmtOffset, dstOffset int64) error
}
