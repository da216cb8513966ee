package client

import (
	"context"
	"net"
	"net/netip"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"example.com/mailclock/net/ntp"
)

const maxNumRetries = 1

var ipMetrics atomic.Pointer[ipClientMetrics]

func init() {
	ipMetrics.Store(newIPClientMetrics())
}

// ResolveServer resolves a time server identifier of the form host or
// host:port. The NTP port is used if none is given.
func ResolveServer(ctx context.Context, server string) (netip.AddrPort, error) {
	host, port := server, strconv.Itoa(ntp.ServerPort)
	if h, p, err := net.SplitHostPort(server); err == nil {
		host, port = h, p
	}
	p, err := net.DefaultResolver.LookupPort(ctx, "udp", port)
	if err != nil {
		return netip.AddrPort{}, err
	}
	if ip, err := netip.ParseAddr(host); err == nil {
		return netip.AddrPortFrom(ip, uint16(p)), nil
	}
	ips, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.AddrPort{}, err
	}
	if len(ips) == 0 {
		return netip.AddrPort{}, errNoAddress
	}
	return netip.AddrPortFrom(ips[0].Unmap(), uint16(p)), nil
}

// MeasureClockOffsetIP measures the offset of the local clock to the NTP
// server at remoteAddr. It returns the local receive time of the accepted
// response and the offset to add to the local clock.
func MeasureClockOffsetIP(ctx context.Context, log *zap.Logger,
	ntpc *IPClient, localAddr string, remoteAddr netip.AddrPort) (
	ts time.Time, off time.Duration, err error) {
	mtrcs := ipMetrics.Load()

	var nerr int
	for i := range ntpc.numAttempts() {
		t, o, e := ntpc.measureClockOffsetIP(ctx, log, mtrcs, localAddr, remoteAddr)
		if e == nil {
			return t, o, nil
		}
		if nerr == i {
			err = e
		}
		nerr++
		log.Info("failed to measure clock offset",
			zap.Stringer("to", remoteAddr), zap.Error(e))
		if ctx.Err() != nil {
			break
		}
	}
	return
}
