package client

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/jonboulle/clockwork"
	"github.com/libp2p/go-reuseport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/mailclock/base/metrics"

	"example.com/mailclock/net/ntp"
	"example.com/mailclock/net/udp"
)

type IPClient struct {
	DSCP        uint8
	NumAttempts int
	Clock       clockwork.Clock
	// Histo, if set, records round trip delays in microseconds.
	Histo *hdrhistogram.Histogram
}

type ipClientMetrics struct {
	reqsSent      prometheus.Counter
	pktsReceived  prometheus.Counter
	respsAccepted prometheus.Counter
}

func newIPClientMetrics() *ipClientMetrics {
	return &ipClientMetrics{
		reqsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.IPClientReqsSentN,
			Help: metrics.IPClientReqsSentH,
		}),
		pktsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.IPClientPktsReceivedN,
			Help: metrics.IPClientPktsReceivedH,
		}),
		respsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.IPClientRespsAcceptedN,
			Help: metrics.IPClientRespsAcceptedH,
		}),
	}
}

func compareAddrs(x, y netip.Addr) int {
	return x.Unmap().Compare(y.Unmap())
}

func (c *IPClient) clock() clockwork.Clock {
	if c.Clock == nil {
		return clockwork.NewRealClock()
	}
	return c.Clock
}

func (c *IPClient) numAttempts() int {
	if c.NumAttempts <= 0 {
		return 1
	}
	return c.NumAttempts
}

func (c *IPClient) measureClockOffsetIP(ctx context.Context, log *zap.Logger, mtrcs *ipClientMetrics,
	localAddr string, remoteAddr netip.AddrPort) (
	ts time.Time, offset time.Duration, err error) {
	if localAddr == "" {
		localAddr = ":0"
	}
	pconn, err := reuseport.ListenPacket("udp", localAddr)
	if err != nil {
		return ts, offset, err
	}
	defer pconn.Close()
	conn, ok := pconn.(*net.UDPConn)
	if !ok {
		return ts, offset, errUnexpectedConn
	}
	deadline, deadlineIsSet := ctx.Deadline()
	if deadlineIsSet {
		err = conn.SetDeadline(deadline)
		if err != nil {
			return ts, offset, err
		}
	}
	err = udp.SetDSCP(conn, c.DSCP)
	if err != nil {
		log.Info("failed to set DSCP", zap.Error(err))
	}

	clk := c.clock()
	buf := make([]byte, ntp.PacketLen)
	reference := remoteAddr.String()

	ntpreq := ntp.Packet{}
	ntpreq.SetVersion(ntp.VersionMax)
	ntpreq.SetMode(ntp.ModeClient)
	cTxTime := clk.Now()
	ntpreq.TransmitTime = ntp.Time64FromTime(cTxTime)
	ntp.EncodePacket(&buf, &ntpreq)

	n, err := conn.WriteToUDPAddrPort(buf, remoteAddr)
	if err != nil {
		return ts, offset, err
	}
	if n != len(buf) {
		return ts, offset, errWrite
	}
	mtrcs.reqsSent.Inc()

	numRetries := 0
	for {
		buf = buf[:cap(buf)]
		n, _, flags, srcAddr, err := conn.ReadMsgUDPAddrPort(buf, nil)
		cRxTime := clk.Now()
		if err != nil {
			if numRetries != maxNumRetries && deadlineIsSet && cRxTime.Before(deadline) {
				log.Info("failed to read packet", zap.Error(err))
				numRetries++
				continue
			}
			return ts, offset, err
		}
		if flags != 0 {
			err = errUnexpectedPacketFlags
			if numRetries != maxNumRetries && deadlineIsSet && cRxTime.Before(deadline) {
				log.Info("failed to read packet", zap.Int("flags", flags))
				numRetries++
				continue
			}
			return ts, offset, err
		}
		buf = buf[:n]
		mtrcs.pktsReceived.Inc()

		if compareAddrs(srcAddr.Addr(), remoteAddr.Addr()) != 0 {
			err = errUnexpectedPacketSource
			if numRetries != maxNumRetries && deadlineIsSet && cRxTime.Before(deadline) {
				log.Info("received packet from unexpected source")
				numRetries++
				continue
			}
			return ts, offset, err
		}

		var ntpresp ntp.Packet
		err = ntp.DecodePacket(&ntpresp, buf)
		if err != nil {
			if numRetries != maxNumRetries && deadlineIsSet && cRxTime.Before(deadline) {
				log.Info("failed to decode packet payload", zap.Error(err))
				numRetries++
				continue
			}
			return ts, offset, err
		}

		if ntpresp.OriginTime != ntpreq.TransmitTime {
			err = errUnexpectedPacket
			if numRetries != maxNumRetries && deadlineIsSet && cRxTime.Before(deadline) {
				log.Info("received packet with unexpected type or structure")
				numRetries++
				continue
			}
			return ts, offset, err
		}

		err = ntp.ValidateResponseMetadata(&ntpresp)
		if err != nil {
			return ts, offset, err
		}

		log.Debug("received response",
			zap.Time("at", cRxTime),
			zap.String("from", reference),
			zap.Object("data", ntp.PacketMarshaler{Pkt: &ntpresp}),
		)

		t0 := cTxTime
		t1 := ntp.TimeFromTime64(ntpresp.ReceiveTime, cTxTime)
		t2 := ntp.TimeFromTime64(ntpresp.TransmitTime, cTxTime)
		t3 := cRxTime

		err = ntp.ValidateResponseTimestamps(t0, t1, t2, t3)
		if err != nil {
			return ts, offset, err
		}

		off := ntp.ClockOffset(t0, t1, t2, t3)
		rtd := ntp.RoundTripDelay(t0, t1, t2, t3)

		mtrcs.respsAccepted.Inc()
		log.Debug("evaluated response",
			zap.String("from", reference),
			zap.Duration("clock offset", off),
			zap.Duration("round trip delay", rtd),
		)

		if c.Histo != nil {
			_ = c.Histo.RecordValue(rtd.Microseconds())
		}

		return cRxTime, off, nil
	}
}
