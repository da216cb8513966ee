// Package ntptest provides an NTP server on the loopback interface for tests.
package ntptest

import (
	"net"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"

	"example.com/mailclock/net/ntp"
)

// Server answers NTP client requests with a clock that runs Offset ahead of
// the local clock.
type Server struct {
	Offset time.Duration
	conn   *net.UDPConn
	reqs   atomic.Int64
}

// NewServer starts a server and stops it when the test finishes.
func NewServer(t testing.TB, offset time.Duration) *Server {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("failed to listen for packets: %v", err)
	}
	s := &Server{Offset: offset, conn: conn}
	t.Cleanup(func() { _ = conn.Close() })
	go s.run()
	return s
}

// Addr returns the server address.
func (s *Server) Addr() netip.AddrPort {
	return s.conn.LocalAddr().(*net.UDPAddr).AddrPort()
}

// NumRequests returns the number of valid requests received.
func (s *Server) NumRequests() int64 {
	return s.reqs.Load()
}

func (s *Server) run() {
	buf := make([]byte, 1024)
	for {
		n, addr, err := s.conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			return
		}
		rxTime := time.Now().Add(s.Offset)

		var req ntp.Packet
		if ntp.DecodePacket(&req, buf[:n]) != nil || ntp.ValidateRequest(&req) != nil {
			continue
		}
		s.reqs.Add(1)

		resp := ntp.Packet{
			Stratum:     1,
			Precision:   -20,
			ReferenceID: 0x4c4f434c, // LOCL
		}
		resp.SetVersion(ntp.VersionMax)
		resp.SetMode(ntp.ModeServer)
		resp.ReferenceTime = ntp.Time64FromTime(rxTime)
		resp.OriginTime = req.TransmitTime
		resp.ReceiveTime = ntp.Time64FromTime(rxTime)
		resp.TransmitTime = ntp.Time64FromTime(time.Now().Add(s.Offset))

		var b []byte
		ntp.EncodePacket(&b, &resp)
		_, _ = s.conn.WriteToUDPAddrPort(b, addr)
	}
}
