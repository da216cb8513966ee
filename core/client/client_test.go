package client_test

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"go.uber.org/zap/zaptest"

	"example.com/mailclock/core/client"
	"example.com/mailclock/net/ntp/ntptest"
)

func TestMeasureClockOffsetIP(t *testing.T) {
	const offset = 10 * time.Second
	srv := ntptest.NewServer(t, offset)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hg := hdrhistogram.New(1, 50000, 5)
	c := &client.IPClient{DSCP: 46, Histo: hg}
	ts, off, err := client.MeasureClockOffsetIP(ctx, zaptest.NewLogger(t), c, "127.0.0.1:0", srv.Addr())
	if err != nil {
		t.Fatalf("failed to measure clock offset: %v", err)
	}
	if d := (off - offset).Abs(); d > 100*time.Millisecond {
		t.Errorf("measured offset %v, want %v", off, offset)
	}
	if ts.IsZero() {
		t.Errorf("measurement timestamp must be set")
	}
	if hg.TotalCount() != 1 {
		t.Errorf("round trip delay must be recorded, got %d values", hg.TotalCount())
	}
	if srv.NumRequests() != 1 {
		t.Errorf("server must have received one request, got %d", srv.NumRequests())
	}
}

func TestMeasureClockOffsetIPTimeout(t *testing.T) {
	// A bound socket that never answers.
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("failed to listen for packets: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	c := &client.IPClient{NumAttempts: 2}
	_, _, err = client.MeasureClockOffsetIP(ctx, zaptest.NewLogger(t), c, "127.0.0.1:0",
		conn.LocalAddr().(*net.UDPAddr).AddrPort())
	if err == nil {
		t.Fatalf("measurement against a silent server must fail")
	}
}

func TestResolveServer(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		server string
		want   netip.AddrPort
	}{
		{"127.0.0.1", netip.MustParseAddrPort("127.0.0.1:123")},
		{"127.0.0.1:10123", netip.MustParseAddrPort("127.0.0.1:10123")},
		{"[::1]:4123", netip.MustParseAddrPort("[::1]:4123")},
		{"::1", netip.MustParseAddrPort("[::1]:123")},
	}

	for _, tt := range tests {
		got, err := client.ResolveServer(ctx, tt.server)
		if err != nil {
			t.Errorf("client.ResolveServer(%q) failed: %v", tt.server, err)
			continue
		}
		if got != tt.want {
			t.Errorf("client.ResolveServer(%q) = %v, want %v", tt.server, got, tt.want)
		}
	}

	got, err := client.ResolveServer(ctx, "localhost")
	if err != nil {
		t.Fatalf("client.ResolveServer(localhost) failed: %v", err)
	}
	if !got.Addr().IsLoopback() || got.Port() != 123 {
		t.Errorf("client.ResolveServer(localhost) = %v", got)
	}
}
