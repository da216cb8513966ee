package main

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"example.com/mailclock/core/config"
)

func TestRunParse(t *testing.T) {
	tests := []struct {
		date string
		gmt  bool
		want string
	}{
		{"Mon, 02 May 2022 00:30:00 +0000", true, "1651451400"},
		{"Mon, 02 May 2022 05:30:00 +0500", true, "1651451400"},
		{"Mon, 02 May 2022 05:30:00 +0500", false, "1651469400"},
		{"garbage", true, "0"},
	}

	for _, tt := range tests {
		var b bytes.Buffer
		runParse(&b, tt.date, tt.gmt)
		got := strings.TrimSpace(b.String())
		if got != tt.want {
			t.Errorf("runParse(%q, %v) = %v, want %v", tt.date, tt.gmt, got, tt.want)
		}
	}
}

func TestRunFormat(t *testing.T) {
	var b bytes.Buffer
	err := runFormat(&b, "1651451400", 5.75)
	if err != nil {
		t.Fatalf("runFormat failed: %v", err)
	}
	want := "Mon, 2 May 2022 00:30:00 +0545"
	if got := strings.TrimSpace(b.String()); got != want {
		t.Errorf("runFormat(1651451400, 5.75) = %q, want %q", got, want)
	}

	err = runFormat(&b, "not a number", 0)
	if err == nil {
		t.Errorf("runFormat(\"not a number\") succeeded, want error")
	}
}

func TestNewSynchronizerSystem(t *testing.T) {
	cfg, err := config.Decode([]byte(`
time_source = "system"
gmt_offset = -3.5
`))
	if err != nil {
		t.Fatalf("config.Decode failed: %v", err)
	}

	s := newSynchronizer(zaptest.NewLogger(t), cfg, nil)
	if !synchronize(context.Background(), s, cfg) {
		t.Fatalf("synchronize with the host clock did not become ready")
	}
	if s.GMTOffset() != -3.5 {
		t.Errorf("s.GMTOffset() = %v, want %v", s.GMTOffset(), -3.5)
	}
	re := regexp.MustCompile(` -0330$`)
	if d := s.DateTimeString(); !re.MatchString(d) {
		t.Errorf("s.DateTimeString() = %q, want zone -0330", d)
	}
}

func TestNewSynchronizerNTP(t *testing.T) {
	cfg := config.Default()
	s := newSynchronizer(zaptest.NewLogger(t), cfg, nil)
	if s.ClockReady() {
		t.Errorf("s.ClockReady() = true before any sync, want false")
	}
	if got := s.CurrentTimestamp(); got != 0 {
		t.Errorf("s.CurrentTimestamp() = %v before any sync, want 0", got)
	}
}
