package timemath_test

import (
	"testing"
	"time"

	"example.com/mailclock/base/timemath"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    time.Duration
	}{
		{1.5, 1500 * time.Millisecond},
		{1, time.Second},
		{0, 0},
		{-1, -time.Second},
		{-1.5, -1500 * time.Millisecond},
	}

	for _, tt := range tests {
		got := timemath.Duration(tt.seconds)
		if got != tt.want {
			t.Errorf("timemath.Duration(%v) = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

func TestSeconds(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     float64
	}{
		{1500 * time.Millisecond, 1.5},
		{time.Second, 1},
		{0, 0},
		{-time.Second, -1},
		{-1500 * time.Millisecond, -1.5},
	}

	for _, tt := range tests {
		got := timemath.Seconds(tt.duration)
		if got != tt.want {
			t.Errorf("timemath.Seconds(%v) = %v, want %v", tt.duration, got, tt.want)
		}
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		ds   []time.Duration
		want time.Duration
	}{
		{[]time.Duration{5 * time.Second}, 5 * time.Second},
		{[]time.Duration{3 * time.Second, -1 * time.Second, 2 * time.Second}, 2 * time.Second},
		{[]time.Duration{4 * time.Second, 2 * time.Second}, 3 * time.Second},
		{[]time.Duration{-2 * time.Second, 10 * time.Second, 0, 1 * time.Second}, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		got := timemath.Median(tt.ds)
		if got != tt.want {
			t.Errorf("timemath.Median(%v) = %v, want %v", tt.ds, got, tt.want)
		}
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("timemath.Median(nil), did not panic")
		}
	}()
	timemath.Median(nil)
}

func TestOffsetSeconds(t *testing.T) {
	tests := []struct {
		hours float64
		want  int64
	}{
		{0, 0},
		{1, 3600},
		{-8, -28800},
		{5.75, 20700},
		{5.5, 19800},
		{-3.5, -12600},
	}

	for _, tt := range tests {
		got := timemath.OffsetSeconds(tt.hours)
		if got != tt.want {
			t.Errorf("timemath.OffsetSeconds(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestSplitOffset(t *testing.T) {
	tests := []struct {
		hours float64
		neg   bool
		h, m  int
	}{
		{0, false, 0, 0},
		{-8, true, 8, 0},
		{5.75, false, 5, 45},
		{5.5, false, 5, 30},
		{-3.5, true, 3, 30},
		{12.75, false, 12, 45},
		{-9.5, true, 9, 30},
		{5.999, false, 5, 60},
		{-0.999, true, 0, 60},
	}

	for _, tt := range tests {
		neg, h, m := timemath.SplitOffset(tt.hours)
		if neg != tt.neg || h != tt.h || m != tt.m {
			t.Errorf("timemath.SplitOffset(%v) = (%v, %v, %v), want (%v, %v, %v)",
				tt.hours, neg, h, m, tt.neg, tt.h, tt.m)
		}
	}
}
