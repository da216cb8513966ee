package timemath

import (
	"math"
	"slices"
	"time"
)

func Duration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func Seconds(d time.Duration) float64 {
	return float64(d) / float64(time.Second)
}

func Midpoint(x, y time.Duration) time.Duration {
	return x + (y-x)/2.0
}

func Median(ds []time.Duration) time.Duration {
	n := len(ds)
	if n == 0 {
		panic("unexpected number of values")
	}
	slices.Sort(ds)
	i := n / 2
	if n%2 != 0 {
		return ds[i]
	}
	return Midpoint(ds[i-1], ds[i])
}

// OffsetSeconds converts a zone offset given in fractional hours to seconds.
func OffsetSeconds(hours float64) int64 {
	return int64(math.Round(hours * 3600))
}

// SplitOffset splits a zone offset given in fractional hours into its sign,
// truncated whole hours and minutes. Minutes are the fraction times 60,
// rounded to the nearest integer, and are not carried into the hours: a
// fraction close to 1 yields 60 minutes.
func SplitOffset(hours float64) (neg bool, h, m int) {
	neg = hours < 0
	a := math.Abs(hours)
	h = int(a)
	m = int(math.Round((a - float64(h)) * 60))
	return
}
