// Package datetime converts between epoch seconds and the date strings used
// in mail headers, e.g. "Mon, 02 May 2022 00:30:00 +0000".
package datetime

import (
	"time"
)

// Month and weekday abbreviations indexed by 0-based month and by weekday.
var (
	months   = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// Fields is the local calendar breakdown of an epoch timestamp.
type Fields struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday time.Weekday
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// Timestamp converts calendar fields to epoch seconds using the local time
// rules of loc. Month is in range [1, 12]; out of range fields are
// normalized. No zone offset adjustment is applied.
func Timestamp(loc *time.Location, year, month, day, hour, minute, second int) int64 {
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, location(loc)).Unix()
}

// Breakdown returns the calendar fields of epoch in loc.
func Breakdown(loc *time.Location, epoch int64) Fields {
	t := time.Unix(epoch, 0).In(location(loc))
	return Fields{
		Year:    t.Year(),
		Month:   t.Month(),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: t.Weekday(),
	}
}

// atoi parses a leading decimal integer like C's atoi: leading white space
// and a sign are accepted, parsing stops at the first non-digit and 0 is
// returned if there are no digits.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == '\v' || s[i] == '\f') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && '0' <= s[i] && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
