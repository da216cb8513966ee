package datetime

import (
	"strconv"
	"time"

	"example.com/mailclock/base/timemath"
)

func appendPadded(b []byte, v int) []byte {
	if v < 10 {
		b = append(b, '0')
	}
	return strconv.AppendInt(b, int64(v), 10)
}

// Format renders epoch in loc as a mail header date, e.g.
// "Mon, 2 May 2022 00:30:00 +0545". The zone is taken from tz, given in
// fractional hours, and is not used to shift the calendar fields.
func Format(loc *time.Location, epoch int64, tz float64) string {
	f := Breakdown(loc, epoch)

	b := make([]byte, 0, 32)
	b = append(b, weekdays[f.Weekday]...)
	b = append(b, ',', ' ')
	b = strconv.AppendInt(b, int64(f.Day), 10)
	b = append(b, ' ')
	b = append(b, months[f.Month-1]...)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(f.Year), 10)
	b = append(b, ' ')
	b = appendPadded(b, f.Hour)
	b = append(b, ':')
	b = appendPadded(b, f.Minute)
	b = append(b, ':')
	b = appendPadded(b, f.Second)
	b = append(b, ' ')

	neg, h, m := timemath.SplitOffset(tz)
	if neg {
		b = append(b, '-')
	} else {
		b = append(b, '+')
	}
	b = appendPadded(b, h)
	b = appendPadded(b, m)
	return string(b)
}
