package datetime

import (
	"time"

	"example.com/mailclock/base/tokens"
)

// Field separators of a header date. Folded headers may carry tabs and line
// breaks between fields.
const whitespace = " \t\r\n"

// Parse converts a mail header date such as "Mon, 02 May 2022 00:30:00 +0000"
// or "02 May 2022 00:30:00 +0000" to epoch seconds. The calendar fields are
// interpreted with the local time rules of loc. If gmt is set and the date
// carries a numeric zone, the result is normalized to GMT.
//
// Parse returns 0 if s has fewer than five fields. Unknown month names yield
// January and a malformed time of day yields midnight.
func Parse(loc *time.Location, s string, gmt bool) int64 {
	tk := tokens.SplitAny(s, whitespace)
	if len(tk) < 5 {
		return 0
	}

	// A leading day name is assumed whenever there are more than 5 fields,
	// which also admits a trailing zone comment such as "(UTC)".
	i := 0
	if len(tk) != 5 {
		i = 1
	}

	day := atoi(tk[i])

	mon := 0
	for j, m := range months {
		if tk[i+1] == m {
			mon = j
			break
		}
	}

	y := tk[i+2]
	if len(y) == 2 {
		y = "20" + y
	}
	year := atoi(y)

	var hour, minute, second int
	if hms := tokens.Split(tk[i+3], ':'); len(hms) == 3 {
		hour = atoi(hms[0])
		minute = atoi(hms[1])
		second = atoi(hms[2])
	}

	ts := Timestamp(loc, year, mon+1, day, hour, minute, second)

	if gmt {
		if off, ok := zoneOffset(tk[i+4]); ok {
			ts -= off
		}
	}
	return ts
}

// zoneOffset parses a numeric zone of the form "+hhmm" or "-hhmm" and returns
// its signed offset in seconds.
func zoneOffset(z string) (int64, bool) {
	if len(z) != 5 || (z[0] != '+' && z[0] != '-') {
		return 0, false
	}
	for k := 1; k < 5; k++ {
		if z[k] < '0' || '9' < z[k] {
			return 0, false
		}
	}
	off := int64(atoi(z[1:3])*60*60 + atoi(z[3:5])*60)
	if z[0] == '-' {
		off = -off
	}
	return off, true
}
