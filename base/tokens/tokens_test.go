package tokens_test

import (
	"slices"
	"strings"
	"testing"

	"example.com/mailclock/base/tokens"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		s     string
		delim byte
		want  []string
	}{
		{"", ',', nil},
		{",,,", ',', nil},
		{"   ", ' ', nil},
		{"pool.ntp.org", ',', []string{"pool.ntp.org"}},
		{"pool.ntp.org,time.nist.gov", ',', []string{"pool.ntp.org", "time.nist.gov"}},
		{" a , b ,, c ", ',', []string{"a", "b", "c"}},
		{"Mon, 02 May 2022 00:30:00 +0000", ' ',
			[]string{"Mon,", "02", "May", "2022", "00:30:00", "+0000"}},
		{"02  May   2022", ' ', []string{"02", "May", "2022"}},
		{"00:30:00", ':', []string{"00", "30", "00"}},
		{"\ta\t:\tb\t", ':', []string{"a", "b"}},
	}

	for _, tt := range tests {
		got := tokens.Split(tt.s, tt.delim)
		if !slices.Equal(got, tt.want) {
			t.Errorf("tokens.Split(%q, %q) = %q, want %q", tt.s, tt.delim, got, tt.want)
		}
	}
}

func TestSplitAny(t *testing.T) {
	tests := []struct {
		s      string
		delims string
		want   []string
	}{
		{"", " \t", nil},
		{"Mon,\t02 May", " \t", []string{"Mon,", "02", "May"}},
		{"a\r\n\tb  c", " \t\r\n", []string{"a", "b", "c"}},
		{"a,b;c", ",;", []string{"a", "b", "c"}},
		{"a,b", "", []string{"a,b"}},
	}

	for _, tt := range tests {
		got := tokens.SplitAny(tt.s, tt.delims)
		if !slices.Equal(got, tt.want) {
			t.Errorf("tokens.SplitAny(%q, %q) = %q, want %q", tt.s, tt.delims, got, tt.want)
		}
	}
}

func TestSplitNoEmptyTokensAndOrder(t *testing.T) {
	inputs := []string{
		"a,b,c",
		",a,,b,",
		" , x ,  , y , z",
		"1,2,3,4,5,6,7,8,9",
		",,,,,",
	}

	for _, s := range inputs {
		got := tokens.Split(s, ',')
		var want []string
		for _, seg := range strings.Split(s, ",") {
			seg = strings.TrimSpace(seg)
			if seg != "" {
				want = append(want, seg)
			}
		}
		for _, tok := range got {
			if tok == "" {
				t.Errorf("tokens.Split(%q) yielded an empty token", s)
			}
		}
		if !slices.Equal(got, want) {
			t.Errorf("tokens.Split(%q) = %q, want %q", s, got, want)
		}
	}
}
