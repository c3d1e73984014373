package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDuration renders d as MM:SS.mmm. Minutes are padded to two digits but
// not capped, so 100 minutes render as "100:00.000". Anything below one
// millisecond is dropped, negative durations render as zero.
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := ms % 60000 / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

// ParseDuration is the inverse of FormatDuration.
//
//	ParseDuration("01:01.234") // 61.234s
func ParseDuration(s string) (time.Duration, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 2 {
		return 0, &ParseError{Input: s, Expected: "at least two minute digits followed by ':'"}
	}
	rest := s[colon+1:]
	if len(rest) != 6 || rest[2] != '.' {
		return 0, &ParseError{Input: s, Expected: "SS.mmm after ':'"}
	}

	minutes, err := parseDigits(s[:colon])
	if err != nil {
		return 0, &ParseError{Input: s, Expected: "minutes", Err: err}
	}
	seconds, err := parseDigits(rest[:2])
	if err != nil {
		return 0, &ParseError{Input: s, Expected: "seconds", Err: err}
	}
	if seconds > 59 {
		return 0, &ParseError{Input: s, Expected: "seconds between 00 and 59"}
	}
	millis, err := parseDigits(rest[3:])
	if err != nil {
		return 0, &ParseError{Input: s, Expected: "milliseconds", Err: err}
	}

	total := minutes*60000 + seconds*1000 + millis
	return time.Duration(total) * time.Millisecond, nil
}

// parseDigits accepts only ASCII digits, strconv alone would let a sign through.
func parseDigits(s string) (int64, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("unexpected %q", r)
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
