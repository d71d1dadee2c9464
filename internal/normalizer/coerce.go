package normalizer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// flexNumber decodes a JSON number that some providers serialize as a
// string ("4500.00"). Anything that is not coercible decodes to zero, which
// the price extraction then treats as a missing candidate.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexNumber(v)
	return nil
}

var timeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseTime tries the timestamp formats the upstreams are known to emit.
// A malformed timestamp yields the zero time, the documented sentinel, so
// one bad field never discards an otherwise usable offer.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// formatMinutes renders a minute count as "5h 30m".
func formatMinutes(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// isoDurationToMinutes converts an ISO8601 duration like "PT5H30M" to
// minutes. Unparseable input yields zero.
func isoDurationToMinutes(iso string) int {
	iso = strings.TrimPrefix(strings.TrimSpace(iso), "PT")
	if iso == "" {
		return 0
	}

	minutes := 0
	if i := strings.Index(iso, "H"); i >= 0 {
		if h, err := strconv.Atoi(iso[:i]); err == nil {
			minutes += h * 60
		}
		iso = iso[i+1:]
	}
	if i := strings.Index(iso, "M"); i >= 0 {
		if m, err := strconv.Atoi(iso[:i]); err == nil {
			minutes += m
		}
	}
	return minutes
}

// clockDurationToMinutes converts "05:30" style durations to minutes.
func clockDurationToMinutes(s string) int {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || m < 0 || m >= 60 {
		return 0
	}
	return h*60 + m
}
