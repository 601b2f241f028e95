package sandre

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the wire date-time format.
const TimeLayout = "2006-01-02T15:04:05"

// readLayouts are tried in order when reading a date. Producers sometimes
// omit the time or append a zone; both are tolerated on read.
var readLayouts = []string{
	TimeLayout,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// plainDecimal is the only number syntax the wire allows. It excludes the
// NaN, Inf, exponent and hex forms strconv accepts.
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// FormatBool renders a boolean as the lowercase wire literal.
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FormatFloat renders f as the shortest plain decimal ("23", "0.25").
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseTime reads a wire date. A date without a time is midnight UTC.
// Fractional seconds are dropped since FormatTime cannot write them.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("expected %s", TimeLayout)
}

// ParseBool applies the permissive wire reading: "true", "vrai" and "1" in
// any case are true, everything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "vrai", "1":
		return true
	default:
		return false
	}
}

// ParseInt reads a plain decimal integer.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// ParseFloat reads a plain decimal number.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !plainDecimal.MatchString(s) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}
	return strconv.ParseFloat(s, 64)
}
