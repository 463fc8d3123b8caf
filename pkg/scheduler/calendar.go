package scheduler

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseMonth splits a "YYYY-MM" string into year and month.
// ok is false for anything that is not a real calendar month.
func ParseMonth(month string) (year int, m time.Month, ok bool) {
	ys, ms, found := strings.Cut(strings.TrimSpace(month), "-")
	if !found {
		return 0, 0, false
	}
	y, err := strconv.Atoi(ys)
	if err != nil || y < 1 || y > 9999 {
		return 0, 0, false
	}
	mi, err := strconv.Atoi(ms)
	if err != nil || mi < 1 || mi > 12 {
		return 0, 0, false
	}
	return y, time.Month(mi), true
}

// ExpandMonth returns every date of the month as YYYY-MM-DD, in order.
// An unparseable month yields nil.
func ExpandMonth(month string) []string {
	year, m, ok := ParseMonth(month)
	if !ok {
		return nil
	}

	var dates []string
	for d := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC); d.Month() == m; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}
