// Package calendar aggregates stored photos into per-month summaries.
package calendar

import (
	"sort"
	"strconv"
	"time"

	"github.com/bjw5035/family-photo-service/internal/storage"
)

// MonthSummary groups one month's photos by day of month. Days holds the
// distinct days in ascending order; CountByDay maps the day (as a string,
// matching the JSON object keys) to the number of photos taken that day.
type MonthSummary struct {
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Days       []int          `json:"days"`
	CountByDay map[string]int `json:"count_by_day"`
}

// Summarize buckets files into the given year and month by capture date,
// falling back to upload time for files without one.
func Summarize(files []storage.FileInfo, year, month int) MonthSummary {
	summary := MonthSummary{
		Year:       year,
		Month:      month,
		Days:       []int{},
		CountByDay: map[string]int{},
	}

	for _, f := range files {
		y, m, d, ok := photoDate(f)
		if !ok || y != year || m != month {
			continue
		}
		summary.CountByDay[strconv.Itoa(d)]++
	}

	for day := range summary.CountByDay {
		n, _ := strconv.Atoi(day)
		summary.Days = append(summary.Days, n)
	}
	sort.Ints(summary.Days)

	return summary
}

func photoDate(f storage.FileInfo) (year, month, day int, ok bool) {
	if f.TakenDate != nil {
		if t, err := time.Parse("2006-01-02", *f.TakenDate); err == nil {
			return t.Year(), int(t.Month()), t.Day(), true
		}
	}
	if f.UploadedAt.IsZero() {
		return 0, 0, 0, false
	}
	y, m, d := f.UploadedAt.Date()
	return y, int(m), d, true
}
