// Package timesheet derives per-day worked hours from git commit
// history: raw log text is bucketed into worked days, and worked days
// are allocated into month sheets with the daily budget fairness-split
// across a client's repositories.
package timesheet

import (
	"errors"
	"regexp"
	"time"
)

// ErrNoHistory is returned when a git log holds no parseable commit dates.
// Callers should treat it as "no history for this author", not as an empty
// but valid timesheet.
var ErrNoHistory = errors.New("no commit history found for author")

// DaySet holds the days of a single month on which at least one commit
// was made.
type DaySet map[int]bool

// Contains reports whether day is in the set.
func (s DaySet) Contains(day int) bool {
	return s[day]
}

// WorkedDayIndex maps year -> month -> days with at least one commit by
// the tracked author. Only years and months with activity are present.
type WorkedDayIndex map[int]map[int]DaySet

// add records a single worked day, creating buckets as needed.
func (idx WorkedDayIndex) add(year, month, day int) {
	months, ok := idx[year]
	if !ok {
		months = make(map[int]DaySet)
		idx[year] = months
	}
	days, ok := months[month]
	if !ok {
		days = make(DaySet)
		months[month] = days
	}
	days[day] = true
}

// dateLine matches the RFC-2822 style date lines emitted by
// `git log --date=rfc`, e.g. "Date:   Sat, 23 Oct 2021 13:02:36 +0200".
var dateLine = regexp.MustCompile(`[A-Za-z]{3},\s+\d{1,2}\s+[A-Za-z]{3}\s+\d{4}\s+\d{1,2}:\d{2}:\d{2}\s+[+-]\d{4}`)

// ParseWorkedDays scans raw git log output for commit dates and buckets
// them into a WorkedDayIndex. Multiple commits on the same calendar day
// collapse into a single entry. Lines that match the date pattern but
// fail to parse as a real date are skipped.
func ParseWorkedDays(history string) (WorkedDayIndex, error) {
	idx := make(WorkedDayIndex)

	for _, match := range dateLine.FindAllString(history, -1) {
		t, err := time.Parse("Mon, 2 Jan 2006 15:04:05 -0700", match)
		if err != nil {
			continue
		}
		idx.add(t.Year(), int(t.Month()), t.Day())
	}

	if len(idx) == 0 {
		return nil, ErrNoHistory
	}
	return idx, nil
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
