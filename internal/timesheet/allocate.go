package timesheet

import "time"

// FullDayHours is the daily hour budget split across a client's
// repositories when more than one shows activity on the same day.
const FullDayHours = 8.0

// DayEntry is one calendar day of a month sheet.
type DayEntry struct {
	Weekend    bool    `json:"weekend"`
	Hours      float64 `json:"hours"`
	UserEdited bool    `json:"user_edited"`
}

// MonthSheet holds one DayEntry per calendar day, index 0 = day 1.
type MonthSheet []DayEntry

// Sheet is a repository's full timesheet, year -> month -> MonthSheet.
// Keys are sparse: only months with derived data exist.
type Sheet map[int]map[int]MonthSheet

// Month returns the sheet for (year, month), or nil if absent.
func (s Sheet) Month(year, month int) MonthSheet {
	if s == nil {
		return nil
	}
	return s[year][month]
}

func isWeekend(year, month, day int) bool {
	wd := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AllocateMonth produces the month sheet for (year, month) from this
// repository's worked days, the worked-day sets of the client's other
// repositories for the same month, and the previous sheet for the month
// if one exists.
//
// A day worked across k of the client's repositories is split evenly,
// FullDayHours/k each. Entries the user edited by hand keep their hours
// verbatim; the weekend flag is a pure function of the date and is always
// recomputed. Weekend days with commits earn hours like any other day.
func AllocateMonth(year, month int, worked DaySet, adjacent []DaySet, prev MonthSheet) MonthSheet {
	total := DaysInMonth(year, month)
	sheet := make(MonthSheet, 0, total)

	for day := 1; day <= total; day++ {
		entry := DayEntry{Weekend: isWeekend(year, month, day)}

		if day-1 < len(prev) && prev[day-1].UserEdited {
			entry.Hours = prev[day-1].Hours
			entry.UserEdited = true
		} else if worked.Contains(day) {
			split := 1
			for _, other := range adjacent {
				if other.Contains(day) {
					split++
				}
			}
			entry.Hours = FullDayHours / float64(split)
		}

		sheet = append(sheet, entry)
	}

	return sheet
}

// Assemble builds a repository's full Sheet by allocating every
// (year, month) present in its worked-day index. The adjacent indexes are
// the worked days of the client's other repositories; prev is the
// repository's previous sheet, consulted only for user-edited entries.
func Assemble(index WorkedDayIndex, adjacent []WorkedDayIndex, prev Sheet) Sheet {
	sheet := make(Sheet, len(index))

	for year, months := range index {
		sheet[year] = make(map[int]MonthSheet, len(months))
		for month, worked := range months {
			sets := make([]DaySet, 0, len(adjacent))
			for _, adj := range adjacent {
				if days, ok := adj[year][month]; ok {
					sets = append(sets, days)
				}
			}
			sheet[year][month] = AllocateMonth(year, month, worked, sets, prev.Month(year, month))
		}
	}

	return sheet
}
