package timesheet

import (
	"errors"
	"fmt"
)

var (
	// ErrYearNotFound and ErrMonthNotFound signal a lookup into a bucket
	// the sheet never derived, distinct from a repository with no history.
	ErrYearNotFound  = errors.New("year not found in timesheet")
	ErrMonthNotFound = errors.New("month not found in timesheet")

	ErrInvalidDate  = errors.New("invalid calendar date")
	ErrInvalidHours = errors.New("hours must be between 0 and 8")
)

// ValidateDate rejects dates outside the supported range or beyond the
// month's actual day count before any sheet mutation happens.
func ValidateDate(year, month, day int) error {
	if year < 1900 || year > 2099 {
		return fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return fmt.Errorf("%w: day %d does not exist in %d-%02d", ErrInvalidDate, day, year, month)
	}
	return nil
}

// SetHours overwrites the hours for a single day and marks the entry as
// user-edited so future recomputation carries it forward verbatim. The
// weekend flag is left untouched; it is never user-settable.
func (s Sheet) SetHours(hours float64, day, month, year int) error {
	if err := ValidateDate(year, month, day); err != nil {
		return err
	}
	if hours < 0 || hours > FullDayHours {
		return fmt.Errorf("%w: got %v", ErrInvalidHours, hours)
	}

	months, ok := s[year]
	if !ok {
		return fmt.Errorf("%w: %d", ErrYearNotFound, year)
	}
	sheet, ok := months[month]
	if !ok {
		return fmt.Errorf("%w: %d-%02d", ErrMonthNotFound, year, month)
	}
	if day > len(sheet) {
		return fmt.Errorf("%w: day %d beyond sheet length %d", ErrInvalidDate, day, len(sheet))
	}

	sheet[day-1].Hours = hours
	sheet[day-1].UserEdited = true
	return nil
}
