// Package birthday holds the recurring-event core: the partial birth date
// model, the recurrence calculator, lead-time timings, and the entities and
// store ports shared by the reminder and gift pipelines.
package birthday

import (
	"fmt"
	"time"

	"github.com/wishwell/wishwell/pkg/errors"
)

// unknownYearToken encodes "year unknown" in the canonical YYYY-MM-DD wire
// form.  It is a sentinel, never a calendar year.
const unknownYearToken = "0000"

// PartialDate is a month/day pair with an optional year.  Values are
// immutable once constructed; derive a new value instead of mutating.
type PartialDate struct {
	year    int
	month   time.Month
	day     int
	hasYear bool
}

// NewPartialDate constructs a PartialDate with a known year.  The day must
// be valid for the month in that year (leap-safe: Feb 29 is rejected for
// non-leap years).
func NewPartialDate(year int, month time.Month, day int) (PartialDate, error) {
	if year < 1 || year > 9999 {
		return PartialDate{}, errors.Newf(errors.ErrCodeBirthDateInvalid, "year %d out of range", year)
	}
	if err := checkMonthDay(month, day, year); err != nil {
		return PartialDate{}, err
	}
	return PartialDate{year: year, month: month, day: day, hasYear: true}, nil
}

// NewMonthDay constructs a PartialDate whose year is unknown.  Feb 29 is
// accepted; its yearly resolution is deferred to the recurrence calculator.
func NewMonthDay(month time.Month, day int) (PartialDate, error) {
	// Leap reference year, so Feb 29 passes.
	if err := checkMonthDay(month, day, 2000); err != nil {
		return PartialDate{}, err
	}
	return PartialDate{month: month, day: day}, nil
}

func checkMonthDay(month time.Month, day int, year int) error {
	if month < time.January || month > time.December {
		return errors.Newf(errors.ErrCodeBirthDateInvalid, "month %d out of range", int(month))
	}
	if day < 1 || day > daysIn(month, year) {
		return errors.Newf(errors.ErrCodeBirthDateInvalid, "day %d invalid for %s %d", day, month, year)
	}
	return nil
}

// daysIn returns the number of days in month for the given year.
func daysIn(month time.Month, year int) int {
	// Day 0 of the next month normalises to the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate parses the canonical fixed-width "YYYY-MM-DD" form, where
// YYYY == "0000" means the year is unknown.
func ParseDate(s string) (PartialDate, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return PartialDate{}, errors.Newf(errors.ErrCodeBirthDateInvalid, "date %q is not YYYY-MM-DD", s)
	}
	var year, month, day int
	if _, err := fmt.Sscanf(s, "%4d-%2d-%2d", &year, &month, &day); err != nil {
		return PartialDate{}, errors.Newf(errors.ErrCodeBirthDateInvalid, "date %q is not YYYY-MM-DD", s)
	}
	if s[:4] == unknownYearToken {
		return NewMonthDay(time.Month(month), day)
	}
	return NewPartialDate(year, time.Month(month), day)
}

// String renders the canonical fixed-width form, with "0000" for an unknown
// year.  It is the exact inverse of ParseDate.
func (pd PartialDate) String() string {
	year := unknownYearToken
	if pd.hasYear {
		year = fmt.Sprintf("%04d", pd.year)
	}
	return fmt.Sprintf("%s-%02d-%02d", year, int(pd.month), pd.day)
}

// Month returns the month component.
func (pd PartialDate) Month() time.Month { return pd.month }

// Day returns the day-of-month component.
func (pd PartialDate) Day() int { return pd.day }

// Year returns the year component and whether it is known.
func (pd PartialDate) Year() (int, bool) { return pd.year, pd.hasYear }

// HasKnownYear reports whether the year component is known.
func (pd PartialDate) HasKnownYear() bool { return pd.hasYear }

// IsZero reports whether pd is the zero value (no date at all).
func (pd PartialDate) IsZero() bool { return pd.month == 0 && pd.day == 0 }
