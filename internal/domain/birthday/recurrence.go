package birthday

import "time"

const dayMillis = 24 * 60 * 60 * 1000

// dateOnly strips the time-of-day and realises the civil date in UTC, so
// that differences between two dates are exact multiples of 24 hours.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// occurrenceIn resolves the anniversary within the given year.  Feb 29
// normalises to Mar 1 in non-leap years via calendar overflow.
func occurrenceIn(pd PartialDate, year int) time.Time {
	return time.Date(year, pd.month, pd.day, 0, 0, 0, 0, time.UTC)
}

// NextOccurrence returns the next anniversary of pd at or after now's date,
// ignoring now's time-of-day.  An anniversary earlier today still counts as
// today.
func NextOccurrence(pd PartialDate, now time.Time) time.Time {
	today := dateOnly(now)
	next := occurrenceIn(pd, now.Year())
	if next.Before(today) {
		next = occurrenceIn(pd, now.Year()+1)
	}
	return next
}

// DaysUntil returns the whole number of days from now's date to the next
// anniversary of pd.  The result is never negative; zero means the
// anniversary is today.
func DaysUntil(pd PartialDate, now time.Time) int {
	next := NextOccurrence(pd, now)
	diff := next.Sub(dateOnly(now)).Milliseconds()
	if diff <= 0 {
		return 0
	}
	// Ceiling on the millisecond difference over one day.
	return int((diff + dayMillis - 1) / dayMillis)
}

// IsToday reports whether pd's month and day match now's date.  Feb 29 in a
// non-leap year matches nothing; its Mar 1 resolution applies only to
// recurrence arithmetic.
func IsToday(pd PartialDate, now time.Time) bool {
	return pd.month == now.Month() && pd.day == now.Day()
}

// CurrentAge returns the age already turned as of now.  It reports false
// when the year is unknown.
func CurrentAge(pd PartialDate, now time.Time) (int, bool) {
	if !pd.hasYear {
		return 0, false
	}
	age := now.Year() - pd.year
	if now.Month() < pd.month || (now.Month() == pd.month && now.Day() < pd.day) {
		age--
	}
	return age, true
}

// UpcomingAge returns the age that will be turned on the next anniversary.
// It reports false when the year is unknown.
func UpcomingAge(pd PartialDate, now time.Time) (int, bool) {
	if !pd.hasYear {
		return 0, false
	}
	return NextOccurrence(pd, now).Year() - pd.year, true
}
