package birthday

import (
	"sort"
	"time"
)

// UpcomingBirthday is a person's next anniversary projected against a
// reference instant.
type UpcomingBirthday struct {
	Person    Person
	Date      time.Time
	DaysUntil int
	// Age is the age turned on Date; zero with HasAge false when the
	// birth year is unknown.
	Age    int
	HasAge bool
}

// Upcoming projects each person's next anniversary and returns the list
// sorted soonest first, ties broken by name.  People with malformed dates
// are skipped.
func Upcoming(people []Person, now time.Time) []UpcomingBirthday {
	out := make([]UpcomingBirthday, 0, len(people))
	for _, p := range people {
		pd, err := p.BirthDate()
		if err != nil {
			continue
		}
		age, hasAge := UpcomingAge(pd, now)
		out = append(out, UpcomingBirthday{
			Person:    p,
			Date:      NextOccurrence(pd, now),
			DaysUntil: DaysUntil(pd, now),
			Age:       age,
			HasAge:    hasAge,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysUntil != out[j].DaysUntil {
			return out[i].DaysUntil < out[j].DaysUntil
		}
		return out[i].Person.Name < out[j].Person.Name
	})
	return out
}
