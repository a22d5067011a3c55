package birthday

// Timing names a reminder lead time relative to the anniversary.
type Timing string

const (
	TimingOnTheDay Timing = "on-the-day"
	TimingOneDay   Timing = "1-day"
	TimingThreeDay Timing = "3-days"
	TimingOneWeek  Timing = "1-week"
	TimingTwoWeeks Timing = "2-weeks"
)

var timingDays = map[Timing]int{
	TimingOnTheDay: 0,
	TimingOneDay:   1,
	TimingThreeDay: 3,
	TimingOneWeek:  7,
	TimingTwoWeeks: 14,
}

var timingLabels = map[Timing]string{
	TimingOnTheDay: "today",
	TimingOneDay:   "tomorrow",
	TimingThreeDay: "in 3 days",
	TimingOneWeek:  "in 1 week",
	TimingTwoWeeks: "in 2 weeks",
}

// DaysBefore returns the lead time in days.  Unknown timings report false
// and must be ignored, never treated as zero.
func (t Timing) DaysBefore() (int, bool) {
	d, ok := timingDays[t]
	return d, ok
}

// Valid reports whether t is a member of the closed timing set.
func (t Timing) Valid() bool {
	_, ok := timingDays[t]
	return ok
}

// Label returns the human phrase used in reminder text, e.g. "tomorrow".
func (t Timing) Label() string {
	return timingLabels[t]
}

// MatchTiming returns the members of timings whose lead time equals
// daysUntil, in input order, skipping unknown members.  Each match stands
// for one independent reminder, so duplicates in timings are preserved.
func MatchTiming(daysUntil int, timings []Timing) []Timing {
	var matched []Timing
	for _, t := range timings {
		if d, ok := timingDays[t]; ok && d == daysUntil {
			matched = append(matched, t)
		}
	}
	return matched
}
