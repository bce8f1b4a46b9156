package attendance

import (
	"math"
	"time"
)

// DefaultStandardDayHours is the threshold beyond which worked time counts
// as extra hours.
const DefaultStandardDayHours = 8.0

// PairWorkedHours sums the durations of (check_in, check_out) pairs taken in
// Seq order: each check_in is paired with the next check_out. A trailing
// check_in with no check_out contributes nothing; the session is still open.
// Durations are wall-clock deltas within the same calendar date.
func PairWorkedHours(events []AttendanceEvent) float64 {
	total := 0.0
	var open *time.Time

	for i := range events {
		switch events[i].Kind {
		case EventCheckIn:
			if open == nil {
				t := events[i].EventTime
				open = &t
			}
		case EventCheckOut:
			if open != nil {
				total += events[i].EventTime.Sub(*open).Hours()
				open = nil
			}
		}
	}

	return roundHours(total)
}

// ExtraHours is the worked time beyond the standard day, floored at zero.
func ExtraHours(workedHours, standardDayHours float64) float64 {
	return roundHours(math.Max(0, workedHours-standardDayHours))
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
