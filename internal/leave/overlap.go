package leave

import "time"

// OverlapDays counts the calendar days of [start, end] that fall inside
// [windowStart, windowEnd]. Both ranges are inclusive date ranges; a
// disjoint pair yields zero.
func OverlapDays(start, end, windowStart, windowEnd time.Time) int {
	if start.After(end) || windowStart.After(windowEnd) {
		return 0
	}

	from := start
	if windowStart.After(from) {
		from = windowStart
	}
	to := end
	if windowEnd.Before(to) {
		to = windowEnd
	}
	if from.After(to) {
		return 0
	}

	return int(to.Sub(from).Hours()/24) + 1
}

// SumOverlapDays totals the clipped day counts of every leave against the
// window. Each leave is counted independently, so two approved leaves
// covering the same day both contribute that day.
func SumOverlapDays(leaves []Leave, windowStart, windowEnd time.Time) int {
	total := 0
	for _, l := range leaves {
		total += OverlapDays(l.StartDate, l.EndDate, windowStart, windowEnd)
	}
	return total
}
