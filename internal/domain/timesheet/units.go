package timesheet

import "time"

// unitMinutes is the length of one billable unit.
const unitMinutes = 15

// unitGraceMinutes is how far past a quarter-hour boundary the elapsed time
// may run before the partial unit rounds up: 35 elapsed minutes stays at
// 2 units, 36 rounds up to 3.
const unitGraceMinutes = 5

// Units converts the elapsed time between in and out to 15-minute billable
// units using the agency rounding rule.
func Units(in, out time.Time) int {
	if !out.After(in) {
		return 0
	}

	minutes := int(out.Sub(in).Minutes())
	units := minutes / unitMinutes
	if minutes%unitMinutes > unitGraceMinutes {
		units++
	}
	return units
}
