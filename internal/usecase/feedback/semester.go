package feedback

import (
	"fmt"
	"time"
)

// CurrentSemesterLabel returns the label for the semester containing the
// given time. Months 1-6 are S1, months 7-12 are S2.
func CurrentSemesterLabel(now time.Time) string {
	if now.Month() <= time.June {
		return fmt.Sprintf("%d-S1", now.Year())
	}
	return fmt.Sprintf("%d-S2", now.Year())
}

// PreviousSemesterLabel returns the label for the semester immediately before
// the one containing the given time.
func PreviousSemesterLabel(now time.Time) string {
	if now.Month() <= time.June {
		return fmt.Sprintf("%d-S2", now.Year()-1)
	}
	return fmt.Sprintf("%d-S1", now.Year())
}
