package appointment

import "github.com/Hbollas/LashTechBooking/internal/models"

// HasConflict reports whether proposed overlaps any non-cancelled
// appointment in existing.
func HasConflict(proposed Interval, existing []models.Appointment) bool {
	for _, ap := range existing {
		if ap.Status == StatusCancelled {
			continue
		}
		if proposed.Overlaps(IntervalOf(ap)) {
			return true
		}
	}
	return false
}

// BusyIntervals returns the intervals held by non-cancelled appointments.
func BusyIntervals(existing []models.Appointment) []Interval {
	out := make([]Interval, 0, len(existing))
	for _, ap := range existing {
		if ap.Status == StatusCancelled {
			continue
		}
		out = append(out, IntervalOf(ap))
	}
	return out
}
