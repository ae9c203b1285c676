package appointment

import (
	"time"

	"github.com/Hbollas/LashTechBooking/internal/httperr"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, d time.Duration) (Interval, error) {
	if d <= 0 {
		return Interval{}, httperr.Validation("invalid_duration", "Duration must be positive.")
	}
	return Interval{Start: start, End: start.Add(d)}, nil
}

// Overlaps reports whether the two intervals share any instant. Intervals
// that only touch at an endpoint do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

func (i Interval) UTC() Interval {
	return Interval{Start: i.Start.UTC(), End: i.End.UTC()}
}
