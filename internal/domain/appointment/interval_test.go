package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2026, 6, 1, h, m, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(11, 0)}

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", base, true},
		{"contains", Interval{at(9, 0), at(12, 0)}, true},
		{"inside", Interval{at(10, 15), at(10, 45)}, true},
		{"straddles start", Interval{at(9, 30), at(10, 30)}, true},
		{"straddles end", Interval{at(10, 30), at(11, 30)}, true},
		{"back to back before", Interval{at(9, 0), at(10, 0)}, false},
		{"back to back after", Interval{at(11, 0), at(12, 0)}, false},
		{"disjoint", Interval{at(13, 0), at(14, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval(at(9, 0), 90*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, at(10, 30), iv.End)
	assert.True(t, iv.Valid())

	_, err = NewInterval(at(9, 0), 0)
	assert.Error(t, err)
}
