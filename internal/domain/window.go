package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/Mucamas-BookingService/pkg/types"
)

// TimeWindow is a half-open interval [Start, End) on a single Date.
// Windows crossing midnight are not representable.
type TimeWindow struct {
	Date  string
	Start types.TimeString
	End   types.TimeString
}

// Validate checks formats and Start < End
func (w TimeWindow) Validate() error {
	if _, err := time.Parse(DateFormat, w.Date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", w.Date)
	}
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("invalid start time %q: %w", w.Start, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("invalid end time %q: %w", w.End, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("start time %s must be before end time %s", w.Start, w.End)
	}
	return nil
}

// Overlaps reports whether two windows intersect: same date and
// startA < endB && startB < endA. Touching windows do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if w.Date != other.Date {
		return false
	}
	return w.Start < other.End && other.Start < w.End
}

// EndsAt returns the absolute end moment of the window
func (w TimeWindow) EndsAt(loc *time.Location) (time.Time, error) {
	return w.End.On(w.Date, loc)
}
