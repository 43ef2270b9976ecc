package appointment

import (
	"errors"
	"time"
)

var ErrInvalidTimeRange = errors.New("end time must be after start time")

const clockLayout = "15:04"

// Minutes parses "HH:MM" into minutes since midnight.
func Minutes(clock string) (int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Span returns the appointment's [start, end) in minutes since midnight.
// A missing end time is derived from Duration.
func (a Appointment) Span() (int, int, error) {
	start, err := Minutes(a.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end := start + a.Duration
	if a.EndTime != "" {
		if end, err = Minutes(a.EndTime); err != nil {
			return 0, 0, err
		}
	}
	if end <= start {
		return 0, 0, ErrInvalidTimeRange
	}
	return start, end, nil
}

// Overlaps reports whether a and b take the same professional at the same
// time on the same day. Appointments with unreadable times never overlap.
func Overlaps(a, b Appointment) bool {
	if a.ProfessionalID == "" || a.ProfessionalID != b.ProfessionalID {
		return false
	}
	if !a.Date.Equal(b.Date) {
		return false
	}
	as, ae, err := a.Span()
	if err != nil {
		return false
	}
	bs, be, err := b.Span()
	if err != nil {
		return false
	}
	return as < be && bs < ae
}

// FindConflict returns the first active appointment in existing that overlaps
// candidate, skipping candidate itself.
func FindConflict(existing []Appointment, candidate Appointment) (Appointment, bool) {
	for _, e := range existing {
		if e.ID != "" && e.ID == candidate.ID {
			continue
		}
		if e.Status.Active() && Overlaps(e, candidate) {
			return e, true
		}
	}
	return Appointment{}, false
}

// Final reports whether no further status change is allowed.
func (s Status) Final() bool {
	return s == StatusCompleted || s == StatusCanceled
}
