package domain

import "time"

type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if !end.After(start) {
		return DateRange{}, invariant("end date must be after start date")
	}
	return DateRange{start: start, end: end}, nil
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// Contains reports whether t falls inside [start, end).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

// EqualityComponents uses UnixNano so that equal instants in different
// locations compare equal.
func (r DateRange) EqualityComponents() []any {
	return []any{r.start.UnixNano(), r.end.UnixNano()}
}
