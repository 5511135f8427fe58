package domain

import "time"

// Rental ties an instrument to a student for a period of time. A rental is
// active while its end date is unset or still in the future. Termination is a
// soft close: the end date is moved to the current date, the row is kept.
type Rental struct {
	ID           int32      `json:"id"`
	InstrumentID int32      `json:"instrument_id"`
	StudentID    int32      `json:"student_id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	PricingID    int32      `json:"pricing_id"`
}

// Active reports whether the rental still occupies its instrument as of now.
func (r *Rental) Active(now time.Time) bool {
	if r.EndDate == nil {
		return true
	}
	return r.EndDate.After(now)
}
