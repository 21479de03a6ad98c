package service

import (
	"time"

	"github.com/citasalud/notifier/internal/entity"
)

// Candidate pairs an eligible record with its position in the table, so the
// store can apply state updates to the right row after delivery.
type Candidate struct {
	Index  int
	Record entity.AppointmentRecord
}

// Eligibility computes the two candidate sets for one run. It is a pure
// filter: no mutation, stable table order, the same input always yields the
// same sets.
type Eligibility struct {
	LookaheadDays int
}

func NewEligibility(lookaheadDays int) Eligibility {
	return Eligibility{LookaheadDays: lookaheadDays}
}

// Candidates returns reminder and reschedule candidates independently.
//
// A reminder goes to rows not yet notified whose appointment date falls
// inside the lookahead window. A reschedule notice goes to rows flagged as
// rescheduled that carry both a new date and a reassigned professional,
// again only while the original appointment date is in-window. Rows with no
// parseable appointment date are never eligible. A row satisfying both
// predicates gets both messages, reminder first.
func (e Eligibility) Candidates(records []entity.AppointmentRecord, today time.Time) (reminders, reschedules []Candidate) {
	from := dateOnly(today)
	to := from.AddDate(0, 0, e.LookaheadDays)

	for i, rec := range records {
		if rec.AppointmentDate == nil {
			continue
		}

		date := dateOnly(*rec.AppointmentDate)
		if date.Before(from) || date.After(to) {
			continue
		}

		if !rec.Notified {
			reminders = append(reminders, Candidate{Index: i, Record: rec})
		}

		if rec.Rescheduled && rec.NewDate != nil && rec.ReassignedProfessional != "" {
			reschedules = append(reschedules, Candidate{Index: i, Record: rec})
		}
	}

	return reminders, reschedules
}

// dateOnly strips the clock so window comparisons work on calendar days
// regardless of the timezone the cell was parsed in.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
