package service

import (
	"testing"
	"time"

	"github.com/citasalud/notifier/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func daysFromToday(n int) *time.Time {
	return datePtr(today.AddDate(0, 0, n))
}

func TestReminderCandidates(t *testing.T) {
	tests := []struct {
		name     string
		record   entity.AppointmentRecord
		expected bool
	}{
		{
			name:     "appointment tomorrow, not notified",
			record:   entity.AppointmentRecord{AppointmentDate: daysFromToday(1)},
			expected: true,
		},
		{
			name:     "appointment today is in window",
			record:   entity.AppointmentRecord{AppointmentDate: daysFromToday(0)},
			expected: true,
		},
		{
			name:     "appointment at window edge",
			record:   entity.AppointmentRecord{AppointmentDate: daysFromToday(2)},
			expected: true,
		},
		{
			name:     "appointment outside window",
			record:   entity.AppointmentRecord{AppointmentDate: daysFromToday(10)},
			expected: false,
		},
		{
			name:     "appointment in the past",
			record:   entity.AppointmentRecord{AppointmentDate: daysFromToday(-1)},
			expected: false,
		},
		{
			name:     "already notified",
			record:   entity.AppointmentRecord{AppointmentDate: daysFromToday(1), Notified: true},
			expected: false,
		},
		{
			name:     "no appointment date",
			record:   entity.AppointmentRecord{},
			expected: false,
		},
	}

	eligibility := NewEligibility(2)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminders, _ := eligibility.Candidates([]entity.AppointmentRecord{tt.record}, today)

			if tt.expected {
				assert.Len(t, reminders, 1)
			} else {
				assert.Empty(t, reminders)
			}
		})
	}
}

func TestRescheduleCandidates(t *testing.T) {
	tests := []struct {
		name     string
		record   entity.AppointmentRecord
		expected bool
	}{
		{
			name: "complete reschedule in window",
			record: entity.AppointmentRecord{
				AppointmentDate:        daysFromToday(1),
				Rescheduled:            true,
				NewDate:                daysFromToday(5),
				ReassignedProfessional: "Dra. Antinao",
			},
			expected: true,
		},
		{
			name: "reschedule without new date is held back",
			record: entity.AppointmentRecord{
				AppointmentDate:        daysFromToday(1),
				Rescheduled:            true,
				ReassignedProfessional: "Dra. Antinao",
			},
			expected: false,
		},
		{
			name: "reschedule without reassigned professional is held back",
			record: entity.AppointmentRecord{
				AppointmentDate: daysFromToday(1),
				Rescheduled:     true,
				NewDate:         daysFromToday(5),
			},
			expected: false,
		},
		{
			name: "reschedule flag false",
			record: entity.AppointmentRecord{
				AppointmentDate:        daysFromToday(1),
				NewDate:                daysFromToday(5),
				ReassignedProfessional: "Dra. Antinao",
			},
			expected: false,
		},
		{
			name: "reschedule outside window",
			record: entity.AppointmentRecord{
				AppointmentDate:        daysFromToday(10),
				Rescheduled:            true,
				NewDate:                daysFromToday(12),
				ReassignedProfessional: "Dra. Antinao",
			},
			expected: false,
		},
		{
			name: "reschedule with no appointment date",
			record: entity.AppointmentRecord{
				Rescheduled:            true,
				NewDate:                daysFromToday(5),
				ReassignedProfessional: "Dra. Antinao",
			},
			expected: false,
		},
		{
			name: "reschedule eligibility ignores notified flag",
			record: entity.AppointmentRecord{
				AppointmentDate:        daysFromToday(1),
				Notified:               true,
				Rescheduled:            true,
				NewDate:                daysFromToday(5),
				ReassignedProfessional: "Dra. Antinao",
			},
			expected: true,
		},
	}

	eligibility := NewEligibility(2)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reschedules := eligibility.Candidates([]entity.AppointmentRecord{tt.record}, today)

			if tt.expected {
				assert.Len(t, reschedules, 1)
			} else {
				assert.Empty(t, reschedules)
			}
		})
	}
}

func TestCandidatesAreIdempotent(t *testing.T) {
	records := []entity.AppointmentRecord{
		{PatientName: "A", AppointmentDate: daysFromToday(1)},
		{PatientName: "B", AppointmentDate: daysFromToday(1), Notified: true},
		{PatientName: "C", AppointmentDate: daysFromToday(1), Rescheduled: true,
			NewDate: daysFromToday(4), ReassignedProfessional: "Dra. Antinao"},
		{PatientName: "D"},
	}

	eligibility := NewEligibility(2)

	rem1, res1 := eligibility.Candidates(records, today)
	rem2, res2 := eligibility.Candidates(records, today)

	assert.Equal(t, rem1, rem2)
	assert.Equal(t, res1, res2)
}

func TestCandidatesPreserveTableOrder(t *testing.T) {
	records := []entity.AppointmentRecord{
		{PatientName: "Primero", AppointmentDate: daysFromToday(2)},
		{PatientName: "Segundo", AppointmentDate: daysFromToday(0)},
		{PatientName: "Tercero", AppointmentDate: daysFromToday(1)},
	}

	reminders, _ := NewEligibility(2).Candidates(records, today)

	require.Len(t, reminders, 3)
	assert.Equal(t, "Primero", reminders[0].Record.PatientName)
	assert.Equal(t, "Segundo", reminders[1].Record.PatientName)
	assert.Equal(t, "Tercero", reminders[2].Record.PatientName)
}

func TestDualEligibleRowAppearsInBothSets(t *testing.T) {
	// not yet notified AND flagged rescheduled: two independent messages
	records := []entity.AppointmentRecord{
		{
			PatientName:            "Doble",
			AppointmentDate:        daysFromToday(1),
			Rescheduled:            true,
			NewDate:                daysFromToday(3),
			ReassignedProfessional: "Dra. Antinao",
		},
	}

	reminders, reschedules := NewEligibility(2).Candidates(records, today)

	assert.Len(t, reminders, 1)
	assert.Len(t, reschedules, 1)
}

func TestEmptyTableYieldsEmptySets(t *testing.T) {
	reminders, reschedules := NewEligibility(2).Candidates(nil, today)

	assert.Empty(t, reminders)
	assert.Empty(t, reschedules)
}

func TestConfigurableLookahead(t *testing.T) {
	records := []entity.AppointmentRecord{
		{AppointmentDate: daysFromToday(1)},
	}

	reminders, _ := NewEligibility(1).Candidates(records, today)
	assert.Len(t, reminders, 1)

	reminders, _ = NewEligibility(0).Candidates(records, today)
	assert.Empty(t, reminders)
}
