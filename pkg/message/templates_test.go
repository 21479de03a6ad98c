package message

import (
	"strings"
	"testing"
	"time"

	"github.com/citasalud/notifier/internal/entity"
	"github.com/stretchr/testify/assert"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestReminderRendering(t *testing.T) {
	rec := &entity.AppointmentRecord{
		PatientName:     "María Huenchuleo",
		AppointmentDate: date("2026-09-01"),
		Professional:    "Dr. Paillal",
		Reason:          "Control crónico",
	}

	text := Reminder(rec)

	assert.Contains(t, text, "Hola María Huenchuleo")
	assert.Contains(t, text, "Fecha: 01/09/2026")
	assert.Contains(t, text, "Profesional: Dr. Paillal")
	assert.Contains(t, text, "Motivo: Control crónico")
}

func TestReminderWithoutDate(t *testing.T) {
	rec := &entity.AppointmentRecord{PatientName: "Pedro Soto"}

	text := Reminder(rec)

	assert.Contains(t, text, "Fecha: sin fecha")
}

func TestReminderIsDeterministic(t *testing.T) {
	rec := &entity.AppointmentRecord{
		PatientName:     "María Huenchuleo",
		AppointmentDate: date("2026-09-01"),
		Professional:    "Dr. Paillal",
		Reason:          "Control crónico",
	}

	assert.Equal(t, Reminder(rec), Reminder(rec))
	assert.Equal(t, Reschedule(rec), Reschedule(rec))
}

func TestRescheduleProfessionalFallback(t *testing.T) {
	tests := []struct {
		name       string
		reassigned string
		expected   string
	}{
		{name: "reassigned professional used when set", reassigned: "Dra. Antinao", expected: "Dra. Antinao"},
		{name: "original professional used when empty", reassigned: "", expected: "Dr. Paillal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &entity.AppointmentRecord{
				PatientName:            "Pedro Soto",
				Professional:           "Dr. Paillal",
				ReassignedProfessional: tt.reassigned,
				NewDate:                date("2026-09-03"),
			}

			text := Reschedule(rec)

			assert.Contains(t, text, "Profesional: "+tt.expected)
			assert.Contains(t, text, "Nueva Fecha: 03/09/2026")
		})
	}
}

func TestRescheduleWithoutNewDate(t *testing.T) {
	rec := &entity.AppointmentRecord{PatientName: "Pedro Soto", Professional: "Dr. Paillal"}

	text := Reschedule(rec)

	assert.True(t, strings.Contains(text, "Nueva Fecha: sin fecha"))
}
