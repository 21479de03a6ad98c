package entity

import (
	"time"
)

// AppointmentRecord is one row of the uploaded appointment table.
// Date fields are nil when the source cell was empty or unparseable.
type AppointmentRecord struct {
	PatientID              string     `json:"patient_id"`
	PatientName            string     `json:"patient_name"`
	Phone                  string     `json:"phone"`
	AppointmentDate        *time.Time `json:"appointment_date"`
	Reason                 string     `json:"reason"`
	Professional           string     `json:"professional"`
	Notified               bool       `json:"notified"`
	Rescheduled            bool       `json:"rescheduled"`
	NewDate                *time.Time `json:"new_date"`
	ReassignedProfessional string     `json:"reassigned_professional"`
	NotifiedAtDate         string     `json:"notified_at_date"`
	NotifiedAtTime         string     `json:"notified_at_time"`
	NotificationMethod     string     `json:"notification_method"`
}

// MessageType distinguishes the two outbound message kinds.
type MessageType string

const (
	TypeReminder   MessageType = "reminder"
	TypeReschedule MessageType = "reschedule"
)

const (
	StatusSent  = "sent"
	StatusError = "error"
)
