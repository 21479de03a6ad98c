package entity

import "time"

// RunContext carries the parameters of one batch run. Today is injected by
// the caller so eligibility can be tested against a fixed date.
type RunContext struct {
	ID        string    `json:"id"`
	Today     time.Time `json:"today"`
	Automatic bool      `json:"automatic"`
}

// RunReport summarizes one completed (or in-flight) batch run.
type RunReport struct {
	ID                   string    `json:"id"`
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
	RemindersProcessed   int       `json:"reminders_processed"`
	RemindersSent        int       `json:"reminders_sent"`
	ReschedulesProcessed int       `json:"reschedules_processed"`
	ReschedulesSent      int       `json:"reschedules_sent"`
	Errors               int       `json:"errors"`
	Channel              string    `json:"channel"`
	Done                 bool      `json:"done"`
}
