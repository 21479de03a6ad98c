package entity

import "time"

// LogEntry is an immutable record of one delivery attempt.
type LogEntry struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Patient   string      `json:"patient"`
	Phone     string      `json:"phone"`
	Type      MessageType `json:"type"`
	Method    string      `json:"method"`
	Message   string      `json:"message"`
	Status    string      `json:"status"`
	Error     string      `json:"error,omitempty"`
}
