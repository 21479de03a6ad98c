package entity

// TableStats mirrors the dashboard counters shown after an upload.
type TableStats struct {
	Total       int `json:"total"`
	Notified    int `json:"notified"`
	Pending     int `json:"pending"`
	Rescheduled int `json:"rescheduled"`
}
