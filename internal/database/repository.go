package database

import (
	"context"

	"github.com/citasalud/notifier/internal/entity"
)

// AppointmentRepository owns the in-memory appointment table. All mutation
// goes through Mark* so notification-state writes stay serialized in one
// place. Every Replace starts a new table generation; Snapshot reports the
// generation it was taken from and Mark* rejects indices from a stale one,
// so a batch working on an old snapshot can never stamp rows of a newly
// uploaded table.
type AppointmentRepository interface {
	Replace(records []entity.AppointmentRecord)
	Snapshot() ([]entity.AppointmentRecord, uint64)
	Filtered(notified, rescheduled *bool) []entity.AppointmentRecord
	MarkReminderSent(index int, generation uint64, date, clock, method string) error
	MarkRescheduleSent(index int, generation uint64, date, clock, method string) error
	Stats() entity.TableStats
	Loaded() bool
}

// NotificationLogRepository is the append-only delivery log.
type NotificationLogRepository interface {
	Append(ctx context.Context, entry entity.LogEntry) error
	List(ctx context.Context) ([]entity.LogEntry, error)
}
