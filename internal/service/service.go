package service

import (
	"context"
	"io"

	"github.com/citasalud/notifier/internal/entity"
)

type NotificationUseCase interface {
	LoadAppointments(r io.Reader) (entity.TableStats, error)
	TriggerRun(ctx context.Context, automatic bool) (string, error)
	ExecuteRun(ctx context.Context, run entity.RunContext)
	Jobs() <-chan entity.RunContext
	GetRun(id string) (*entity.RunReport, error)
	Logs(ctx context.Context) ([]entity.LogEntry, error)
	Records(notified, rescheduled *bool) []entity.AppointmentRecord
	Stats() entity.TableStats
	Export(w io.Writer) error
	AutoRunEnabled() bool
}
