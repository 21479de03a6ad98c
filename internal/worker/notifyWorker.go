package worker

import (
	"context"

	"github.com/citasalud/notifier/internal/service"

	"github.com/sirupsen/logrus"
)

// NotifyWorker is the single goroutine that executes batch runs. Pulling
// every run through one worker is what serializes them: at most one batch
// is in flight, and the interactive handlers stay responsive.
type NotifyWorker struct {
	service service.NotificationUseCase
}

func NewNotifyWorker(service service.NotificationUseCase) *NotifyWorker {
	return &NotifyWorker{service: service}
}

func (w *NotifyWorker) Start(ctx context.Context) {
	logrus.Info("notification worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("notification worker stopped")
			return
		case run := <-w.service.Jobs():
			logrus.Infof("notification worker picked up run %s", run.ID)
			w.service.ExecuteRun(ctx, run)
		}
	}
}
