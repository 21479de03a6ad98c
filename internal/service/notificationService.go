package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/citasalud/notifier/internal/database"
	"github.com/citasalud/notifier/internal/entity"
	"github.com/citasalud/notifier/pkg/channel"
	"github.com/citasalud/notifier/pkg/message"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ChannelFactory picks the delivery channel for one run. Called once per
// batch so a run never mixes channels.
type ChannelFactory func(ctx context.Context) channel.Channel

type notificationService struct {
	repo          database.AppointmentRepository
	logRepo       database.NotificationLogRepository
	selectChannel ChannelFactory
	eligibility   Eligibility
	throttle      time.Duration
	autoRun       bool

	// injectable for tests
	now   func() time.Time
	sleep func(d time.Duration)

	mu           sync.Mutex
	running      bool
	autoExecuted bool
	reports      map[string]*entity.RunReport
	jobs         chan entity.RunContext
}

func NewNotificationUseCase(
	repo database.AppointmentRepository,
	logRepo database.NotificationLogRepository,
	selectChannel ChannelFactory,
	eligibility Eligibility,
	throttle time.Duration,
	autoRun bool,
) NotificationUseCase {
	return &notificationService{
		repo:          repo,
		logRepo:       logRepo,
		selectChannel: selectChannel,
		eligibility:   eligibility,
		throttle:      throttle,
		autoRun:       autoRun,
		now:           time.Now,
		sleep:         time.Sleep,
		reports:       make(map[string]*entity.RunReport),
		jobs:          make(chan entity.RunContext, 1),
	}
}

func (s *notificationService) LoadAppointments(r io.Reader) (entity.TableStats, error) {
	records, err := database.ParseCSV(r)
	if err != nil {
		return entity.TableStats{}, err
	}

	s.repo.Replace(records)

	// a fresh table starts a fresh automatic-run cycle
	s.mu.Lock()
	s.autoExecuted = false
	s.mu.Unlock()

	stats := s.repo.Stats()
	logrus.Infof("appointment table loaded: %d records, %d pending, %d rescheduled",
		stats.Total, stats.Pending, stats.Rescheduled)
	return stats, nil
}

// TriggerRun enqueues one batch run. Runs are serialized: a trigger while
// another run is in flight is rejected instead of queued behind it.
func (s *notificationService) TriggerRun(_ context.Context, automatic bool) (string, error) {
	if !s.repo.Loaded() {
		return "", entity.ErrEmptyTable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return "", entity.ErrRunInProgress
	}
	if automatic && s.autoExecuted {
		return "", entity.ErrAlreadyExecuted
	}

	run := entity.RunContext{
		ID:        uuid.New().String(),
		Today:     s.now(),
		Automatic: automatic,
	}
	s.reports[run.ID] = &entity.RunReport{ID: run.ID}
	s.running = true
	if automatic {
		s.autoExecuted = true
	}

	s.jobs <- run
	return run.ID, nil
}

// Jobs is consumed by the single batch worker.
func (s *notificationService) Jobs() <-chan entity.RunContext {
	return s.jobs
}

// ExecuteRun processes one batch: reminders first, then reschedules, one
// delivery at a time with a throttle pause after every attempt. Per-row
// failures never abort the rest of the batch.
func (s *notificationService) ExecuteRun(ctx context.Context, run entity.RunContext) {
	report := &entity.RunReport{ID: run.ID, StartedAt: s.now()}

	defer func() {
		report.FinishedAt = s.now()
		report.Done = true

		s.mu.Lock()
		s.reports[run.ID] = report
		s.running = false
		s.mu.Unlock()

		logrus.Infof("run %s finished: %d/%d reminders, %d/%d reschedules, %d errors",
			run.ID, report.RemindersSent, report.RemindersProcessed,
			report.ReschedulesSent, report.ReschedulesProcessed, report.Errors)
	}()

	snapshot, generation := s.repo.Snapshot()
	reminders, reschedules := s.eligibility.Candidates(snapshot, run.Today)

	if len(reminders) == 0 && len(reschedules) == 0 {
		logrus.Info("no notifications due")
		return
	}

	ch := s.selectChannel(ctx)
	report.Channel = ch.Name()
	logrus.Infof("run %s: %d reminders, %d reschedules over %s",
		run.ID, len(reminders), len(reschedules), ch.Name())

	for _, cand := range reminders {
		report.RemindersProcessed++
		if s.deliver(ctx, ch, cand, generation, entity.TypeReminder) {
			report.RemindersSent++
		} else {
			report.Errors++
		}
		s.sleep(s.throttle)
	}

	for _, cand := range reschedules {
		report.ReschedulesProcessed++
		if s.deliver(ctx, ch, cand, generation, entity.TypeReschedule) {
			report.ReschedulesSent++
		} else {
			report.Errors++
		}
		s.sleep(s.throttle)
	}
}

// deliver handles one row: render, send, update state on success, always
// append a log entry. The snapshot generation guards the index-based update:
// if the table was replaced mid-run the store refuses the write.
func (s *notificationService) deliver(ctx context.Context, ch channel.Channel, cand Candidate, generation uint64, msgType entity.MessageType) bool {
	var text string
	if msgType == entity.TypeReminder {
		text = message.Reminder(&cand.Record)
	} else {
		text = message.Reschedule(&cand.Record)
	}

	res := ch.Send(ctx, cand.Record.Phone, text)

	if res.Success {
		now := s.now()
		date, clock := now.Format("2006-01-02"), now.Format("15:04:05")

		var err error
		if msgType == entity.TypeReminder {
			err = s.repo.MarkReminderSent(cand.Index, generation, date, clock, res.Method)
		} else {
			err = s.repo.MarkRescheduleSent(cand.Index, generation, date, clock, res.Method)
		}
		if err != nil {
			logrus.Errorf("failed to update record %d after delivery: %v", cand.Index, err)
		}
	} else {
		logrus.Warnf("delivery to %s failed: %s", cand.Record.PatientName, res.Detail)
	}

	entry := entity.LogEntry{
		ID:        uuid.New().String(),
		Timestamp: s.now(),
		Patient:   cand.Record.PatientName,
		Phone:     cand.Record.Phone,
		Type:      msgType,
		Method:    res.Method,
		Message:   text,
		Status:    entity.StatusSent,
	}
	if !res.Success {
		entry.Status = entity.StatusError
		entry.Error = res.Detail
	}

	// a log write failure must not fail the batch
	if err := s.logRepo.Append(ctx, entry); err != nil {
		logrus.Errorf("failed to append log entry: %v", err)
	}

	return res.Success
}

func (s *notificationService) GetRun(id string) (*entity.RunReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[id]
	if !ok {
		return nil, entity.ErrRunNotFound
	}

	copied := *report
	return &copied, nil
}

func (s *notificationService) Logs(ctx context.Context) ([]entity.LogEntry, error) {
	return s.logRepo.List(ctx)
}

func (s *notificationService) Records(notified, rescheduled *bool) []entity.AppointmentRecord {
	return s.repo.Filtered(notified, rescheduled)
}

func (s *notificationService) Stats() entity.TableStats {
	return s.repo.Stats()
}

func (s *notificationService) Export(w io.Writer) error {
	if !s.repo.Loaded() {
		return entity.ErrEmptyTable
	}
	records, _ := s.repo.Snapshot()
	return database.WriteCSV(w, records)
}

func (s *notificationService) AutoRunEnabled() bool {
	return s.autoRun
}
