package database

import (
	"sync"

	"github.com/citasalud/notifier/internal/entity"
)

type memoryStore struct {
	mu         sync.RWMutex
	records    []entity.AppointmentRecord
	generation uint64
	loaded     bool
}

// NewAppointmentStore returns the in-memory table backing one uploaded
// file. Insertion order of the source rows is preserved.
func NewAppointmentStore() AppointmentRepository {
	return &memoryStore{}
}

func (s *memoryStore) Replace(records []entity.AppointmentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]entity.AppointmentRecord, len(records))
	copy(s.records, records)
	s.generation++
	s.loaded = true
}

// Snapshot hands out an owned copy so the batch worker never shares row
// memory with the store, tagged with the generation it belongs to.
func (s *memoryStore) Snapshot() ([]entity.AppointmentRecord, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.AppointmentRecord, len(s.records))
	copy(out, s.records)
	return out, s.generation
}

func (s *memoryStore) Filtered(notified, rescheduled *bool) []entity.AppointmentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entity.AppointmentRecord
	for _, rec := range s.records {
		if notified != nil && rec.Notified != *notified {
			continue
		}
		if rescheduled != nil && rec.Rescheduled != *rescheduled {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (s *memoryStore) MarkReminderSent(index int, generation uint64, date, clock, method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.row(index, generation)
	if err != nil {
		return err
	}

	rec.Notified = true
	rec.NotifiedAtDate = date
	rec.NotifiedAtTime = clock
	rec.NotificationMethod = method
	return nil
}

func (s *memoryStore) MarkRescheduleSent(index int, generation uint64, date, clock, method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.row(index, generation)
	if err != nil {
		return err
	}

	rec.Rescheduled = false
	rec.NotifiedAtDate = date
	rec.NotifiedAtTime = clock
	rec.NotificationMethod = method
	return nil
}

// row resolves an index taken from a snapshot. Caller must hold the lock.
func (s *memoryStore) row(index int, generation uint64) (*entity.AppointmentRecord, error) {
	if generation != s.generation {
		return nil, entity.ErrStaleTable
	}
	if index < 0 || index >= len(s.records) {
		return nil, entity.ErrRecordNotFound
	}
	return &s.records[index], nil
}

func (s *memoryStore) Stats() entity.TableStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := entity.TableStats{Total: len(s.records)}
	for _, rec := range s.records {
		if rec.Notified {
			stats.Notified++
		} else {
			stats.Pending++
		}
		if rec.Rescheduled {
			stats.Rescheduled++
		}
	}
	return stats
}

func (s *memoryStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
