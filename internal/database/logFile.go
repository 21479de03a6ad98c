package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/citasalud/notifier/internal/entity"
	"github.com/sirupsen/logrus"
)

// fileLogRepository persists the delivery log as one JSON array, rewritten
// on every append. The mutex makes the read-append-write cycle a critical
// section so concurrent appends cannot lose entries.
type fileLogRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileLogRepository(path string) NotificationLogRepository {
	return &fileLogRepository{path: path}
}

func (r *fileLogRepository) Append(_ context.Context, entry entity.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.readAll()
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal notification log: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write notification log: %w", err)
	}
	return nil
}

func (r *fileLogRepository) List(_ context.Context) ([]entity.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readAll(), nil
}

// readAll tolerates a missing or corrupt log file by starting over empty.
func (r *fileLogRepository) readAll() []entity.LogEntry {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("notification log unreadable, starting empty: %v", err)
		}
		return []entity.LogEntry{}
	}

	var entries []entity.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logrus.Warnf("notification log corrupt, starting empty: %v", err)
		return []entity.LogEntry{}
	}
	return entries
}
