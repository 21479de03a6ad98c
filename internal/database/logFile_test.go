package database

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/citasalud/notifier/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(patient string) entity.LogEntry {
	return entity.LogEntry{
		ID:        patient,
		Timestamp: time.Now(),
		Patient:   patient,
		Phone:     "912345678",
		Type:      entity.TypeReminder,
		Method:    "demo",
		Message:   "hola",
		Status:    entity.StatusSent,
	}
}

func TestFileLogAppendAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notification_log.json")
	repo := NewFileLogRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testEntry("María")))
	require.NoError(t, repo.Append(ctx, testEntry("Pedro")))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "María", entries[0].Patient)
	assert.Equal(t, "Pedro", entries[1].Patient)
}

func TestFileLogMissingFileIsEmpty(t *testing.T) {
	repo := NewFileLogRepository(filepath.Join(t.TempDir(), "missing.json"))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileLogToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notification_log.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewFileLogRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testEntry("María")))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "María", entries[0].Patient)
}

func TestFileLogConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notification_log.json")
	repo := NewFileLogRepository(path)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, testEntry("Concurrente")))
		}()
	}
	wg.Wait()

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}
