package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/citasalud/notifier/internal/entity"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const logKey = "notification:log"

// redisLogRepository keeps the delivery log in a Redis list, one JSON entry
// per element. RPUSH is atomic, so no extra locking is needed here.
type redisLogRepository struct {
	client *redis.Client
}

func NewRedisLogRepository(client *redis.Client) NotificationLogRepository {
	return &redisLogRepository{client: client}
}

func (r *redisLogRepository) Append(ctx context.Context, entry entity.LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	if err := r.client.RPush(ctx, logKey, data).Err(); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

func (r *redisLogRepository) List(ctx context.Context) ([]entity.LogEntry, error) {
	raw, err := r.client.LRange(ctx, logKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notification log: %w", err)
	}

	entries := make([]entity.LogEntry, 0, len(raw))
	for _, item := range raw {
		var entry entity.LogEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			logrus.Warnf("skipping corrupt log entry: %v", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
