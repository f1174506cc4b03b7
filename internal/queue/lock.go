package queue

import (
	"context"
	"time"

	"github.com/shangobashi/NoteSquared-C/internal/config"

	"github.com/go-redis/redis/v8"
)

// LessonLock is an advisory lock keyed by lesson id. It enforces the
// single-run-per-lesson rule: a retry enqueued while a run is still in flight
// is skipped instead of executing concurrently. The TTL bounds how long a
// crashed worker can hold a lesson hostage.
type LessonLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLessonLock(redisClient *RedisClient, cfg *config.Config) *LessonLock {
	ttl := cfg.Redis.LockTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &LessonLock{
		client: redisClient.Client(),
		ttl:    ttl,
	}
}

func lockKey(lessonID string) string {
	return "pipeline:lock:" + lessonID
}

// Acquire returns true when this caller now owns the lock.
func (l *LessonLock) Acquire(ctx context.Context, lessonID string) (bool, error) {
	return l.client.SetNX(ctx, lockKey(lessonID), 1, l.ttl).Result()
}

func (l *LessonLock) Release(ctx context.Context, lessonID string) error {
	return l.client.Del(ctx, lockKey(lessonID)).Err()
}
