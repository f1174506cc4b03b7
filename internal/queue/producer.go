package queue

import (
	"context"
	"encoding/json"

	"github.com/shangobashi/NoteSquared-C/internal/config"
	"github.com/shangobashi/NoteSquared-C/internal/model"

	"github.com/go-redis/redis/v8"
)

type Producer struct {
	client *redis.Client
	cfg    *config.Config
}

func NewProducer(redisClient *RedisClient, cfg *config.Config) *Producer {
	return &Producer{
		client: redisClient.Client(),
		cfg:    cfg,
	}
}

// EnqueuePipelineJob fires one orchestrator run for a lesson. Success or
// failure of the run is observable only via the lesson's persisted status.
func (p *Producer) EnqueuePipelineJob(ctx context.Context, job model.PipelineJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return p.client.LPush(ctx, p.cfg.Redis.PipelineQueue, data).Err()
}
