package worker

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/shangobashi/NoteSquared-C/internal/config"
	"github.com/shangobashi/NoteSquared-C/internal/logger"
	"github.com/shangobashi/NoteSquared-C/internal/model"
	"github.com/shangobashi/NoteSquared-C/internal/pipeline"
	"github.com/shangobashi/NoteSquared-C/internal/queue"
)

// PipelineWorker consumes pipeline jobs and drives the orchestrator, one run
// per job. The per-lesson lock guarantees no two runs for the same lesson id
// execute concurrently, even when a retry races an in-flight run.
type PipelineWorker struct {
	cfg          *config.Config
	orchestrator *pipeline.Orchestrator
	consumer     *queue.Consumer
	lock         *queue.LessonLock
	workerPool   *WorkerPool
	log          zerolog.Logger
}

func NewPipelineWorker(
	cfg *config.Config,
	orchestrator *pipeline.Orchestrator,
	redisClient *queue.RedisClient,
) *PipelineWorker {
	return &PipelineWorker{
		cfg:          cfg,
		orchestrator: orchestrator,
		consumer:     queue.NewConsumer(redisClient, cfg),
		lock:         queue.NewLessonLock(redisClient, cfg),
		workerPool:   NewWorkerPool(cfg.Workers.Pipeline.Count),
		log:          logger.Get(),
	}
}

func (w *PipelineWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting pipeline worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumePipelineQueue(ctx, w.handleMessage)
}

func (w *PipelineWorker) Stop() {
	w.log.Info().Msg("Stopping pipeline worker")
	w.workerPool.Stop()
}

func (w *PipelineWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.PipelineJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal pipeline job")
		return err
	}

	w.log.Info().
		Str("lesson_id", job.LessonID).
		Str("student", job.StudentName).
		Msg("Processing pipeline job")

	return w.workerPool.Submit(ctx, func(ctx context.Context) error {
		return w.runLesson(ctx, job)
	})
}

func (w *PipelineWorker) runLesson(ctx context.Context, job model.PipelineJob) error {
	log := w.log.With().Str("lesson_id", job.LessonID).Logger()

	acquired, err := w.lock.Acquire(ctx, job.LessonID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to acquire lesson lock")
		return err
	}
	if !acquired {
		log.Warn().Msg("Lesson run already in flight, skipping duplicate job")
		return nil
	}
	defer func() {
		if err := w.lock.Release(context.Background(), job.LessonID); err != nil {
			log.Error().Err(err).Msg("Failed to release lesson lock")
		}
	}()

	return w.orchestrator.Run(ctx, job.LessonID, job.StudentName, job.Instrument)
}
