package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shangobashi/NoteSquared-C/internal/config"
	"github.com/shangobashi/NoteSquared-C/internal/db"
	"github.com/shangobashi/NoteSquared-C/internal/logger"
)

const staleMessage = "processing stalled: no progress within the stale window, retry to re-run"

// Sweeper periodically fails lessons stuck in a mid-pipeline status. A worker
// crash between a checkpoint and the provider return leaves the lesson parked
// in TRANSCRIBING/EXTRACTING/GENERATING forever; failing it surfaces the
// error to the user and makes the lesson retryable.
type Sweeper struct {
	cfg    *config.Config
	repo   db.Repository
	ticker *time.Ticker
	log    zerolog.Logger
}

func NewSweeper(cfg *config.Config, repo db.Repository) *Sweeper {
	return &Sweeper{
		cfg:  cfg,
		repo: repo,
		log:  logger.Get(),
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	interval := s.cfg.Workers.Sweeper.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	s.log.Info().Dur("interval", interval).Msg("Starting sweeper")

	if s.cfg.Workers.Sweeper.RunOnStart {
		if err := s.sweep(ctx); err != nil {
			s.log.Error().Err(err).Msg("Initial sweep failed")
		}
	}

	s.ticker = time.NewTicker(interval)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Sweeper context cancelled")
			return ctx.Err()
		case <-s.ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.log.Error().Err(err).Msg("Sweep failed")
			}
		}
	}
}

func (s *Sweeper) Stop() {
	s.log.Info().Msg("Stopping sweeper")
	if s.ticker != nil {
		s.ticker.Stop()
	}
}

func (s *Sweeper) sweep(ctx context.Context) error {
	staleAfter := s.cfg.Workers.Sweeper.StaleAfter
	if staleAfter <= 0 {
		staleAfter = 30 * time.Minute
	}

	count, err := s.repo.MarkStaleLessonsFailed(ctx, staleAfter, staleMessage)
	if err != nil {
		return err
	}

	if count > 0 {
		s.log.Warn().Int64("count", count).Msg("Marked stale lessons as failed")
	} else {
		s.log.Debug().Msg("No stale lessons found")
	}
	return nil
}
