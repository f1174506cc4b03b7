// Package pipeline drives a lesson from uploaded audio to generated outputs.
//
// One run walks the stage sequence UPLOADED -> TRANSCRIBING -> EXTRACTING ->
// GENERATING -> COMPLETED, persisting a status checkpoint before each provider
// call so a crash mid-stage is observable from the stored status. Any stage
// failure is caught once at the run boundary, recorded on the lesson as
// FAILED, and propagated to the caller. The orchestrator never retries;
// recovery is an explicit external reset back to UPLOADED.
package pipeline

import (
	"context"
	"database/sql"
	goerrors "errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shangobashi/NoteSquared-C/internal/model"
	"github.com/shangobashi/NoteSquared-C/pkg/errors"
)

// LessonStore is the slice of the repository the orchestrator writes through.
type LessonStore interface {
	GetLesson(ctx context.Context, lessonID string) (*model.Lesson, error)
	UpdateLessonStatus(ctx context.Context, lessonID string, status model.LessonStatus, errorMessage *string) error
	SaveTranscript(ctx context.Context, lessonID, transcript string, next model.LessonStatus) error
	SaveExtraction(ctx context.Context, lessonID string, extraction model.Extraction, next model.LessonStatus) error
	CompleteLesson(ctx context.Context, lessonID string, outputs []model.Output) error
}

// Transcriber turns an audio reference into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioRef string) (string, error)
}

// Extractor turns a transcript plus student context into the structured
// instruction record. It must be a pure function of its inputs.
type Extractor interface {
	Extract(ctx context.Context, transcript, studentName, instrument string) (model.Extraction, error)
}

// Generator produces content for every output type from the extraction
// record. It must not persist anything itself.
type Generator interface {
	Generate(ctx context.Context, extraction model.Extraction, studentName, instrument string) (map[model.OutputType]string, error)
}

type Orchestrator struct {
	store       LessonStore
	transcriber Transcriber
	extractor   Extractor
	generator   Generator
	log         zerolog.Logger
}

func NewOrchestrator(store LessonStore, transcriber Transcriber, extractor Extractor, generator Generator, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:       store,
		transcriber: transcriber,
		extractor:   extractor,
		generator:   generator,
		log:         log,
	}
}

// Run executes one pipeline run for a lesson already in UPLOADED state.
// Student context is supplied by the caller; the orchestrator does not resolve
// the student relationship. A vanished or ineligible lesson is a caller error
// and exits without mutating status.
func (o *Orchestrator) Run(ctx context.Context, lessonID, studentName, instrument string) error {
	log := o.log.With().Str("lesson_id", lessonID).Logger()

	lesson, err := o.store.GetLesson(ctx, lessonID)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			log.Warn().Msg("Lesson vanished before processing")
			return nil
		}
		return fmt.Errorf("failed to load lesson: %w", err)
	}

	if lesson.Status != model.LessonStatusUploaded {
		log.Warn().Str("status", string(lesson.Status)).Msg("Lesson not eligible for processing")
		return nil
	}

	if err := o.process(ctx, log, lesson, studentName, instrument); err != nil {
		message := err.Error()
		if markErr := o.store.UpdateLessonStatus(ctx, lessonID, model.LessonStatusFailed, &message); markErr != nil {
			log.Error().Err(markErr).Msg("Failed to mark lesson as FAILED")
		}
		log.Error().Err(err).Msg("Pipeline run failed")
		return err
	}

	log.Info().Msg("Pipeline run completed")
	return nil
}

func (o *Orchestrator) process(ctx context.Context, log zerolog.Logger, lesson *model.Lesson, studentName, instrument string) error {
	if lesson.AudioRef == nil || *lesson.AudioRef == "" {
		return errors.NewStageError(errors.StageTranscription, fmt.Errorf("lesson has no audio reference"))
	}

	// Checkpoint before calling the provider: a crash from here on is
	// observable as a lesson stuck in TRANSCRIBING.
	if err := o.store.UpdateLessonStatus(ctx, lesson.ID, model.LessonStatusTranscribing, nil); err != nil {
		return errors.NewStageError(errors.StagePersistence, err)
	}

	log.Debug().Str("audio_ref", *lesson.AudioRef).Msg("Transcribing audio")
	transcript, err := o.transcriber.Transcribe(ctx, *lesson.AudioRef)
	if err != nil {
		return errors.NewStageError(errors.StageTranscription, err)
	}

	if err := o.store.SaveTranscript(ctx, lesson.ID, transcript, model.LessonStatusExtracting); err != nil {
		return errors.NewStageError(errors.StagePersistence, err)
	}

	log.Debug().Msg("Extracting instruction record")
	extraction, err := o.extractor.Extract(ctx, transcript, studentName, instrument)
	if err != nil {
		return errors.NewStageError(errors.StageExtraction, err)
	}

	if err := o.store.SaveExtraction(ctx, lesson.ID, extraction, model.LessonStatusGenerating); err != nil {
		return errors.NewStageError(errors.StagePersistence, err)
	}

	log.Debug().Msg("Generating outputs")
	generated, err := o.generator.Generate(ctx, extraction, studentName, instrument)
	if err != nil {
		return errors.NewStageError(errors.StageGeneration, err)
	}

	outputs, err := buildOutputBatch(lesson.ID, generated)
	if err != nil {
		return errors.NewStageError(errors.StageGeneration, err)
	}

	// Output batch and COMPLETED status commit together; a failure here
	// leaves zero output rows, never a partial set.
	if err := o.store.CompleteLesson(ctx, lesson.ID, outputs); err != nil {
		return errors.NewStageError(errors.StagePersistence, err)
	}

	return nil
}

// buildOutputBatch validates that generation covered exactly the fixed output
// type set with non-empty content, and fixes the insertion order.
func buildOutputBatch(lessonID string, generated map[model.OutputType]string) ([]model.Output, error) {
	if len(generated) != len(model.AllOutputTypes) {
		return nil, fmt.Errorf("%w: got %d of %d types",
			errors.ErrIncompleteGeneration, len(generated), len(model.AllOutputTypes))
	}

	outputs := make([]model.Output, 0, len(model.AllOutputTypes))
	for _, outputType := range model.AllOutputTypes {
		content, ok := generated[outputType]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", errors.ErrIncompleteGeneration, outputType)
		}
		if content == "" {
			return nil, fmt.Errorf("%w: empty content for %s", errors.ErrIncompleteGeneration, outputType)
		}
		outputs = append(outputs, model.Output{
			LessonID:   lessonID,
			OutputType: outputType,
			Content:    content,
		})
	}

	return outputs, nil
}
