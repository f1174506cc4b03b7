package errors

import (
	"errors"
	"fmt"
)

var (
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrLessonNotEligible    = errors.New("lesson is not eligible for processing")
	ErrOutputNotFound       = errors.New("output not found")
	ErrNoOriginalContent    = errors.New("no original content to revert to")
	ErrIncompleteGeneration = errors.New("generation did not cover all output types")
	ErrInvalidAudioFormat   = errors.New("unsupported audio format")
	ErrInvalidFileFormat    = errors.New("invalid file format")
	ErrSchemaValidation     = errors.New("schema validation failed")
	ErrLockHeld             = errors.New("pipeline lock already held")
)

// Stage names used in StageError tags.
const (
	StageTranscription = "transcription"
	StageExtraction    = "extraction"
	StageGeneration    = "generation"
	StagePersistence   = "persistence"
)

// StageError tags a pipeline failure with the stage that raised it. The
// orchestrator records its message on the lesson and propagates it upward.
type StageError struct {
	Stage string
	Err   error
}

func (e StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %s", e.Stage, e.Err.Error())
}

func (e StageError) Unwrap() error {
	return e.Err
}

func NewStageError(stage string, err error) error {
	return StageError{Stage: stage, Err: err}
}

// Is and As re-export the standard helpers so callers of this package do not
// need a second errors import.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}
