package model

import "time"

type LessonStatus string

const (
	LessonStatusCreated      LessonStatus = "CREATED"
	LessonStatusUploaded     LessonStatus = "UPLOADED"
	LessonStatusTranscribing LessonStatus = "TRANSCRIBING"
	LessonStatusExtracting   LessonStatus = "EXTRACTING"
	LessonStatusGenerating   LessonStatus = "GENERATING"
	LessonStatusCompleted    LessonStatus = "COMPLETED"
	LessonStatusFailed       LessonStatus = "FAILED"
)

// InFlight reports whether the status marks a lesson mid-pipeline. A crash
// between a checkpoint and the next stage leaves the lesson parked in one of
// these states until the sweeper or an operator intervenes.
func (s LessonStatus) InFlight() bool {
	switch s {
	case LessonStatusTranscribing, LessonStatusExtracting, LessonStatusGenerating:
		return true
	}
	return false
}

// Retryable reports whether the external retry reset may move the lesson back
// to UPLOADED.
func (s LessonStatus) Retryable() bool {
	return s == LessonStatusFailed || s == LessonStatusUploaded
}

type Lesson struct {
	ID              string       `json:"id" db:"id"`
	OwnerID         string       `json:"owner_id" db:"owner_id"`
	StudentID       string       `json:"student_id" db:"student_id"`
	LessonDate      time.Time    `json:"lesson_date" db:"lesson_date"`
	Status          LessonStatus `json:"status" db:"status"`
	DurationSeconds *int         `json:"duration_seconds,omitempty" db:"duration_seconds"`
	AudioRef        *string      `json:"audio_ref,omitempty" db:"audio_ref"`
	Transcript      *string      `json:"transcript,omitempty" db:"transcript"`
	Extraction      *Extraction  `json:"extraction,omitempty" db:"extraction"`
	ErrorMessage    *string      `json:"error_message,omitempty" db:"error_message"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}
