package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

const lessonColumns = `id, owner_id, student_id, lesson_date, status, duration_seconds,
	audio_ref, transcript, extraction, error_message, created_at, updated_at`

// nullExtraction mirrors database/sql's Null[model.Extraction] (Go 1.22+),
// which is unavailable on the Go 1.21 toolchain this module builds with.
type nullExtraction struct {
	V     model.Extraction
	Valid bool
}

func (n *nullExtraction) Scan(value interface{}) error {
	if value == nil {
		n.V, n.Valid = model.Extraction{}, false
		return nil
	}
	n.Valid = true
	return n.V.Scan(value)
}

func scanLesson(row interface{ Scan(...interface{}) error }) (*model.Lesson, error) {
	var lesson model.Lesson
	var extraction nullExtraction
	err := row.Scan(
		&lesson.ID, &lesson.OwnerID, &lesson.StudentID, &lesson.LessonDate, &lesson.Status,
		&lesson.DurationSeconds, &lesson.AudioRef, &lesson.Transcript, &extraction,
		&lesson.ErrorMessage, &lesson.CreatedAt, &lesson.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if extraction.Valid {
		lesson.Extraction = &extraction.V
	}
	return &lesson, nil
}

func (r *repository) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	query := `INSERT INTO lessons (id, owner_id, student_id, lesson_date, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`
	_, err := r.db.ExecContext(ctx, query,
		lesson.ID, lesson.OwnerID, lesson.StudentID, lesson.LessonDate, lesson.Status)
	return err
}

func (r *repository) GetLesson(ctx context.Context, lessonID string) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = ?`
	return scanLesson(r.db.QueryRowContext(ctx, query, lessonID))
}

func (r *repository) GetLessonForOwner(ctx context.Context, ownerID, lessonID string) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = ? AND owner_id = ?`
	return scanLesson(r.db.QueryRowContext(ctx, query, lessonID, ownerID))
}

func (r *repository) ListLessons(ctx context.Context, ownerID string, studentID *string) ([]model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE owner_id = ?`
	args := []interface{}{ownerID}
	if studentID != nil {
		query += ` AND student_id = ?`
		args = append(args, *studentID)
	}
	query += ` ORDER BY lesson_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, *lesson)
	}

	return lessons, rows.Err()
}

func (r *repository) SetLessonUploaded(ctx context.Context, lessonID, audioRef string) error {
	query := `UPDATE lessons SET audio_ref = ?, status = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, audioRef, model.LessonStatusUploaded, lessonID)
	return err
}

func (r *repository) UpdateLessonStatus(ctx context.Context, lessonID string, status model.LessonStatus, errorMessage *string) error {
	query := `UPDATE lessons SET status = ?, error_message = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, errorMessage, lessonID)
	return err
}

// SaveTranscript persists the transcription result together with the next
// stage checkpoint in a single write.
func (r *repository) SaveTranscript(ctx context.Context, lessonID, transcript string, next model.LessonStatus) error {
	query := `UPDATE lessons SET transcript = ?, status = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, transcript, next, lessonID)
	return err
}

func (r *repository) SaveExtraction(ctx context.Context, lessonID string, extraction model.Extraction, next model.LessonStatus) error {
	query := `UPDATE lessons SET extraction = ?, status = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, extraction, next, lessonID)
	return err
}

// CompleteLesson inserts the full output batch and the COMPLETED status in one
// transaction so a failure mid-write never leaves a partial output set beside
// a completed lesson.
func (r *repository) CompleteLesson(ctx context.Context, lessonID string, outputs []model.Output) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO outputs (id, lesson_id, output_type, content, is_edited, is_shared, created_at, updated_at)
			  VALUES (?, ?, ?, ?, FALSE, FALSE, NOW(), NOW())`

	for _, output := range outputs {
		id := output.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, query, id, lessonID, output.OutputType, output.Content); err != nil {
			return err
		}
	}

	statusQuery := `UPDATE lessons SET status = ?, error_message = NULL, updated_at = NOW() WHERE id = ?`
	if _, err := tx.ExecContext(ctx, statusQuery, model.LessonStatusCompleted, lessonID); err != nil {
		return err
	}

	return tx.Commit()
}

// ResetLessonForRetry is the external retry reset: back to UPLOADED with the
// error cleared. Eligibility (FAILED or UPLOADED only) is gated by the caller.
func (r *repository) ResetLessonForRetry(ctx context.Context, lessonID string) error {
	query := `UPDATE lessons SET status = ?, error_message = NULL, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, model.LessonStatusUploaded, lessonID)
	return err
}

func (r *repository) MarkStaleLessonsFailed(ctx context.Context, staleAfter time.Duration, message string) (int64, error) {
	cutoff := time.Now().Add(-staleAfter)
	query := `UPDATE lessons SET status = ?, error_message = ?, updated_at = NOW()
			  WHERE status IN (?, ?, ?) AND updated_at < ?`
	result, err := r.db.ExecContext(ctx, query,
		model.LessonStatusFailed, message,
		model.LessonStatusTranscribing, model.LessonStatusExtracting, model.LessonStatusGenerating,
		cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
