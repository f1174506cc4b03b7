package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// Students
	CreateStudent(ctx context.Context, student *model.Student) error
	CreateStudents(ctx context.Context, students []model.Student) error
	ListStudents(ctx context.Context, ownerID string, includeArchived bool) ([]model.Student, error)
	GetStudent(ctx context.Context, ownerID, studentID string) (*model.Student, error)
	UpdateStudent(ctx context.Context, student *model.Student) error
	SetStudentArchived(ctx context.Context, ownerID, studentID string, archived bool) error

	// Lessons
	CreateLesson(ctx context.Context, lesson *model.Lesson) error
	GetLesson(ctx context.Context, lessonID string) (*model.Lesson, error)
	GetLessonForOwner(ctx context.Context, ownerID, lessonID string) (*model.Lesson, error)
	ListLessons(ctx context.Context, ownerID string, studentID *string) ([]model.Lesson, error)
	SetLessonUploaded(ctx context.Context, lessonID, audioRef string) error
	UpdateLessonStatus(ctx context.Context, lessonID string, status model.LessonStatus, errorMessage *string) error
	SaveTranscript(ctx context.Context, lessonID, transcript string, next model.LessonStatus) error
	SaveExtraction(ctx context.Context, lessonID string, extraction model.Extraction, next model.LessonStatus) error
	CompleteLesson(ctx context.Context, lessonID string, outputs []model.Output) error
	ResetLessonForRetry(ctx context.Context, lessonID string) error
	MarkStaleLessonsFailed(ctx context.Context, staleAfter time.Duration, message string) (int64, error)

	// Outputs
	GetOutputForOwner(ctx context.Context, ownerID, outputID string) (*model.Output, error)
	ListOutputsByLesson(ctx context.Context, lessonID string) ([]model.Output, error)
	UpdateOutput(ctx context.Context, output *model.Output) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}
