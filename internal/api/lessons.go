package api

import (
	"database/sql"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

type lessonCreateRequest struct {
	StudentID       string `json:"student_id" binding:"required"`
	LessonDate      string `json:"lesson_date" binding:"required"`
	DurationSeconds *int   `json:"duration_seconds"`
}

type lessonResponse struct {
	model.Lesson
	StudentName string         `json:"student_name,omitempty"`
	Outputs     []model.Output `json:"outputs,omitempty"`
}

// allowedAudioTypes is the upload content-type allowlist.
var allowedAudioTypes = map[string]string{
	"audio/m4a":   ".m4a",
	"audio/mp4":   ".m4a",
	"audio/x-m4a": ".m4a",
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/webm":  ".webm",
	"video/mp4":   ".mp4",
}

func (h *Handler) CreateLesson(c *gin.Context) {
	var req lessonCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	lessonDate, err := time.Parse("2006-01-02", req.LessonDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lesson_date must be YYYY-MM-DD"})
		return
	}

	ownerID := currentUserID(c)
	if _, err := h.repo.GetStudent(c.Request.Context(), ownerID, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	lesson := &model.Lesson{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		StudentID:       req.StudentID,
		LessonDate:      lessonDate,
		Status:          model.LessonStatusCreated,
		DurationSeconds: req.DurationSeconds,
	}

	if err := h.repo.CreateLesson(c.Request.Context(), lesson); err != nil {
		h.log.Error().Err(err).Msg("Failed to create lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

func (h *Handler) ListLessons(c *gin.Context) {
	ownerID := currentUserID(c)

	var studentID *string
	if s := c.Query("student_id"); s != "" {
		studentID = &s
	}

	lessons, err := h.repo.ListLessons(c.Request.Context(), ownerID, studentID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list lessons")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	students, err := h.repo.ListStudents(c.Request.Context(), ownerID, true)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list students")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	names := make(map[string]string, len(students))
	for _, s := range students {
		names[s.ID] = s.FullName
	}

	resp := make([]lessonResponse, 0, len(lessons))
	for _, l := range lessons {
		resp = append(resp, lessonResponse{Lesson: l, StudentName: names[l.StudentID]})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetLesson(c *gin.Context) {
	lesson, err := h.repo.GetLessonForOwner(c.Request.Context(), currentUserID(c), c.Param("lesson_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	outputs, err := h.repo.ListOutputsByLesson(c.Request.Context(), lesson.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list outputs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp := lessonResponse{Lesson: *lesson, Outputs: outputs}
	if student, err := h.repo.GetStudent(c.Request.Context(), lesson.OwnerID, lesson.StudentID); err == nil {
		resp.StudentName = student.FullName
	}

	c.JSON(http.StatusOK, resp)
}

// GetLessonStatus is the polling endpoint. It returns only the status fields
// so the frontend can poll cheaply while the pipeline runs.
func (h *Handler) GetLessonStatus(c *gin.Context) {
	lesson, err := h.repo.GetLessonForOwner(c.Request.Context(), currentUserID(c), c.Param("lesson_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, model.LessonStatusResponse{
		ID:           lesson.ID,
		Status:       lesson.Status,
		ErrorMessage: lesson.ErrorMessage,
	})
}

// UploadAudio stores the recording, marks the lesson UPLOADED and enqueues a
// pipeline run for it.
func (h *Handler) UploadAudio(c *gin.Context) {
	ownerID := currentUserID(c)

	lesson, err := h.repo.GetLessonForOwner(c.Request.Context(), ownerID, c.Param("lesson_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing audio file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := allowedAudioTypes[strings.ToLower(contentType)]
	if !ok {
		// Fall back to the filename extension for clients that send
		// application/octet-stream.
		ext = strings.ToLower(path.Ext(fileHeader.Filename))
		switch ext {
		case ".m4a", ".mp3", ".wav", ".webm", ".mp4":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported audio format"})
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open audio file"})
		return
	}
	defer file.Close()

	key := "lessons/" + lesson.ID + "/" + uuid.NewString() + ext
	if err := h.store.Upload(c.Request.Context(), key, file); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to upload audio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store audio"})
		return
	}

	audioRef := h.store.Ref(key)
	if err := h.repo.SetLessonUploaded(c.Request.Context(), lesson.ID, audioRef); err != nil {
		h.log.Error().Err(err).Msg("Failed to mark lesson uploaded")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.enqueueLesson(c, lesson); err != nil {
		h.log.Error().Err(err).Str("lesson_id", lesson.ID).Msg("Failed to enqueue pipeline job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start processing"})
		return
	}

	h.log.Info().Str("lesson_id", lesson.ID).Str("audio_ref", audioRef).Msg("Audio uploaded")
	c.JSON(http.StatusOK, model.LessonStatusResponse{ID: lesson.ID, Status: model.LessonStatusUploaded})
}

// ProcessLesson re-runs the pipeline for a failed or stuck-at-UPLOADED lesson.
// The reset back to UPLOADED happens here, outside the pipeline itself.
func (h *Handler) ProcessLesson(c *gin.Context) {
	lesson, err := h.repo.GetLessonForOwner(c.Request.Context(), currentUserID(c), c.Param("lesson_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !lesson.Status.Retryable() {
		c.JSON(http.StatusConflict, gin.H{"error": "Lesson is not eligible for processing"})
		return
	}
	if lesson.AudioRef == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Lesson has no uploaded audio"})
		return
	}

	if err := h.repo.ResetLessonForRetry(c.Request.Context(), lesson.ID); err != nil {
		h.log.Error().Err(err).Msg("Failed to reset lesson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.enqueueLesson(c, lesson); err != nil {
		h.log.Error().Err(err).Str("lesson_id", lesson.ID).Msg("Failed to enqueue pipeline job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start processing"})
		return
	}

	h.log.Info().Str("lesson_id", lesson.ID).Msg("Lesson queued for processing")
	c.JSON(http.StatusOK, model.LessonStatusResponse{ID: lesson.ID, Status: model.LessonStatusUploaded})
}

func (h *Handler) enqueueLesson(c *gin.Context, lesson *model.Lesson) error {
	job := model.PipelineJob{LessonID: lesson.ID}
	if student, err := h.repo.GetStudent(c.Request.Context(), lesson.OwnerID, lesson.StudentID); err == nil {
		job.StudentName = student.FullName
		job.Instrument = student.Instrument
	}
	return h.producer.EnqueuePipelineJob(c.Request.Context(), job)
}
