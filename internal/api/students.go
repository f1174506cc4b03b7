package api

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shangobashi/NoteSquared-C/internal/model"
)

type studentCreateRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Instrument  string  `json:"instrument" binding:"required"`
	Level       string  `json:"level"`
	ParentEmail *string `json:"parent_email"`
	ParentName  *string `json:"parent_name"`
	Notes       *string `json:"notes"`
}

type studentUpdateRequest struct {
	FullName    *string `json:"full_name"`
	Instrument  *string `json:"instrument"`
	Level       *string `json:"level"`
	ParentEmail *string `json:"parent_email"`
	ParentName  *string `json:"parent_name"`
	Notes       *string `json:"notes"`
}

func (h *Handler) GetInstruments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"instruments": model.Instruments})
}

func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	level := model.StudentLevel(req.Level)
	if req.Level == "" {
		level = model.StudentLevelBeginner
	}
	if !level.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student level"})
		return
	}

	student := &model.Student{
		ID:          uuid.NewString(),
		OwnerID:     currentUserID(c),
		FullName:    req.FullName,
		Instrument:  req.Instrument,
		Level:       level,
		ParentEmail: req.ParentEmail,
		ParentName:  req.ParentName,
		Notes:       req.Notes,
	}

	if err := h.repo.CreateStudent(c.Request.Context(), student); err != nil {
		h.log.Error().Err(err).Msg("Failed to create student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *Handler) ListStudents(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"

	students, err := h.repo.ListStudents(c.Request.Context(), currentUserID(c), includeArchived)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list students")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if students == nil {
		students = []model.Student{}
	}
	c.JSON(http.StatusOK, students)
}

func (h *Handler) GetStudent(c *gin.Context) {
	student, err := h.repo.GetStudent(c.Request.Context(), currentUserID(c), c.Param("student_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *Handler) UpdateStudent(c *gin.Context) {
	var req studentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	student, err := h.repo.GetStudent(c.Request.Context(), currentUserID(c), c.Param("student_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Instrument != nil {
		student.Instrument = *req.Instrument
	}
	if req.Level != nil {
		level := model.StudentLevel(*req.Level)
		if !level.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student level"})
			return
		}
		student.Level = level
	}
	if req.ParentEmail != nil {
		student.ParentEmail = req.ParentEmail
	}
	if req.ParentName != nil {
		student.ParentName = req.ParentName
	}
	if req.Notes != nil {
		student.Notes = req.Notes
	}

	if err := h.repo.UpdateStudent(c.Request.Context(), student); err != nil {
		h.log.Error().Err(err).Msg("Failed to update student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *Handler) ArchiveStudent(c *gin.Context) {
	h.setArchived(c, true)
}

func (h *Handler) UnarchiveStudent(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *Handler) setArchived(c *gin.Context, archived bool) {
	ownerID := currentUserID(c)
	studentID := c.Param("student_id")

	if _, err := h.repo.GetStudent(c.Request.Context(), ownerID, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.repo.SetStudentArchived(c.Request.Context(), ownerID, studentID, archived); err != nil {
		h.log.Error().Err(err).Msg("Failed to update archive flag")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	student, err := h.repo.GetStudent(c.Request.Context(), ownerID, studentID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to reload student")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, student)
}

// ImportRoster bulk-creates students from an uploaded xlsx roster.
func (h *Handler) ImportRoster(c *gin.Context) {
	fileHeader, err := c.FormFile("roster")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing roster file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open roster file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read roster file"})
		return
	}

	rows, err := h.roster.Parse(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to parse roster: %v", err)})
		return
	}

	if err := h.roster.Validate(c.Request.Context(), rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Roster validation failed: %v", err)})
		return
	}

	ownerID := currentUserID(c)
	students := make([]model.Student, 0, len(rows))
	for _, row := range rows {
		level := model.StudentLevel(row.Level)
		if row.Level == "" {
			level = model.StudentLevelBeginner
		}
		student := model.Student{
			ID:         uuid.NewString(),
			OwnerID:    ownerID,
			FullName:   row.FullName,
			Instrument: row.Instrument,
			Level:      level,
		}
		if row.ParentEmail != "" {
			student.ParentEmail = &row.ParentEmail
		}
		if row.ParentName != "" {
			student.ParentName = &row.ParentName
		}
		if row.Notes != "" {
			student.Notes = &row.Notes
		}
		students = append(students, student)
	}

	if err := h.repo.CreateStudents(c.Request.Context(), students); err != nil {
		h.log.Error().Err(err).Msg("Failed to import roster")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.log.Info().Int("count", len(students)).Msg("Roster imported")
	c.JSON(http.StatusOK, model.RosterImportResult{Created: len(students)})
}
