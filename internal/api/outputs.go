package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type outputUpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) GetOutput(c *gin.Context) {
	output, err := h.repo.GetOutputForOwner(c.Request.Context(), currentUserID(c), c.Param("output_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Output not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get output")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, output)
}

// UpdateOutput replaces the content of a generated output. The first edit
// captures the generated text so a later revert can restore it.
func (h *Handler) UpdateOutput(c *gin.Context) {
	var req outputUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	output, err := h.repo.GetOutputForOwner(c.Request.Context(), currentUserID(c), c.Param("output_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Output not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get output")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	output.ApplyEdit(req.Content)

	if err := h.repo.UpdateOutput(c.Request.Context(), output); err != nil {
		h.log.Error().Err(err).Msg("Failed to update output")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *Handler) ShareOutput(c *gin.Context) {
	output, err := h.repo.GetOutputForOwner(c.Request.Context(), currentUserID(c), c.Param("output_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Output not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get output")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	output.IsShared = true

	if err := h.repo.UpdateOutput(c.Request.Context(), output); err != nil {
		h.log.Error().Err(err).Msg("Failed to share output")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, output)
}

// RevertOutput restores the first-generated content of an edited output.
func (h *Handler) RevertOutput(c *gin.Context) {
	output, err := h.repo.GetOutputForOwner(c.Request.Context(), currentUserID(c), c.Param("output_id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Output not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to get output")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !output.Revert() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Output has no original content to revert to"})
		return
	}

	if err := h.repo.UpdateOutput(c.Request.Context(), output); err != nil {
		h.log.Error().Err(err).Msg("Failed to revert output")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, output)
}
