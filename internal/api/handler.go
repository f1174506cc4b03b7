package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shangobashi/NoteSquared-C/internal/auth"
	"github.com/shangobashi/NoteSquared-C/internal/config"
	"github.com/shangobashi/NoteSquared-C/internal/db"
	"github.com/shangobashi/NoteSquared-C/internal/logger"
	"github.com/shangobashi/NoteSquared-C/internal/model"
	"github.com/shangobashi/NoteSquared-C/internal/queue"
	"github.com/shangobashi/NoteSquared-C/internal/roster"
	"github.com/shangobashi/NoteSquared-C/internal/storage"
)

type Handler struct {
	repo     db.Repository
	producer *queue.Producer
	store    storage.Storage
	tokens   *auth.TokenManager
	roster   roster.ParsingStrategy
	cfg      *config.Config
	log      zerolog.Logger
}

func NewHandler(
	repo db.Repository,
	producer *queue.Producer,
	store storage.Storage,
	tokens *auth.TokenManager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		repo:     repo,
		producer: producer,
		store:    store,
		tokens:   tokens,
		roster:   roster.NewExcelStrategy(),
		cfg:      cfg,
		log:      logger.Get(),
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:  "healthy",
		Service: h.cfg.App.Name,
		Version: h.cfg.App.Version,
		Time:    time.Now().UTC(),
	})
}
