package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nschafer/dugout/pkg/database"
	"github.com/nschafer/dugout/pkg/utils"
)

type HealthHandler struct {
	db *database.DB
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := h.db.DB.DB(); err != nil {
		dbStatus = "error"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error"
	}

	utils.SendSuccess(c, gin.H{
		"status":   "ok",
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
