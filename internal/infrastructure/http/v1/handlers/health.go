package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespoint/internal/infrastructure/http/v1/dto"
	"salespoint/internal/infrastructure/storage/postgres"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	BaseHandler
	pool *postgres.Pool
}

// NewHealthHandler creates the handler.
func NewHealthHandler(pool *postgres.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Live always answers 200 while the process runs.
func (h *HealthHandler) Live(c *gin.Context) {
	h.OK(c, dto.StatusResponse{Status: "ok"})
}

// Ready answers 200 only when the database responds.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.pool.Healthy(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.StatusResponse{Status: "database unavailable"})
		return
	}
	h.OK(c, dto.StatusResponse{Status: "ok"})
}
