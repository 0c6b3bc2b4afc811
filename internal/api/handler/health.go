package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/dogo/internal/gallery"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	fetcher *gallery.Fetcher
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(fetcher *gallery.Fetcher) *HealthHandler {
	return &HealthHandler{fetcher: fetcher}
}

// Health returns the health status of the service and the source it reads from.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"source": h.fetcher.Source().GetSourceID(),
	})
}
