package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/dogo/internal/gallery"
	"github.com/timmy/dogo/internal/logger"
	"github.com/timmy/dogo/internal/service"
)

// ArchiveHandler archives gallery images into object storage.
type ArchiveHandler struct {
	fetcher *gallery.Fetcher
	archive *service.ArchiveService
}

// NewArchiveHandler creates a new archive handler.
func NewArchiveHandler(fetcher *gallery.Fetcher, archive *service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{
		fetcher: fetcher,
		archive: archive,
	}
}

// ArchiveCurrent handles POST /api/v1/gallery/archive.
// The image at the cursor is downloaded again and archived.
func (h *ArchiveHandler) ArchiveCurrent(c *gin.Context) {
	ctx := c.Request.Context()

	img, err := h.fetcher.Current(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := h.archive.Archive(ctx, img)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("Failed to archive image")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to archive image: " + err.Error(), Kind: "archive"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// List handles GET /api/v1/gallery/archive.
func (h *ArchiveHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	images, total, err := h.archive.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Kind: "archive"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"images": images,
		"total":  total,
	})
}
