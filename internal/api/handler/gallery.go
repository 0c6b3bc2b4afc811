package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timmy/dogo/internal/domain"
	"github.com/timmy/dogo/internal/gallery"
	"github.com/timmy/dogo/internal/logger"
)

// GalleryHandler exposes a Fetcher over HTTP.
type GalleryHandler struct {
	fetcher *gallery.Fetcher
	hub     *EventHub
}

// NewGalleryHandler creates a new gallery handler.
// Parameters:
//   - fetcher: gallery the handler drives.
//   - hub: cursor event hub for the SSE endpoint; may be nil.
// Returns:
//   - *GalleryHandler: initialized handler.
func NewGalleryHandler(fetcher *gallery.Fetcher, hub *EventHub) *GalleryHandler {
	return &GalleryHandler{
		fetcher: fetcher,
		hub:     hub,
	}
}

// ImageResponse is returned by the navigation endpoints.
type ImageResponse struct {
	Cursor int           `json:"cursor"`
	Size   int           `json:"gallery_size"`
	Image  *domain.Image `json:"image"`
}

// BatchRequest is the body of POST /batch.
type BatchRequest struct {
	Count int `json:"count" binding:"required"`
}

// BatchResponse is returned by POST /batch.
type BatchResponse struct {
	Images []*domain.Image `json:"images"`
	Size   int             `json:"gallery_size"`
}

// cursorResponse is for operations that leave the cursor on img, so the cursor is
// img.Index rather than a later read. gallery_size is read after the operation and
// may include concurrent appends.
func (h *GalleryHandler) cursorResponse(img *domain.Image) ImageResponse {
	return ImageResponse{Cursor: img.Index, Size: h.fetcher.Snapshot().Len(), Image: img}
}

// snapshotResponse is for Random, which does not move the cursor. Cursor and
// gallery_size are read after the operation returned.
func (h *GalleryHandler) snapshotResponse(img *domain.Image) ImageResponse {
	snap := h.fetcher.Snapshot()
	return ImageResponse{Cursor: snap.Cursor, Size: snap.Len(), Image: img}
}

// Next handles POST /api/v1/gallery/next.
func (h *GalleryHandler) Next(c *gin.Context) {
	img, err := h.fetcher.Next(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cursorResponse(img))
}

// Previous handles POST /api/v1/gallery/previous.
func (h *GalleryHandler) Previous(c *gin.Context) {
	img, err := h.fetcher.Previous(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.cursorResponse(img))
}

// Random handles POST /api/v1/gallery/random.
// The image is appended to the gallery but the cursor does not move.
func (h *GalleryHandler) Random(c *gin.Context) {
	img, err := h.fetcher.Random(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.snapshotResponse(img))
}

// Current handles GET /api/v1/gallery/current.
// With raw=1 the image bytes are written instead of JSON.
func (h *GalleryHandler) Current(c *gin.Context) {
	img, err := h.fetcher.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("raw") == "1" {
		contentType := img.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Data(http.StatusOK, contentType, img.Data)
		return
	}
	c.JSON(http.StatusOK, h.cursorResponse(img))
}

// Batch handles POST /api/v1/gallery/batch.
func (h *GalleryHandler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error(), Kind: "invalid_request"})
		return
	}

	ctx := c.Request.Context()
	start := time.Now()

	images, err := h.fetcher.Batch(ctx, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	size := h.fetcher.Snapshot().Len()
	logger.With(logger.Fields{logger.FieldGallery: size}).
		WithCount(len(images)).
		WithDuration(start).
		Info(ctx, "Batch fetched")

	c.JSON(http.StatusOK, BatchResponse{
		Images: images,
		Size:   size,
	})
}

// Reset handles POST /api/v1/gallery/reset.
func (h *GalleryHandler) Reset(c *gin.Context) {
	h.fetcher.Reset()
	c.JSON(http.StatusOK, h.fetcher.Snapshot())
}

// State handles GET /api/v1/gallery/state.
func (h *GalleryHandler) State(c *gin.Context) {
	snap := h.fetcher.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"source":       h.fetcher.Source().GetSourceID(),
		"max_batch":    h.fetcher.MaxBatch(),
		"cursor":       snap.Cursor,
		"gallery_size": snap.Len(),
		"references":   snap.References,
	})
}

// Events handles GET /api/v1/gallery/events as a server-sent event stream.
// The current cursor is sent first, then one "cursor" event per change.
func (h *GalleryHandler) Events(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event stream is disabled", Kind: "disabled"})
		return
	}

	updates, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	ctx := c.Request.Context()
	logger.CtxDebug(ctx, "Event stream opened: subscribers=%d", h.hub.Subscribers())

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("cursor", gin.H{"cursor": h.fetcher.Snapshot().Cursor})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case index, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("cursor", gin.H{"cursor": index})
			return true
		case <-ctx.Done():
			return false
		}
	})
}
