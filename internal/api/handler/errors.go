package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/dogo/internal/domain"
	"github.com/timmy/dogo/internal/logger"
)

// ErrorResponse is the body written for failed gallery requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// classify maps an error to its HTTP status and a stable kind label.
func classify(err error) (int, string) {
	switch {
	// Sources wrap context errors in ErrTransport; the deadline wins.
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	case errors.Is(err, domain.ErrInvalidCount):
		return http.StatusBadRequest, "invalid_count"
	case errors.Is(err, domain.ErrOutOfRange):
		return http.StatusConflict, "out_of_range"
	case errors.Is(err, domain.ErrEmptyGallery):
		return http.StatusConflict, "empty_gallery"
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusBadGateway, "invalid_reference"
	case errors.Is(err, domain.ErrDecode):
		return http.StatusBadGateway, "decode"
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "transport"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// respondError logs err and writes it as an ErrorResponse.
func respondError(c *gin.Context, err error) {
	status, kind := classify(err)

	log := logger.FromContext(c.Request.Context()).WithError(err).WithField("kind", kind)
	if status >= http.StatusInternalServerError {
		log.Error("Gallery request failed")
	} else {
		log.Warn("Gallery request rejected")
	}

	c.JSON(status, ErrorResponse{Error: err.Error(), Kind: kind})
}
