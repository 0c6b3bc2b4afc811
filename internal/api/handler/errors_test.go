package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timmy/dogo/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"invalid count", fmt.Errorf("%w: 0", domain.ErrInvalidCount), http.StatusBadRequest, "invalid_count"},
		{"out of range", domain.ErrOutOfRange, http.StatusConflict, "out_of_range"},
		{"empty gallery", domain.ErrEmptyGallery, http.StatusConflict, "empty_gallery"},
		{"invalid reference", domain.ErrInvalidReference, http.StatusBadGateway, "invalid_reference"},
		{"decode", domain.ErrDecode, http.StatusBadGateway, "decode"},
		{"transport", fmt.Errorf("%w: status 503", domain.ErrTransport), http.StatusBadGateway, "transport"},
		{"deadline during download", fmt.Errorf("%w: get https://img.test/0.jpg: %w", domain.ErrTransport, context.DeadlineExceeded), http.StatusGatewayTimeout, "timeout"},
		{"deadline waiting", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"canceled during download", fmt.Errorf("%w: %w", domain.ErrTransport, context.Canceled), http.StatusServiceUnavailable, "canceled"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, kind := classify(tt.err)
			require.Equal(t, tt.status, status)
			require.Equal(t, tt.kind, kind)
		})
	}
}
