package source

import (
	"context"
	"net/url"

	"github.com/timmy/dogo/internal/domain"
)

// Source defines the interface for random image providers.
type Source interface {
	// GetSourceID returns the unique identifier for this source.
	GetSourceID() string

	// GetDisplayName returns a human-readable name for this source.
	GetDisplayName() string

	// FetchRandom asks the provider for one random image reference.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	// Returns:
	//   - domain.ImageReference: the reference, not yet validated.
	//   - error: wraps domain.ErrTransport or domain.ErrDecode.
	FetchRandom(ctx context.Context) (domain.ImageReference, error)

	// FetchRandomMany asks the provider for up to count random references in one call.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - count: number of references requested.
	// Returns:
	//   - []domain.ImageReference: references in the order the provider returned them.
	//   - error: wraps domain.ErrTransport or domain.ErrDecode.
	FetchRandomMany(ctx context.Context, count int) ([]domain.ImageReference, error)

	// FetchBytes downloads the raw bytes behind a parsed reference.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - location: parsed reference.
	// Returns:
	//   - []byte: raw image bytes.
	//   - error: wraps domain.ErrTransport or domain.ErrInvalidReference.
	FetchBytes(ctx context.Context, location *url.URL) ([]byte, error)
}
