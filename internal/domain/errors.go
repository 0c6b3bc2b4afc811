package domain

import "errors"

// Error kinds returned by the gallery and its sources.
// Callers match them with errors.Is; causes are wrapped behind them.
var (
	// ErrInvalidReference is returned when a reference cannot be parsed into a fetchable location.
	ErrInvalidReference = errors.New("invalid image reference")

	// ErrTransport is returned when the remote service cannot be reached or answers with a failure status.
	ErrTransport = errors.New("transport failure")

	// ErrDecode is returned when a response body does not have the expected shape.
	ErrDecode = errors.New("decode failure")

	// ErrOutOfRange is returned when navigating backwards from the first position.
	ErrOutOfRange = errors.New("gallery index out of range")

	// ErrEmptyGallery is returned when navigating backwards with no stored references.
	ErrEmptyGallery = errors.New("gallery is empty")

	// ErrInvalidCount is returned when a batch size is outside the accepted range.
	ErrInvalidCount = errors.New("invalid batch count")
)
