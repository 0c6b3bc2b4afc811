package dogceo

import (
	"encoding/json"
	"fmt"

	"github.com/timmy/dogo/internal/domain"
)

// Kind tags which remote call produced a decoded response.
type Kind int

const (
	KindSingle Kind = iota
	KindMany
)

func (k Kind) String() string {
	if k == KindMany {
		return "many"
	}
	return "single"
}

// DecodedResponse holds the references carried by a metadata response.
type DecodedResponse struct {
	Kind       Kind
	References []domain.ImageReference
}

// Single returns the reference of a single-message response.
func (r *DecodedResponse) Single() domain.ImageReference {
	if len(r.References) == 0 {
		return ""
	}
	return r.References[0]
}

// singleMessageResponse is the envelope of the random image endpoint.
type singleMessageResponse struct {
	Message *string `json:"message"`
	Status  string  `json:"status"`
}

// messageArrayResponse is the envelope of the random images endpoint.
type messageArrayResponse struct {
	Message *[]string `json:"message"`
	Status  string    `json:"status"`
}

const statusError = "error"

// DecodeSingle parses a {"message": "<url>"} body.
// Parameters:
//   - body: raw response body.
// Returns:
//   - *DecodedResponse: response tagged KindSingle with exactly one reference.
//   - error: wraps domain.ErrDecode if the body is malformed or the field is missing.
func DecodeSingle(body []byte) (*DecodedResponse, error) {
	var resp singleMessageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: single message: %w", domain.ErrDecode, err)
	}
	if resp.Status == statusError {
		return nil, fmt.Errorf("%w: remote reported error", domain.ErrDecode)
	}
	if resp.Message == nil {
		return nil, fmt.Errorf("%w: single message: missing message field", domain.ErrDecode)
	}
	return &DecodedResponse{
		Kind:       KindSingle,
		References: []domain.ImageReference{domain.ImageReference(*resp.Message)},
	}, nil
}

// DecodeMany parses a {"message": ["<url>", ...]} body.
// Parameters:
//   - body: raw response body.
// Returns:
//   - *DecodedResponse: response tagged KindMany, references in body order.
//   - error: wraps domain.ErrDecode if the body is malformed or the field is missing.
func DecodeMany(body []byte) (*DecodedResponse, error) {
	var resp messageArrayResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: message array: %w", domain.ErrDecode, err)
	}
	if resp.Status == statusError {
		return nil, fmt.Errorf("%w: remote reported error", domain.ErrDecode)
	}
	if resp.Message == nil {
		return nil, fmt.Errorf("%w: message array: missing message field", domain.ErrDecode)
	}
	return &DecodedResponse{
		Kind:       KindMany,
		References: domain.References(*resp.Message),
	}, nil
}
