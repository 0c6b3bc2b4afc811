package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ImageReference is an opaque locator for one remotely fetchable image.
// Duplicates are legitimate: the remote endpoint may return the same reference twice.
type ImageReference string

// String returns the raw reference.
func (r ImageReference) String() string {
	return string(r)
}

// ParseReference turns a reference into a fetchable location.
// Parameters:
//   - ref: reference as received from the remote endpoint.
// Returns:
//   - *url.URL: absolute http, https or file URL.
//   - error: wraps ErrInvalidReference if the reference is unusable.
func ParseReference(ref ImageReference) (*url.URL, error) {
	raw := strings.TrimSpace(string(ref))
	if raw == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidReference, raw, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %q has no host", ErrInvalidReference, raw)
		}
	case "file":
		if u.Path == "" {
			return nil, fmt.Errorf("%w: %q has no path", ErrInvalidReference, raw)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidReference, raw)
	}

	return u, nil
}

// References converts raw strings into references, preserving order.
func References(raw []string) []ImageReference {
	refs := make([]ImageReference, len(raw))
	for i, s := range raw {
		refs[i] = ImageReference(s)
	}
	return refs
}
