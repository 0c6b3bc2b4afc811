package dogceo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/dogo/internal/domain"
)

const (
	SourceID   = "dogceo"
	SourceName = "Dog CEO"

	// DefaultBaseURL is the random image endpoint of the Dog API.
	DefaultBaseURL = "https://dog.ceo/api/breeds/image/random"
)

// Config holds configuration for the Dog API adapter.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Adapter implements the Source interface for the Dog API.
type Adapter struct {
	client  *resty.Client
	baseURL string
}

// NewAdapter creates a new Dog API adapter.
// Parameters:
//   - cfg: adapter configuration; nil or empty fields use defaults.
// Returns:
//   - *Adapter: initialized adapter.
func NewAdapter(cfg *Config) *Adapter {
	if cfg == nil {
		cfg = &Config{}
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New()
	client.SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Adapter{
		client:  client,
		baseURL: baseURL,
	}
}

// GetSourceID returns the unique identifier for this source.
func (a *Adapter) GetSourceID() string {
	return SourceID
}

// GetDisplayName returns a human-readable name for this source.
func (a *Adapter) GetDisplayName() string {
	return SourceName
}

// FetchRandom fetches one random image reference.
func (a *Adapter) FetchRandom(ctx context.Context) (domain.ImageReference, error) {
	body, err := a.get(ctx, a.baseURL)
	if err != nil {
		return "", err
	}
	decoded, err := DecodeSingle(body)
	if err != nil {
		return "", err
	}
	return decoded.Single(), nil
}

// FetchRandomMany fetches up to count random image references in one call.
func (a *Adapter) FetchRandomMany(ctx context.Context, count int) ([]domain.ImageReference, error) {
	body, err := a.get(ctx, a.baseURL+"/"+strconv.Itoa(count))
	if err != nil {
		return nil, err
	}
	decoded, err := DecodeMany(body)
	if err != nil {
		return nil, err
	}
	return decoded.References, nil
}

// FetchBytes downloads the image behind an http or https reference.
func (a *Adapter) FetchBytes(ctx context.Context, location *url.URL) ([]byte, error) {
	if location == nil {
		return nil, fmt.Errorf("%w: nil location", domain.ErrInvalidReference)
	}
	if location.Scheme != "http" && location.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s is not an http location", domain.ErrInvalidReference, location)
	}
	return a.get(ctx, location.String())
}

func (a *Adapter) get(ctx context.Context, target string) ([]byte, error) {
	httpResp, err := a.client.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", domain.ErrTransport, target, err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return nil, fmt.Errorf("%w: GET %s: HTTP %d", domain.ErrTransport, target, httpResp.StatusCode())
	}

	return httpResp.Body(), nil
}
