package gallery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/timmy/dogo/internal/domain"
	"github.com/timmy/dogo/internal/source"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultMaxBatch matches the largest batch the Dog API serves in one call.
	DefaultMaxBatch    = 50
	DefaultConcurrency = 8
)

// Config holds configuration for a Fetcher.
type Config struct {
	// MaxBatch is the largest count accepted by Batch.
	MaxBatch int
	// Concurrency bounds parallel downloads in Batch; zero or less means unbounded.
	Concurrency int
	// Decoder receives downloaded bytes; nil uses InspectDecoder.
	Decoder Decoder
}

// Fetcher is a gallery of remotely fetched images with a navigation cursor.
type Fetcher struct {
	source      source.Source
	decoder     Decoder
	maxBatch    int
	concurrency int

	// owner admits one operation at a time; acquisition honours cancellation.
	owner *semaphore.Weighted

	// mu guards the fields below so Snapshot does not wait behind network I/O.
	mu       sync.RWMutex
	gallery  []domain.ImageReference
	cursor   int
	observer Observer
	// resets counts Reset calls so Batch can tell its positions were discarded.
	resets uint64
}

// NewFetcher creates a Fetcher with an empty gallery and the cursor at -1.
// Parameters:
//   - src: image source used for metadata and byte downloads.
//   - cfg: fetcher configuration; nil uses defaults.
// Returns:
//   - *Fetcher: initialized fetcher.
func NewFetcher(src source.Source, cfg *Config) *Fetcher {
	if cfg == nil {
		cfg = &Config{Concurrency: DefaultConcurrency}
	}

	maxBatch := cfg.MaxBatch
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatch
	}

	decoder := cfg.Decoder
	if decoder == nil {
		decoder = InspectDecoder
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = -1
	}

	return &Fetcher{
		source:      src,
		decoder:     decoder,
		maxBatch:    maxBatch,
		concurrency: concurrency,
		owner:       semaphore.NewWeighted(1),
		cursor:      -1,
	}
}

// Source returns the source the fetcher reads from.
func (f *Fetcher) Source() source.Source {
	return f.source
}

// Snapshot returns a copy of the cursor and the remembered references.
func (f *Fetcher) Snapshot() domain.GallerySnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	refs := make([]domain.ImageReference, len(f.gallery))
	copy(refs, f.gallery)
	return domain.GallerySnapshot{
		Cursor:     f.cursor,
		References: refs,
	}
}

// Next moves the cursor forward by one and returns the image at the new position.
// A previously visited position is downloaded again from its stored reference; a
// position past the end is filled with a new random reference.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.Image: image at the new cursor.
//   - error: wraps domain.ErrInvalidReference, domain.ErrTransport or domain.ErrDecode.
func (f *Fetcher) Next(ctx context.Context) (*domain.Image, error) {
	if err := f.owner.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.owner.Release(1)

	f.mu.RLock()
	next := f.cursor + 1
	cached := next < len(f.gallery)
	var ref domain.ImageReference
	if cached {
		ref = f.gallery[next]
	}
	f.mu.RUnlock()

	var (
		img *domain.Image
		err error
	)
	if cached {
		img, err = f.download(ctx, ref, next)
	} else {
		img, err = f.random(ctx)
	}
	if err != nil {
		return nil, err
	}

	f.moveCursor(next)
	return img, nil
}

// Previous moves the cursor back by one and returns the image at the new position.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.Image: image at the new cursor.
//   - error: domain.ErrOutOfRange when the cursor is at or before the first
//     position, domain.ErrEmptyGallery when nothing is stored, or a download error.
func (f *Fetcher) Previous(ctx context.Context) (*domain.Image, error) {
	if err := f.owner.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.owner.Release(1)

	f.mu.RLock()
	cursor, size := f.cursor, len(f.gallery)
	var ref domain.ImageReference
	if cursor > 0 && cursor-1 < size {
		ref = f.gallery[cursor-1]
	}
	f.mu.RUnlock()

	// The range check is reported before the empty check.
	if cursor <= 0 {
		return nil, fmt.Errorf("%w: cursor at %d", domain.ErrOutOfRange, cursor)
	}
	if size == 0 {
		return nil, domain.ErrEmptyGallery
	}

	prev := cursor - 1
	img, err := f.download(ctx, ref, prev)
	if err != nil {
		return nil, err
	}

	f.moveCursor(prev)
	return img, nil
}

// Current downloads the image at the cursor again without moving it.
func (f *Fetcher) Current(ctx context.Context) (*domain.Image, error) {
	if err := f.owner.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.owner.Release(1)

	f.mu.RLock()
	cursor := f.cursor
	var ref domain.ImageReference
	valid := cursor >= 0 && cursor < len(f.gallery)
	if valid {
		ref = f.gallery[cursor]
	}
	f.mu.RUnlock()

	if !valid {
		return nil, fmt.Errorf("%w: no image selected", domain.ErrOutOfRange)
	}
	return f.download(ctx, ref, cursor)
}

// Random fetches one new random image and appends its reference to the gallery.
// The cursor does not move and the observer is not notified.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.Image: the new image; Index is its gallery position.
//   - error: wraps domain.ErrInvalidReference, domain.ErrTransport or domain.ErrDecode.
func (f *Fetcher) Random(ctx context.Context) (*domain.Image, error) {
	if err := f.owner.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.owner.Release(1)

	return f.random(ctx)
}

// Reset empties the gallery, moves the cursor to -1 and notifies the observer.
// It waits for the operation in flight, if any, to finish.
func (f *Fetcher) Reset() {
	// Acquire only fails for a cancelled context.
	_ = f.owner.Acquire(context.Background(), 1)
	defer f.owner.Release(1)

	f.mu.Lock()
	f.gallery = nil
	f.cursor = -1
	f.resets++
	f.mu.Unlock()

	f.notify(-1)
}

// random must be called with the owner lock held. The reference is appended only
// after its bytes were acquired, so a failure leaves the gallery unchanged.
func (f *Fetcher) random(ctx context.Context) (*domain.Image, error) {
	ref, err := f.source.FetchRandom(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.RLock()
	index := len(f.gallery)
	f.mu.RUnlock()

	img, err := f.download(ctx, ref, index)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.gallery = append(f.gallery, ref)
	f.mu.Unlock()

	return img, nil
}

// moveCursor must be called with the owner lock held.
func (f *Fetcher) moveCursor(index int) {
	f.mu.Lock()
	f.cursor = index
	f.mu.Unlock()

	f.notify(index)
}

// download resolves a reference, fetches its bytes and passes them to the decoder.
// It does not touch fetcher state and is safe to call without the owner lock.
func (f *Fetcher) download(ctx context.Context, ref domain.ImageReference, index int) (*domain.Image, error) {
	location, err := domain.ParseReference(ref)
	if err != nil {
		return nil, err
	}

	data, err := f.source.FetchBytes(ctx, location)
	if err != nil {
		return nil, err
	}

	img, err := f.decoder.Decode(ref, data)
	if err != nil {
		if errors.Is(err, domain.ErrDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDecode, ref, err)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: %s: decoder returned no image", domain.ErrDecode, ref)
	}

	img.Reference = ref
	img.Index = index
	return img, nil
}
