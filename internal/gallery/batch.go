package gallery

import (
	"context"
	"fmt"

	"github.com/timmy/dogo/internal/domain"
	"golang.org/x/sync/errgroup"
)

// MaxBatch returns the largest count accepted by Batch.
func (f *Fetcher) MaxBatch() int {
	return f.maxBatch
}

// Batch fetches count random references in one metadata call, appends them to the
// gallery, then downloads all of them concurrently.
//
// The references are appended before any bytes are fetched and stay appended when a
// download fails; in that case the whole call fails and no images are returned. The
// returned images are in reference order regardless of completion order. The cursor
// does not move. If the source returns fewer references than requested, only those
// are appended and downloaded; references beyond count are dropped.
//
// Once the metadata call has returned, its references are appended even if ctx is
// cancelled while waiting for a running operation. If Reset runs while the downloads
// are in flight, the positions no longer exist and every returned image has Index -1.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - count: number of images requested, between 1 and MaxBatch.
// Returns:
//   - []*domain.Image: images in the order the source returned their references.
//   - error: domain.ErrInvalidCount, or a metadata or download error.
func (f *Fetcher) Batch(ctx context.Context, count int) ([]*domain.Image, error) {
	if count < 1 || count > f.maxBatch {
		return nil, fmt.Errorf("%w: %d is outside [1, %d]", domain.ErrInvalidCount, count, f.maxBatch)
	}

	refs, err := f.source.FetchRandomMany(ctx, count)
	if err != nil {
		return nil, err
	}
	if len(refs) > count {
		refs = refs[:count]
	}

	base, resets := f.appendAll(ctx, refs)

	images := make([]*domain.Image, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			img, err := f.download(gctx, ref, base+i)
			if err != nil {
				return fmt.Errorf("batch image %d: %w", i, err)
			}
			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	discarded := f.resets != resets
	f.mu.RUnlock()
	if discarded {
		for _, img := range images {
			img.Index = -1
		}
	}
	return images, nil
}

// appendAll commits refs to the gallery in one step. It returns the index of the
// first and the Reset count at the time of the append. The owner lock is taken
// without cancellation so references from a completed metadata call are never lost.
func (f *Fetcher) appendAll(ctx context.Context, refs []domain.ImageReference) (int, uint64) {
	// Acquire only fails for a cancelled context.
	_ = f.owner.Acquire(context.WithoutCancel(ctx), 1)
	defer f.owner.Release(1)

	f.mu.Lock()
	defer f.mu.Unlock()

	base := len(f.gallery)
	f.gallery = append(f.gallery, refs...)
	return base, f.resets
}
