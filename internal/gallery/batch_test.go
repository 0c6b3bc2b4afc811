package gallery

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/timmy/dogo/internal/domain"
)

func TestBatchPreservesOrder(t *testing.T) {
	f, src, rec := newTestFetcher(t)

	// Earlier references finish last.
	for i := 0; i < 5; i++ {
		src.delay[fmt.Sprintf("/batch-%d.jpg", i)] = time.Duration(5-i) * 10 * time.Millisecond
	}

	images, err := f.Batch(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, images, 5)
	for i, img := range images {
		require.Equal(t, i, img.Index)
		require.Equal(t, domain.ImageReference(fmt.Sprintf("https://img.test/batch-%d.jpg", i)), img.Reference)
		require.Equal(t, fmt.Sprintf("/batch-%d.jpg", i), string(img.Data))
	}

	snap := f.Snapshot()
	require.Equal(t, -1, snap.Cursor)
	require.Equal(t, 5, snap.Len())
	for i, ref := range snap.References {
		require.Equal(t, images[i].Reference, ref)
	}
	require.Empty(t, rec.all())
}

func TestBatchAppendsAfterExistingReferences(t *testing.T) {
	f, _, _ := newTestFetcher(t)
	ctx := context.Background()

	_, err := f.Next(ctx)
	require.NoError(t, err)

	images, err := f.Batch(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 1, images[0].Index)
	require.Equal(t, 3, images[2].Index)
	require.Equal(t, 4, f.Snapshot().Len())
	require.Equal(t, 0, f.Snapshot().Cursor)

	// Navigation walks into the prefetched references.
	img, err := f.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, images[0].Reference, img.Reference)
	require.Equal(t, 4, f.Snapshot().Len())
}

func TestBatchFewerReferencesThanRequested(t *testing.T) {
	f, src, _ := newTestFetcher(t)
	src.many = []domain.ImageReference{"https://img.test/x.jpg", "https://img.test/y.jpg"}

	images, err := f.Batch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.Equal(t, 2, f.Snapshot().Len())
}

func TestBatchDuplicateReferences(t *testing.T) {
	f, src, _ := newTestFetcher(t)
	src.many = []domain.ImageReference{"https://img.test/x.jpg", "https://img.test/x.jpg"}

	images, err := f.Batch(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 0, images[0].Index)
	require.Equal(t, 1, images[1].Index)
	require.Equal(t, 2, src.downloadCount("/x.jpg"))
}

func TestBatchDownloadFailureKeepsAppend(t *testing.T) {
	f, src, _ := newTestFetcher(t)
	src.fail["/batch-2.jpg"] = fmt.Errorf("%w: timeout", domain.ErrTransport)

	images, err := f.Batch(context.Background(), 4)
	require.ErrorIs(t, err, domain.ErrTransport)
	require.Nil(t, images)

	snap := f.Snapshot()
	require.Equal(t, 4, snap.Len())
	require.Equal(t, -1, snap.Cursor)
}

func TestBatchMetadataFailureAppendsNothing(t *testing.T) {
	f, src, _ := newTestFetcher(t)
	src.manyErr = fmt.Errorf("%w: missing message field", domain.ErrDecode)

	_, err := f.Batch(context.Background(), 3)
	require.ErrorIs(t, err, domain.ErrDecode)
	require.Zero(t, f.Snapshot().Len())
}

func TestBatchRejectsInvalidCount(t *testing.T) {
	f, _, _ := newTestFetcher(t)

	for _, count := range []int{-1, 0, f.MaxBatch() + 1} {
		_, err := f.Batch(context.Background(), count)
		require.ErrorIs(t, err, domain.ErrInvalidCount, "count %d", count)
	}
	require.Zero(t, f.Snapshot().Len())
}

func TestBatchCancellationKeepsAppend(t *testing.T) {
	f, src, _ := newTestFetcher(t)
	for i := 0; i < 3; i++ {
		src.delay[fmt.Sprintf("/batch-%d.jpg", i)] = time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := f.Batch(ctx, 3)
	require.Error(t, err)
	require.Less(t, time.Since(start), 500*time.Millisecond)
	require.Equal(t, 3, f.Snapshot().Len())
}

func TestBatchBoundedConcurrency(t *testing.T) {
	src := newFakeSource()
	f := NewFetcher(src, &Config{Concurrency: 1})
	for i := 0; i < 3; i++ {
		src.delay[fmt.Sprintf("/batch-%d.jpg", i)] = 30 * time.Millisecond
	}

	start := time.Now()
	images, err := f.Batch(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, images, 3)
	require.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestConcurrentBatchAndNext(t *testing.T) {
	f, _, _ := newTestFetcher(t)
	ctx := context.Background()

	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := f.Batch(ctx, 3)
			errs <- err
		}()
		go func() {
			_, err := f.Next(ctx)
			errs <- err
		}()
	}
	for i := 0; i < 20; i++ {
		require.NoError(t, <-errs)
	}

	snap := f.Snapshot()
	require.Equal(t, 9, snap.Cursor)
	// Every batch appends 3; a Next appends only when it runs past the end.
	require.GreaterOrEqual(t, snap.Len(), 30)
	require.LessOrEqual(t, snap.Len(), 40)
}

func TestBatchAppendsWhenCancelledWaitingForLock(t *testing.T) {
	f, src, _ := newTestFetcher(t)
	src.delay["/0.jpg"] = 200 * time.Millisecond
	for i := 0; i < 3; i++ {
		src.delay[fmt.Sprintf("/batch-%d.jpg", i)] = time.Second
	}

	done := make(chan struct{})
	go func() {
		_, _ = f.Next(context.Background())
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := f.Batch(ctx, 3)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	<-done
	snap := f.Snapshot()
	require.Equal(t, 4, snap.Len())
	require.Equal(t, domain.ImageReference("https://img.test/0.jpg"), snap.References[0])
	require.Equal(t, domain.ImageReference("https://img.test/batch-0.jpg"), snap.References[1])
	require.Equal(t, 0, snap.Cursor)
}

func TestBatchIndexesAfterConcurrentReset(t *testing.T) {
	f, src, _ := newTestFetcher(t)
	for i := 0; i < 2; i++ {
		src.delay[fmt.Sprintf("/batch-%d.jpg", i)] = 100 * time.Millisecond
	}

	go func() {
		time.Sleep(30 * time.Millisecond)
		f.Reset()
	}()

	images, err := f.Batch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, images, 2)
	for _, img := range images {
		require.Equal(t, -1, img.Index)
	}
	require.Zero(t, f.Snapshot().Len())
}

func TestBatchDropsReferencesBeyondCount(t *testing.T) {
	f, src, _ := newTestFetcher(t)
	src.many = []domain.ImageReference{"https://img.test/x.jpg", "https://img.test/y.jpg", "https://img.test/z.jpg"}

	images, err := f.Batch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.Equal(t, []domain.ImageReference{"https://img.test/x.jpg", "https://img.test/y.jpg"}, f.Snapshot().References)
}
