package localdir

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/timmy/dogo/internal/domain"
)

const SourceID = "localdir"

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Adapter implements the Source interface over a directory of image files.
// References are file:// URLs, so a gallery built from it behaves like one built
// from the remote API while working offline.
type Adapter struct {
	basePath string
	pick     func(n int) int

	mu     sync.Mutex
	items  []domain.ImageReference
	loaded bool
}

// NewAdapter creates a new local directory adapter.
// Parameters:
//   - basePath: directory scanned (recursively) for image files.
// Returns:
//   - *Adapter: initialized adapter; the directory is read on first use.
func NewAdapter(basePath string) *Adapter {
	return &Adapter{
		basePath: basePath,
		pick:     rand.IntN,
	}
}

// GetSourceID returns the unique identifier for this source.
func (a *Adapter) GetSourceID() string {
	return SourceID
}

// GetDisplayName returns a human-readable name for this source.
func (a *Adapter) GetDisplayName() string {
	return fmt.Sprintf("Local directory (%s)", a.basePath)
}

// FetchRandom picks one image file at random.
func (a *Adapter) FetchRandom(ctx context.Context) (domain.ImageReference, error) {
	refs, err := a.FetchRandomMany(ctx, 1)
	if err != nil {
		return "", err
	}
	return refs[0], nil
}

// FetchRandomMany picks count image files at random, with replacement.
func (a *Adapter) FetchRandomMany(ctx context.Context, count int) ([]domain.ImageReference, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	items, err := a.loadItems()
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	refs := make([]domain.ImageReference, 0, count)
	for i := 0; i < count; i++ {
		refs = append(refs, items[a.pick(len(items))])
	}
	return refs, nil
}

// FetchBytes reads the file behind a file:// reference.
func (a *Adapter) FetchBytes(ctx context.Context, location *url.URL) ([]byte, error) {
	if location == nil || location.Scheme != "file" {
		return nil, fmt.Errorf("%w: %v is not a file location", domain.ErrInvalidReference, location)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	data, err := os.ReadFile(filepath.FromSlash(location.Path))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrTransport, location.Path, err)
	}
	return data, nil
}

// Count returns the number of image files available.
func (a *Adapter) Count() (int, error) {
	items, err := a.loadItems()
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// loadItems scans the directory once and caches the sorted references.
func (a *Adapter) loadItems() ([]domain.ImageReference, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loaded {
		return a.items, nil
	}

	root, err := filepath.Abs(a.basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", domain.ErrTransport, a.basePath, err)
	}

	var items []domain.ImageReference
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
		items = append(items, domain.ImageReference(u.String()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan %s: %w", domain.ErrTransport, root, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no images found in %s", domain.ErrTransport, root)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i] < items[j]
	})

	a.items = items
	a.loaded = true
	return a.items, nil
}
