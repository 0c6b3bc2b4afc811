// Package gallery implements a concurrency-safe image gallery over a random image source.
//
// A Fetcher remembers every reference it has seen during a session and offers
// previous/next navigation over that list, single random fetches, and batch prefetch.
// Operations on one Fetcher are serialized: the reference list and the cursor are
// only changed by one operation at a time, and a failed operation leaves them as they
// were. The one exception is Batch, which commits the references returned by the
// metadata call before downloading their bytes.
//
// Cursor changes are reported to a single observer registered with SetObserver. The
// observer runs synchronously, before the operation returns, and never concurrently
// with itself. It may call Snapshot but must not call operations that change the
// gallery it observes.
package gallery
