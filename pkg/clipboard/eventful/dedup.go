package eventful

import (
	"sync/atomic"

	"github.com/cespare/xxhash"
)

// Deduplicator remembers the hash of the last content it saw.
type Deduplicator struct {
	lastHash atomic.Uint64
	seen     atomic.Bool
}

// Check reports whether data differs from the last checked content, and
// records it.
func (d *Deduplicator) Check(data []byte) (uint64, bool) {
	h := xxhash.Sum64(data)
	if d.seen.Load() && h == d.lastHash.Load() {
		return h, false
	}
	d.lastHash.Store(h)
	d.seen.Store(true)
	return h, true
}
