package depindex

import (
	ristretto "github.com/dgraph-io/ristretto/v2"

	"github.com/Jonas-dot/hyrise/payload"
)

// payloadCache is a bounded read-through cache in front of Tree.Get,
// keyed by the canonical byte encoding of an LHS key. GetPayload is the
// only read this system expects to be hot enough to matter; mutation
// paths invalidate a key's entry the moment its record changes rather
// than trying to keep a cached copy correct in place.
type payloadCache struct {
	c *ristretto.Cache[string, *payload.Record]
}

func newPayloadCache() *payloadCache {
	c, err := ristretto.NewCache(&ristretto.Config[string, *payload.Record]{
		NumCounters: 1e5,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		// Config above is static and always valid; a construction error
		// here means the ristretto build itself is broken.
		panic(err)
	}
	return &payloadCache{c: c}
}

func (pc *payloadCache) get(keyBytes string) (*payload.Record, bool) {
	return pc.c.Get(keyBytes)
}

func (pc *payloadCache) set(keyBytes string, rec *payload.Record) {
	pc.c.Set(keyBytes, rec, 1)
	// Set is processed asynchronously; Wait makes it visible to the very
	// next Get, which matters here since callers are choosing between a
	// tree descent and a cache hit on every call, not just eventually.
	pc.c.Wait()
}

func (pc *payloadCache) invalidate(keyBytes string) {
	pc.c.Del(keyBytes)
	pc.c.Wait()
}
