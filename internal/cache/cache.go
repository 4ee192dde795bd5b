// Package cache memoizes interpretation results. Entries are content-addressed
// by a hash of the normalized input tuple, so identical logical requests hit
// the same entry while distinct user/persona combinations never share one.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
)

// Cache is a TTL-bounded in-process result cache. Expiry is handled by the
// underlying LRU's background sweep, never by blocking the read path.
type Cache struct {
	lru    *expirable.LRU[string, domain.Interpretation]
	hits   atomic.Int64
	misses atomic.Int64
}

func New(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, domain.Interpretation](size, nil, ttl),
	}
}

// Key derives the deterministic cache key for a request tuple. Dream text is
// lower-cased and trimmed so incidental whitespace and casing collide; userID
// and persona are part of the tuple so the same dream under a different
// persona never conflates.
func Key(dreamText, userID, personaKey string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(dreamText))))
	h.Write([]byte{'|'})
	h.Write([]byte(userID))
	h.Write([]byte{'|'})
	h.Write([]byte(personaKey))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) Get(key string) (domain.Interpretation, bool) {
	result, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return result, ok
}

// Put stores a result. Concurrent writers for the same key are last-write-wins.
func (c *Cache) Put(key string, result domain.Interpretation) {
	c.lru.Add(key, result)
}

// Stats reports hit/miss counters for logging.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
