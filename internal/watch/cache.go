package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

// ResultCache memoizes audit results by export content hash, so a watch
// loop re-triggered by touch events or unrelated sibling files skips
// re-parsing unchanged exports. Results are immutable once returned by the
// auditor, which is what makes sharing them through a cache safe.
type ResultCache struct {
	cache otter.Cache[string, *ivr.BatchResult]
}

// NewResultCache creates a cache holding up to capacity results.
func NewResultCache(capacity int) (*ResultCache, error) {
	cache, err := otter.MustBuilder[string, *ivr.BatchResult](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build result cache: %w", err)
	}
	return &ResultCache{cache: cache}, nil
}

// Key returns the cache key for raw export content.
func Key(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached result for content, if any.
func (c *ResultCache) Get(content []byte) (*ivr.BatchResult, bool) {
	return c.cache.Get(Key(content))
}

// Put stores the result for content.
func (c *ResultCache) Put(content []byte, result *ivr.BatchResult) {
	c.cache.Set(Key(content), result)
}

// Close releases the cache.
func (c *ResultCache) Close() {
	c.cache.Close()
}
