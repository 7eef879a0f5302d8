package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

func TestResultCache_HitOnIdenticalContent(t *testing.T) {
	t.Parallel()

	cache, err := NewResultCache(16)
	require.NoError(t, err)
	defer cache.Close()

	content := []byte("<scripts><IVRScripts><Name>A</Name></IVRScripts></scripts>")
	result := &ivr.BatchResult{Summary: ivr.Summary{ScriptsAttempted: 1}}

	_, ok := cache.Get(content)
	assert.False(t, ok)

	cache.Put(content, result)

	got, ok := cache.Get(content)
	require.True(t, ok)
	assert.Same(t, result, got)
}

func TestResultCache_MissOnChangedContent(t *testing.T) {
	t.Parallel()

	cache, err := NewResultCache(16)
	require.NoError(t, err)
	defer cache.Close()

	cache.Put([]byte("one"), &ivr.BatchResult{})

	_, ok := cache.Get([]byte("two"))
	assert.False(t, ok)
}

func TestKey_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Key([]byte("abc")), Key([]byte("abc")))
	assert.NotEqual(t, Key([]byte("abc")), Key([]byte("abd")))
}
