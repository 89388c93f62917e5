package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixCache(t *testing.T) {
	cache := NewFixCache("v1", "sig")
	assert.Equal(t, "v1", cache.Version)
	assert.Equal(t, "sig", cache.Signature)

	assert.False(t, cache.IsFresh("a.php", "h1"))

	cache.Record("a.php", "h1")
	assert.True(t, cache.IsFresh("a.php", "h1"))
	assert.False(t, cache.IsFresh("a.php", "h2"))
	assert.False(t, cache.IsFresh("a.php", ""))

	cache.Forget("a.php")
	assert.False(t, cache.IsFresh("a.php", "h1"))
}

func TestFixCache_ZeroValues(t *testing.T) {
	var missing *FixCache
	assert.False(t, missing.IsFresh("a.php", "h1"))

	empty := &FixCache{}
	empty.Record("a.php", "h1")
	assert.True(t, empty.IsFresh("a.php", "h1"))
}
