package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	C "github.com/spiker/fick-server/constant"
)

func TestCache_Setup(t *testing.T) {
	defer SetupCache(&CacheConfiguration{})

	SetupCache(&CacheConfiguration{Disabled: true})
	assert.Nil(t, GetCache())

	SetupCache(&CacheConfiguration{Expiration: 1})
	store := GetCache()
	assert.NotNil(t, store)

	store.SetDefault("key", 1)
	_, expiration, found := store.GetWithExpiration("key")
	assert.True(t, found)
	assert.WithinDuration(t, time.Now().Add(time.Second), expiration, 500*time.Millisecond)
}

func TestCache_Durations(t *testing.T) {
	cfg := &CacheConfiguration{}
	assert.Equal(t, C.CalculationCacheExpiration, cfg.expiration())
	assert.Equal(t, C.CalculationCacheCleanup, cfg.cleanup())

	cfg = &CacheConfiguration{Expiration: 30, Cleanup: 90}
	assert.Equal(t, 30*time.Second, cfg.expiration())
	assert.Equal(t, 90*time.Second, cfg.cleanup())
}
