package lib

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	C "github.com/spiker/fick-server/constant"
)

// 計算結果キャッシュ設定。
type CacheConfiguration struct {
	Expiration int // 秒。
	Cleanup    int // 秒。
	Disabled   bool
}

func (cfg *CacheConfiguration) String() string {
	return fmt.Sprintf(`[Cache]
Expiration: %v
Cleanup:    %v
Disabled:   %v`, cfg.expiration(), cfg.cleanup(), cfg.Disabled)
}

func (cfg *CacheConfiguration) expiration() time.Duration {
	if cfg.Expiration > 0 {
		return time.Duration(cfg.Expiration) * time.Second
	}
	return C.CalculationCacheExpiration
}

func (cfg *CacheConfiguration) cleanup() time.Duration {
	if cfg.Cleanup > 0 {
		return time.Duration(cfg.Cleanup) * time.Second
	}
	return C.CalculationCacheCleanup
}

var calculationCache *cache.Cache

func SetupCache(cfg *CacheConfiguration) {
	if cfg.Disabled {
		calculationCache = nil
		return
	}
	calculationCache = cache.New(cfg.expiration(), cfg.cleanup())
}

// 無効化されている場合はnil。
func GetCache() *cache.Cache {
	return calculationCache
}
