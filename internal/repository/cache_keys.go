package repository

import "StockVault/pkg/cache"

// Cache key layout, tiered by volatility: latest prices churn fastest,
// the symbol list slowest.
const (
	SymbolListKey = "symbols:list"
	CatalogCache  = "data:catalog"
)

func LatestPriceKey(symbol string) string { return cache.GenerateKey("price:latest", symbol) }
func DailyDataKey(symbol string) string   { return cache.GenerateKey("data:daily", symbol) }
func WeeklyDataKey(symbol string) string  { return cache.GenerateKey("data:weekly", symbol) }

// SymbolCacheKeys lists every cache key derived from one symbol's data,
// used for invalidation after a write.
func SymbolCacheKeys(symbol string) []string {
	return []string{
		LatestPriceKey(symbol),
		DailyDataKey(symbol),
		WeeklyDataKey(symbol),
		SymbolListKey,
		CatalogCache,
	}
}
