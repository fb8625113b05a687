package repository

import (
	"context"

	"StockVault/internal/domain/models"
)

// MarketSource fetches end-of-day bars from the upstream provider. An empty
// result means no data in range, not an error.
type MarketSource interface {
	FetchDaily(ctx context.Context, symbol string, start, end models.Date) ([]models.DailyBar, error)
}

// Metrics abstracts the metrics backend so pipelines can be tested without a
// Prometheus registry.
type Metrics interface {
	RecordDownload(operation, status string)
	RecordBarsStored(granularity string, count int)
	RecordError(kind string)
	RecordCacheHit()
	RecordCacheMiss()
	RecordLatency(op string, seconds float64)
}
