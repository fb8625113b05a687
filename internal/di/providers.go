package di

import (
	"context"
	"fmt"
	"net"
	"strconv"

	drepo "StockVault/internal/domain/repository"
	"StockVault/internal/handler/api"
	"StockVault/internal/indicator"
	internalrepo "StockVault/internal/repository"
	"StockVault/internal/series"
	"StockVault/internal/service/provider"
	"StockVault/internal/service/ratelimit"
	"StockVault/internal/usecase"
	"StockVault/pkg/cache"
	"StockVault/pkg/config"
	xhttp "StockVault/pkg/http"
	"StockVault/pkg/logger"
	"StockVault/pkg/metrics"
	"StockVault/pkg/server"
	"StockVault/pkg/storage"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache service: layered memory+Redis when Redis is
// configured, memory-only otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("redis port: %w", err)
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix("stockvault"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideObjectStore creates the S3-backed blob store.
func ProvideObjectStore(cfg *config.Config) (storage.ObjectStore, error) {
	store, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		PathStyle: cfg.Storage.PathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}
	return store, nil
}

// ProvideSymbolFiles creates the per-symbol file repository.
func ProvideSymbolFiles(store storage.ObjectStore) *internalrepo.SymbolFiles {
	return internalrepo.NewSymbolFiles(store)
}

// ProvideMarketSource creates the rate-limited EOD provider client.
func ProvideMarketSource(cfg *config.Config, log *logger.Logger) drepo.MarketSource {
	return provider.NewClient(provider.Config{
		BaseURL:      cfg.Provider.BaseURL,
		APIKey:       cfg.Provider.APIKey,
		Timeout:      cfg.Provider.Timeout,
		RequestsPerS: cfg.Provider.RequestsPerSecond,
		Burst:        cfg.Provider.Burst,
		SourceName:   cfg.Provider.SourceName,
	}, ratelimit.New(), log)
}

// ProvideCalculator creates the indicator calculator.
func ProvideCalculator(log *logger.Logger) *indicator.Calculator {
	return indicator.NewCalculator(log)
}

// ProvideMerger creates the incremental merger with configured thresholds.
func ProvideMerger(cfg *config.Config) *series.Merger {
	return series.NewMerger(series.MergeThresholds{
		PriceDiff:      cfg.Pipeline.PriceDiffThreshold,
		VolumeDiff:     cfg.Pipeline.VolumeDiffThreshold,
		MaxGapDays:     cfg.Pipeline.MaxGapDays,
		MaxGapWarnings: cfg.Pipeline.MaxGapWarnings,
	})
}

// ProvideCatalogManager creates the catalog manager.
func ProvideCatalogManager(repo *internalrepo.SymbolFiles, log *logger.Logger) *usecase.CatalogManager {
	return usecase.NewCatalogManager(repo, log)
}

// ProvidePipeline creates the download/sync orchestrator.
func ProvidePipeline(
	source drepo.MarketSource,
	repo *internalrepo.SymbolFiles,
	cacheSvc cache.Service,
	calc *indicator.Calculator,
	merger *series.Merger,
	catalog *usecase.CatalogManager,
	m drepo.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Pipeline {
	return usecase.NewPipeline(source, repo, cacheSvc, calc, merger, catalog, m, log, usecase.PipelineConfig{
		EnableIndicators:  cfg.Pipeline.EnableIndicators,
		DefaultSet:        cfg.Pipeline.DefaultSet,
		SourceName:        cfg.Provider.SourceName,
		MergeLookbackDays: cfg.Pipeline.MergeLookbackDays,
		CacheTTLData:      cfg.CacheTTL.Data,
	})
}

// ProvideReader creates the cached data reader.
func ProvideReader(
	repo *internalrepo.SymbolFiles,
	cacheSvc cache.Service,
	catalog *usecase.CatalogManager,
	m drepo.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Reader {
	return usecase.NewReader(repo, cacheSvc, catalog, m, log, usecase.CacheTTLs{
		LatestPrice: cfg.CacheTTL.LatestPrice,
		Data:        cfg.CacheTTL.Data,
		SymbolList:  cfg.CacheTTL.SymbolList,
	})
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	log *logger.Logger,
	pipeline *usecase.Pipeline,
	reader *usecase.Reader,
	catalog *usecase.CatalogManager,
) xhttp.Handler {
	return api.NewStocksHandler(log, pipeline, reader, catalog)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	cacheSvc cache.Service,
) *server.App {
	app := server.New(cfg, log, handler)
	if closer, ok := cacheSvc.(interface{ Close() error }); ok {
		app.AddCloser(closerFunc(closer.Close))
	}
	return app
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
