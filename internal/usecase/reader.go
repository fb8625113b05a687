package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"StockVault/internal/domain/models"
	drepo "StockVault/internal/domain/repository"
	"StockVault/internal/indicator"
	"StockVault/internal/repository"
	"StockVault/pkg/cache"
	"StockVault/pkg/logger"
	"StockVault/pkg/storage"
)

// ErrNoData is returned when a symbol has no stored series.
var ErrNoData = errors.New("no stored data for symbol")

// CacheTTLs tier cache lifetimes by volatility.
type CacheTTLs struct {
	LatestPrice time.Duration
	Data        time.Duration
	SymbolList  time.Duration
}

// DataQuery filters a read: optional date range, indicator selector and
// bar-count cap. The zero value returns the stored file unmodified.
type DataQuery struct {
	Start      *models.Date
	End        *models.Date
	Indicators string
	Limit      int
}

func (q DataQuery) isZero() bool {
	return q.Start == nil && q.End == nil && q.Indicators == "" && q.Limit == 0
}

// Reader serves stored series with a read-through cache. Cache failures
// degrade to storage reads, never to errors.
type Reader struct {
	repo    *repository.SymbolFiles
	cache   cache.Service
	catalog *CatalogManager
	metrics drepo.Metrics
	log     *logger.Logger
	ttl     CacheTTLs
}

func NewReader(
	repo *repository.SymbolFiles,
	cacheSvc cache.Service,
	catalog *CatalogManager,
	metrics drepo.Metrics,
	log *logger.Logger,
	ttl CacheTTLs,
) *Reader {
	return &Reader{
		repo:    repo,
		cache:   cacheSvc,
		catalog: catalog,
		metrics: metrics,
		log:     log,
		ttl:     ttl,
	}
}

// GetDaily returns the daily file for symbol, optionally filtered.
func (r *Reader) GetDaily(ctx context.Context, rawSymbol string, query DataQuery) (*models.DailyFile, error) {
	symbol, err := models.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	var file models.DailyFile
	if err := r.cachedLoad(ctx, repository.DailyDataKey(symbol), &file, func(ctx context.Context, dest interface{}) error {
		loaded, err := r.repo.LoadDaily(ctx, symbol)
		if err != nil {
			return err
		}
		*dest.(*models.DailyFile) = *loaded
		return nil
	}); err != nil {
		return nil, mapNotFound(err, symbol)
	}

	if query.isZero() {
		return &file, nil
	}
	return filterDaily(&file, query), nil
}

// GetWeekly returns the weekly file for symbol, optionally filtered.
func (r *Reader) GetWeekly(ctx context.Context, rawSymbol string, query DataQuery) (*models.WeeklyFile, error) {
	symbol, err := models.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	var file models.WeeklyFile
	if err := r.cachedLoad(ctx, repository.WeeklyDataKey(symbol), &file, func(ctx context.Context, dest interface{}) error {
		loaded, err := r.repo.LoadWeekly(ctx, symbol)
		if err != nil {
			return err
		}
		*dest.(*models.WeeklyFile) = *loaded
		return nil
	}); err != nil {
		return nil, mapNotFound(err, symbol)
	}

	if query.isZero() {
		return &file, nil
	}
	return filterWeekly(&file, query), nil
}

// GetLatest returns the most recent close with day-over-day change, rounded
// to display precision and cached on the short tier.
func (r *Reader) GetLatest(ctx context.Context, rawSymbol string) (*models.LatestPrice, error) {
	symbol, err := models.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}

	key := repository.LatestPriceKey(symbol)
	var cached models.LatestPrice
	if err := r.cacheGet(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	file, err := r.repo.LoadDaily(ctx, symbol)
	if err != nil {
		return nil, mapNotFound(err, symbol)
	}
	if len(file.Bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	last := file.Bars[len(file.Bars)-1]
	latest := &models.LatestPrice{
		Symbol: symbol,
		Date:   last.Date,
		Open:   last.Open,
		High:   last.High,
		Low:    last.Low,
		Close:  last.Close,
		Volume: last.Volume,
	}
	if len(file.Bars) > 1 {
		prev := file.Bars[len(file.Bars)-2]
		latest.Change = round2(last.Close - prev.Close)
		if prev.Close != 0 {
			latest.ChangePercent = round2((last.Close - prev.Close) / prev.Close * 100)
		}
	}

	r.cacheSet(ctx, key, latest, r.ttl.LatestPrice)
	return latest, nil
}

// ListSymbols returns every stored symbol, cached on the slow tier.
func (r *Reader) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.cacheGet(ctx, repository.SymbolListKey, &symbols); err == nil {
		return symbols, nil
	}

	symbols, err := r.repo.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}
	r.cacheSet(ctx, repository.SymbolListKey, symbols, r.ttl.SymbolList)
	return symbols, nil
}

// GetCatalog returns the stored catalog, cached on the slow tier.
func (r *Reader) GetCatalog(ctx context.Context) (*models.Catalog, error) {
	var cached models.Catalog
	if err := r.cacheGet(ctx, repository.CatalogCache, &cached); err == nil {
		return &cached, nil
	}

	catalog, err := r.repo.LoadCatalog(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.Catalog{Version: catalogVersion}, nil
	}
	if err != nil {
		return nil, err
	}
	r.cacheSet(ctx, repository.CatalogCache, catalog, r.ttl.SymbolList)
	return catalog, nil
}

// Delete removes both stored granularities for symbol, drops its cache keys
// and catalog entry.
func (r *Reader) Delete(ctx context.Context, rawSymbol string) error {
	symbol, err := models.NormalizeSymbol(rawSymbol)
	if err != nil {
		return err
	}

	exists, err := r.repo.HasDaily(ctx, symbol)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	if err := r.repo.Delete(ctx, symbol); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, repository.SymbolCacheKeys(symbol)...); err != nil {
		r.log.Warn("cache invalidation failed on delete",
			logger.String("symbol", symbol),
			logger.Error(err))
	}
	return r.catalog.RemoveSymbol(ctx, symbol)
}

// cachedLoad is the read-through path for whole files.
func (r *Reader) cachedLoad(ctx context.Context, key string, dest interface{}, load func(context.Context, interface{}) error) error {
	if err := r.cacheGet(ctx, key, dest); err == nil {
		return nil
	}
	if err := load(ctx, dest); err != nil {
		return err
	}
	r.cacheSet(ctx, key, dest, r.ttl.Data)
	return nil
}

func (r *Reader) cacheGet(ctx context.Context, key string, dest interface{}) error {
	err := r.cache.Get(ctx, key, dest)
	if err == nil {
		r.metrics.RecordCacheHit()
		return nil
	}
	r.metrics.RecordCacheMiss()
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.log.Debug("cache read failed", logger.String("key", key), logger.Error(err))
	}
	return err
}

func (r *Reader) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := r.cache.Set(ctx, key, value, ttl); err != nil {
		r.log.Debug("cache write failed", logger.String("key", key), logger.Error(err))
	}
}

func mapNotFound(err error, symbol string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	return err
}

func filterDaily(file *models.DailyFile, query DataQuery) *models.DailyFile {
	out := *file

	keep := func(d models.Date) bool { return inRange(d, query.Start, query.End) }
	if query.Start != nil || query.End != nil {
		bars := make([]models.DailyBar, 0, len(file.Bars))
		for _, bar := range file.Bars {
			if keep(bar.Date) {
				bars = append(bars, bar)
			}
		}
		out.Bars = bars
	}
	if query.Limit > 0 && len(out.Bars) > query.Limit {
		out.Bars = out.Bars[len(out.Bars)-query.Limit:]
	}
	if len(out.Bars) > 0 {
		out.DataRange = models.DataRange{Start: out.Bars[0].Date, End: out.Bars[len(out.Bars)-1].Date}
	}
	out.Metadata.TotalRecords = len(out.Bars)

	out.Indicators = filterIndicators(file.Indicators, query, func(d models.Date) bool {
		return len(out.Bars) == 0 || (!d.Before(out.Bars[0].Date.Time) && !d.After(out.Bars[len(out.Bars)-1].Date.Time))
	})
	return &out
}

func filterWeekly(file *models.WeeklyFile, query DataQuery) *models.WeeklyFile {
	out := *file

	if query.Start != nil || query.End != nil {
		bars := make([]models.WeeklyBar, 0, len(file.Bars))
		for _, bar := range file.Bars {
			if inRange(bar.WeekEnding, query.Start, query.End) {
				bars = append(bars, bar)
			}
		}
		out.Bars = bars
	}
	if query.Limit > 0 && len(out.Bars) > query.Limit {
		out.Bars = out.Bars[len(out.Bars)-query.Limit:]
	}
	if len(out.Bars) > 0 {
		out.DataRange = models.DataRange{
			Start: out.Bars[0].WeekStart,
			End:   out.Bars[len(out.Bars)-1].WeekEnding,
		}
	}
	out.Metadata.TotalRecords = len(out.Bars)

	out.Indicators = filterIndicators(file.Indicators, query, func(d models.Date) bool {
		return len(out.Bars) == 0 ||
			(!d.Before(out.Bars[0].WeekEnding.Time) && !d.After(out.Bars[len(out.Bars)-1].WeekEnding.Time))
	})
	return &out
}

// filterIndicators narrows the indicator map to the requested selector and
// clips each series to the surviving bar window.
func filterIndicators(indicators map[string]models.IndicatorSeries, query DataQuery, keep func(models.Date) bool) map[string]models.IndicatorSeries {
	if len(indicators) == 0 {
		return indicators
	}

	wanted := make(map[string]bool)
	if query.Indicators != "" {
		for _, def := range indicator.ResolveAndValidate(query.Indicators) {
			wanted[def.Name] = true
		}
	}

	out := make(map[string]models.IndicatorSeries)
	for name, seriesData := range indicators {
		if query.Indicators != "" && !wanted[name] {
			continue
		}
		filtered := seriesData
		values := make([]models.IndicatorPoint, 0, len(seriesData.Values))
		for _, pt := range seriesData.Values {
			if keep(pt.Date) {
				values = append(values, pt)
			}
		}
		filtered.Values = values
		out[name] = filtered
	}
	return out
}

func inRange(d models.Date, start, end *models.Date) bool {
	if start != nil && d.Before(start.Time) {
		return false
	}
	if end != nil && d.After(end.Time) {
		return false
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
