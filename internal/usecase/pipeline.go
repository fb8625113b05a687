package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockVault/internal/domain/models"
	drepo "StockVault/internal/domain/repository"
	"StockVault/internal/indicator"
	"StockVault/internal/repository"
	"StockVault/internal/series"
	"StockVault/pkg/cache"
	"StockVault/pkg/logger"
	"StockVault/pkg/storage"
)

// PipelineConfig carries the orchestration policy knobs.
type PipelineConfig struct {
	EnableIndicators bool
	DefaultSet       string
	SourceName       string
	// MergeLookbackDays widens the incremental fetch window below the last
	// stored date, to pick up vendor restatements of the final bar.
	MergeLookbackDays int
	CacheTTLData      time.Duration
}

// Pipeline owns the read-modify-write cycle of a symbol's stored files:
// fetch, convert, merge or replace, aggregate weekly, recompute indicators,
// persist, invalidate cache, update catalog. Single writer per symbol is
// assumed, not enforced.
type Pipeline struct {
	source  drepo.MarketSource
	repo    *repository.SymbolFiles
	cache   cache.Service
	calc    *indicator.Calculator
	merger  *series.Merger
	catalog *CatalogManager
	metrics drepo.Metrics
	log     *logger.Logger
	cfg     PipelineConfig
}

func NewPipeline(
	source drepo.MarketSource,
	repo *repository.SymbolFiles,
	cacheSvc cache.Service,
	calc *indicator.Calculator,
	merger *series.Merger,
	catalog *CatalogManager,
	metrics drepo.Metrics,
	log *logger.Logger,
	cfg PipelineConfig,
) *Pipeline {
	return &Pipeline{
		source:  source,
		repo:    repo,
		cache:   cacheSvc,
		calc:    calc,
		merger:  merger,
		catalog: catalog,
		metrics: metrics,
		log:     log,
		cfg:     cfg,
	}
}

// Download performs a full historical download for symbol, replacing any
// stored series.
func (p *Pipeline) Download(ctx context.Context, rawSymbol, period, selector string) (*models.SyncResult, error) {
	symbol, err := models.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	defer func() { p.metrics.RecordLatency("download", time.Since(started).Seconds()) }()

	start, err := periodStart(period)
	if err != nil {
		return nil, err
	}

	bars, err := p.source.FetchDaily(ctx, symbol, start, models.Today().AddDays(1))
	if err != nil {
		p.metrics.RecordDownload("download", models.SyncStatusError)
		p.metrics.RecordError("provider")
		return nil, err
	}
	if len(bars) == 0 {
		p.metrics.RecordDownload("download", models.SyncStatusNoData)
		return &models.SyncResult{
			Status:  models.SyncStatusNoData,
			Symbol:  symbol,
			Message: fmt.Sprintf("provider returned no data for %s", symbol),
		}, nil
	}

	result, err := p.persistSeries(ctx, symbol, bars, selector, nil)
	if err != nil {
		p.metrics.RecordDownload("download", models.SyncStatusError)
		return nil, err
	}
	p.metrics.RecordDownload("download", models.SyncStatusSuccess)
	p.log.Info("full download complete",
		logger.String("symbol", symbol),
		logger.Int("daily_records", result.DailyRecords),
		logger.Int("weekly_records", result.WeeklyRecords))
	return result, nil
}

// Sync performs an incremental top-up: fetch a short recent window, merge it
// into the stored series, and recompute downstream artifacts when the merge
// added new points or overwrote a restated bar. Falls back to a full download
// when no daily file exists yet.
func (p *Pipeline) Sync(ctx context.Context, rawSymbol, selector string) (*models.SyncResult, error) {
	symbol, err := models.NormalizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	defer func() { p.metrics.RecordLatency("sync", time.Since(started).Seconds()) }()

	existing, err := p.repo.LoadDaily(ctx, symbol)
	if errors.Is(err, storage.ErrNotFound) {
		p.log.Info("no stored series, falling back to full download",
			logger.String("symbol", symbol))
		return p.Download(ctx, symbol, "max", selector)
	}
	if err != nil {
		p.metrics.RecordError("storage")
		return nil, fmt.Errorf("load daily %s: %w", symbol, err)
	}
	if len(existing.Bars) == 0 {
		return p.Download(ctx, symbol, "max", selector)
	}

	lastDate := existing.Bars[len(existing.Bars)-1].Date
	windowStart := lastDate.AddDays(-p.cfg.MergeLookbackDays)
	windowEnd := models.Today().AddDays(1)

	incoming, err := p.source.FetchDaily(ctx, symbol, windowStart, windowEnd)
	if err != nil {
		p.metrics.RecordDownload("sync", models.SyncStatusError)
		p.metrics.RecordError("provider")
		return nil, err
	}

	// Skip the persist cycle only when the window contained pure duplicates.
	// An overwrite means a vendor restatement landed in the merged slice, so
	// the stored series must be rewritten even with zero new dates.
	merged, stats := p.merger.Merge(existing.Bars, incoming)
	if stats.NewPoints == 0 && stats.Overwrites == 0 {
		p.metrics.RecordDownload("sync", models.SyncStatusUpToDate)
		return &models.SyncResult{
			Status:     models.SyncStatusUpToDate,
			Symbol:     symbol,
			Duplicates: stats.Duplicates,
			Warnings:   stats.Warnings,
			Message:    "no new data",
		}, nil
	}

	result, err := p.persistSeries(ctx, symbol, merged, selector, &stats)
	if err != nil {
		p.metrics.RecordDownload("sync", models.SyncStatusError)
		return nil, err
	}
	p.metrics.RecordDownload("sync", models.SyncStatusSuccess)
	p.log.Info("incremental sync complete",
		logger.String("symbol", symbol),
		logger.Int("new_points", stats.NewPoints),
		logger.Int("overwrites", stats.Overwrites),
		logger.Int("duplicates", stats.Duplicates))
	return result, nil
}

// Bulk downloads each symbol independently; one symbol's failure never masks
// the others' results.
func (p *Pipeline) Bulk(ctx context.Context, symbols []string, period, selector string) *models.BulkResult {
	out := &models.BulkResult{Total: len(symbols)}
	for _, symbol := range symbols {
		result, err := p.Download(ctx, symbol, period, selector)
		if err != nil {
			out.Failed++
			out.Results = append(out.Results, models.SyncResult{
				Status:  models.SyncStatusError,
				Symbol:  symbol,
				Message: err.Error(),
			})
			continue
		}
		if result.Status == models.SyncStatusSuccess {
			out.Succeeded++
		} else {
			out.Failed++
		}
		out.Results = append(out.Results, *result)
	}
	return out
}

// persistSeries is the shared back half of download and sync: build the
// daily file, aggregate weekly, attach indicators, persist both blobs in
// order, invalidate cache, and rescan the catalog from storage.
func (p *Pipeline) persistSeries(ctx context.Context, symbol string, bars []models.DailyBar, selector string, stats *models.MergeStats) (*models.SyncResult, error) {
	defs := p.resolveIndicators(selector)

	daily, dailyWarnings := p.buildDailyFile(symbol, bars, defs)
	if err := p.repo.SaveDaily(ctx, daily); err != nil {
		p.metrics.RecordError("storage")
		return nil, err
	}
	p.metrics.RecordBarsStored(models.DataTypeDaily, len(daily.Bars))

	weekly, weeklyWarnings := p.buildWeeklyFile(symbol, bars, defs)
	if err := p.repo.SaveWeekly(ctx, weekly); err != nil {
		p.metrics.RecordError("storage")
		return nil, err
	}
	p.metrics.RecordBarsStored(models.DataTypeWeekly, len(weekly.Bars))

	p.invalidateCache(ctx, symbol)

	if err := p.catalog.UpdateSymbol(ctx, symbol); err != nil {
		p.metrics.RecordError("catalog")
		return nil, fmt.Errorf("update catalog for %s: %w", symbol, err)
	}

	result := &models.SyncResult{
		Status:        models.SyncStatusSuccess,
		Symbol:        symbol,
		DailyRecords:  len(daily.Bars),
		WeeklyRecords: len(weekly.Bars),
		DateRange:     &daily.DataRange,
	}
	if stats != nil {
		result.NewPoints = stats.NewPoints
		result.Overwrites = stats.Overwrites
		result.Duplicates = stats.Duplicates
		result.Warnings = stats.Warnings
	}
	result.Warnings = append(result.Warnings, dailyWarnings...)
	result.Warnings = append(result.Warnings, weeklyWarnings...)
	return result, nil
}

func (p *Pipeline) resolveIndicators(selector string) []indicator.Definition {
	if !p.cfg.EnableIndicators {
		return nil
	}
	if selector == "" {
		selector = p.cfg.DefaultSet
	}
	return indicator.ResolveAndValidate(selector)
}

func (p *Pipeline) buildDailyFile(symbol string, bars []models.DailyBar, defs []indicator.Definition) (*models.DailyFile, []string) {
	indicators, outcomes := p.calc.Calculate(bars, defs)
	file := &models.DailyFile{
		Symbol:      symbol,
		DataType:    models.DataTypeDaily,
		LastUpdated: models.Today(),
		Bars:        bars,
		Indicators:  indicators,
		Metadata: models.FileMetadata{
			TotalRecords: len(bars),
			TradingDays:  len(bars),
			Source:       p.cfg.SourceName,
		},
	}
	if len(bars) > 0 {
		file.DataRange = models.DataRange{Start: bars[0].Date, End: bars[len(bars)-1].Date}
	}
	return file, indicatorWarnings(models.DataTypeDaily, outcomes)
}

func (p *Pipeline) buildWeeklyFile(symbol string, dailyBars []models.DailyBar, defs []indicator.Definition) (*models.WeeklyFile, []string) {
	weeks := series.AggregateWeekly(dailyBars)
	indicators, outcomes := p.calc.Calculate(models.WeeklyToDaily(weeks), defs)

	tradingDays := 0
	for _, w := range weeks {
		tradingDays += w.TradingDays
	}

	file := &models.WeeklyFile{
		Symbol:      symbol,
		DataType:    models.DataTypeWeekly,
		LastUpdated: models.Today(),
		Bars:        weeks,
		Indicators:  indicators,
		Metadata: models.FileMetadata{
			TotalRecords: len(weeks),
			TradingDays:  tradingDays,
			Source:       p.cfg.SourceName,
		},
	}
	if len(weeks) > 0 {
		file.DataRange = models.DataRange{
			Start: weeks[0].WeekStart,
			End:   weeks[len(weeks)-1].WeekEnding,
		}
	}
	return file, indicatorWarnings(models.DataTypeWeekly, outcomes)
}

// indicatorWarnings surfaces failed calculations in the sync response.
// Insufficient-history skips stay out: they are the normal state of a short
// series, and the calculator already logs them at debug.
func indicatorWarnings(dataType string, outcomes []indicator.Outcome) []string {
	var warnings []string
	for _, o := range outcomes {
		if o.Status == indicator.OutcomeFailed {
			warnings = append(warnings, fmt.Sprintf(
				"%s indicator %s failed: %s", dataType, o.Name, o.Reason))
		}
	}
	return warnings
}

// invalidateCache drops every derived key for symbol. Cache failures degrade
// to slower reads, never to pipeline errors.
func (p *Pipeline) invalidateCache(ctx context.Context, symbol string) {
	if err := p.cache.Delete(ctx, repository.SymbolCacheKeys(symbol)...); err != nil {
		p.metrics.RecordError("cache")
		p.log.Warn("cache invalidation failed",
			logger.String("symbol", symbol),
			logger.Error(err))
	}
}

func periodStart(period string) (models.Date, error) {
	today := models.Today()
	switch period {
	case "", "max":
		return models.NewDate(1900, time.January, 1), nil
	case "1mo":
		return models.DateOf(today.AddDate(0, -1, 0)), nil
	case "3mo":
		return models.DateOf(today.AddDate(0, -3, 0)), nil
	case "6mo":
		return models.DateOf(today.AddDate(0, -6, 0)), nil
	case "1y":
		return models.DateOf(today.AddDate(-1, 0, 0)), nil
	case "2y":
		return models.DateOf(today.AddDate(-2, 0, 0)), nil
	case "5y":
		return models.DateOf(today.AddDate(-5, 0, 0)), nil
	case "10y":
		return models.DateOf(today.AddDate(-10, 0, 0)), nil
	default:
		return models.Date{}, fmt.Errorf("unknown period %q", period)
	}
}
