package repository

import (
	"context"
	"fmt"
	"path"
	"strings"

	"StockVault/internal/domain/models"
	"StockVault/pkg/storage"
)

// Storage key layout. One JSON blob per symbol per granularity, plus the
// derived catalog.
const (
	dailyPrefix  = "stock-data/daily/"
	weeklyPrefix = "stock-data/weekly/"
	catalogKey   = "stock-data/metadata/catalog.json"
)

func DailyKey(symbol string) string  { return dailyPrefix + symbol + ".json" }
func WeeklyKey(symbol string) string { return weeklyPrefix + symbol + ".json" }
func CatalogKey() string             { return catalogKey }

// SymbolFromKey recovers the symbol from a daily or weekly blob key.
func SymbolFromKey(key string) string {
	return strings.TrimSuffix(path.Base(key), ".json")
}

// SymbolFiles persists per-symbol daily and weekly series in the blob store.
type SymbolFiles struct {
	store storage.ObjectStore
}

func NewSymbolFiles(store storage.ObjectStore) *SymbolFiles {
	return &SymbolFiles{store: store}
}

func (r *SymbolFiles) LoadDaily(ctx context.Context, symbol string) (*models.DailyFile, error) {
	var file models.DailyFile
	if err := r.store.GetJSON(ctx, DailyKey(symbol), &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *SymbolFiles) SaveDaily(ctx context.Context, file *models.DailyFile) error {
	if err := r.store.PutJSON(ctx, DailyKey(file.Symbol), file); err != nil {
		return fmt.Errorf("save daily %s: %w", file.Symbol, err)
	}
	return nil
}

func (r *SymbolFiles) LoadWeekly(ctx context.Context, symbol string) (*models.WeeklyFile, error) {
	var file models.WeeklyFile
	if err := r.store.GetJSON(ctx, WeeklyKey(symbol), &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *SymbolFiles) SaveWeekly(ctx context.Context, file *models.WeeklyFile) error {
	if err := r.store.PutJSON(ctx, WeeklyKey(file.Symbol), file); err != nil {
		return fmt.Errorf("save weekly %s: %w", file.Symbol, err)
	}
	return nil
}

func (r *SymbolFiles) HasDaily(ctx context.Context, symbol string) (bool, error) {
	return r.store.Exists(ctx, DailyKey(symbol))
}

func (r *SymbolFiles) HasWeekly(ctx context.Context, symbol string) (bool, error) {
	return r.store.Exists(ctx, WeeklyKey(symbol))
}

// Delete removes both granularities for a symbol. Missing blobs are not an
// error; delete is idempotent.
func (r *SymbolFiles) Delete(ctx context.Context, symbol string) error {
	if err := r.store.Delete(ctx, DailyKey(symbol)); err != nil {
		return fmt.Errorf("delete daily %s: %w", symbol, err)
	}
	if err := r.store.Delete(ctx, WeeklyKey(symbol)); err != nil {
		return fmt.Errorf("delete weekly %s: %w", symbol, err)
	}
	return nil
}

// ListSymbols scans the daily prefix and returns every stored symbol.
func (r *SymbolFiles) ListSymbols(ctx context.Context) ([]string, error) {
	keys, err := r.store.List(ctx, dailyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}
	symbols := make([]string, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		symbols = append(symbols, SymbolFromKey(key))
	}
	return symbols, nil
}

func (r *SymbolFiles) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	var catalog models.Catalog
	if err := r.store.GetJSON(ctx, catalogKey, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (r *SymbolFiles) SaveCatalog(ctx context.Context, catalog *models.Catalog) error {
	if err := r.store.PutJSON(ctx, catalogKey, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
