package usecase

import (
	"context"
	"errors"
	"fmt"

	"StockVault/internal/domain/models"
	"StockVault/internal/repository"
	"StockVault/pkg/logger"
	"StockVault/pkg/storage"
)

const catalogVersion = "1.0"

// CatalogManager maintains the derived symbol catalog. Entries are always
// rebuilt from the persisted daily blob, never from in-memory pipeline state,
// so the catalog cannot drift from what storage actually holds.
type CatalogManager struct {
	repo *repository.SymbolFiles
	log  *logger.Logger
}

func NewCatalogManager(repo *repository.SymbolFiles, log *logger.Logger) *CatalogManager {
	return &CatalogManager{repo: repo, log: log}
}

// UpdateSymbol rescans the stored daily file for symbol and upserts its
// catalog entry.
func (m *CatalogManager) UpdateSymbol(ctx context.Context, symbol string) error {
	summary, err := m.scanSymbol(ctx, symbol)
	if err != nil {
		return err
	}

	catalog, err := m.loadOrInit(ctx)
	if err != nil {
		return err
	}
	catalog.Upsert(*summary)
	catalog.LastUpdated = models.Today()
	return m.repo.SaveCatalog(ctx, catalog)
}

// RemoveSymbol drops symbol from the catalog. Missing entries are not an
// error.
func (m *CatalogManager) RemoveSymbol(ctx context.Context, symbol string) error {
	catalog, err := m.loadOrInit(ctx)
	if err != nil {
		return err
	}
	if !catalog.Remove(symbol) {
		return nil
	}
	catalog.LastUpdated = models.Today()
	return m.repo.SaveCatalog(ctx, catalog)
}

// Rebuild regenerates the whole catalog by scanning every stored daily blob.
func (m *CatalogManager) Rebuild(ctx context.Context) (*models.Catalog, error) {
	symbols, err := m.repo.ListSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("rebuild catalog: %w", err)
	}

	catalog := &models.Catalog{Version: catalogVersion, LastUpdated: models.Today()}
	for _, symbol := range symbols {
		summary, err := m.scanSymbol(ctx, symbol)
		if err != nil {
			m.log.Warn("skipping unreadable symbol during catalog rebuild",
				logger.String("symbol", symbol),
				logger.Error(err))
			continue
		}
		catalog.Upsert(*summary)
	}

	if err := m.repo.SaveCatalog(ctx, catalog); err != nil {
		return nil, err
	}
	m.log.Info("catalog rebuilt", logger.Int("symbols", catalog.SymbolCount))
	return catalog, nil
}

func (m *CatalogManager) scanSymbol(ctx context.Context, symbol string) (*models.SymbolSummary, error) {
	file, err := m.repo.LoadDaily(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", symbol, err)
	}
	hasWeekly, err := m.repo.HasWeekly(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("scan %s weekly: %w", symbol, err)
	}

	summary := &models.SymbolSummary{
		Symbol:      file.Symbol,
		TotalDays:   len(file.Bars),
		HasWeekly:   hasWeekly,
		LastUpdated: file.LastUpdated,
	}
	if len(file.Bars) > 0 {
		summary.StartDate = file.Bars[0].Date
		summary.EndDate = file.Bars[len(file.Bars)-1].Date
	}
	return summary, nil
}

func (m *CatalogManager) loadOrInit(ctx context.Context) (*models.Catalog, error) {
	catalog, err := m.repo.LoadCatalog(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.Catalog{Version: catalogVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog, nil
}
