package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockVault/internal/domain/models"
	"StockVault/pkg/storage"
)

func TestKeyLayout(t *testing.T) {
	if got := DailyKey("AAPL"); got != "stock-data/daily/AAPL.json" {
		t.Errorf("DailyKey = %s", got)
	}
	if got := WeeklyKey("BRK.B"); got != "stock-data/weekly/BRK.B.json" {
		t.Errorf("WeeklyKey = %s", got)
	}
	if got := CatalogKey(); got != "stock-data/metadata/catalog.json" {
		t.Errorf("CatalogKey = %s", got)
	}
	if got := SymbolFromKey("stock-data/daily/MSFT.json"); got != "MSFT" {
		t.Errorf("SymbolFromKey = %s", got)
	}
}

func TestSymbolFilesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSymbolFiles(storage.NewMemoryStore())

	if _, err := repo.LoadDaily(ctx, "AAPL"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("LoadDaily on empty store = %v, want ErrNotFound", err)
	}

	file := &models.DailyFile{
		Symbol:      "AAPL",
		DataType:    models.DataTypeDaily,
		LastUpdated: models.NewDate(2024, time.June, 10),
		Bars: []models.DailyBar{{
			Date: models.NewDate(2024, time.June, 10),
			Open: 100, High: 101, Low: 99, Close: 100.5, AdjClose: 100.5, Volume: 1_000_000,
		}},
		Metadata: models.FileMetadata{TotalRecords: 1, TradingDays: 1, Source: "test"},
	}
	if err := repo.SaveDaily(ctx, file); err != nil {
		t.Fatalf("SaveDaily: %v", err)
	}

	loaded, err := repo.LoadDaily(ctx, "AAPL")
	if err != nil {
		t.Fatalf("LoadDaily: %v", err)
	}
	if loaded.Symbol != "AAPL" || len(loaded.Bars) != 1 {
		t.Errorf("loaded %s with %d bars", loaded.Symbol, len(loaded.Bars))
	}
	if loaded.Bars[0].Date.String() != "2024-06-10" {
		t.Errorf("bar date round-tripped to %s", loaded.Bars[0].Date)
	}

	ok, err := repo.HasDaily(ctx, "AAPL")
	if err != nil || !ok {
		t.Errorf("HasDaily = %v, %v", ok, err)
	}
}

func TestListSymbols(t *testing.T) {
	ctx := context.Background()
	repo := NewSymbolFiles(storage.NewMemoryStore())

	for _, sym := range []string{"MSFT", "AAPL", "GOOG"} {
		file := &models.DailyFile{Symbol: sym, DataType: models.DataTypeDaily}
		if err := repo.SaveDaily(ctx, file); err != nil {
			t.Fatalf("SaveDaily %s: %v", sym, err)
		}
	}

	symbols, err := repo.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("ListSymbols: %v", err)
	}
	if len(symbols) != 3 {
		t.Fatalf("got %d symbols", len(symbols))
	}
	// MemoryStore lists keys sorted.
	want := []string{"AAPL", "GOOG", "MSFT"}
	for i, sym := range want {
		if symbols[i] != sym {
			t.Errorf("symbols[%d] = %s, want %s", i, symbols[i], sym)
		}
	}
}

func TestDeleteRemovesBothGranularities(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewSymbolFiles(store)

	if err := repo.SaveDaily(ctx, &models.DailyFile{Symbol: "AAPL"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveWeekly(ctx, &models.WeeklyFile{Symbol: "AAPL"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, "AAPL"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if ok, _ := repo.HasDaily(ctx, "AAPL"); ok {
		t.Error("daily blob survived delete")
	}
	if ok, _ := repo.HasWeekly(ctx, "AAPL"); ok {
		t.Error("weekly blob survived delete")
	}
}

func TestSymbolCacheKeys(t *testing.T) {
	keys := SymbolCacheKeys("AAPL")
	want := map[string]bool{
		"price:latest:AAPL": true,
		"data:daily:AAPL":   true,
		"data:weekly:AAPL":  true,
		"symbols:list":      true,
		"data:catalog":      true,
	}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys", len(keys))
	}
	for _, k := range keys {
		if !want[k] {
			t.Errorf("unexpected cache key %s", k)
		}
	}
}
