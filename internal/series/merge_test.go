package series

import (
	"strings"
	"testing"
	"time"

	"StockVault/internal/domain/models"
)

func mergeBar(date string, close float64, volume int64) models.DailyBar {
	d, err := models.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return models.DailyBar{
		Date: d, Open: close, High: close + 1, Low: close - 1,
		Close: close, AdjClose: close, Volume: volume,
	}
}

func TestMergeNewAndDuplicatePoints(t *testing.T) {
	existing := []models.DailyBar{
		mergeBar("2024-06-07", 100, 1_000_000),
		mergeBar("2024-06-09", 101, 1_000_000),
		mergeBar("2024-06-10", 102, 1_000_000),
	}
	incoming := []models.DailyBar{
		mergeBar("2024-06-09", 101, 1_000_000), // identical
		mergeBar("2024-06-10", 102, 1_000_000), // identical
		mergeBar("2024-06-11", 103, 1_100_000),
		mergeBar("2024-06-12", 104, 1_200_000),
	}

	merger := NewMerger(DefaultThresholds())
	merged, stats := merger.Merge(existing, incoming)

	if stats.NewPoints != 2 {
		t.Errorf("new_points = %d, want 2", stats.NewPoints)
	}
	if stats.Duplicates != 2 {
		t.Errorf("duplicates = %d, want 2", stats.Duplicates)
	}
	if len(merged) != len(existing)+2 {
		t.Errorf("merged length = %d, want %d", len(merged), len(existing)+2)
	}
}

func TestMergeIdempotence(t *testing.T) {
	existing := []models.DailyBar{
		mergeBar("2024-06-10", 102, 1_000_000),
	}
	incoming := []models.DailyBar{
		mergeBar("2024-06-11", 103, 1_100_000),
		mergeBar("2024-06-12", 104, 1_200_000),
	}

	merger := NewMerger(DefaultThresholds())
	merged, _ := merger.Merge(existing, incoming)
	again, stats := merger.Merge(merged, incoming)

	if stats.NewPoints != 0 {
		t.Errorf("second merge new_points = %d, want 0", stats.NewPoints)
	}
	if stats.Duplicates != len(incoming) {
		t.Errorf("second merge duplicates = %d, want %d", stats.Duplicates, len(incoming))
	}
	for _, w := range stats.Warnings {
		if strings.Contains(w, "overwrote") {
			t.Errorf("second merge produced overwrite warning: %s", w)
		}
	}
	if len(again) != len(merged) {
		t.Errorf("second merge changed length %d -> %d", len(merged), len(again))
	}
}

func TestMergeChronologyInvariant(t *testing.T) {
	existing := []models.DailyBar{
		mergeBar("2024-06-12", 104, 1_000_000),
		mergeBar("2024-06-10", 102, 1_000_000),
	}
	incoming := []models.DailyBar{
		mergeBar("2024-06-13", 105, 1_000_000),
		mergeBar("2024-06-11", 103, 1_000_000),
	}

	merged, _ := NewMerger(DefaultThresholds()).Merge(existing, incoming)
	for i := 1; i < len(merged); i++ {
		if !merged[i-1].Date.Before(merged[i].Date.Time) {
			t.Fatalf("merged not strictly increasing at %d: %s >= %s",
				i, merged[i-1].Date, merged[i].Date)
		}
	}
}

func TestMergeOverwriteOnMaterialDifference(t *testing.T) {
	existing := []models.DailyBar{mergeBar("2024-06-10", 100, 1_000_000)}

	// 2% price change: overwrite with warning.
	restated := []models.DailyBar{mergeBar("2024-06-10", 102, 1_000_000)}
	merger := NewMerger(DefaultThresholds())
	merged, stats := merger.Merge(existing, restated)
	if stats.NewPoints != 0 || stats.Duplicates != 0 {
		t.Errorf("overwrite counted as new=%d dup=%d", stats.NewPoints, stats.Duplicates)
	}
	if stats.Overwrites != 1 {
		t.Errorf("overwrites = %d, want 1", stats.Overwrites)
	}
	if len(stats.Warnings) != 1 || !strings.Contains(stats.Warnings[0], "overwrote") {
		t.Fatalf("warnings = %v, want one overwrite notice", stats.Warnings)
	}
	if merged[0].Close != 102 {
		t.Errorf("close = %v, newer value should win", merged[0].Close)
	}

	// 0.5% price change within threshold: duplicate, old value kept.
	minor := []models.DailyBar{mergeBar("2024-06-10", 100.5, 1_000_000)}
	merged, stats = merger.Merge(existing, minor)
	if stats.Duplicates != 1 || stats.Overwrites != 0 {
		t.Errorf("minor change dup=%d overwrites=%d, want 1/0", stats.Duplicates, stats.Overwrites)
	}
	if merged[0].Close != 100 {
		t.Errorf("close = %v, stored value should survive a sub-threshold change", merged[0].Close)
	}

	// 20% volume change: overwrite even though price matched.
	volRestated := []models.DailyBar{mergeBar("2024-06-10", 100, 1_200_000)}
	merged, stats = merger.Merge(existing, volRestated)
	if len(stats.Warnings) != 1 {
		t.Fatalf("volume restatement warnings = %v", stats.Warnings)
	}
	if merged[0].Volume != 1_200_000 {
		t.Errorf("volume = %d, want restated value", merged[0].Volume)
	}
}

func TestMergeGapWarnings(t *testing.T) {
	existing := []models.DailyBar{mergeBar("2024-06-03", 100, 1_000_000)}
	incoming := []models.DailyBar{mergeBar("2024-06-17", 105, 1_000_000)} // 14-day gap

	_, stats := NewMerger(DefaultThresholds()).Merge(existing, incoming)
	found := false
	for _, w := range stats.Warnings {
		if strings.Contains(w, "gap of 14 days") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected gap warning, got %v", stats.Warnings)
	}
}

func TestMergeGapWarningsBounded(t *testing.T) {
	var existing []models.DailyBar
	day := models.NewDate(2024, time.January, 1)
	for i := 0; i < 30; i++ {
		existing = append(existing, models.DailyBar{
			Date: day, Open: 100, High: 101, Low: 99, Close: 100, AdjClose: 100, Volume: 1,
		})
		day = day.AddDays(10) // every consecutive pair exceeds the gap threshold
	}

	_, stats := NewMerger(DefaultThresholds()).Merge(existing, nil)
	if len(stats.Warnings) != DefaultThresholds().MaxGapWarnings {
		t.Errorf("got %d gap warnings, want bounded at %d",
			len(stats.Warnings), DefaultThresholds().MaxGapWarnings)
	}
}

func TestMergeEmptyExisting(t *testing.T) {
	incoming := []models.DailyBar{
		mergeBar("2024-06-11", 103, 1_000_000),
		mergeBar("2024-06-12", 104, 1_000_000),
	}
	merged, stats := NewMerger(DefaultThresholds()).Merge(nil, incoming)
	if stats.NewPoints != 2 || len(merged) != 2 {
		t.Errorf("wholesale merge: new=%d len=%d", stats.NewPoints, len(merged))
	}
}
