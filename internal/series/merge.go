package series

import (
	"fmt"
	"math"
	"sort"

	"StockVault/internal/domain/models"
)

// MergeThresholds control when a same-date incoming bar counts as a genuine
// correction rather than a duplicate, and when calendar gaps get flagged.
// These are policy constants surfaced through config; the zero value is not
// usable, call DefaultThresholds.
type MergeThresholds struct {
	// PriceDiff is the relative close-price difference above which an
	// incoming bar overwrites the stored one (0.01 = 1%).
	PriceDiff float64
	// VolumeDiff is the relative volume difference with the same effect.
	VolumeDiff float64
	// MaxGapDays is the calendar-day gap between consecutive bars beyond
	// which an advisory warning is emitted.
	MaxGapDays int
	// MaxGapWarnings bounds the number of gap warnings per merge.
	MaxGapWarnings int
}

func DefaultThresholds() MergeThresholds {
	return MergeThresholds{
		PriceDiff:      0.01,
		VolumeDiff:     0.10,
		MaxGapDays:     5,
		MaxGapWarnings: 10,
	}
}

// Merger folds short incremental downloads into a stored long-range series.
type Merger struct {
	thresholds MergeThresholds
}

func NewMerger(thresholds MergeThresholds) *Merger {
	return &Merger{thresholds: thresholds}
}

// Merge combines incoming bars into existing ones, deduplicating by date.
// A same-date bar whose close or volume differs materially overwrites the
// stored bar and is recorded as a warning (vendor restatements); otherwise it
// is discarded as a duplicate. The merged series is sorted ascending by date
// and then scanned for calendar gaps, which are advisory only.
func (m *Merger) Merge(existing, incoming []models.DailyBar) ([]models.DailyBar, models.MergeStats) {
	var stats models.MergeStats

	byDate := make(map[string]models.DailyBar, len(existing)+len(incoming))
	for _, bar := range existing {
		byDate[bar.Date.String()] = bar
	}

	for _, bar := range incoming {
		key := bar.Date.String()
		prev, ok := byDate[key]
		if !ok {
			byDate[key] = bar
			stats.NewPoints++
			continue
		}
		if m.materiallyDifferent(prev, bar) {
			byDate[key] = bar
			stats.Overwrites++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf(
				"overwrote %s: close %.4f -> %.4f, volume %d -> %d",
				key, prev.Close, bar.Close, prev.Volume, bar.Volume))
			continue
		}
		stats.Duplicates++
	}

	merged := make([]models.DailyBar, 0, len(byDate))
	for _, bar := range byDate {
		merged = append(merged, bar)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date.Time) })

	stats.Warnings = append(stats.Warnings, m.gapWarnings(merged)...)
	return merged, stats
}

func (m *Merger) materiallyDifferent(a, b models.DailyBar) bool {
	if a.Close > 0 && math.Abs(b.Close-a.Close)/a.Close > m.thresholds.PriceDiff {
		return true
	}
	if a.Volume > 0 && math.Abs(float64(b.Volume-a.Volume))/float64(a.Volume) > m.thresholds.VolumeDiff {
		return true
	}
	return false
}

func (m *Merger) gapWarnings(merged []models.DailyBar) []string {
	var warnings []string
	for i := 1; i < len(merged); i++ {
		if len(warnings) >= m.thresholds.MaxGapWarnings {
			break
		}
		gap := merged[i].Date.DaysSince(merged[i-1].Date)
		if gap > m.thresholds.MaxGapDays {
			warnings = append(warnings, fmt.Sprintf(
				"gap of %d days between %s and %s", gap, merged[i-1].Date, merged[i].Date))
		}
	}
	return warnings
}
