package series

import (
	"sort"
	"time"

	"StockVault/internal/domain/models"
)

// WeekBoundaries returns the Monday and Friday bracketing d. Saturday and
// Sunday map into the week just ended.
func WeekBoundaries(d models.Date) (monday, friday models.Date) {
	daysSinceMonday := (int(d.Weekday()) + 6) % 7
	monday = d.AddDays(-daysSinceMonday)
	friday = monday.AddDays(4)
	return monday, friday
}

// AggregateWeekly groups daily bars into Monday-anchored weekly bars. Open
// and close come from the first and last bar by date within the week, high
// and low are extremes, volume sums. Input order does not matter; the bars
// are sorted by date before grouping. Empty input yields an empty result.
func AggregateWeekly(bars []models.DailyBar) []models.WeeklyBar {
	if len(bars) == 0 {
		return nil
	}

	sorted := make([]models.DailyBar, len(bars))
	copy(sorted, bars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date.Time) })

	var (
		weeks   []models.WeeklyBar
		current *models.WeeklyBar
	)
	for _, bar := range sorted {
		monday, friday := WeekBoundaries(bar.Date)
		if current == nil || !current.WeekStart.Equal(monday) {
			if current != nil {
				weeks = append(weeks, *current)
			}
			current = &models.WeeklyBar{
				WeekStart:   monday,
				WeekEnding:  friday,
				Open:        bar.Open,
				High:        bar.High,
				Low:         bar.Low,
				Close:       bar.Close,
				AdjClose:    bar.AdjClose,
				Volume:      bar.Volume,
				TradingDays: 1,
			}
			continue
		}
		if bar.High > current.High {
			current.High = bar.High
		}
		if bar.Low < current.Low {
			current.Low = bar.Low
		}
		current.Close = bar.Close
		current.AdjClose = bar.AdjClose
		current.Volume += bar.Volume
		current.TradingDays++
	}
	weeks = append(weeks, *current)
	return weeks
}

// Window is a clipped [Start, End] date span.
type Window struct {
	Start models.Date
	End   models.Date
}

// PartialWeekWindows splits [start, end] into per-week windows: the first and
// last are clipped to the requested range, interior weeks run Monday through
// Friday. Used by range-limited aggregation queries.
func PartialWeekWindows(start, end models.Date) []Window {
	if end.Before(start.Time) {
		return nil
	}

	var windows []Window
	monday, friday := WeekBoundaries(start)
	for !monday.After(end.Time) {
		w := Window{Start: monday, End: friday}
		if w.Start.Before(start.Time) {
			w.Start = start
		}
		if w.End.After(end.Time) {
			w.End = end
		}
		if !w.End.Before(w.Start.Time) {
			windows = append(windows, w)
		}
		monday = monday.AddDays(7)
		friday = friday.AddDays(7)
	}
	return windows
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func IsWeekend(d models.Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
