package series

import (
	"math/rand"
	"testing"
	"time"

	"StockVault/internal/domain/models"
)

func TestWeekBoundaries(t *testing.T) {
	cases := []struct {
		in, monday, friday string
	}{
		{"2024-01-08", "2024-01-08", "2024-01-12"}, // Monday
		{"2024-01-10", "2024-01-08", "2024-01-12"}, // Wednesday
		{"2024-01-12", "2024-01-08", "2024-01-12"}, // Friday
		{"2024-01-14", "2024-01-08", "2024-01-12"}, // Sunday maps back
	}
	for _, tc := range cases {
		d, err := models.ParseDate(tc.in)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.in, err)
		}
		monday, friday := WeekBoundaries(d)
		if monday.String() != tc.monday || friday.String() != tc.friday {
			t.Errorf("WeekBoundaries(%s) = (%s, %s), want (%s, %s)",
				tc.in, monday, friday, tc.monday, tc.friday)
		}
	}
}

// weekOfBars builds Mon-Fri 2024-01-08..12 with opens 100..104, closes
// 103.5..107.5 and volumes 1000000..1400000.
func weekOfBars() []models.DailyBar {
	bars := make([]models.DailyBar, 5)
	for i := 0; i < 5; i++ {
		open := 100.0 + float64(i)
		close := 103.5 + float64(i)
		bars[i] = models.DailyBar{
			Date:     models.NewDate(2024, time.January, 8+i),
			Open:     open,
			High:     close + 1,
			Low:      open - 1,
			Close:    close,
			AdjClose: close,
			Volume:   1_000_000 + int64(i)*100_000,
		}
	}
	return bars
}

func TestAggregateSingleWeek(t *testing.T) {
	weeks := AggregateWeekly(weekOfBars())
	if len(weeks) != 1 {
		t.Fatalf("got %d weeks, want 1", len(weeks))
	}
	w := weeks[0]
	if w.WeekStart.String() != "2024-01-08" || w.WeekEnding.String() != "2024-01-12" {
		t.Errorf("week span %s..%s", w.WeekStart, w.WeekEnding)
	}
	if w.Open != 100 {
		t.Errorf("open = %v, want 100", w.Open)
	}
	if w.Close != 107.5 {
		t.Errorf("close = %v, want 107.5", w.Close)
	}
	if w.Volume != 6_000_000 {
		t.Errorf("volume = %d, want 6000000", w.Volume)
	}
	if w.TradingDays != 5 {
		t.Errorf("trading_days = %d, want 5", w.TradingDays)
	}
}

func TestAggregateShuffledInput(t *testing.T) {
	bars := weekOfBars()
	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(bars), func(i, j int) { bars[i], bars[j] = bars[j], bars[i] })

	weeks := AggregateWeekly(bars)
	if len(weeks) != 1 {
		t.Fatalf("got %d weeks, want 1", len(weeks))
	}
	if weeks[0].Open != 100 || weeks[0].Close != 107.5 {
		t.Errorf("open/close from shuffled input = %v/%v, want 100/107.5",
			weeks[0].Open, weeks[0].Close)
	}
}

func TestAggregateVolumeConservation(t *testing.T) {
	var bars []models.DailyBar
	day := models.NewDate(2024, time.March, 4)
	var dailyTotal int64
	for len(bars) < 23 {
		if !IsWeekend(day) {
			vol := int64(500_000 + len(bars)*13_337)
			c := 50 + float64(len(bars))
			bars = append(bars, models.DailyBar{
				Date: day, Open: c, High: c + 1, Low: c - 1, Close: c, AdjClose: c, Volume: vol,
			})
			dailyTotal += vol
		}
		day = day.AddDays(1)
	}

	var weeklyTotal int64
	for _, w := range AggregateWeekly(bars) {
		weeklyTotal += w.Volume
	}
	if weeklyTotal != dailyTotal {
		t.Errorf("weekly volume %d != daily volume %d", weeklyTotal, dailyTotal)
	}
}

func TestAggregateHolidayWeek(t *testing.T) {
	// Week with only Tue-Thu present.
	bars := weekOfBars()[1:4]
	weeks := AggregateWeekly(bars)
	if len(weeks) != 1 {
		t.Fatalf("got %d weeks", len(weeks))
	}
	if weeks[0].TradingDays != 3 {
		t.Errorf("trading_days = %d, want 3", weeks[0].TradingDays)
	}
	if weeks[0].WeekStart.String() != "2024-01-08" {
		t.Errorf("week_start = %s, want the Monday even without a Monday bar", weeks[0].WeekStart)
	}
	if weeks[0].Open != bars[0].Open || weeks[0].Close != bars[2].Close {
		t.Errorf("open/close = %v/%v", weeks[0].Open, weeks[0].Close)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if got := AggregateWeekly(nil); len(got) != 0 {
		t.Errorf("AggregateWeekly(nil) returned %d weeks", len(got))
	}
}

func TestPartialWeekWindows(t *testing.T) {
	start, _ := models.ParseDate("2024-01-10") // Wednesday
	end, _ := models.ParseDate("2024-01-23")   // Tuesday two weeks on

	windows := PartialWeekWindows(start, end)
	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
	if windows[0].Start.String() != "2024-01-10" || windows[0].End.String() != "2024-01-12" {
		t.Errorf("first window %s..%s, want clipped start", windows[0].Start, windows[0].End)
	}
	if windows[1].Start.String() != "2024-01-15" || windows[1].End.String() != "2024-01-19" {
		t.Errorf("interior window %s..%s, want full Mon-Fri", windows[1].Start, windows[1].End)
	}
	if windows[2].Start.String() != "2024-01-22" || windows[2].End.String() != "2024-01-23" {
		t.Errorf("last window %s..%s, want clipped end", windows[2].Start, windows[2].End)
	}
}
