package models

import "fmt"

// DailyBar is one trading day of OHLCV data for a symbol.
type DailyBar struct {
	Date     Date    `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adj_close"`
	Volume   int64   `json:"volume"`
}

// Validate checks the internal consistency of the bar.
func (b DailyBar) Validate() error {
	if b.Date.IsZero() {
		return fmt.Errorf("bar has no date")
	}
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("bar %s: non-positive price", b.Date)
	}
	if b.Low > b.High {
		return fmt.Errorf("bar %s: low %.4f above high %.4f", b.Date, b.Low, b.High)
	}
	if b.Open > b.High || b.Open < b.Low {
		return fmt.Errorf("bar %s: open %.4f outside [low, high]", b.Date, b.Open)
	}
	if b.Close > b.High || b.Close < b.Low {
		return fmt.Errorf("bar %s: close %.4f outside [low, high]", b.Date, b.Close)
	}
	if b.Volume < 0 {
		return fmt.Errorf("bar %s: negative volume", b.Date)
	}
	return nil
}

// WeeklyBar is one calendar week aggregated from daily bars. WeekStart is
// the Monday and WeekEnding the Friday of the week, regardless of which
// weekdays actually traded; TradingDays counts the contributing daily bars.
type WeeklyBar struct {
	WeekStart   Date    `json:"week_start"`
	WeekEnding  Date    `json:"week_ending"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
	AdjClose    float64 `json:"adj_close"`
	Volume      int64   `json:"volume"`
	TradingDays int     `json:"trading_days"`
}

// Closes extracts the close series from daily bars, oldest first.
func Closes(bars []DailyBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high series from daily bars.
func Highs(bars []DailyBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low series from daily bars.
func Lows(bars []DailyBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volume series from daily bars as float64.
func Volumes(bars []DailyBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = float64(b.Volume)
	}
	return out
}

// WeeklyToDaily views weekly bars as daily bars keyed by week ending so the
// same indicator engine can run over either timeframe.
func WeeklyToDaily(bars []WeeklyBar) []DailyBar {
	out := make([]DailyBar, len(bars))
	for i, w := range bars {
		out[i] = DailyBar{
			Date:     w.WeekEnding,
			Open:     w.Open,
			High:     w.High,
			Low:      w.Low,
			Close:    w.Close,
			AdjClose: w.AdjClose,
			Volume:   w.Volume,
		}
	}
	return out
}
