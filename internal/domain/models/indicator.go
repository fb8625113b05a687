package models

// IndicatorPoint carries the indicator outputs for one bar. Values are
// nullable: a nil entry means the indicator has no defined value at that
// position (warmup region or undefined input, e.g. a zero trading range).
type IndicatorPoint struct {
	Date   Date                `json:"date"`
	Values map[string]*float64 `json:"values"`
}

// IndicatorSeries is one computed indicator aligned 1:1 with the bar series
// it was computed over.
type IndicatorSeries struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Category    string           `json:"category"`
	Parameters  map[string]int   `json:"parameters,omitempty"`
	Values      []IndicatorPoint `json:"values"`
}
