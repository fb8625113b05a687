package models

// Data types stored per symbol.
const (
	DataTypeDaily  = "daily"
	DataTypeWeekly = "weekly"
)

// DataRange is the inclusive date span covered by a stored series.
type DataRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// FileMetadata describes a stored series.
type FileMetadata struct {
	TotalRecords int    `json:"total_records"`
	TradingDays  int    `json:"trading_days"`
	Source       string `json:"source"`
}

// DailyFile is the stored daily series for one symbol, bars plus any
// indicators computed over them.
type DailyFile struct {
	Symbol      string                     `json:"symbol"`
	DataType    string                     `json:"data_type"`
	LastUpdated Date                       `json:"last_updated"`
	DataRange   DataRange                  `json:"data_range"`
	Bars        []DailyBar                 `json:"data_points"`
	Indicators  map[string]IndicatorSeries `json:"indicators,omitempty"`
	Metadata    FileMetadata               `json:"metadata"`
}

// WeeklyFile is the stored weekly series for one symbol.
type WeeklyFile struct {
	Symbol      string                     `json:"symbol"`
	DataType    string                     `json:"data_type"`
	LastUpdated Date                       `json:"last_updated"`
	DataRange   DataRange                  `json:"data_range"`
	Bars        []WeeklyBar                `json:"data_points"`
	Indicators  map[string]IndicatorSeries `json:"indicators,omitempty"`
	Metadata    FileMetadata               `json:"metadata"`
}

// SymbolSummary is one catalog entry.
type SymbolSummary struct {
	Symbol      string `json:"symbol"`
	StartDate   Date   `json:"start_date"`
	EndDate     Date   `json:"end_date"`
	TotalDays   int    `json:"total_days"`
	HasWeekly   bool   `json:"has_weekly"`
	LastUpdated Date   `json:"last_updated"`
}

// Catalog lists every symbol with stored data.
type Catalog struct {
	Version     string          `json:"version"`
	LastUpdated Date            `json:"last_updated"`
	SymbolCount int             `json:"symbol_count"`
	Symbols     []SymbolSummary `json:"symbols"`
}

// Find returns the summary for symbol, or nil.
func (c *Catalog) Find(symbol string) *SymbolSummary {
	for i := range c.Symbols {
		if c.Symbols[i].Symbol == symbol {
			return &c.Symbols[i]
		}
	}
	return nil
}

// Upsert replaces the entry for s.Symbol or appends it, keeping
// SymbolCount consistent.
func (c *Catalog) Upsert(s SymbolSummary) {
	if existing := c.Find(s.Symbol); existing != nil {
		*existing = s
	} else {
		c.Symbols = append(c.Symbols, s)
	}
	c.SymbolCount = len(c.Symbols)
}

// Remove drops the entry for symbol if present.
func (c *Catalog) Remove(symbol string) bool {
	for i := range c.Symbols {
		if c.Symbols[i].Symbol == symbol {
			c.Symbols = append(c.Symbols[:i], c.Symbols[i+1:]...)
			c.SymbolCount = len(c.Symbols)
			return true
		}
	}
	return false
}

// LatestPrice is the cached most-recent-close view of a symbol.
type LatestPrice struct {
	Symbol        string  `json:"symbol"`
	Date          Date    `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	Volume        int64   `json:"volume"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}
