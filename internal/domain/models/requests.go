package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Requests for stock data HTTP endpoints. Defined in domain for consistency and reuse.

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.]{1,10}$`)

// NormalizeSymbol uppercases and validates a ticker symbol: 1-10 characters,
// uppercase letters, digits and dots.
func NormalizeSymbol(raw string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(raw))
	if !symbolPattern.MatchString(sym) {
		return "", fmt.Errorf("invalid symbol %q: must be 1-10 uppercase letters, digits or dots", raw)
	}
	return sym, nil
}

type DownloadRequest struct {
	Period     string `query:"period" json:"period" default:"max" validate:"oneof=1mo 3mo 6mo 1y 2y 5y 10y max"`
	Indicators string `query:"indicators" json:"indicators" default:"default"`
}

type BulkDownloadRequest struct {
	Symbols    []string `json:"symbols" validate:"required,min=1,max=50"`
	Period     string   `json:"period" default:"max" validate:"oneof=1mo 3mo 6mo 1y 2y 5y 10y max"`
	Indicators string   `json:"indicators" default:"default"`
}

type SyncRequest struct {
	Indicators string `query:"indicators" json:"indicators" default:"default"`
}

type DataRequest struct {
	StartDate  string `query:"start_date" json:"start_date"`
	EndDate    string `query:"end_date" json:"end_date"`
	Indicators string `query:"indicators" json:"indicators"`
	Limit      int    `query:"limit" json:"limit" default:"0" validate:"gte=0,lte=20000"`
}
