package models

// Sync/download result statuses.
const (
	SyncStatusSuccess  = "success"
	SyncStatusUpToDate = "up_to_date"
	SyncStatusNoData   = "no_data"
	SyncStatusError    = "error"
)

// MergeStats summarizes what an incremental merge changed.
type MergeStats struct {
	NewPoints  int      `json:"new_points"`
	Overwrites int      `json:"overwrites"`
	Duplicates int      `json:"duplicates"`
	Warnings   []string `json:"warnings,omitempty"`
}

// SyncResult reports the outcome of a download or sync for one symbol.
type SyncResult struct {
	Status        string     `json:"status"`
	Symbol        string     `json:"symbol"`
	DailyRecords  int        `json:"daily_records"`
	WeeklyRecords int        `json:"weekly_records"`
	NewPoints     int        `json:"new_points"`
	Overwrites    int        `json:"overwrites"`
	Duplicates    int        `json:"duplicates"`
	DateRange     *DataRange `json:"date_range,omitempty"`
	Warnings      []string   `json:"warnings,omitempty"`
	Message       string     `json:"message,omitempty"`
}

// BulkResult reports an itemized bulk download.
type BulkResult struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Results   []SyncResult `json:"results"`
}
