package models

import "time"

// ImportResult reports the outcome of a bulk inventory import. Rows are
// processed independently: a failed row is recorded here and does not roll
// back rows already committed.
type ImportResult struct {
	Status         string        `json:"status"` // "completed", "completed_with_errors"
	TotalRows      int           `json:"total_rows"`
	ImportedRows   int           `json:"imported_rows"`
	FailedRows     int           `json:"failed_rows"`
	StartTime      time.Time     `json:"start_time"`
	CompletionTime time.Time     `json:"completion_time"`
	ArchiveURL     string        `json:"archive_url,omitempty"`
	Errors         []ImportError `json:"errors,omitempty"`
}

// ImportError pins a failure to the spreadsheet row it came from. RowNumber is
// the 1-based row in the sheet, so row 1 is the header.
type ImportError struct {
	RowNumber int    `json:"row_number"`
	Error     string `json:"error"`
}
