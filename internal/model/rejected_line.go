package model

// RejectedLine records a log line skipped by a recoverable parse error.
type RejectedLine struct {
	LineNumber uint64 `json:"line_number"`
	Kind       string `json:"kind"`
	Reason     string `json:"reason"`
	Line       string `json:"line"`
}
