package models

import "time"

// ReportResult is one completed generation, held in the active view until a
// new request or a loaded history record replaces it.
type ReportResult struct {
	Topic   string
	Report  string
	Sources []string
}

// HistoryRecord is a durable log entry of one completed research request.
// Records are created by the history synchronizer right after a successful
// generation and never mutated afterwards.
type HistoryRecord struct {
	ID        string
	UserID    string
	Topic     string
	Report    string
	Sources   []string
	CreatedAt time.Time
}

// Result copies the record's content into an active-view ReportResult.
func (h HistoryRecord) Result() ReportResult {
	return ReportResult{Topic: h.Topic, Report: h.Report, Sources: h.Sources}
}
