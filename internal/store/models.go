package store

import "time"

// SessionRecord is one finished timer session.
type SessionRecord struct {
	ID              int64
	SessionType     string // work, short-break, long-break
	NominalSeconds  int
	StartedAt       time.Time
	FinishedAt      time.Time
	TaskDescription string
}

// DailySummary aggregates finished sessions of one type on one day.
type DailySummary struct {
	Date         string
	SessionType  string
	Count        int
	TotalSeconds int64
}
