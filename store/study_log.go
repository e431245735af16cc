package store

import (
	"context"
)

// StudyLog is one submitted answer. Entries are append-only and immutable;
// the only way one disappears is the cascading delete of its item.
type StudyLog struct {
	ID          int32
	VocabID     int32
	Known       bool
	StudiedAtTs int64
}

// FindStudyLog is the find condition for study log entries.
type FindStudyLog struct {
	VocabID *int32
	// FromTs filters studied_at_ts >= value.
	FromTs *int64
	// Known filters by outcome.
	Known *bool
}

// CreateStudyLog appends a study log entry.
func (s *Store) CreateStudyLog(ctx context.Context, create *StudyLog) (*StudyLog, error) {
	return s.driver.CreateStudyLog(ctx, create)
}

// ListStudyLogs lists study log entries with filter, oldest first.
func (s *Store) ListStudyLogs(ctx context.Context, find *FindStudyLog) ([]*StudyLog, error) {
	return s.driver.ListStudyLogs(ctx, find)
}

// ListFirstSuccessTimestamps returns the earliest correct-answer timestamp
// per vocabulary item, across all history.
func (s *Store) ListFirstSuccessTimestamps(ctx context.Context) ([]int64, error) {
	return s.driver.ListFirstSuccessTimestamps(ctx)
}
