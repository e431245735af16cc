package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Vocabulary model related methods.
	CreateVocabulary(ctx context.Context, create *Vocabulary) (*Vocabulary, error)
	ListVocabulary(ctx context.Context, find *FindVocabulary) ([]*Vocabulary, error)
	CountVocabulary(ctx context.Context) (int, error)
	DeleteVocabulary(ctx context.Context, delete *DeleteVocabulary) error

	// ReviewState model related methods.
	ListReviewStates(ctx context.Context, find *FindReviewState) ([]*ReviewState, error)
	CountReviewStates(ctx context.Context, find *FindReviewState) (int, error)
	UpdateReviewState(ctx context.Context, update *UpdateReviewState) error

	// StudyLog model related methods.
	CreateStudyLog(ctx context.Context, create *StudyLog) (*StudyLog, error)
	ListStudyLogs(ctx context.Context, find *FindStudyLog) ([]*StudyLog, error)
	// ListFirstSuccessTimestamps returns, for every vocabulary item that has
	// at least one correct answer in the log, the timestamp of its earliest
	// correct answer across all history.
	ListFirstSuccessTimestamps(ctx context.Context) ([]int64, error)
}
