package store

import (
	"context"
)

// ReviewState is the schedule record for one vocabulary item. Exactly one
// exists per item; it is created when the item is created and destroyed by
// the item's cascading delete.
type ReviewState struct {
	ID      int32
	VocabID int32
	// VocabUID is joined in from the owning vocabulary item.
	VocabUID     string
	IntervalDays int
	EaseFactor   float64
	Reps         int
	NextReviewTs int64
	UpdatedTs    int64
}

// FindReviewState is the find condition for review states.
type FindReviewState struct {
	ID       *int32
	VocabID  *int32
	VocabUID *string

	// NextReviewBefore filters next_review_ts <= value (inclusive, matching
	// the due predicate).
	NextReviewBefore *int64
	// NextReviewAfter filters next_review_ts >= value.
	NextReviewAfter *int64
	// MinReps filters reps >= value.
	MinReps *int

	// Limit caps the result count. Results are always ordered by
	// next_review_ts ascending with vocab_id as the deterministic tie break.
	Limit *int
}

// UpdateReviewState is the update request for a review state, keyed by the
// owning vocabulary item.
type UpdateReviewState struct {
	VocabID int32

	IntervalDays *int
	EaseFactor   *float64
	Reps         *int
	NextReviewTs *int64
	UpdatedTs    *int64
}

// ListReviewStates lists review states with filter, earliest-due first.
func (s *Store) ListReviewStates(ctx context.Context, find *FindReviewState) ([]*ReviewState, error) {
	return s.driver.ListReviewStates(ctx, find)
}

// GetReviewState gets a single review state, or nil if none matches.
// Lookups by vocabulary UID are served from cache when possible.
func (s *Store) GetReviewState(ctx context.Context, find *FindReviewState) (*ReviewState, error) {
	if uid := find.VocabUID; uid != nil && find.ID == nil && find.VocabID == nil &&
		find.NextReviewBefore == nil && find.NextReviewAfter == nil && find.MinReps == nil {
		if v, ok := s.reviewStateCache.Get(ctx, *uid); ok {
			if state, ok := v.(*ReviewState); ok {
				return state, nil
			}
		}
	}

	list, err := s.driver.ListReviewStates(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	state := list[0]
	s.reviewStateCache.Set(ctx, state.VocabUID, state)
	return state, nil
}

// CountReviewStates counts review states matching the filter, ignoring Limit.
func (s *Store) CountReviewStates(ctx context.Context, find *FindReviewState) (int, error) {
	return s.driver.CountReviewStates(ctx, find)
}

// UpdateReviewState applies the update and returns the fresh state. The
// cached entry for the item is replaced so subsequent reads observe the
// write.
func (s *Store) UpdateReviewState(ctx context.Context, update *UpdateReviewState) (*ReviewState, error) {
	if err := s.driver.UpdateReviewState(ctx, update); err != nil {
		return nil, err
	}
	list, err := s.driver.ListReviewStates(ctx, &FindReviewState{VocabID: &update.VocabID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	state := list[0]
	s.reviewStateCache.Set(ctx, state.VocabUID, state)
	return state, nil
}
