// Package review implements the review workflow: answering due cards,
// querying the due queue, and the administrative reset.
package review

import (
	"context"
	"sync"
	"time"

	apierrors "github.com/kioku-app/kioku/server/internal/errors"
	"github.com/kioku-app/kioku/server/srs"
	"github.com/kioku-app/kioku/server/timezone"
	"github.com/kioku-app/kioku/store"
)

// DefaultDueLimit is the due-queue page size when the caller does not ask
// for one.
const DefaultDueLimit = 20

// MaxDueLimit caps the due-queue page size.
const MaxDueLimit = 100

// Service wires the schedule engine to the store.
type Service struct {
	store *store.Store
	loc   *time.Location

	// Now is the clock; tests override it.
	Now func() time.Time

	// itemLocks serializes writes per vocabulary item so two racing
	// submissions cannot lose an update. Writes to different items proceed
	// in parallel.
	mu        sync.Mutex
	itemLocks map[string]*sync.Mutex
}

// NewService creates a review service operating in the given timezone.
func NewService(st *store.Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:     st,
		loc:       loc,
		Now:       time.Now,
		itemLocks: make(map[string]*sync.Mutex),
	}
}

func (s *Service) now() time.Time {
	return s.Now().In(s.loc)
}

// itemLock gets or creates the per-item mutex for the given UID.
func (s *Service) itemLock(uid string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.itemLocks[uid]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.itemLocks[uid] = l
	return l
}

// DueCards holds one page of the due queue plus the uncapped total.
type DueCards struct {
	Cards []*store.ReviewState
	Total int
}

// SubmitAnswer applies one outcome to the item's schedule and appends the
// study log entry. It fails with NOT_FOUND if the item has no review state;
// states are never created here.
func (s *Service) SubmitAnswer(ctx context.Context, vocabUID string, known bool) (*store.ReviewState, error) {
	lock := s.itemLock(vocabUID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.GetReviewState(ctx, &store.FindReviewState{VocabUID: &vocabUID})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to load review state", err)
	}
	if state == nil {
		return nil, apierrors.NotFound("review state not found")
	}

	now := s.now()
	next := srs.Apply(srs.State{
		IntervalDays: state.IntervalDays,
		EaseFactor:   state.EaseFactor,
		Reps:         state.Reps,
		NextReview:   time.Unix(state.NextReviewTs, 0).In(s.loc),
	}, known, now)

	nextReviewTs := next.NextReview.Unix()
	updatedTs := now.Unix()
	updated, err := s.store.UpdateReviewState(ctx, &store.UpdateReviewState{
		VocabID:      state.VocabID,
		IntervalDays: &next.IntervalDays,
		EaseFactor:   &next.EaseFactor,
		Reps:         &next.Reps,
		NextReviewTs: &nextReviewTs,
		UpdatedTs:    &updatedTs,
	})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to update review state", err)
	}

	// The outcome is logged for both branches; analytics depends on lapses
	// being recorded too.
	if _, err := s.store.CreateStudyLog(ctx, &store.StudyLog{
		VocabID:     state.VocabID,
		Known:       known,
		StudiedAtTs: now.Unix(),
	}); err != nil {
		return nil, apierrors.StorageFailure("failed to append study log", err)
	}

	return updated, nil
}

// DueCards returns up to limit due items ordered earliest-due first, plus
// the uncapped due total for badge display.
func (s *Service) DueCards(ctx context.Context, limit int) (*DueCards, error) {
	if limit <= 0 {
		limit = DefaultDueLimit
	}
	if limit > MaxDueLimit {
		return nil, apierrors.InvalidArgument("limit must be at most 100")
	}

	nowTs := s.now().Unix()
	cards, err := s.store.ListReviewStates(ctx, &store.FindReviewState{
		NextReviewBefore: &nowTs,
		Limit:            &limit,
	})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to list due cards", err)
	}

	total, err := s.store.CountReviewStates(ctx, &store.FindReviewState{NextReviewBefore: &nowTs})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to count due cards", err)
	}

	return &DueCards{Cards: cards, Total: total}, nil
}

// Stats summarizes upcoming review load.
type Stats struct {
	DueNow        int
	DueToday      int
	DueThisWeek   int
	TotalReviewed int
}

// Stats returns due counts for now, the rest of today, and the coming week,
// plus the number of items reviewed at least once.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	todayStart := timezone.StartOfDay(now, s.loc)
	tomorrowStart := todayStart.AddDate(0, 0, 1)
	weekEnd := todayStart.AddDate(0, 0, 7)

	nowTs := now.Unix()
	dueNow, err := s.store.CountReviewStates(ctx, &store.FindReviewState{NextReviewBefore: &nowTs})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to count due cards", err)
	}

	todayStartTs := todayStart.Unix()
	beforeTomorrowTs := tomorrowStart.Unix() - 1
	dueToday, err := s.store.CountReviewStates(ctx, &store.FindReviewState{
		NextReviewAfter:  &todayStartTs,
		NextReviewBefore: &beforeTomorrowTs,
	})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to count cards due today", err)
	}

	beforeWeekEndTs := weekEnd.Unix() - 1
	dueWeek, err := s.store.CountReviewStates(ctx, &store.FindReviewState{
		NextReviewAfter:  &todayStartTs,
		NextReviewBefore: &beforeWeekEndTs,
	})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to count cards due this week", err)
	}

	minReps := 1
	totalReviewed, err := s.store.CountReviewStates(ctx, &store.FindReviewState{MinReps: &minReps})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to count reviewed items", err)
	}

	return &Stats{
		DueNow:        dueNow,
		DueToday:      dueToday,
		DueThisWeek:   dueWeek,
		TotalReviewed: totalReviewed,
	}, nil
}

// Reset restores an item's schedule to the freshly-created defaults. It
// bypasses the engine and appends no study log entry.
func (s *Service) Reset(ctx context.Context, vocabUID string) (*store.ReviewState, error) {
	lock := s.itemLock(vocabUID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.GetReviewState(ctx, &store.FindReviewState{VocabUID: &vocabUID})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to load review state", err)
	}
	if state == nil {
		return nil, apierrors.NotFound("review state not found")
	}

	now := s.now()
	def := srs.DefaultState(now)
	nextReviewTs := def.NextReview.Unix()
	updatedTs := now.Unix()
	updated, err := s.store.UpdateReviewState(ctx, &store.UpdateReviewState{
		VocabID:      state.VocabID,
		IntervalDays: &def.IntervalDays,
		EaseFactor:   &def.EaseFactor,
		Reps:         &def.Reps,
		NextReviewTs: &nextReviewTs,
		UpdatedTs:    &updatedTs,
	})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to reset review state", err)
	}
	return updated, nil
}
