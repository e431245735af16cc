package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apierrors "github.com/kioku-app/kioku/server/internal/errors"
	"github.com/kioku-app/kioku/store"
	storetest "github.com/kioku-app/kioku/store/test"
)

func newTestService(t *testing.T, now time.Time) (*Service, *store.Store) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	svc := NewService(ts, time.UTC)
	svc.Now = func() time.Time { return now }
	return svc, ts
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, ts := newTestService(t, now)

	// Ten items: two mastered, two more learned, three scheduled past today.
	// Creation is stamped with the frozen clock so the seeded states fall
	// due on the fixture's day, not the test runner's.
	futureDue := now.AddDate(0, 0, 5).Unix()
	for i := 0; i < 10; i++ {
		vocab, err := ts.CreateVocabulary(ctx, &store.Vocabulary{CreatedTs: now.Unix()})
		require.NoError(t, err)

		update := &store.UpdateReviewState{VocabID: vocab.ID}
		switch {
		case i < 2:
			reps := 6
			update.Reps = &reps
		case i < 4:
			reps := 1
			update.Reps = &reps
		}
		if i < 3 {
			update.NextReviewTs = &futureDue
		}
		_, err = ts.UpdateReviewState(ctx, update)
		require.NoError(t, err)
	}

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, overview.TotalWords)
	require.Equal(t, 4, overview.LearnedWords)
	require.Equal(t, 2, overview.MasteredWords)
	require.Equal(t, 6, overview.NewWords)
	require.Equal(t, 7, overview.DueToday)
	require.Equal(t, 40.0, overview.LearningProgress)
}

func TestOverviewEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Now())

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, overview.TotalWords)
	require.Equal(t, 0.0, overview.LearningProgress)
}

func TestDaily(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, ts := newTestService(t, now)

	a, err := ts.CreateVocabulary(ctx, &store.Vocabulary{})
	require.NoError(t, err)
	b, err := ts.CreateVocabulary(ctx, &store.Vocabulary{})
	require.NoError(t, err)

	at := func(day, hour int) int64 {
		return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC).Unix()
	}
	entries := []*store.StudyLog{
		// Item A was first learned three days before the window.
		{VocabID: a.ID, Known: true, StudiedAtTs: at(2, 10)},
		{VocabID: a.ID, Known: true, StudiedAtTs: at(5, 9)},
		// Item B is first learned inside the window.
		{VocabID: b.ID, Known: false, StudiedAtTs: at(5, 10)},
		{VocabID: b.ID, Known: true, StudiedAtTs: at(5, 11)},
	}
	for _, entry := range entries {
		_, err := ts.CreateStudyLog(ctx, entry)
		require.NoError(t, err)
	}

	daily, err := svc.Daily(ctx, 1)
	require.NoError(t, err)
	require.Len(t, daily, 1)

	day := daily[0]
	require.Equal(t, "2024-01-05", day.Date)
	require.Equal(t, 3, day.TotalReviews)
	require.Equal(t, 2, day.Correct)
	require.Equal(t, 1, day.Incorrect)
	require.Equal(t, 66.7, day.Accuracy)
	// Item A's first success predates the window, so reviewing it again
	// today does not recount it. Only item B is newly learned.
	require.Equal(t, 1, day.NewWordsLearned)
}

func TestDailyWindowShape(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	daily, err := svc.Daily(ctx, 7)
	require.NoError(t, err)
	require.Len(t, daily, 7)
	// Oldest first, ending on today; empty days are zero-filled.
	require.Equal(t, "2023-12-30", daily[0].Date)
	require.Equal(t, "2024-01-05", daily[6].Date)
	for _, day := range daily {
		require.Equal(t, 0, day.TotalReviews)
		require.Equal(t, 0.0, day.Accuracy)
	}
}

func TestDailyValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Now())

	for _, days := range []int{0, -1, 31} {
		_, err := svc.Daily(ctx, days)
		require.Error(t, err)
		require.True(t, apierrors.IsCode(err, apierrors.ErrCodeInvalidArgument))
	}
}

func TestAccuracyTrend(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	svc, ts := newTestService(t, now)

	vocab, err := ts.CreateVocabulary(ctx, &store.Vocabulary{})
	require.NoError(t, err)

	// Three reviews on Jan 8, two correct.
	for _, known := range []bool{true, true, false} {
		_, err := ts.CreateStudyLog(ctx, &store.StudyLog{
			VocabID:     vocab.ID,
			Known:       known,
			StudiedAtTs: time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC).Unix(),
		})
		require.NoError(t, err)
	}

	trend, err := svc.AccuracyTrend(ctx, 7)
	require.NoError(t, err)
	require.Len(t, trend.Dates, 7)
	require.Len(t, trend.Accuracy, 7)
	require.Len(t, trend.TotalReviews, 7)

	require.Equal(t, "01/04", trend.Dates[0])
	require.Equal(t, "01/10", trend.Dates[6])

	// Jan 8 is index 4 in the oldest-first window.
	require.Equal(t, 3, trend.TotalReviews[4])
	require.Equal(t, 66.7, trend.Accuracy[4])
	require.Equal(t, 0, trend.TotalReviews[6])
	require.Equal(t, 0.0, trend.Accuracy[6])
}

func TestAccuracyTrendValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Now())

	for _, days := range []int{6, 91} {
		_, err := svc.AccuracyTrend(ctx, days)
		require.Error(t, err)
		require.True(t, apierrors.IsCode(err, apierrors.ErrCodeInvalidArgument))
	}
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	svc, ts := newTestService(t, now)

	vocab, err := ts.CreateVocabulary(ctx, &store.Vocabulary{})
	require.NoError(t, err)
	_, err = ts.CreateStudyLog(ctx, &store.StudyLog{
		VocabID:     vocab.ID,
		Known:       true,
		StudiedAtTs: now.Unix(),
	})
	require.NoError(t, err)

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.NotNil(t, dashboard.Overview)
	require.NotNil(t, dashboard.AccuracyTrend)
	require.NotNil(t, dashboard.Streak)
	require.Len(t, dashboard.RecentDailyStats, DashboardDailyStatsDays)
	require.Len(t, dashboard.AccuracyTrend.Dates, DashboardAccuracyTrendDays)

	require.Equal(t, 1, dashboard.Overview.TotalWords)
	require.Equal(t, 1, dashboard.Streak.CurrentStreak)
	require.Equal(t, 1, dashboard.RecentDailyStats[DashboardDailyStatsDays-1].TotalReviews)
}
