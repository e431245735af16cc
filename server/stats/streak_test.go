package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kioku-app/kioku/store"
)

func seedStudyDays(t *testing.T, ts *store.Store, days ...time.Time) {
	ctx := context.Background()
	vocab, err := ts.CreateVocabulary(ctx, &store.Vocabulary{})
	require.NoError(t, err)
	for _, day := range days {
		_, err := ts.CreateStudyLog(ctx, &store.StudyLog{
			VocabID:     vocab.ID,
			Known:       true,
			StudiedAtTs: day.Unix(),
		})
		require.NoError(t, err)
	}
}

func TestStreakEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Now())

	streak, err := svc.Streak(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, streak.CurrentStreak)
	require.Equal(t, 0, streak.LongestStreak)
	require.Empty(t, streak.LastStudyDate)
}

func TestStreakBrokenByGap(t *testing.T) {
	// Studied Jan 1-3, skipped Jan 4, studied Jan 5. The gap breaks the
	// current run at one day; the grace day applies only before the most
	// recent study day, never inside the run.
	now := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	ctx := context.Background()
	svc, ts := newTestService(t, now)

	seedStudyDays(t, ts,
		time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
	)

	streak, err := svc.Streak(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, streak.CurrentStreak)
	require.Equal(t, 3, streak.LongestStreak)
	require.Equal(t, "2024-01-05", streak.LastStudyDate)
}

func TestStreakGraceDay(t *testing.T) {
	// Studied Jan 1-4 but not yet today (Jan 5): the run is still alive.
	now := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	ctx := context.Background()
	svc, ts := newTestService(t, now)

	seedStudyDays(t, ts,
		time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC),
	)

	streak, err := svc.Streak(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, streak.CurrentStreak)
	require.Equal(t, 4, streak.LongestStreak)
}

func TestStreakExpired(t *testing.T) {
	// Last study two days ago: the current streak is gone, the longest
	// remains.
	now := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	ctx := context.Background()
	svc, ts := newTestService(t, now)

	seedStudyDays(t, ts,
		time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
	)

	streak, err := svc.Streak(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, streak.CurrentStreak)
	require.Equal(t, 2, streak.LongestStreak)
	require.Equal(t, "2024-01-03", streak.LastStudyDate)
}

func TestStreakIncludingToday(t *testing.T) {
	now := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	ctx := context.Background()
	svc, ts := newTestService(t, now)

	seedStudyDays(t, ts,
		time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
	)

	streak, err := svc.Streak(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, streak.CurrentStreak)
	require.Equal(t, 2, streak.LongestStreak)
}

func TestStreakMultipleLogsPerDay(t *testing.T) {
	// Several reviews on the same day count as one study day.
	now := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	ctx := context.Background()
	svc, ts := newTestService(t, now)

	seedStudyDays(t, ts,
		time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 16, 0, 0, 0, time.UTC),
	)

	streak, err := svc.Streak(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, streak.CurrentStreak)
	require.Equal(t, 1, streak.LongestStreak)
}
