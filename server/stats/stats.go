// Package stats implements the read-only review analytics: overview counts,
// daily statistics, the accuracy trend, and learning streaks. Nothing here
// mutates state.
package stats

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	apierrors "github.com/kioku-app/kioku/server/internal/errors"
	"github.com/kioku-app/kioku/server/timezone"
	"github.com/kioku-app/kioku/store"
)

const (
	// MasteryThresholdReps is the lifetime correct count at which an item
	// counts as mastered.
	MasteryThresholdReps = 5

	// DashboardDailyStatsDays is the daily-stats window on the dashboard.
	DashboardDailyStatsDays = 7
	// DashboardAccuracyTrendDays is the accuracy-trend window on the dashboard.
	DashboardAccuracyTrendDays = 14

	// trendDateLayout is the compact MM/DD display format of the trend axis.
	trendDateLayout = "01/02"
)

// Service aggregates study history into dashboard figures.
type Service struct {
	store *store.Store
	loc   *time.Location

	// Now is the clock; tests override it.
	Now func() time.Time
}

// NewService creates a stats service operating in the given timezone.
func NewService(st *store.Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: st, loc: loc, Now: time.Now}
}

func (s *Service) now() time.Time {
	return s.Now().In(s.loc)
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Overview is the top-of-dashboard summary.
type Overview struct {
	TotalWords       int     `json:"total_words"`
	LearnedWords     int     `json:"learned_words"`
	MasteredWords    int     `json:"mastered_words"`
	NewWords         int     `json:"new_words"`
	DueToday         int     `json:"due_today"`
	LearningProgress float64 `json:"learning_progress"`
}

// Overview counts items by learning status. Learned means at least one
// lifetime correct recall; mastered means at least MasteryThresholdReps.
// DueToday counts everything scheduled up to the end of the current day.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	total, err := s.store.CountVocabulary(ctx)
	if err != nil {
		return nil, apierrors.StorageFailure("failed to count vocabulary", err)
	}

	minLearned := 1
	learned, err := s.store.CountReviewStates(ctx, &store.FindReviewState{MinReps: &minLearned})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to count learned items", err)
	}

	minMastered := MasteryThresholdReps
	mastered, err := s.store.CountReviewStates(ctx, &store.FindReviewState{MinReps: &minMastered})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to count mastered items", err)
	}

	endOfDayTs := timezone.EndOfDay(s.now(), s.loc).Unix()
	dueToday, err := s.store.CountReviewStates(ctx, &store.FindReviewState{NextReviewBefore: &endOfDayTs})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to count due items", err)
	}

	progress := 0.0
	if total > 0 {
		progress = float64(learned) / float64(total) * 100
	}

	return &Overview{
		TotalWords:       total,
		LearnedWords:     learned,
		MasteredWords:    mastered,
		NewWords:         total - learned,
		DueToday:         dueToday,
		LearningProgress: round1(progress),
	}, nil
}

// DailyStat is one calendar day of review activity.
type DailyStat struct {
	Date            string  `json:"date"`
	TotalReviews    int     `json:"total_reviews"`
	Correct         int     `json:"correct"`
	Incorrect       int     `json:"incorrect"`
	Accuracy        float64 `json:"accuracy"`
	NewWordsLearned int     `json:"new_words_learned"`
}

type dayCounts struct {
	total   int
	correct int
}

// bucketByDay groups log entries since fromTs into calendar-day counts.
func (s *Service) bucketByDay(ctx context.Context, fromTs int64) (map[time.Time]dayCounts, error) {
	logs, err := s.store.ListStudyLogs(ctx, &store.FindStudyLog{FromTs: &fromTs})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to list study logs", err)
	}

	byDay := make(map[time.Time]dayCounts)
	for _, entry := range logs {
		day := timezone.DateOf(entry.StudiedAtTs, s.loc)
		counts := byDay[day]
		counts.total++
		if entry.Known {
			counts.correct++
		}
		byDay[day] = counts
	}
	return byDay, nil
}

// Daily computes the last days calendar days of review activity, oldest
// first and including today. NewWordsLearned buckets each item's earliest
// correct answer across all history, not just the window; an item first
// learned before the window is not recounted when it is reviewed inside it.
func (s *Service) Daily(ctx context.Context, days int) ([]*DailyStat, error) {
	if days < 1 || days > 30 {
		return nil, apierrors.InvalidArgument("days must be between 1 and 30")
	}

	today := timezone.StartOfDay(s.now(), s.loc)
	start := today.AddDate(0, 0, -(days - 1))

	byDay, err := s.bucketByDay(ctx, start.Unix())
	if err != nil {
		return nil, err
	}

	firstSuccess, err := s.store.ListFirstSuccessTimestamps(ctx)
	if err != nil {
		return nil, apierrors.StorageFailure("failed to list first successes", err)
	}
	newWordsByDay := make(map[time.Time]int)
	for _, ts := range firstSuccess {
		newWordsByDay[timezone.DateOf(ts, s.loc)]++
	}

	result := make([]*DailyStat, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		counts := byDay[day]

		accuracy := 0.0
		if counts.total > 0 {
			accuracy = float64(counts.correct) / float64(counts.total) * 100
		}

		result = append(result, &DailyStat{
			Date:            timezone.FormatDate(day),
			TotalReviews:    counts.total,
			Correct:         counts.correct,
			Incorrect:       counts.total - counts.correct,
			Accuracy:        round1(accuracy),
			NewWordsLearned: newWordsByDay[day],
		})
	}
	return result, nil
}

// AccuracyTrend is the accuracy graph data: parallel arrays oldest first.
type AccuracyTrend struct {
	Dates        []string  `json:"dates"`
	Accuracy     []float64 `json:"accuracy"`
	TotalReviews []int     `json:"total_reviews"`
}

// AccuracyTrend computes per-day accuracy over a wider window than Daily,
// shaped for graphing.
func (s *Service) AccuracyTrend(ctx context.Context, days int) (*AccuracyTrend, error) {
	if days < 7 || days > 90 {
		return nil, apierrors.InvalidArgument("days must be between 7 and 90")
	}

	today := timezone.StartOfDay(s.now(), s.loc)
	start := today.AddDate(0, 0, -(days - 1))

	byDay, err := s.bucketByDay(ctx, start.Unix())
	if err != nil {
		return nil, err
	}

	trend := &AccuracyTrend{
		Dates:        make([]string, 0, days),
		Accuracy:     make([]float64, 0, days),
		TotalReviews: make([]int, 0, days),
	}
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		counts := byDay[day]

		accuracy := 0.0
		if counts.total > 0 {
			accuracy = float64(counts.correct) / float64(counts.total) * 100
		}

		trend.Dates = append(trend.Dates, day.Format(trendDateLayout))
		trend.Accuracy = append(trend.Accuracy, round1(accuracy))
		trend.TotalReviews = append(trend.TotalReviews, counts.total)
	}
	return trend, nil
}

// Dashboard is the complete dashboard snapshot.
type Dashboard struct {
	Overview         *Overview      `json:"overview"`
	RecentDailyStats []*DailyStat   `json:"recent_daily_stats"`
	AccuracyTrend    *AccuracyTrend `json:"accuracy_trend"`
	Streak           *StreakInfo    `json:"streak"`
}

// Dashboard assembles the four aggregations in one call. The parts are
// independent reads, so they run concurrently.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overview, err := s.Overview(ctx)
		dashboard.Overview = overview
		return err
	})
	g.Go(func() error {
		daily, err := s.Daily(ctx, DashboardDailyStatsDays)
		dashboard.RecentDailyStats = daily
		return err
	})
	g.Go(func() error {
		trend, err := s.AccuracyTrend(ctx, DashboardAccuracyTrendDays)
		dashboard.AccuracyTrend = trend
		return err
	})
	g.Go(func() error {
		streak, err := s.Streak(ctx)
		dashboard.Streak = streak
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
