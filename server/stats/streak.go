package stats

import (
	"context"
	"sort"
	"time"

	apierrors "github.com/kioku-app/kioku/server/internal/errors"
	"github.com/kioku-app/kioku/server/timezone"
	"github.com/kioku-app/kioku/store"
)

// StreakInfo describes consecutive-day study activity.
type StreakInfo struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	// LastStudyDate is empty when there is no history.
	LastStudyDate string `json:"last_study_date,omitempty"`
}

// Streak computes the current and longest runs of calendar-consecutive study
// days. The current streak is still alive when the most recent studied day
// is yesterday: studying yesterday but not yet today keeps it going. Beyond
// that one grace day every earlier day of the run must be present.
func (s *Service) Streak(ctx context.Context) (*StreakInfo, error) {
	logs, err := s.store.ListStudyLogs(ctx, &store.FindStudyLog{})
	if err != nil {
		return nil, apierrors.StorageFailure("failed to list study logs", err)
	}

	if len(logs) == 0 {
		return &StreakInfo{}, nil
	}

	daySet := make(map[time.Time]struct{})
	for _, entry := range logs {
		daySet[timezone.DateOf(entry.StudiedAtTs, s.loc)] = struct{}{}
	}

	// Distinct study days, newest first.
	days := make([]time.Time, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := timezone.StartOfDay(s.now(), s.loc)

	return &StreakInfo{
		CurrentStreak: currentStreak(days, today),
		LongestStreak: longestStreak(days),
		LastStudyDate: timezone.FormatDate(days[0]),
	}, nil
}

// currentStreak walks back from the most recent study day. days must be
// distinct and sorted newest first.
func currentStreak(days []time.Time, today time.Time) int {
	yesterday := today.AddDate(0, 0, -1)
	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	check := days[0].AddDate(0, 0, -1)
	for _, day := range days[1:] {
		if !day.Equal(check) {
			break
		}
		streak++
		check = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak finds the longest run of calendar-consecutive days anywhere
// in the history. days must be distinct and sorted newest first.
// AddDate is used instead of 24h subtraction so DST transitions do not break
// a run.
func longestStreak(days []time.Time) int {
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}
