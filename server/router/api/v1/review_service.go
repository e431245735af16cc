package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/kioku-app/kioku/server/internal/errors"
	"github.com/kioku-app/kioku/server/review"
	"github.com/kioku-app/kioku/store"
)

// ReviewCard is one due item in the review queue.
type ReviewCard struct {
	VocabID    string  `json:"vocab_id"`
	Interval   int     `json:"interval"`
	EaseFactor float64 `json:"ease_factor"`
	Reps       int     `json:"reps"`
	NextReview string  `json:"next_review"`
}

// ReviewCardsResponse is one page of the due queue plus the uncapped total.
type ReviewCardsResponse struct {
	Cards []*ReviewCard `json:"cards"`
	Total int           `json:"total"`
}

// AnswerRequest submits one outcome for an item.
type AnswerRequest struct {
	VocabID string `json:"vocab_id"`
	Known   bool   `json:"known"`
}

// AnswerResponse reports the updated schedule.
type AnswerResponse struct {
	VocabID     string  `json:"vocab_id"`
	NextReview  string  `json:"next_review"`
	NewInterval int     `json:"new_interval"`
	EaseFactor  float64 `json:"ease_factor"`
	Reps        int     `json:"reps"`
}

// ReviewStatsResponse summarizes upcoming review load.
type ReviewStatsResponse struct {
	DueNow        int `json:"due_now"`
	DueToday      int `json:"due_today"`
	DueThisWeek   int `json:"due_this_week"`
	TotalReviewed int `json:"total_reviewed"`
}

// ResetResponse confirms an administrative reset.
type ResetResponse struct {
	Message string `json:"message"`
	VocabID string `json:"vocab_id"`
}

func (s *APIV1Service) toReviewCard(state *store.ReviewState) *ReviewCard {
	return &ReviewCard{
		VocabID:    state.VocabUID,
		Interval:   state.IntervalDays,
		EaseFactor: state.EaseFactor,
		Reps:       state.Reps,
		NextReview: s.formatTime(state.NextReviewTs),
	}
}

// GetReviewCards handles GET /api/v1/review/cards.
func (s *APIV1Service) GetReviewCards(c echo.Context) error {
	limit := review.DefaultDueLimit
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return respondError(c, apierrors.InvalidArgument("limit must be a positive integer"))
		}
		limit = parsed
	}

	due, err := s.ReviewService.DueCards(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}

	cards := make([]*ReviewCard, 0, len(due.Cards))
	for _, state := range due.Cards {
		cards = append(cards, s.toReviewCard(state))
	}
	return c.JSON(http.StatusOK, &ReviewCardsResponse{Cards: cards, Total: due.Total})
}

// SubmitAnswer handles POST /api/v1/review/answer.
func (s *APIV1Service) SubmitAnswer(c echo.Context) error {
	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apierrors.InvalidArgument("malformed request body"))
	}
	if req.VocabID == "" {
		return respondError(c, apierrors.InvalidArgument("vocab_id is required"))
	}

	state, err := s.ReviewService.SubmitAnswer(c.Request().Context(), req.VocabID, req.Known)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, &AnswerResponse{
		VocabID:     state.VocabUID,
		NextReview:  s.formatTime(state.NextReviewTs),
		NewInterval: state.IntervalDays,
		EaseFactor:  state.EaseFactor,
		Reps:        state.Reps,
	})
}

// GetReviewStats handles GET /api/v1/review/stats.
func (s *APIV1Service) GetReviewStats(c echo.Context) error {
	reviewStats, err := s.ReviewService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, &ReviewStatsResponse{
		DueNow:        reviewStats.DueNow,
		DueToday:      reviewStats.DueToday,
		DueThisWeek:   reviewStats.DueThisWeek,
		TotalReviewed: reviewStats.TotalReviewed,
	})
}

// ResetReview handles POST /api/v1/review/reset/:uid.
func (s *APIV1Service) ResetReview(c echo.Context) error {
	uid := c.Param("uid")
	if uid == "" {
		return respondError(c, apierrors.InvalidArgument("uid is required"))
	}

	state, err := s.ReviewService.Reset(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, &ResetResponse{
		Message: "review progress reset",
		VocabID: state.VocabUID,
	})
}
