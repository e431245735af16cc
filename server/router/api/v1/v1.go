// Package v1 exposes the review, stats and vocabulary services over HTTP.
package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kioku-app/kioku/internal/profile"
	apierrors "github.com/kioku-app/kioku/server/internal/errors"
	"github.com/kioku-app/kioku/server/review"
	"github.com/kioku-app/kioku/server/stats"
	"github.com/kioku-app/kioku/store"
)

type APIV1Service struct {
	Profile       *profile.Profile
	Store         *store.Store
	ReviewService *review.Service
	StatsService  *stats.Service

	loc *time.Location
}

// NewAPIV1Service wires the services against one store and one timezone.
func NewAPIV1Service(profile *profile.Profile, store *store.Store, loc *time.Location) *APIV1Service {
	if loc == nil {
		loc = time.UTC
	}
	return &APIV1Service{
		Profile:       profile,
		Store:         store,
		ReviewService: review.NewService(store, loc),
		StatsService:  stats.NewService(store, loc),
		loc:           loc,
	}
}

// Register registers all v1 routes on the given Echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.POST("/vocab", s.CreateVocabulary)
	g.GET("/vocab", s.ListVocabulary)
	g.DELETE("/vocab/:uid", s.DeleteVocabulary)

	g.GET("/review/cards", s.GetReviewCards)
	g.POST("/review/answer", s.SubmitAnswer)
	g.GET("/review/stats", s.GetReviewStats)
	g.POST("/review/reset/:uid", s.ResetReview)

	g.GET("/stats/overview", s.GetOverview)
	g.GET("/stats/daily", s.GetDailyStats)
	g.GET("/stats/accuracy", s.GetAccuracyTrend)
	g.GET("/stats/streak", s.GetStreak)
	g.GET("/stats/dashboard", s.GetDashboard)
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Code    apierrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// respondError maps the error taxonomy onto HTTP statuses: NOT_FOUND to 404,
// INVALID_ARGUMENT to 400, everything else to 500.
func respondError(c echo.Context, err error) error {
	code := apierrors.GetCodeFromError(err, apierrors.ErrCodeStorageFailure)

	status := http.StatusInternalServerError
	switch code {
	case apierrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apierrors.ErrCodeInvalidArgument:
		status = http.StatusBadRequest
	}

	return c.JSON(status, &errorResponse{Code: code, Message: err.Error()})
}

// formatTime renders a timestamp in the service timezone for API payloads.
func (s *APIV1Service) formatTime(ts int64) string {
	return time.Unix(ts, 0).In(s.loc).Format(time.RFC3339)
}
