package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/kioku-app/kioku/server/internal/errors"
	"github.com/kioku-app/kioku/server/stats"
)

// parseDaysParam parses the days query parameter with a default.
func parseDaysParam(c echo.Context, defaultDays int) (int, error) {
	v := c.QueryParam("days")
	if v == "" {
		return defaultDays, nil
	}
	days, err := strconv.Atoi(v)
	if err != nil {
		return 0, apierrors.InvalidArgument("days must be an integer")
	}
	return days, nil
}

// GetOverview handles GET /api/v1/stats/overview.
func (s *APIV1Service) GetOverview(c echo.Context) error {
	overview, err := s.StatsService.Overview(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}

// GetDailyStats handles GET /api/v1/stats/daily.
func (s *APIV1Service) GetDailyStats(c echo.Context) error {
	days, err := parseDaysParam(c, stats.DashboardDailyStatsDays)
	if err != nil {
		return respondError(c, err)
	}

	daily, err := s.StatsService.Daily(c.Request().Context(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, daily)
}

// GetAccuracyTrend handles GET /api/v1/stats/accuracy.
func (s *APIV1Service) GetAccuracyTrend(c echo.Context) error {
	days, err := parseDaysParam(c, stats.DashboardAccuracyTrendDays)
	if err != nil {
		return respondError(c, err)
	}

	trend, err := s.StatsService.AccuracyTrend(c.Request().Context(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, trend)
}

// GetStreak handles GET /api/v1/stats/streak.
func (s *APIV1Service) GetStreak(c echo.Context) error {
	streak, err := s.StatsService.Streak(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, streak)
}

// GetDashboard handles GET /api/v1/stats/dashboard.
func (s *APIV1Service) GetDashboard(c echo.Context) error {
	dashboard, err := s.StatsService.Dashboard(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
