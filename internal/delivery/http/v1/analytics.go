package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskflow/internal/model"
)

const (
	defaultPerformanceDays  = 30
	defaultLeaderboardLimit = 10
)

type userStatsResponse struct {
	TodayTasks     int `json:"todayTasks"`
	CompletedToday int `json:"completedToday"`
	WeekTasks      int `json:"weekTasks"`
	CurrentStreak  int `json:"currentStreak"`
}

type performanceStatsResponse struct {
	Date           time.Time `json:"date"`
	TasksCreated   int       `json:"tasksCreated"`
	TasksCompleted int       `json:"tasksCompleted"`
	CompletionRate int       `json:"completionRate"`
	StreakDays     int       `json:"streakDays"`
}

func newPerformanceStatsResponse(stats model.PerformanceStats) performanceStatsResponse {
	return performanceStatsResponse{
		Date:           stats.Date,
		TasksCreated:   stats.TasksCreated,
		TasksCompleted: stats.TasksCompleted,
		CompletionRate: stats.CompletionRate,
		StreakDays:     stats.StreakDays,
	}
}

type leaderboardEntryResponse struct {
	User           userResponse `json:"user"`
	TotalTasks     int          `json:"totalTasks"`
	CompletionRate int          `json:"completionRate"`
}

func (h *handlerImpl) HandleGetUserStats(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.analytics.UserStats(c.Request.Context(), userID)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userStatsResponse{
		TodayTasks:     stats.TodayTasks,
		CompletedToday: stats.CompletedToday,
		WeekTasks:      stats.WeekTasks,
		CurrentStreak:  stats.CurrentStreak,
	})
}

func (h *handlerImpl) HandleGetPerformance(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	days, ok := h.positiveIntQuery(c, "days", defaultPerformanceDays)
	if !ok {
		return
	}

	stats, err := h.analytics.PerformanceHistory(c.Request.Context(), userID, days)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}

	resp := make([]performanceStatsResponse, 0, len(stats))
	for _, row := range stats {
		resp = append(resp, newPerformanceStatsResponse(row))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlerImpl) HandleGetLeaderboard(c *gin.Context) {
	if _, ok := h.currentUserID(c); !ok {
		return
	}

	limit, ok := h.positiveIntQuery(c, "limit", defaultLeaderboardLimit)
	if !ok {
		return
	}

	entries, err := h.analytics.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}

	resp := make([]leaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, leaderboardEntryResponse{
			User:           newUserResponse(&entry.User),
			TotalTasks:     entry.TotalTasks,
			CompletionRate: entry.CompletionRate,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// positiveIntQuery parses an optional positive integer query parameter,
// aborting with 400 on malformed or non-positive values.
func (h *handlerImpl) positiveIntQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		abort(c, newBadRequestError(name+" must be a positive integer"))
		return 0, false
	}
	return value, true
}
