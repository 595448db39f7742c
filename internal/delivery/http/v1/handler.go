package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"taskflow/internal/service"
)

type Handler interface {
	HandleIdentityMiddleware(c *gin.Context)
	HandlePing(c *gin.Context)

	HandleGetMe(c *gin.Context)
	HandleUpdateMe(c *gin.Context)
	HandleLinkTelegram(c *gin.Context)

	HandleGetUserStats(c *gin.Context)
	HandleGetPerformance(c *gin.Context)
	HandleGetLeaderboard(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleCompleteTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleCreateCategory(c *gin.Context)
	HandleGetCategories(c *gin.Context)
	HandleUpdateCategory(c *gin.Context)
	HandleDeleteCategory(c *gin.Context)
}

type handlerImpl struct {
	logger     zerolog.Logger
	users      *service.UserService
	tasks      *service.TaskService
	categories *service.CategoryService
	analytics  *service.AnalyticsService
}

func New(
	logger zerolog.Logger,
	users *service.UserService,
	tasks *service.TaskService,
	categories *service.CategoryService,
	analytics *service.AnalyticsService,
) Handler {
	return &handlerImpl{
		logger:     logger,
		users:      users,
		tasks:      tasks,
		categories: categories,
		analytics:  analytics,
	}
}

func (h *handlerImpl) HandlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
