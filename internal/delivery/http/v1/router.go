package v1

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the v1 API. Everything except ping sits behind the
// identity middleware.
func RegisterRoutes(router gin.IRouter, h Handler) {
	api := router.Group("/api/v1")
	api.GET("/ping", h.HandlePing)

	authed := api.Group("", h.HandleIdentityMiddleware)

	authed.GET("/me", h.HandleGetMe)
	authed.PUT("/me", h.HandleUpdateMe)
	authed.POST("/me/telegram", h.HandleLinkTelegram)

	authed.GET("/analytics/stats", h.HandleGetUserStats)
	authed.GET("/analytics/performance", h.HandleGetPerformance)
	authed.GET("/leaderboard", h.HandleGetLeaderboard)

	authed.POST("/tasks", h.HandleCreateTask)
	authed.GET("/tasks", h.HandleGetTasks)
	authed.GET("/tasks/:id", h.HandleGetTask)
	authed.PATCH("/tasks/:id", h.HandleUpdateTask)
	authed.POST("/tasks/:id/complete", h.HandleCompleteTask)
	authed.DELETE("/tasks/:id", h.HandleDeleteTask)

	authed.POST("/categories", h.HandleCreateCategory)
	authed.GET("/categories", h.HandleGetCategories)
	authed.PATCH("/categories/:id", h.HandleUpdateCategory)
	authed.DELETE("/categories/:id", h.HandleDeleteCategory)
}
