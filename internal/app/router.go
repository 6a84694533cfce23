package app

import (
	"tmua_guide_backend/docs"
	"tmua_guide_backend/internal/config"
	"tmua_guide_backend/internal/middleware"
	"tmua_guide_backend/internal/model"
	"tmua_guide_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 题库
	rg.GET("/questions", c.question.ListQuestions)
	rg.GET("/questions/filters", c.question.GetFilters)
	rg.GET("/questions/:quesNumber", c.question.GetQuestion)

	// 练习进度
	progress := rg.Group("/progress")
	{
		progress.POST("/attempt", c.progress.RecordAttempt)
		progress.GET("/stats", c.progress.GetStats)
		progress.GET("/topic-progress", c.progress.GetTopicProgress)
		progress.GET("/difficulty-progress", c.progress.GetDifficultyProgress)
		progress.GET("/recent-attempts", c.progress.GetRecentAttempts)
		progress.GET("/daily-streak", c.progress.GetDailyStreak)
		progress.GET("/performance-timeline", c.progress.GetPerformanceTimeline)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.admin.GetUsers)
		admin.PUT("/users/:id", c.admin.UpdateUser)
		admin.DELETE("/users/:id", c.admin.DeleteUser)
		admin.GET("/stats/system", c.admin.GetSystemStats)
		admin.POST("/questions/import", c.admin.ImportQuestions)
		admin.POST("/questions/:quesNumber/image", c.admin.UploadQuestionImage)
	}
}
