package app

import (
	"balance_game_backend/docs"
	"balance_game_backend/internal/config"
	"balance_game_backend/internal/middleware"
	"balance_game_backend/internal/model"
	"balance_game_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerPlayerRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/signup", c.auth.Signup)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerPlayerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.GetProfile)

	gameGroup := rg.Group("/game")
	{
		gameGroup.GET("/config", c.game.GetConfig)
		gameGroup.GET("/problem", c.game.GetProblem)
		gameGroup.POST("/submit", c.game.SubmitAnswer)
	}

	rg.POST("/user", c.user.CreateUser)
	userGroup := rg.Group("/user/:id")
	{
		userGroup.GET("", c.user.GetUser)
		userGroup.GET("/progress", c.user.GetProgress)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/students", c.teacher.ListStudents)
		teacher.GET("/students/export", c.teacher.ExportStudents)
	}
}
