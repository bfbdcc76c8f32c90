package routes

import (
	"github.com/gin-gonic/gin"

	"ziluri/internal/adapter/http/handler"
	"ziluri/internal/adapter/http/middleware"
	tel "ziluri/internal/core/telemetry"
	. "ziluri/pkg/auth"
	. "ziluri/pkg/config"
	. "ziluri/pkg/middlewares"
)

type HandlersConfig struct {
	SessionHandler  *handler.SessionHandler
	GroupHandler    *handler.GroupHandler
	TodoHandler     *handler.TodoHandler
	CalendarHandler *handler.CalendarHandler
	MemoHandler     *handler.MemoHandler
	ProfileHandler  *handler.ProfileHandler
}

func SetupRouter(handlers HandlersConfig, metrics *tel.AppMetrics, logger *LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *tel.AppMetrics, logger *LokiLogger, config *AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	SetupGinMiddlewareWithConfig(router, "ziluri", metrics, logger, config)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupPublicRoutes(router, handlers)
	setupProtectedRoutes(router, handlers)

	return router
}

func setupPublicRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.SessionHandler == nil {
		return
	}

	public := router.Group("/")
	{
		public.POST("/session", handlers.SessionHandler.StartSession)
	}
}

func setupProtectedRoutes(router *gin.Engine, handlers HandlersConfig) {
	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(GinJwtMiddleware())
	{
		if handlers.SessionHandler != nil {
			protected.DELETE("/session", handlers.SessionHandler.EndSession)
		}

		if handlers.GroupHandler != nil {
			protected.GET("/groups", handlers.GroupHandler.ListGroups)
			protected.POST("/groups", handlers.GroupHandler.CreateGroup)
			protected.PUT("/groups/:id", handlers.GroupHandler.RenameGroup)
			protected.DELETE("/groups/:id", handlers.GroupHandler.DeleteGroup)
		}

		if handlers.TodoHandler != nil {
			protected.GET("/todos", handlers.TodoHandler.GetTodosForDate)
			protected.GET("/todos/:id", handlers.TodoHandler.GetTodo)
			protected.POST("/todos", handlers.TodoHandler.CreateTodo)
			protected.PUT("/todos/:id", handlers.TodoHandler.UpdateTodo)
			protected.DELETE("/todos/:id", handlers.TodoHandler.DeleteTodo)
			protected.POST("/todos/:id/complete", handlers.TodoHandler.CompleteTodo)
			protected.POST("/todos/:id/uncomplete", handlers.TodoHandler.UncompleteTodo)
		}

		if handlers.CalendarHandler != nil {
			protected.GET("/calendar/month", handlers.CalendarHandler.MonthGrid)
			protected.GET("/calendar/week", handlers.CalendarHandler.WeekGrid)
			protected.GET("/calendar/day", handlers.CalendarHandler.DaySummary)
		}

		if handlers.MemoHandler != nil {
			protected.GET("/memos", handlers.MemoHandler.ListMemos)
			protected.GET("/memos/search", handlers.MemoHandler.SearchMemos)
			protected.GET("/memos/:id", handlers.MemoHandler.GetMemo)
			protected.POST("/memos", handlers.MemoHandler.CreateMemo)
			protected.PUT("/memos/:id", handlers.MemoHandler.UpdateMemo)
			protected.DELETE("/memos/:id", handlers.MemoHandler.DeleteMemo)
		}

		if handlers.ProfileHandler != nil {
			protected.GET("/profile", handlers.ProfileHandler.GetProfile)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupPublicRoutes(router, handlers)
	setupProtectedRoutes(router, handlers)

	return router
}
