package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baletrack/bizpulse/internal/server/handlers"
	"github.com/baletrack/bizpulse/internal/server/middleware"
)

// Handlers groups the endpoint adapters the router wires.
type Handlers struct {
	Bales    *handlers.BalesHandler
	Expenses *handlers.ExpensesHandler
	Savings  *handlers.SavingsHandler
	Reports  *handlers.ReportsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, jwtSecret string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Auth(jwtSecret, logger))

	bales := api.Group("/bales")
	bales.POST("", h.Bales.Create)
	bales.GET("", h.Bales.List)
	bales.GET("/stats", h.Bales.Stats)
	bales.GET("/:id", h.Bales.GetByID)
	bales.PATCH("/:id", h.Bales.Update)
	bales.DELETE("/:id", h.Bales.Delete)

	expenses := api.Group("/expenses")
	expenses.POST("", h.Expenses.Create)
	expenses.GET("", h.Expenses.List)
	expenses.GET("/stats", h.Expenses.Stats)
	expenses.GET("/:id", h.Expenses.GetByID)
	expenses.PATCH("/:id", h.Expenses.Update)
	expenses.DELETE("/:id", h.Expenses.Delete)

	savings := api.Group("/savings")
	savings.POST("", h.Savings.Create)
	savings.GET("", h.Savings.List)
	savings.GET("/stats", h.Savings.Stats)
	savings.GET("/export", h.Savings.Export)
	savings.GET("/:id", h.Savings.GetByID)
	savings.PATCH("/:id", h.Savings.Update)
	savings.DELETE("/:id", h.Savings.Delete)

	reports := api.Group("/reports")
	reports.GET("/financial", h.Reports.Financial)
	reports.GET("/financial/export", h.Reports.Export)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
