package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"holidaze/internal/infra/config"
	"holidaze/internal/infra/obs"
)

type CalendarHTTP interface {
	Venue(c *gin.Context)
	Month(c *gin.Context)
	Intervals(c *gin.Context)
	RefreshIntervals(c *gin.Context)
	ICS(c *gin.Context)
	StartSession(c *gin.Context)
	GetSession(c *gin.Context)
	ResetSession(c *gin.Context)
	DeleteSession(c *gin.Context)
	Select(c *gin.Context)
}

type Handlers struct {
	Calendar CalendarHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg.Env, obsMW, health, h),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func NewRouter(env string, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	mode := configureGinMode(env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Calendar != nil {
		venue := api.Group("/venues/:id")
		venue.GET("", h.Calendar.Venue)
		venue.GET("/calendar", h.Calendar.Month)
		venue.GET("/calendar/intervals", h.Calendar.Intervals)
		venue.POST("/calendar/intervals/refresh", h.Calendar.RefreshIntervals)
		venue.GET("/calendar.ics", h.Calendar.ICS)
		venue.POST("/calendar/select", h.Calendar.Select)
		venue.POST("/calendar/sessions", h.Calendar.StartSession)
		venue.GET("/calendar/sessions/:session", h.Calendar.GetSession)
		venue.POST("/calendar/sessions/:session/reset", h.Calendar.ResetSession)
		venue.DELETE("/calendar/sessions/:session", h.Calendar.DeleteSession)
	}

	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
