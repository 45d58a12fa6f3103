// Package router wires middleware and handlers onto the gin engine.
package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GanehsaConsulting/cms-admin-api/internal/handler"
	activityhandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/activity"
	articlehandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/article"
	authhandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/auth"
	cataloghandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/catalog"
	clienthandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/client"
	mediahandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/media"
	packagehandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/packages"
	projecthandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/project"
	userhandler "github.com/GanehsaConsulting/cms-admin-api/internal/handler/user"
	"github.com/GanehsaConsulting/cms-admin-api/internal/middleware"
)

type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *authhandler.Handler
	Service  *cataloghandler.Handler
	Package  *packagehandler.Handler
	Client   *clienthandler.Handler
	Project  *projecthandler.Handler
	Article  *articlehandler.Handler
	Activity *activityhandler.Handler
	Media    *mediahandler.Handler
	User     *userhandler.Handler
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	AllowedOrigins []string
}

type Router struct {
	engine  *gin.Engine
	metrics *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func New(cfg Config, authMW *middleware.AuthMiddleware, handlers Handlers) *Router {
	engine := gin.New()
	r := &Router{
		engine:  engine,
		metrics: initRouterMetrics("cms_admin_api"),
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 20
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 40
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	engine.Use(middleware.CORS(corsCfg))
	engine.Use(r.metricsMiddleware())
	engine.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())
	engine.Use(middleware.Timeout(middleware.TimeoutConfig{Duration: cfg.RequestTimeout}))

	engine.GET("/health", handlers.Health.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")

	// Public reads and login.
	api.POST("/auth/login", handlers.Auth.Login)
	api.GET("/services", handlers.Service.List)
	api.GET("/services/:id", handlers.Service.Get)
	api.GET("/packages", handlers.Package.List)
	api.GET("/packages/:id", handlers.Package.Get)
	api.GET("/clients", handlers.Client.List)
	api.GET("/clients/:id", handlers.Client.Get)
	api.GET("/projects", handlers.Project.List)
	api.GET("/projects/:id", handlers.Project.Get)
	api.GET("/articles", handlers.Article.List)
	api.GET("/articles/:id", handlers.Article.Get)
	api.GET("/activities", handlers.Activity.List)
	api.GET("/activities/:id", handlers.Activity.Get)

	// Everything that mutates requires a valid token.
	authed := api.Group("")
	authed.Use(authMW.Authenticate())

	authed.POST("/services", handlers.Service.Create)
	authed.PUT("/services/:id", handlers.Service.Update)
	authed.DELETE("/services/:id", handlers.Service.Delete)

	authed.POST("/packages", handlers.Package.Create)
	authed.PATCH("/packages/:id", handlers.Package.Update)
	authed.DELETE("/packages/:id", handlers.Package.Delete)

	authed.POST("/clients", handlers.Client.Create)
	authed.PUT("/clients/:id", handlers.Client.Update)
	authed.DELETE("/clients/:id", handlers.Client.Delete)

	authed.POST("/projects", handlers.Project.Create)
	authed.PUT("/projects/:id", handlers.Project.Update)
	authed.DELETE("/projects/:id", handlers.Project.Delete)

	authed.POST("/articles", handlers.Article.Create)
	authed.PUT("/articles/:id", handlers.Article.Update)
	authed.DELETE("/articles/:id", handlers.Article.Delete)

	authed.POST("/activities", handlers.Activity.Create)
	authed.PUT("/activities/:id", handlers.Activity.Update)
	authed.DELETE("/activities/:id", handlers.Activity.Delete)

	authed.POST("/media", handlers.Media.Upload)
	authed.GET("/media", handlers.Media.List)
	authed.GET("/media/:id", handlers.Media.Get)
	authed.DELETE("/media/:id", handlers.Media.Delete)

	authed.POST("/users", handlers.User.Create)
	authed.GET("/users", handlers.User.List)
	authed.GET("/users/:id", handlers.User.Get)
	authed.PATCH("/users/:id", handlers.User.Update)
	authed.DELETE("/users/:id", handlers.User.Delete)

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
