package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/neuroeducatimo/landing/internal/admin"
	"github.com/neuroeducatimo/landing/internal/articles"
	"github.com/neuroeducatimo/landing/internal/blog"
	"github.com/neuroeducatimo/landing/internal/leads"
	"github.com/neuroeducatimo/landing/internal/pages"
	"github.com/neuroeducatimo/landing/internal/uploads"
	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/config"
	"github.com/neuroeducatimo/landing/pkg/middleware"
	"github.com/neuroeducatimo/landing/pkg/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// handlers groups everything the router mounts
type handlers struct {
	pages    *pages.Handler
	blog     *blog.Handler
	articles *articles.Handler
	leads    *leads.Handler
	uploads  *uploads.Handler
	admin    *admin.Handler

	sessions sessions.Store
	checks   map[string]common.CheckFunc

	// uploadDir is served under uploadURL when files are stored locally
	uploadDir string
	uploadURL string
}

func setupRouter(cfg *config.Config, h *handlers) *gin.Engine {
	router := gin.New()

	if sentry.CurrentHub().Client() != nil {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(middleware.CorrelationID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(tracing.Middleware(cfg.Server.ServiceName))
	router.Use(middleware.Metrics(cfg.Server.ServiceName))
	router.Use(middleware.SecurityHeaders(cfg.Server.Environment == "production", ""))
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	router.Use(admin.Sessions(cfg.Session, h.sessions))

	// Health check and metrics
	router.GET("/healthz", common.HealthCheck(cfg.Server.ServiceName, cfg.Server.Version))
	router.GET("/health/ready", common.HealthCheckWithDeps(cfg.Server.ServiceName, cfg.Server.Version, h.checks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.pages.RegisterRoutes(router)
	h.blog.RegisterRoutes(router)
	h.admin.RegisterRoutes(router)

	if h.uploadDir != "" {
		router.Static(h.uploadURL, h.uploadDir)
	}

	adminOnly := admin.RequireAdmin()

	api := router.Group("/api")
	api.Use(apiTimeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))
	api.Use(middleware.MaxBodySize(cfg.Server.MaxBodyBytes))
	{
		h.articles.RegisterRoutes(api, adminOnly)
		h.leads.RegisterRoutes(api, adminOnly)
		h.uploads.RegisterRoutes(api, adminOnly)
	}

	router.NoRoute(h.pages.Assets)

	return router
}

func corsConfig(origins string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.CorrelationIDHeader}
	c.ExposeHeaders = []string{middleware.CorrelationIDHeader}

	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 1 && allowed[0] == "*" {
		c.AllowAllOrigins = true
		return c
	}
	if len(allowed) == 0 {
		allowed = []string{"http://localhost:3000"}
	}
	c.AllowOrigins = allowed
	c.AllowCredentials = true
	return c
}

func apiTimeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return timeout.New(
		timeout.WithTimeout(d),
		timeout.WithResponse(func(c *gin.Context) {
			common.ErrorResponse(c, http.StatusGatewayTimeout, "request timed out")
		}),
	)
}
