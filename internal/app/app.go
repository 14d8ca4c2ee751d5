package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/config"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/middleware"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/sanity"
	pkgredis "github.com/saima-salar/blog-website-with-sanity-schema/internal/pkg/redis"
	"github.com/saima-salar/blog-website-with-sanity-schema/web"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  *sanity.Client
	rdb    *redis.Client
	logger *zap.Logger
}

// New initializes the application: config → content store → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	store, err := sanity.New(sanity.Config{
		ProjectID:  cfg.Sanity.ProjectID,
		Dataset:    cfg.Sanity.Dataset,
		APIVersion: cfg.Sanity.APIVersion,
		UseCDN:     cfg.UseCDN(),
		Token:      cfg.Sanity.Token,
	})
	if err != nil {
		return nil, fmt.Errorf("sanity: %w", err)
	}

	// Redis is an optional accelerator. Without it the page cache and rate
	// limiter degrade to pass-through and the site still serves.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, page cache and rate limit disabled", zap.Error(err))
			rdb = nil
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Page-Cache"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return originAllowed(patterns, origin)
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(web.Templates())

	app := &App{cfg: cfg, router: router, store: store, rdb: rdb, logger: logger}
	app.registerRoutes()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Close releases external connections.
func (a *App) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}
