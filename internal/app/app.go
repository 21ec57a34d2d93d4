package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blognoitro/core/internal/config"
	"github.com/blognoitro/core/internal/database"
	"github.com/blognoitro/core/internal/middleware"
	pkgcron "github.com/blognoitro/core/internal/pkg/cron"
	"github.com/blognoitro/core/internal/pkg/objectstore"
	pkgredis "github.com/blognoitro/core/internal/pkg/redis"
	"github.com/blognoitro/core/internal/pkg/token"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	rc     *pkgredis.Client
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → DB → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	store, err := objectstore.New(cfg.ObjectStorage)
	if err != nil {
		return nil, err
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
	router.Use(cors.New(corsConfig(cfg)))

	tokens := token.NewService(cfg.JWTSecret, 0)

	ctx, cancel := context.WithCancel(context.Background())

	sched := pkgcron.New()
	registerCronJobs(sched, db, logger)
	go sched.Start(ctx)

	app := &App{
		cfg:    cfg,
		router: router,
		db:     db,
		rc:     rc,
		logger: logger,
		cancel: cancel,
		sched:  sched,
	}
	app.registerRoutes(rc, store, tokens)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops the cron scheduler and releases the Redis pool.
func (a *App) Shutdown() {
	a.cancel()
	if err := a.rc.Close(); err != nil {
		a.logger.Warn("redis close", zap.Error(err))
	}
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-Token", "X-Session-Id"},
		ExposeHeaders:    []string{"Content-Length", "x-bnt-cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsCfg.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	}
	return corsCfg
}
