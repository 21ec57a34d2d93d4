package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blognoitro/core/internal/middleware"
	"github.com/blognoitro/core/internal/modules/comment"
	"github.com/blognoitro/core/internal/modules/health"
	"github.com/blognoitro/core/internal/modules/identity"
	"github.com/blognoitro/core/internal/modules/post"
	"github.com/blognoitro/core/internal/modules/reaction"
	"github.com/blognoitro/core/internal/modules/stats"
	"github.com/blognoitro/core/internal/modules/upload"
	"github.com/blognoitro/core/internal/pkg/objectstore"
	pkgredis "github.com/blognoitro/core/internal/pkg/redis"
	"github.com/blognoitro/core/internal/pkg/response"
	"github.com/blognoitro/core/internal/pkg/token"
)

func (a *App) registerRoutes(rc *pkgredis.Client, store *objectstore.Client, tokens *token.Service) {
	r := a.router
	db := a.db
	logger := a.logger

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Phương thức không được hỗ trợ"})
	})

	// Services
	identitySvc := identity.NewService(db, rc, a.cfg.Avatar, logger)
	postSvc := post.NewService(db)
	commentSvc := comment.NewService(db)
	reactionSvc := reaction.NewService(db)
	statsSvc := stats.NewService(db)
	uploadSvc := upload.NewService(a.cfg, store)

	// Locally stored images are served straight from disk.
	r.Static("/uploads", uploadSvc.Dir())

	api := r.Group("/api")
	api.Use(middleware.RateLimit(rc.Raw()))
	api.Use(middleware.Session(tokens))
	api.Use(middleware.HTTPCache(rc.Raw(), middleware.HTTPCacheOptions{
		TTL: 30 * time.Second,
		SkipPaths: []string{
			"/api/health",
			"/api/anonymous",
			"/api/reactions",
			"/api/comments",
		},
	}))

	health.NewHandler(db, rc).RegisterRoutes(api)
	identity.NewHandler(identitySvc, tokens, logger).RegisterRoutes(api)
	post.NewHandler(postSvc, identitySvc, logger).RegisterRoutes(api)
	comment.NewHandler(commentSvc, identitySvc, logger).RegisterRoutes(api)
	reaction.NewHandler(reactionSvc, identitySvc, logger).RegisterRoutes(api)
	stats.NewHandler(statsSvc, identitySvc, logger).RegisterRoutes(api)
	upload.NewHandler(uploadSvc, logger).RegisterRoutes(api)
}
