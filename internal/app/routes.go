package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/middleware"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/content/comment"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/content/post"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/processing/portabletext"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/syndication/feed"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/syndication/sitemap"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/system/health"
)

func (a *App) registerRoutes() {
	postSvc := post.NewService(a.store)
	postCache := post.NewCache(a.cfg.Revalidate(), func(ctx context.Context, slug string) (*models.Post, error) {
		return postSvc.Resolve(ctx, slug)
	}, a.logger)
	renderer := portabletext.New(a.store)
	postHandler := post.NewHandler(postSvc, postCache, renderer, a.store, a.cfg.SiteTitle, a.logger)

	commentHandler := comment.NewHandler(comment.NewService(a.store), a.logger)

	// Article pages rely on the in-process stale-while-revalidate cache;
	// list-shaped pages are cached whole in Redis when it is around.
	cached := a.router.Group("", middleware.PageCache(a.rdb, a.cfg.Revalidate()))
	cached.GET("/", postHandler.Home)
	sitemap.RegisterRoutes(cached, postSvc, a.cfg.BaseURL)
	feed.RegisterRoutes(cached, postSvc, a.cfg.BaseURL, a.cfg.SiteTitle)

	a.router.GET("/post/:slug", postHandler.Show)

	a.router.POST("/api/createComment", middleware.RateLimit(a.rdb), commentHandler.Create)

	health.RegisterRoutes(a.router)

	a.router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{
			"Message": "No article matches this address.",
		})
	})
}
