package post

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/processing/portabletext"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/pkg/slug"
)

// ImageResolver resolves image fields to CDN URLs for page rendering.
type ImageResolver interface {
	ImageURLFor(img models.Image) (string, error)
}

// Handler serves the server-rendered pages: home and article.
type Handler struct {
	svc       *Service
	cache     *Cache
	renderer  *portabletext.Renderer
	images    ImageResolver
	policy    *bluemonday.Policy
	siteTitle string
	log       *zap.Logger
}

func NewHandler(svc *Service, cache *Cache, renderer *portabletext.Renderer, images ImageResolver, siteTitle string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if siteTitle == "" {
		siteTitle = "Blog"
	}
	return &Handler{
		svc:       svc,
		cache:     cache,
		renderer:  renderer,
		images:    images,
		policy:    bluemonday.StrictPolicy(),
		siteTitle: siteTitle,
		log:       log,
	}
}

// commentView carries the sanitizer's output as typed HTML so the template
// does not escape it a second time.
type commentView struct {
	Name string
	Body template.HTML
}

type postView struct {
	Title          string
	Description    string
	AuthorName     string
	AuthorImageURL string
	MainImageURL   string
	PublishedAt    string
	Body           template.HTML
	Comments       []commentView
	PostID         string
	Slug           string
}

type cardView struct {
	Title       string
	Description string
	Slug        string
	ImageURL    string
	AuthorName  string
	PublishedAt string
}

// Show renders the article page. GET /post/:slug
// The path segment is normalized to canonical slug form first, so case or
// whitespace variants of the same address share one cache entry.
func (h *Handler) Show(c *gin.Context) {
	s := slug.Make(c.Param("slug"))

	doc, err := h.cache.Get(c.Request.Context(), s)
	if errors.Is(err, ErrPostNotFound) {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Message": "No article matches this address."})
		return
	}
	if err != nil {
		h.log.Error("resolve post failed", zap.String("slug", s), zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "The article could not be loaded right now."})
		return
	}

	c.HTML(http.StatusOK, "post.html", h.buildPostView(doc))
}

// Home renders the post list. GET /
func (h *Handler) Home(c *gin.Context) {
	posts, err := h.svc.Recent(c.Request.Context())
	if err != nil {
		h.log.Error("list posts failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Posts could not be loaded right now."})
		return
	}

	cards := make([]cardView, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, cardView{
			Title:       p.Title,
			Description: p.Description,
			Slug:        p.Slug.Current,
			ImageURL:    h.imageURL(p.MainImage),
			AuthorName:  p.Author.Name,
			PublishedAt: formatDate(p.PublishedAt),
		})
	}
	c.HTML(http.StatusOK, "home.html", gin.H{"SiteTitle": h.siteTitle, "Posts": cards})
}

func (h *Handler) buildPostView(doc *models.Post) postView {
	body, diags := h.renderer.Render(doc.Body)
	for _, d := range diags {
		h.log.Warn("rich text block skipped", zap.String("post", doc.ID), zap.String("detail", d))
	}

	comments := make([]commentView, 0, len(doc.Comments))
	for _, cm := range doc.Comments {
		comments = append(comments, commentView{
			Name: cm.Name,
			Body: template.HTML(h.policy.Sanitize(cm.Comment)),
		})
	}

	return postView{
		Title:          doc.Title,
		Description:    doc.Description,
		AuthorName:     doc.Author.Name,
		AuthorImageURL: h.imageURL(doc.Author.Image),
		MainImageURL:   h.imageURL(doc.MainImage),
		PublishedAt:    formatDate(doc.PublishedAt),
		Body:           body,
		Comments:       comments,
		PostID:         doc.ID,
		Slug:           doc.Slug.Current,
	}
}

// imageURL resolves best-effort; a missing or malformed reference just means
// the page renders without that image.
func (h *Handler) imageURL(img models.Image) string {
	url, err := h.images.ImageURLFor(img)
	if err != nil {
		return ""
	}
	return url
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}
