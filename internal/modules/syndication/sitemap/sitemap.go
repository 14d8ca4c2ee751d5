package sitemap

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/content/post"
)

// RegisterRoutes mounts the sitemap endpoint. The URL set is the enumerated
// article path set plus the front page.
func RegisterRoutes(r gin.IRoutes, svc *post.Service, baseURL string) {
	r.GET("/sitemap.xml", func(c *gin.Context) {
		slugs, err := svc.Slugs(c.Request.Context())
		if err != nil {
			c.String(http.StatusInternalServerError, "error generating sitemap")
			return
		}
		c.Header("Content-Type", "application/xml; charset=utf-8")
		c.String(http.StatusOK, build(baseURL, slugs))
	})
}

func build(base string, slugs []string) string {
	base = strings.TrimRight(base, "/")
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	writeURL(&sb, base, "daily", "1.0")
	for _, slug := range slugs {
		writeURL(&sb, fmt.Sprintf("%s/post/%s", base, slug), "weekly", "0.8")
	}

	sb.WriteString("</urlset>")
	return sb.String()
}

func writeURL(sb *strings.Builder, loc, changefreq, priority string) {
	fmt.Fprintf(sb, `  <url>
    <loc>%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%s</priority>
  </url>
`, escapeXML(loc), time.Now().Format("2006-01-02"), changefreq, priority)
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
