package feed

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
	"github.com/saima-salar/blog-website-with-sanity-schema/internal/modules/content/post"
)

// RegisterRoutes mounts the RSS feed endpoint.
func RegisterRoutes(r gin.IRoutes, svc *post.Service, baseURL, siteTitle string) {
	render := func(c *gin.Context) {
		posts, err := svc.Recent(c.Request.Context())
		if err != nil {
			c.String(http.StatusInternalServerError, "error generating feed")
			return
		}
		c.Header("Content-Type", "application/rss+xml; charset=utf-8")
		c.String(http.StatusOK, buildRSS(siteTitle, baseURL, posts))
	}
	r.GET("/feed", render)
	r.GET("/feed.xml", render)
}

func buildRSS(title, base string, posts []models.Post) string {
	base = strings.TrimRight(base, "/")
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>%s</title>
    <link>%s</link>
    <lastBuildDate>%s</lastBuildDate>
`, escapeXML(title), escapeXML(base), time.Now().Format(time.RFC1123Z))

	for _, p := range posts {
		fmt.Fprintf(&sb, `    <item>
      <title>%s</title>
      <link>%s/post/%s</link>
      <guid>%s</guid>
      <pubDate>%s</pubDate>
      <description>%s</description>
    </item>
`, escapeXML(p.Title), base, p.Slug.Current, p.ID,
			p.PublishedAt.Format(time.RFC1123Z), escapeXML(p.Description))
	}

	sb.WriteString(`  </channel>
</rss>`)
	return sb.String()
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
