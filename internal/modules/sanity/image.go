package sanity

import (
	"fmt"
	"strings"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
)

// ImageURL resolves an asset reference like
// "image-<assetId>-<width>x<height>-<format>" to a CDN URL for the configured
// project and dataset.
func (c *Client) ImageURL(ref string) (string, error) {
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" || parts[1] == "" {
		return "", fmt.Errorf("sanity: malformed image reference %q", ref)
	}
	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s",
		c.cfg.ProjectID, c.cfg.Dataset, parts[1], parts[2], parts[3]), nil
}

// ImageURLFor resolves an image field. A field without an asset pointer is
// structurally invalid and returns an error so callers can skip it.
func (c *Client) ImageURLFor(img models.Image) (string, error) {
	if img.Asset == nil || img.Asset.Ref == "" {
		return "", fmt.Errorf("sanity: image has no asset reference")
	}
	return c.ImageURL(img.Asset.Ref)
}
