package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
)

// ErrPostNotFound is returned when no post matches the requested slug or id.
var ErrPostNotFound = errors.New("post not found")

// ContentClient is the read capability the page generator needs from the
// content store.
type ContentClient interface {
	Fetch(ctx context.Context, query string, params map[string]string, out any) error
}

const (
	slugsQuery = `*[_type == "post"]{_id, slug{current}}`

	postBySlugQuery = `*[_type == "post" && slug.current == $slug][0]{
  _id,
  publishedAt,
  title,
  author -> {name, image},
  "comments": *[_type == "comment" && post._ref == ^._id && approved == true],
  description,
  mainImage,
  categories,
  slug,
  body
}`

	recentPostsQuery = `*[_type == "post"] | order(publishedAt desc)[0...12]{
  _id,
  publishedAt,
  title,
  description,
  slug,
  mainImage,
  author -> {name, image}
}`
)

// Service resolves posts from the content store.
type Service struct {
	store ContentClient
}

func NewService(store ContentClient) *Service { return &Service{store: store} }

// Slugs enumerates every known article path. Documents without a slug are
// skipped rather than emitted as empty paths.
func (s *Service) Slugs(ctx context.Context) ([]string, error) {
	var stubs []models.PostStub
	if err := s.store.Fetch(ctx, slugsQuery, nil, &stubs); err != nil {
		return nil, fmt.Errorf("enumerate slugs: %w", err)
	}
	slugs := make([]string, 0, len(stubs))
	for _, stub := range stubs {
		if stub.Slug.Current != "" {
			slugs = append(slugs, stub.Slug.Current)
		}
	}
	return slugs, nil
}

// Resolve loads the full article document for a slug in a single query:
// the post joined with its author and all approved comments.
func (s *Service) Resolve(ctx context.Context, slug string) (*models.Post, error) {
	var post *models.Post
	if err := s.store.Fetch(ctx, postBySlugQuery, map[string]string{"slug": slug}, &post); err != nil {
		return nil, err
	}
	if post == nil || post.ID == "" {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Recent lists the newest posts for the home page and the feed.
func (s *Service) Recent(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.store.Fetch(ctx, recentPostsQuery, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
