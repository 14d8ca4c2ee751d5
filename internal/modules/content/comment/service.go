package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
)

// ErrPostNotFound means the submission referenced a post id that does not
// exist in the content store.
var ErrPostNotFound = errors.New("post not found")

// ContentClient is the store capability the submission pipeline needs: an
// existence read-check and a single create. The two are not atomic.
type ContentClient interface {
	Fetch(ctx context.Context, query string, params map[string]string, out any) error
	Create(ctx context.Context, doc map[string]any) (string, error)
}

const postExistsQuery = `*[_type == "post" && _id == $id][0]{_id}`

// Service persists reader-submitted comments.
type Service struct {
	store ContentClient
}

func NewService(store ContentClient) *Service { return &Service{store: store} }

// Submit verifies the target post exists, then creates the comment document
// with approved forced to false; moderation happens in the CMS. Exactly one
// write on success, none on any failure.
func (s *Service) Submit(ctx context.Context, postID, name, email, text string) (string, error) {
	var stub *models.PostStub
	if err := s.store.Fetch(ctx, postExistsQuery, map[string]string{"id": postID}, &stub); err != nil {
		return "", fmt.Errorf("verify post: %w", err)
	}
	if stub == nil || stub.ID == "" {
		return "", ErrPostNotFound
	}

	doc := map[string]any{
		"_type":    "comment",
		"_id":      uuid.New().String(),
		"post":     map[string]any{"_type": "reference", "_ref": postID},
		"name":     name,
		"email":    email,
		"comment":  text,
		"approved": false,
	}
	return s.store.Create(ctx, doc)
}
