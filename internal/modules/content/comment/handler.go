package comment

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/pkg/response"
)

// CreateCommentDTO is the submission payload. Any approved flag a caller
// injects is simply not part of the contract and never reaches the store.
type CreateCommentDTO struct {
	ID      string `json:"_id" form:"_id"`
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Comment string `json:"comment" form:"comment"`
}

// Handler exposes the comment submission endpoint.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// Create handles a submission. POST /api/createComment
// Accepts JSON (the page script) and urlencoded form posts (no-script fallback).
func (h *Handler) Create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}
	if strings.TrimSpace(dto.ID) == "" ||
		strings.TrimSpace(dto.Name) == "" ||
		strings.TrimSpace(dto.Email) == "" ||
		strings.TrimSpace(dto.Comment) == "" {
		response.BadRequest(c, "Missing required fields")
		return
	}

	id, err := h.svc.Submit(c.Request.Context(), dto.ID, dto.Name, dto.Email, dto.Comment)
	if errors.Is(err, ErrPostNotFound) {
		response.NotFound(c, "Post not found")
		return
	}
	if err != nil {
		h.log.Error("comment submission failed", zap.String("post", dto.ID), zap.Error(err))
		response.InternalError(c, "Could not submit comment", err)
		return
	}

	h.log.Info("comment submitted", zap.String("post", dto.ID), zap.String("comment", id))
	response.OK(c, "Comment Submitted!")
}
