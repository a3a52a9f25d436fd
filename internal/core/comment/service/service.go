package commentapp

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	commentEntity "inkwell/internal/core/comment"
	commentPort "inkwell/internal/ports/comment"
	postPort "inkwell/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
	}
}

// AddComment attaches text by authorID to an existing post.
func (s *CommentService) AddComment(ctx context.Context, authorID, postID, text string) (*commentPort.CommentDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.NewValidationError("text", "This field is required.")
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     text,
		PostID:   p.ID,
		AuthorID: uid,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	config.Logger.Info("Comment added", zap.String("postID", postID), zap.String("authorID", authorID))
	return &commentPort.CommentDTO{
		ID:        c.ID.String(),
		Text:      c.Text,
		PostID:    c.PostID.String(),
		CreatedAt: c.CreatedAt,
	}, nil
}
