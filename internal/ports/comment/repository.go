package comment

import (
	"context"
	"time"

	"inkwell/internal/core/comment"
	userPort "inkwell/internal/ports/user"
)

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	PostID    string            `json:"post_id"`
	Author    *userPort.UserDTO `json:"author"`
	CreatedAt time.Time         `json:"created_at"`
}

func ToCommentDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID.String(),
		Text:      c.Text,
		PostID:    c.PostID.String(),
		Author:    userPort.ToUserDTO(&c.Author),
		CreatedAt: c.CreatedAt,
	}
}
