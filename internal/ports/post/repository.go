package post

import (
	"context"
	"io"
	"time"

	"inkwell/internal/core/post"
	commentPort "inkwell/internal/ports/comment"
	groupPort "inkwell/internal/ports/group"
	userPort "inkwell/internal/ports/user"
)

// PostRepository stores and loads single posts; feeds go through FeedRepository.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	Update(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	CountByAuthorID(ctx context.Context, authorID string) (int64, error)
}

// ImageUpload is an attachment submitted with a post form.
type ImageUpload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// PostInput is the post form after binding.
type PostInput struct {
	Text    string
	GroupID string
	Image   *ImageUpload
}

type PostDTO struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Author    *userPort.UserDTO   `json:"author"`
	Group     *groupPort.GroupDTO `json:"group,omitempty"`
	Image     string              `json:"image,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type PostDetailDTO struct {
	Post       *PostDTO                  `json:"post"`
	PostsCount int64                     `json:"posts_count"`
	Comments   []*commentPort.CommentDTO `json:"comments"`
}

func ToPostDTO(p *post.Post) *PostDTO {
	return &PostDTO{
		ID:        p.ID.String(),
		Text:      p.Text,
		Author:    userPort.ToUserDTO(&p.Author),
		Group:     groupPort.ToGroupDTO(p.Group),
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
}
