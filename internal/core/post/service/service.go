package postapp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	postEntity "inkwell/internal/core/post"
	commentPort "inkwell/internal/ports/comment"
	groupPort "inkwell/internal/ports/group"
	mediaPort "inkwell/internal/ports/media"
	postPort "inkwell/internal/ports/post"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const imageDir = "posts"

type PostService struct {
	PostRepository    postPort.PostRepository
	GroupRepository   groupPort.GroupRepository
	CommentRepository commentPort.CommentRepository
	Media             mediaPort.MediaStore
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	commentRepo commentPort.CommentRepository,
	media mediaPort.MediaStore,
) *PostService {
	return &PostService{
		PostRepository:    postRepo,
		GroupRepository:   groupRepo,
		CommentRepository: commentRepo,
		Media:             media,
	}
}

// validated is a PostInput that passed every check, with the image already read.
type validated struct {
	text     string
	groupID  *uuid.UUID
	image    []byte
	imageExt string
}

func (s *PostService) validate(ctx context.Context, in postPort.PostInput) (*validated, error) {
	out := &validated{text: strings.TrimSpace(in.Text)}
	verr := &apperror.ValidationError{}

	if out.text == "" {
		verr.Add("text", "This field is required.")
	}

	if in.GroupID != "" {
		g, err := s.GroupRepository.FindByID(ctx, in.GroupID)
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			verr.Add("group", "Select a valid choice. That choice is not one of the available choices.")
		case err != nil:
			return nil, err
		default:
			out.groupID = &g.ID
		}
	}

	if in.Image != nil {
		data, ext, err := readImage(in.Image)
		if err != nil {
			verr.Add("image", err.Error())
		} else {
			out.image, out.imageExt = data, ext
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

func readImage(upload *postPort.ImageUpload) ([]byte, string, error) {
	rc, err := upload.Open()
	if err != nil {
		return nil, "", errors.New("The submitted file is empty.")
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil || len(data) == 0 {
		return nil, "", errors.New("The submitted file is empty.")
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, "", errors.New("Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	return data, mt.Extension(), nil
}

func (s *PostService) storeImage(ctx context.Context, v *validated) (string, error) {
	if v.image == nil {
		return "", nil
	}
	path, err := s.Media.Save(ctx, imageDir, v.imageExt, bytes.NewReader(v.image))
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return path, nil
}

// CreatePost always attributes the post to authorID, the acting user.
func (s *PostService) CreatePost(ctx context.Context, authorID string, in postPort.PostInput) (*postPort.PostDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	v, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	image, err := s.storeImage(ctx, v)
	if err != nil {
		return nil, err
	}

	created, err := s.PostRepository.Create(ctx, &postEntity.Post{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     v.text,
		AuthorID: uid,
		GroupID:  v.groupID,
		Image:    image,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	config.Logger.Info("Post created", zap.String("postID", created.ID.String()), zap.String("authorID", authorID))
	return postPort.ToPostDTO(created), nil
}

// UpdatePost returns ErrForbidden, writing nothing, when actorID is not the author.
// An edit without a new image keeps the old one.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID string, in postPort.PostInput) (*postPort.PostDTO, error) {
	p, err := s.authorPost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}

	v, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	image, err := s.storeImage(ctx, v)
	if err != nil {
		return nil, err
	}

	p.Text = v.text
	p.GroupID = v.groupID
	p.Group = nil
	if image != "" {
		p.Image = image
	}

	updated, err := s.PostRepository.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	config.Logger.Info("Post updated", zap.String("postID", postID), zap.String("authorID", actorID))
	return postPort.ToPostDTO(updated), nil
}

// GetPostForEdit loads the post an author is about to edit.
func (s *PostService) GetPostForEdit(ctx context.Context, actorID, postID string) (*postPort.PostDTO, error) {
	p, err := s.authorPost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	return postPort.ToPostDTO(p), nil
}

func (s *PostService) authorPost(ctx context.Context, actorID, postID string) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID.String() != actorID {
		config.Logger.Warn("Edit attempt by non-author", zap.String("postID", postID), zap.String("actorID", actorID))
		return nil, apperror.ErrForbidden
	}
	return p, nil
}

// GetPostDetail returns the post, its author's total post count and its comments.
func (s *PostService) GetPostDetail(ctx context.Context, postID string) (*postPort.PostDetailDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	count, err := s.PostRepository.CountByAuthorID(ctx, p.AuthorID.String())
	if err != nil {
		return nil, err
	}

	comments, err := s.CommentRepository.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, commentPort.ToCommentDTO(c))
	}

	return &postPort.PostDetailDTO{
		Post:       postPort.ToPostDTO(p),
		PostsCount: count,
		Comments:   dtos,
	}, nil
}
