package feedapp

import (
	"context"

	"inkwell/internal/core/apperror"
	"inkwell/internal/core/feed"
	"inkwell/internal/core/pagination"
	feedPort "inkwell/internal/ports/feed"
	followPort "inkwell/internal/ports/follow"
	groupPort "inkwell/internal/ports/group"
	postPort "inkwell/internal/ports/post"
	userPort "inkwell/internal/ports/user"

	"github.com/gofrs/uuid"
)

// FeedService builds the four paginated post feeds. Every call is read-only.
type FeedService struct {
	FeedRepository   feedPort.FeedRepository
	GroupRepository  groupPort.GroupRepository
	UserRepository   userPort.UserRepository
	PostRepository   postPort.PostRepository
	FollowRepository followPort.FollowRepository
}

func NewFeedService(
	feedRepo feedPort.FeedRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	postRepo postPort.PostRepository,
	followRepo followPort.FollowRepository,
) *FeedService {
	return &FeedService{
		FeedRepository:   feedRepo,
		GroupRepository:  groupRepo,
		UserRepository:   userRepo,
		PostRepository:   postRepo,
		FollowRepository: followRepo,
	}
}

// page counts the filtered posts, clamps the requested page and loads that window.
func (s *FeedService) page(ctx context.Context, filter feed.Filter, requested int) (*feedPort.PageDTO, error) {
	total, err := s.FeedRepository.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	p := pagination.New(total, requested)
	posts, err := s.FeedRepository.List(ctx, filter, p.Offset(), p.Limit())
	if err != nil {
		return nil, err
	}
	return feedPort.ToPageDTO(p, posts), nil
}

func (s *FeedService) GetGlobalFeed(ctx context.Context, page int) (*feedPort.PageDTO, error) {
	return s.page(ctx, feed.Filter{}, page)
}

func (s *FeedService) GetGroupFeed(ctx context.Context, slug string, page int) (*feedPort.GroupFeedDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	obj, err := s.page(ctx, feed.Filter{GroupID: &g.ID}, page)
	if err != nil {
		return nil, err
	}
	return &feedPort.GroupFeedDTO{Group: groupPort.ToGroupDTO(g), PageObj: obj}, nil
}

// GetProfileFeed lists username's posts. PostCount is every post the author
// wrote, and Following is only ever true for a signed-in viewer.
func (s *FeedService) GetProfileFeed(ctx context.Context, username, viewerID string, page int) (*feedPort.ProfileFeedDTO, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	count, err := s.PostRepository.CountByAuthorID(ctx, author.ID.String())
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != "" {
		following, err = s.FollowRepository.IsFollowing(ctx, viewerID, author.ID.String())
		if err != nil {
			return nil, err
		}
	}

	obj, err := s.page(ctx, feed.Filter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}

	return &feedPort.ProfileFeedDTO{
		Author:    userPort.ToUserDTO(author),
		PostCount: count,
		Following: following,
		PageObj:   obj,
	}, nil
}

// GetFollowingFeed lists posts by the authors viewerID follows.
func (s *FeedService) GetFollowingFeed(ctx context.Context, viewerID string, page int) (*feedPort.PageDTO, error) {
	vid, err := uuid.FromString(viewerID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	return s.page(ctx, feed.Filter{FollowerID: &vid}, page)
}
