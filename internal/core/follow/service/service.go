package followapp

import (
	"context"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	followEntity "inkwell/internal/core/follow"
	followPort "inkwell/internal/ports/follow"
	userPort "inkwell/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FollowService struct {
	FollowRepository followPort.FollowRepository
	UserRepository   userPort.UserRepository
}

func NewFollowService(followRepo followPort.FollowRepository, userRepo userPort.UserRepository) *FollowService {
	return &FollowService{
		FollowRepository: followRepo,
		UserRepository:   userRepo,
	}
}

// FollowUser makes followerID follow the author named username.
// Following yourself is rejected with ErrSelfFollow and following twice is a
// no-op; either way at most one row exists for the pair.
func (s *FollowService) FollowUser(ctx context.Context, followerID, username string) error {
	fid, err := uuid.FromString(followerID)
	if err != nil {
		return apperror.ErrUnauthorized
	}

	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if author.ID == fid {
		config.Logger.Warn("Cannot follow yourself", zap.String("userID", followerID))
		return apperror.ErrSelfFollow
	}

	created, err := s.FollowRepository.Follow(ctx, &followEntity.Follow{
		ID:         uuid.Must(uuid.NewV4()),
		FollowerID: fid,
		AuthorID:   author.ID,
	})
	if err != nil {
		return err
	}
	if !created {
		config.Logger.Debug("Already following", zap.String("followerID", followerID), zap.String("author", username))
	}
	return nil
}

// UnfollowUser removes the edge if there is one.
func (s *FollowService) UnfollowUser(ctx context.Context, followerID, username string) error {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	removed, err := s.FollowRepository.Unfollow(ctx, followerID, author.ID.String())
	if err != nil {
		return err
	}
	if !removed {
		config.Logger.Debug("Unfollow without follow", zap.String("followerID", followerID), zap.String("author", username))
	}
	return nil
}

func (s *FollowService) GetFollowersByUsername(ctx context.Context, username string) ([]*followPort.FollowDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	followers, err := s.FollowRepository.GetFollowersByUserID(ctx, u.ID.String())
	if err != nil {
		return nil, err
	}
	return toDTOs(followers), nil
}

func (s *FollowService) GetFollowingByUsername(ctx context.Context, username string) ([]*followPort.FollowDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	following, err := s.FollowRepository.GetFollowingByUserID(ctx, u.ID.String())
	if err != nil {
		return nil, err
	}
	return toDTOs(following), nil
}

func toDTOs(follows []*followEntity.Follow) []*followPort.FollowDTO {
	dtos := make([]*followPort.FollowDTO, 0, len(follows))
	for _, f := range follows {
		dtos = append(dtos, followPort.ToFollowDTO(f))
	}
	return dtos
}
