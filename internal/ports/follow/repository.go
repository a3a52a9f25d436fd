package follow

import (
	"context"

	"inkwell/internal/core/follow"
)

// FollowRepository stores follow edges.
type FollowRepository interface {
	// Follow inserts the edge unless it already exists; created is false for an existing edge.
	Follow(ctx context.Context, f *follow.Follow) (created bool, err error)
	// Unfollow deletes the edge; removed is false when there was none.
	Unfollow(ctx context.Context, followerID, authorID string) (removed bool, err error)
	IsFollowing(ctx context.Context, followerID, authorID string) (bool, error)
	GetFollowersByUserID(ctx context.Context, userID string) ([]*follow.Follow, error)
	GetFollowingByUserID(ctx context.Context, followerID string) ([]*follow.Follow, error)
}

type FollowDTO struct {
	ID       string `json:"id"`
	Follower string `json:"follower"`
	Author   string `json:"author"`
}

func ToFollowDTO(f *follow.Follow) *FollowDTO {
	return &FollowDTO{
		ID:       f.ID.String(),
		Follower: f.Follower.Username,
		Author:   f.Author.Username,
	}
}
