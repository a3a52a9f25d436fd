package database

import (
	"context"

	"inkwell/internal/core/follow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepositoryDatabase implements FollowRepository on gorm.
type FollowRepositoryDatabase struct{ db *gorm.DB }

func NewFollowRepositoryDatabase(db *gorm.DB) *FollowRepositoryDatabase {
	return &FollowRepositoryDatabase{db: db}
}

// Follow is a single insert-if-absent; the unique (follower_id, author_id)
// index decides races, and a conflicting row counts as already following.
func (repo *FollowRepositoryDatabase) Follow(ctx context.Context, f *follow.Follow) (bool, error) {
	res := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).
		Create(f)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *FollowRepositoryDatabase) Unfollow(ctx context.Context, followerID, authorID string) (bool, error) {
	fid, err := parseID(followerID)
	if err != nil {
		return false, err
	}
	aid, err := parseID(authorID)
	if err != nil {
		return false, err
	}
	res := repo.db.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", fid, aid).
		Delete(&follow.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *FollowRepositoryDatabase) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	fid, err := parseID(followerID)
	if err != nil {
		return false, err
	}
	aid, err := parseID(authorID)
	if err != nil {
		return false, err
	}
	var count int64
	if err := repo.db.WithContext(ctx).Model(&follow.Follow{}).
		Where("follower_id = ? AND author_id = ?", fid, aid).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowRepositoryDatabase) GetFollowersByUserID(ctx context.Context, userID string) ([]*follow.Follow, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	var followers []*follow.Follow
	if err := repo.db.WithContext(ctx).
		Preload("Follower").Preload("Author").
		Where("author_id = ?", uid).
		Order("created_at DESC").
		Find(&followers).Error; err != nil {
		return nil, err
	}
	return followers, nil
}

func (repo *FollowRepositoryDatabase) GetFollowingByUserID(ctx context.Context, followerID string) ([]*follow.Follow, error) {
	fid, err := parseID(followerID)
	if err != nil {
		return nil, err
	}
	var following []*follow.Follow
	if err := repo.db.WithContext(ctx).
		Preload("Follower").Preload("Author").
		Where("follower_id = ?", fid).
		Order("created_at DESC").
		Find(&following).Error; err != nil {
		return nil, err
	}
	return following, nil
}
