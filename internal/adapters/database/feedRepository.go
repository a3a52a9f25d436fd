package database

import (
	"context"

	"inkwell/internal/core/feed"
	"inkwell/internal/core/follow"
	"inkwell/internal/core/post"

	"gorm.io/gorm"
)

// FeedRepositoryDatabase reads the post collections behind every feed.
type FeedRepositoryDatabase struct{ db *gorm.DB }

func NewFeedRepositoryDatabase(db *gorm.DB) *FeedRepositoryDatabase {
	return &FeedRepositoryDatabase{db: db}
}

func (repo *FeedRepositoryDatabase) scope(ctx context.Context, filter feed.Filter) *gorm.DB {
	q := repo.db.WithContext(ctx).Model(&post.Post{})
	if filter.GroupID != nil {
		q = q.Where("posts.group_id = ?", *filter.GroupID)
	}
	if filter.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *filter.AuthorID)
	}
	if filter.FollowerID != nil {
		// IN over a subquery keeps each post once whatever the edge count.
		followed := repo.db.Model(&follow.Follow{}).
			Select("author_id").
			Where("follower_id = ?", *filter.FollowerID)
		q = q.Where("posts.author_id IN (?)", followed)
	}
	return q
}

func (repo *FeedRepositoryDatabase) Count(ctx context.Context, filter feed.Filter) (int64, error) {
	var count int64
	if err := repo.scope(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// List returns one window of the filtered posts, newest first with id as the tie-break.
func (repo *FeedRepositoryDatabase) List(ctx context.Context, filter feed.Filter, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.scope(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
