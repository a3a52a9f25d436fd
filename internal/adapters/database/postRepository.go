package database

import (
	"context"

	"inkwell/internal/core/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct{ db *gorm.DB }

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, p.ID.String())
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) (*post.Post, error) {
	err := repo.db.WithContext(ctx).Model(p).Omit(clause.Associations).
		Select("text", "group_id", "image", "updated_at").
		Updates(p).Error
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, p.ID.String())
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var p post.Post
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", pid).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) CountByAuthorID(ctx context.Context, authorID string) (int64, error) {
	aid, err := parseID(authorID)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).Where("author_id = ?", aid).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
