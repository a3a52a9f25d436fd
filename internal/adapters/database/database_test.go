package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inkwell/internal/core/apperror"
	"inkwell/internal/core/comment"
	"inkwell/internal/core/feed"
	"inkwell/internal/core/follow"
	"inkwell/internal/core/group"
	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *user.User {
	u := &user.User{Username: username, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createGroup(t *testing.T, db *gorm.DB, slug string) *group.Group {
	g := &group.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, db.Create(g).Error)
	return g
}

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func createPosts(t *testing.T, db *gorm.DB, author *user.User, g *group.Group, n int, offset int) []*post.Post {
	posts := make([]*post.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &post.Post{
			Text:      fmt.Sprintf("post %d by %s", i, author.Username),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(offset+i) * time.Minute),
		}
		if g != nil {
			p.GroupID = &g.ID
		}
		require.NoError(t, db.Omit("Author", "Group").Create(p).Error)
		posts = append(posts, p)
	}
	return posts
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestFeedRepository_GlobalOrderAndWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedRepositoryDatabase(db)
	ctx := context.Background()
	author := createUser(t, db, "author")
	createPosts(t, db, author, nil, 13, 0)

	count, err := repo.Count(ctx, feed.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(13), count)

	first, err := repo.List(ctx, feed.Filter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, first, 10)
	second, err := repo.List(ctx, feed.Filter{}, 10, 10)
	require.NoError(t, err)
	require.Len(t, second, 3)

	all := append(first, second...)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt), "posts must be newest first")
	}
	assert.Equal(t, "author", all[0].Author.Username)
}

func TestFeedRepository_TieBreakByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedRepositoryDatabase(db)
	author := createUser(t, db, "author")

	for i := 0; i < 3; i++ {
		p := &post.Post{Text: "same time", AuthorID: author.ID, CreatedAt: base}
		require.NoError(t, db.Omit("Author", "Group").Create(p).Error)
	}

	posts, err := repo.List(context.Background(), feed.Filter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Greater(t, posts[0].ID.String(), posts[1].ID.String())
	assert.Greater(t, posts[1].ID.String(), posts[2].ID.String())
}

func TestFeedRepository_GroupIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedRepositoryDatabase(db)
	ctx := context.Background()
	author := createUser(t, db, "author")
	a := createGroup(t, db, "group-a")
	b := createGroup(t, db, "group-b")
	inA := createPosts(t, db, author, a, 2, 0)
	createPosts(t, db, author, nil, 1, 10)

	posts, err := repo.List(ctx, feed.Filter{GroupID: ptr(a.ID)}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, posts, len(inA))
	for _, p := range posts {
		require.NotNil(t, p.Group)
		assert.Equal(t, "group-a", p.Group.Slug)
	}

	count, err := repo.Count(ctx, feed.Filter{GroupID: ptr(b.ID)})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFeedRepository_FollowingExclusivity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedRepositoryDatabase(db)
	follows := NewFollowRepositoryDatabase(db)
	ctx := context.Background()

	a := createUser(t, db, "a")
	b := createUser(t, db, "b")
	c := createUser(t, db, "c")
	createPosts(t, db, a, nil, 2, 0)
	bPosts := createPosts(t, db, b, nil, 3, 10)
	createPosts(t, db, c, nil, 4, 20)

	created, err := follows.Follow(ctx, &follow.Follow{FollowerID: a.ID, AuthorID: b.ID})
	require.NoError(t, err)
	assert.True(t, created)

	posts, err := repo.List(ctx, feed.Filter{FollowerID: ptr(a.ID)}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, posts, len(bPosts))
	for _, p := range posts {
		assert.Equal(t, b.ID, p.AuthorID)
	}
}

func TestFollowRepository_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepositoryDatabase(db)
	ctx := context.Background()
	a := createUser(t, db, "a")
	b := createUser(t, db, "b")

	created, err := repo.Follow(ctx, &follow.Follow{FollowerID: a.ID, AuthorID: b.ID})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Follow(ctx, &follow.Follow{FollowerID: a.ID, AuthorID: b.ID})
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&follow.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	following, err := repo.IsFollowing(ctx, a.ID.String(), b.ID.String())
	require.NoError(t, err)
	assert.True(t, following)

	followers, err := repo.GetFollowersByUserID(ctx, b.ID.String())
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "a", followers[0].Follower.Username)
}

func TestFollowRepository_UnfollowMissingIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepositoryDatabase(db)
	ctx := context.Background()
	a := createUser(t, db, "a")
	b := createUser(t, db, "b")

	removed, err := repo.Unfollow(ctx, a.ID.String(), b.ID.String())
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = repo.Follow(ctx, &follow.Follow{FollowerID: a.ID, AuthorID: b.ID})
	require.NoError(t, err)
	removed, err = repo.Unfollow(ctx, a.ID.String(), b.ID.String())
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestPostRepository_FindAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepositoryDatabase(db)
	ctx := context.Background()
	author := createUser(t, db, "author")
	g := createGroup(t, db, "g")

	created, err := repo.Create(ctx, &post.Post{Text: "hello", AuthorID: author.ID, GroupID: &g.ID})
	require.NoError(t, err)
	assert.Equal(t, "author", created.Author.Username)
	require.NotNil(t, created.Group)

	created.Text = "edited"
	created.GroupID = nil
	created.Group = nil
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Nil(t, updated.Group)

	count, err := repo.CountByAuthorID(ctx, author.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.FindByID(ctx, uuid.Must(uuid.NewV4()).String())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCommentRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepositoryDatabase(db)
	ctx := context.Background()
	author := createUser(t, db, "author")
	p := createPosts(t, db, author, nil, 1, 0)[0]

	for i := 0; i < 2; i++ {
		_, err := repo.Create(ctx, &comment.Comment{
			Text:      fmt.Sprintf("comment %d", i),
			PostID:    p.ID,
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	comments, err := repo.ListByPostID(ctx, p.ID.String())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "comment 1", comments[0].Text)
	assert.Equal(t, "author", comments[0].Author.Username)
}

func TestUserAndGroupRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepositoryDatabase(db)
	groups := NewGroupRepositoryDatabase(db)
	ctx := context.Background()

	u, err := users.Create(ctx, &user.User{Username: "reader", Password: "x"})
	require.NoError(t, err)
	found, err := users.FindByUsername(ctx, "reader")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = users.Create(ctx, &user.User{Username: "reader", Password: "y"})
	assert.Error(t, err, "username is unique")

	_, err = users.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = groups.Create(ctx, &group.Group{Title: "Cats", Slug: "cats"})
	require.NoError(t, err)
	g, err := groups.FindBySlug(ctx, "cats")
	require.NoError(t, err)
	assert.Equal(t, "Cats", g.Title)
	_, err = groups.FindBySlug(ctx, "dogs")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
