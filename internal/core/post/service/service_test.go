package postapp

import (
	"bytes"
	"context"
	"io"
	"testing"

	dbadapter "inkwell/internal/adapters/database"
	mediaadapter "inkwell/internal/adapters/media"
	"inkwell/internal/core/apperror"
	"inkwell/internal/core/post"
	postPort "inkwell/internal/ports/post"
	"inkwell/internal/testinfra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func upload(name string, data []byte) *postPort.ImageUpload {
	return &postPort.ImageUpload{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func newService(t *testing.T, db *gorm.DB) *PostService {
	return NewPostService(
		dbadapter.NewPostRepositoryDatabase(db),
		dbadapter.NewGroupRepositoryDatabase(db),
		dbadapter.NewCommentRepositoryDatabase(db),
		mediaadapter.NewFileStore(t.TempDir()),
	)
}

func TestCreatePost(t *testing.T) {
	db := testinfra.NewDB(t)
	svc := newService(t, db)
	author := testinfra.CreateUser(t, db, "author")
	g := testinfra.CreateGroup(t, db, "Cats", "cats")

	dto, err := svc.CreatePost(context.Background(), author.ID.String(), postPort.PostInput{
		Text:    "  a post about cats ",
		GroupID: g.ID.String(),
		Image:   upload("small.gif", smallGIF),
	})
	require.NoError(t, err)
	assert.Equal(t, "a post about cats", dto.Text)
	assert.Equal(t, "author", dto.Author.Username)
	require.NotNil(t, dto.Group)
	assert.Equal(t, "cats", dto.Group.Slug)
	assert.Regexp(t, `^posts/.+\.gif$`, dto.Image)
}

func TestCreatePost_Validation(t *testing.T) {
	db := testinfra.NewDB(t)
	svc := newService(t, db)
	author := testinfra.CreateUser(t, db, "author")

	_, err := svc.CreatePost(context.Background(), author.ID.String(), postPort.PostInput{
		Text:    "   ",
		GroupID: "00000000-0000-0000-0000-000000000001",
		Image:   upload("notes.txt", []byte("plain text, not an image")),
	})
	verr, ok := apperror.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "text")
	assert.Contains(t, verr.Fields, "group")
	assert.Contains(t, verr.Fields, "image")

	var n int64
	require.NoError(t, db.Model(&post.Post{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdatePost(t *testing.T) {
	db := testinfra.NewDB(t)
	svc := newService(t, db)
	ctx := context.Background()
	author := testinfra.CreateUser(t, db, "author")
	other := testinfra.CreateUser(t, db, "other")
	p := testinfra.CreatePosts(t, db, author, nil, 1, 0)[0]

	_, err := svc.UpdatePost(ctx, other.ID.String(), p.ID.String(), postPort.PostInput{Text: "hijacked"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := svc.UpdatePost(ctx, author.ID.String(), p.ID.String(), postPort.PostInput{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	var stored post.Post
	require.NoError(t, db.First(&stored, "id = ?", p.ID).Error)
	assert.Equal(t, "edited", stored.Text)

	_, err = svc.UpdatePost(ctx, author.ID.String(), "missing", postPort.PostInput{Text: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPostDetail(t *testing.T) {
	db := testinfra.NewDB(t)
	svc := newService(t, db)
	author := testinfra.CreateUser(t, db, "author")
	posts := testinfra.CreatePosts(t, db, author, nil, 3, 0)

	detail, err := svc.GetPostDetail(context.Background(), posts[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(3), detail.PostsCount)
	assert.Equal(t, posts[0].ID.String(), detail.Post.ID)
	assert.Empty(t, detail.Comments)
}
