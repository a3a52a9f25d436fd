// Package testinfra opens throwaway databases and Redis servers for tests.
package testinfra

import (
	"fmt"
	"testing"
	"time"

	dbadapter "inkwell/internal/adapters/database"
	"inkwell/internal/core/group"
	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Epoch is the creation time of the first fixture post.
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// NewDB returns a migrated in-memory SQLite database closed at test end.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection to :memory: would otherwise see its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbadapter.AutoMigrate(db))
	return db
}

// NewRedis starts a miniredis server and a client pointed at it.
func NewRedis(t testing.TB) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// CreateUser stores a user whose password is "password".
func CreateUser(t testing.TB, db *gorm.DB, username string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{Username: username, Password: string(hash)}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateGroup(t testing.TB, db *gorm.DB, title, slug string) *group.Group {
	t.Helper()
	g := &group.Group{Title: title, Slug: slug, Description: "test group"}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreatePosts stores n posts by author a minute apart, starting at Epoch+start minutes.
func CreatePosts(t testing.TB, db *gorm.DB, author *user.User, g *group.Group, n, start int) []*post.Post {
	t.Helper()
	posts := make([]*post.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &post.Post{
			Text:      fmt.Sprintf("post %d by %s", start+i, author.Username),
			AuthorID:  author.ID,
			CreatedAt: Epoch.Add(time.Duration(start+i) * time.Minute),
		}
		if g != nil {
			p.GroupID = &g.ID
		}
		require.NoError(t, db.Omit("Author", "Group").Create(p).Error)
		posts = append(posts, p)
	}
	return posts
}
