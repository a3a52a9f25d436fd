package httpapi

import (
	"context"
	"net/http"
	"time"

	"inkwell/internal/adapters/httpapi/middleware"
	"inkwell/internal/config"
	commentPort "inkwell/internal/ports/comment"
	feedPort "inkwell/internal/ports/feed"
	followPort "inkwell/internal/ports/follow"
	groupPort "inkwell/internal/ports/group"
	"inkwell/internal/ports/pagecache"
	postPort "inkwell/internal/ports/post"
	userPort "inkwell/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserUseCase is what the account views need from the user service.
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, name, family, username, password string) (*userPort.UserDTO, error)
	ParseToken(token string) (*userPort.Session, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID string, in postPort.PostInput) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, actorID, postID string, in postPort.PostInput) (*postPort.PostDTO, error)
	GetPostForEdit(ctx context.Context, actorID, postID string) (*postPort.PostDTO, error)
	GetPostDetail(ctx context.Context, postID string) (*postPort.PostDetailDTO, error)
}

type CommentUseCase interface {
	AddComment(ctx context.Context, authorID, postID, text string) (*commentPort.CommentDTO, error)
}

type GroupUseCase interface {
	ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error)
}

type FollowUseCase interface {
	FollowUser(ctx context.Context, followerID, username string) error
	UnfollowUser(ctx context.Context, followerID, username string) error
	GetFollowersByUsername(ctx context.Context, username string) ([]*followPort.FollowDTO, error)
	GetFollowingByUsername(ctx context.Context, username string) ([]*followPort.FollowDTO, error)
}

type FeedUseCase interface {
	GetGlobalFeed(ctx context.Context, page int) (*feedPort.PageDTO, error)
	GetGroupFeed(ctx context.Context, slug string, page int) (*feedPort.GroupFeedDTO, error)
	GetProfileFeed(ctx context.Context, username, viewerID string, page int) (*feedPort.ProfileFeedDTO, error)
	GetFollowingFeed(ctx context.Context, viewerID string, page int) (*feedPort.PageDTO, error)
}

// Deps is everything the router wires into controllers.
type Deps struct {
	Users    UserUseCase
	Posts    PostUseCase
	Comments CommentUseCase
	Groups   GroupUseCase
	Follows  FollowUseCase
	Feeds    FeedUseCase

	// PageCache stores the rendered home page; nil disables caching.
	PageCache    pagecache.PageCache
	HomeCacheTTL time.Duration
}

// SetupRoutes only routes; the use cases are injected from outside.
func SetupRoutes(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(config.Logger), middleware.Authenticate(d.Users))
	r.NoRoute(notFound)

	uc := NewUserController(d.Users)
	pc := NewPostController(d.Posts, d.Comments, d.Groups)
	fc := NewFollowController(d.Follows)
	feeds := NewFeedController(d.Feeds)
	login := middleware.LoginRequired()

	home := []gin.HandlerFunc{}
	if d.PageCache != nil {
		home = append(home, middleware.CachePage(d.PageCache, "home_page", d.HomeCacheTTL, middleware.PageKey))
	}
	r.GET("/", append(home, feeds.Index)...)
	r.GET("/group/:slug/", feeds.GroupPosts)
	r.GET("/profile/:username/", feeds.Profile)
	r.GET("/follow/", login, feeds.FollowIndex)

	r.GET("/posts/:id/", pc.PostDetail)
	r.GET("/create/", login, pc.CreateForm)
	r.POST("/create/", login, pc.CreatePost)
	r.GET("/posts/:id/edit/", login, pc.EditForm)
	r.POST("/posts/:id/edit/", login, pc.EditPost)
	r.POST("/posts/:id/comment/", login, pc.AddComment)

	both := []string{http.MethodGet, http.MethodPost}
	r.Match(both, "/profile/:username/follow/", login, fc.Follow)
	r.Match(both, "/profile/:username/unfollow/", login, fc.Unfollow)
	r.GET("/profile/:username/followers/", fc.Followers)
	r.GET("/profile/:username/following/", fc.Following)

	auth := r.Group("/auth")
	auth.POST("/signup/", uc.RegisterUser)
	auth.GET("/login/", uc.LoginForm)
	auth.POST("/login/", uc.LoginUser)
	auth.POST("/logout/", uc.LogoutUser)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
