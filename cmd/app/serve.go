package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dbadapter "inkwell/internal/adapters/database"
	"inkwell/internal/adapters/httpapi"
	"inkwell/internal/adapters/media"
	redisadapter "inkwell/internal/adapters/redis"
	"inkwell/internal/config"
	commentapp "inkwell/internal/core/comment/service"
	feedapp "inkwell/internal/core/feed/service"
	followapp "inkwell/internal/core/follow/service"
	groupapp "inkwell/internal/core/group/service"
	postapp "inkwell/internal/core/post/service"
	userapp "inkwell/internal/core/user/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			defer closeDB()

			config.InitRedis()
			defer func() {
				if err := config.RedisClient.Close(); err != nil {
					config.Logger.Error("Error closing Redis connection", zap.Error(err))
				}
			}()

			if config.App.Env == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, newRouter())
		},
	}
}

// newRouter wires repositories and services into the HTTP adapter.
func newRouter() *gin.Engine {
	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)
	followRepo := dbadapter.NewFollowRepositoryDatabase(config.DB)
	feedRepo := dbadapter.NewFeedRepositoryDatabase(config.DB)

	return httpapi.SetupRoutes(httpapi.Deps{
		Users:        userapp.NewUserService(userRepo, []byte(config.App.JWTSecret)),
		Posts:        postapp.NewPostService(postRepo, groupRepo, commentRepo, media.NewFileStore(config.App.MediaRoot)),
		Comments:     commentapp.NewCommentService(commentRepo, postRepo),
		Groups:       groupapp.NewGroupService(groupRepo),
		Follows:      followapp.NewFollowService(followRepo, userRepo),
		Feeds:        feedapp.NewFeedService(feedRepo, groupRepo, userRepo, postRepo, followRepo),
		PageCache:    redisadapter.NewPageCacheRepositoryRedis(config.RedisClient, "inkwell"),
		HomeCacheTTL: config.App.HomeCacheTTL,
	})
}

func serve(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + config.App.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Logger.Info("App is running", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
