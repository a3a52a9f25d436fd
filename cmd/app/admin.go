package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	dbadapter "inkwell/internal/adapters/database"
	"inkwell/internal/adapters/media"
	"inkwell/internal/config"
	followapp "inkwell/internal/core/follow/service"
	groupapp "inkwell/internal/core/group/service"
	postapp "inkwell/internal/core/post/service"
	userapp "inkwell/internal/core/user/service"
	postPort "inkwell/internal/ports/post"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			closeDB()
			return nil
		},
	}
}

func groupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups",
	}

	add := &cobra.Command{
		Use:   "add <title> <slug>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			if err := setup(); err != nil {
				return err
			}
			defer closeDB()

			svc := groupapp.NewGroupService(dbadapter.NewGroupRepositoryDatabase(config.DB))
			g, err := svc.CreateGroup(cmd.Context(), args[0], args[1], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (%s)\n", g.Title, g.Slug)
			return nil
		},
	}
	add.Flags().String("description", "", "group description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			defer closeDB()

			svc := groupapp.NewGroupService(dbadapter.NewGroupRepositoryDatabase(config.DB))
			groups, err := svc.ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tTITLE")
			for _, g := range groups {
				fmt.Fprintf(w, "%s\t%s\n", g.Slug, g.Title)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo users, follows and posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, _ := cmd.Flags().GetInt("users")
			posts, _ := cmd.Flags().GetInt("posts")
			if err := setup(); err != nil {
				return err
			}
			defer closeDB()
			return seed(cmd.Context(), users, posts)
		},
	}
	cmd.Flags().Int("users", 20, "number of users to create")
	cmd.Flags().Int("posts", 10, "posts per user")
	return cmd
}

// seed registers numUsers users, has each follow the next one and writes
// postsPerUser posts per user, half of them in a demo group.
func seed(ctx context.Context, numUsers, postsPerUser int) error {
	logger := config.Logger
	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)

	userSvc := userapp.NewUserService(userRepo, []byte(config.App.JWTSecret))
	followSvc := followapp.NewFollowService(dbadapter.NewFollowRepositoryDatabase(config.DB), userRepo)
	postSvc := postapp.NewPostService(postRepo, groupRepo, dbadapter.NewCommentRepositoryDatabase(config.DB), media.NewFileStore(config.App.MediaRoot))
	groupSvc := groupapp.NewGroupService(groupRepo)

	groupID := ""
	if g, err := groupSvc.CreateGroup(ctx, "Demo", "demo", "Seeded posts"); err == nil {
		groupID = g.ID
	} else {
		logger.Warn("Demo group not created", zap.Error(err))
	}

	usernames := make([]string, 0, numUsers)
	ids := make([]string, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		username := fmt.Sprintf("seeduser%d", i)
		u, err := userSvc.RegisterUser(ctx, "Seed", fmt.Sprint(i), username, "password")
		if err != nil {
			logger.Error("Error creating user", zap.String("username", username), zap.Error(err))
			continue
		}
		usernames = append(usernames, u.Username)
		ids = append(ids, u.ID)
	}
	logger.Info("Finished creating users", zap.Int("count", len(ids)))

	for i, id := range ids {
		if len(ids) < 2 {
			break
		}
		next := usernames[(i+1)%len(usernames)]
		if err := followSvc.FollowUser(ctx, id, next); err != nil {
			logger.Error("Error following", zap.String("followerID", id), zap.String("author", next), zap.Error(err))
		}
	}

	count := 0
	for i, id := range ids {
		for p := 1; p <= postsPerUser; p++ {
			in := postPort.PostInput{Text: fmt.Sprintf("Post %d by %s", p, usernames[i])}
			if p%2 == 0 {
				in.GroupID = groupID
			}
			if _, err := postSvc.CreatePost(ctx, id, in); err != nil {
				logger.Error("Error creating post", zap.String("userID", id), zap.Error(err))
				continue
			}
			count++
		}
	}
	logger.Info("Seed completed", zap.Int("users", len(ids)), zap.Int("posts", count))
	fmt.Fprintf(os.Stdout, "Seeded %d users and %d posts\n", len(ids), count)
	return nil
}
