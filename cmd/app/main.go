package main

import (
	"fmt"
	"os"

	dbadapter "inkwell/internal/adapters/database"
	"inkwell/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	config.InitLogger(os.Getenv("APP_ENV"))
	defer func() { _ = config.Logger.Sync() }()

	rootCmd := &cobra.Command{
		Use:          "inkwell",
		Short:        "Blog and forum server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		groupCmd(),
		seedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		config.Logger.Error("Command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads settings, connects to the database and migrates the schema.
func setup() error {
	config.Init()
	config.InitDB()
	if err := dbadapter.AutoMigrate(config.DB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	config.Logger.Info("Database migrations completed")
	return nil
}

func closeDB() {
	sqlDB, err := config.DB.DB()
	if err != nil {
		config.Logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		config.Logger.Error("Error closing database connection", zap.Error(err))
	}
}
