package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/filedock/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "filedock",
	Short:   "File hosting backend with S3-compatible storage",
	Long: `Filedock is a file hosting backend that stores file content in an
S3-compatible object store (or a local directory) and metadata in a
relational database. It exposes a REST API for user registration,
uploads, owner-scoped downloads, and paginated listing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var configFiles []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			configFiles = []string{configFile}
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg.Log.Level)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: sqlite, postgres (default: sqlite, env: FILEDOCK_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: filedock.db, env: FILEDOCK_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("storage", "", "blob backend: filesystem, s3 (default: filesystem, env: FILEDOCK_STORAGE_BACKEND)")
	rootCmd.PersistentFlags().String("storage-path", "", "filesystem storage directory (default: ./data, env: FILEDOCK_STORAGE_PATH)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
