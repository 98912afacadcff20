package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/calbridge/calbridge/internal/credential"
	"github.com/calbridge/calbridge/internal/office365"
)

var (
	dbPath  string
	verbose bool
)

// rootCmd represents the base command for the calbridge application
var rootCmd = &cobra.Command{
	Use:   "calbridge",
	Short: "Bridges stored Office 365 credentials to generic calendar operations",
	Long: `calbridge is a calendar-provider adapter for Microsoft Office 365.

Given a stored OAuth credential it can list the remote calendars, query
busy intervals across many calendars in one batched call, and create,
update or delete events. Expired access tokens are refreshed and persisted
transparently.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env file is optional and only used for local development.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calbridge version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the credential database (default: user cache dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newCredentialsCmd())
	rootCmd.AddCommand(newCalendarsCmd())
	rootCmd.AddCommand(newAvailabilityCmd())
	rootCmd.AddCommand(newEventsCmd())
}

// openStore opens the credential database, defaulting to a file in the
// user's cache directory.
func openStore() (*credential.SQLiteStore, error) {
	path := dbPath
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate cache directory: %w", err)
		}
		dir := filepath.Join(cacheDir, "calbridge")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		path = filepath.Join(dir, "credentials.db")
	}

	return credential.NewSQLiteStore(path)
}

// newProvider builds an Office 365 adapter for the stored credential.
func newProvider(ctx context.Context, credentialID string, store credential.Store) (*office365.Client, error) {
	cfg, err := office365.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	cred, err := store.Get(ctx, credentialID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential %s: %w", credentialID, err)
	}

	return office365.NewClient(cfg, cred, store, slog.Default(), nil), nil
}
