package cli

import (
	"os"

	"github.com/spf13/cobra"

	mongostorage "github.com/tkdr/teamgate/internal/storage/mongo"
)

var (
	mongoURL string
	database string
	output   string

	store *mongostorage.Store
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "teamctl",
		Short: "Ops tool for the team gate player records",
		Long: `teamctl operates directly on the player record store.

It covers moderation tasks that do not need the web console: listing
records, flagging a record as banned and clearing the flag. Banning through
teamctl does not kick the member from the team roster; use the web console
for that.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg := mongostorage.DefaultConfig()
			cfg.URL = mongoURL
			cfg.Database = database
			store, err = mongostorage.New(cmd.Context(), cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if store == nil {
				return nil
			}
			return store.Close(cmd.Context())
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&mongoURL, "mongo-url", envOr("MONGO_URL", "mongodb://localhost:27017"), "Document store URL (env: MONGO_URL)")
	rootCmd.PersistentFlags().StringVar(&database, "database", envOr("MONGO_DATABASE", "teamgate"), "Database name (env: MONGO_DATABASE)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newPlayersCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
