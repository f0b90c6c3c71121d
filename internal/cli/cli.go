package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/staylens/core/internal/api/middleware"
	"github.com/staylens/core/internal/config"
	"github.com/staylens/core/internal/keywords"
	"github.com/staylens/core/internal/pipeline"
	"github.com/staylens/core/internal/services"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	cfg           *config.Config
	apiKeyManager *middleware.APIKeyManager
	reviewService *services.ReviewService
	logService    *services.LogService
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "staylens",
	Short: "StayLens review-extraction service",
	Long: `StayLens parses booking-platform review notification emails into
structured review records.

Available commands:
  staylens parse <archive.mbox>   Parse an mbox archive and print records as JSON
  staylens fetch                  Fetch and parse the configured IMAP folder
  staylens archives list          Show parse history
  staylens logs                   Show recent operation logs
  staylens key show               Show the current API key
  staylens key reset              Reset the API key
  staylens config init [path]     Write the active configuration to a file`,
}

// Execute runs the CLI with the provided database and config
func Execute(database *gorm.DB, config *config.Config) {
	db = database
	cfg = config

	var err error
	apiKeyManager, err = middleware.NewAPIKeyManager(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize API key manager: %v\n", err)
		os.Exit(1)
	}

	logService = services.NewLogServiceWithLevel(db, cfg.LogLevel)
	ranker := keywords.NewLocal(cfg.KeywordLang, cfg.KeywordNgram)
	processor := pipeline.NewProcessor(ranker, cfg.KeywordTopK)
	reviewService = services.NewReviewService(db, processor, logService)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(configCmd)
}
