package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/staylens/core/internal/database/models"
	"github.com/staylens/core/internal/source"
)

// parseCmd parses a local mbox archive and prints the records as JSON
var parseCmd = &cobra.Command{
	Use:   "parse <archive.mbox>",
	Short: "Parse an mbox archive and print review records as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := reviewService.ParseArchive(args[0], models.SourceKindMbox)
		if err != nil {
			return err
		}
		return printRecords(records)
	},
}

// fetchCmd fetches the configured IMAP folder and prints the records as JSON
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the configured IMAP folder and print review records as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.IMAPHost == "" || cfg.IMAPUsername == "" {
			return fmt.Errorf("IMAP is not configured; set STAYLENS_IMAP_HOST and STAYLENS_IMAP_USERNAME")
		}

		days, _ := cmd.Flags().GetInt("days")
		src := &source.IMAPSource{
			Host:     cfg.IMAPHost,
			Port:     cfg.IMAPPort,
			Username: cfg.IMAPUsername,
			Password: cfg.IMAPPassword,
			UseSSL:   cfg.IMAPUseSSL,
			Folder:   cfg.IMAPFolder,
			Days:     days,
		}

		name := fmt.Sprintf("%s/%s", cfg.IMAPHost, cfg.IMAPFolder)
		records, err := reviewService.ParseSource(name, models.SourceKindIMAP, src)
		if err != nil {
			return err
		}
		return printRecords(records)
	},
}

func init() {
	fetchCmd.Flags().Int("days", 0, "only fetch messages from the last N days (0 = all)")
}

func printRecords(records interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
