package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// archiveCmd groups parse-history commands
var archiveCmd = &cobra.Command{
	Use:   "archives",
	Short: "Parse history commands",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List processed archives, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		archives, err := reviewService.ListArchives(limit)
		if err != nil {
			return err
		}

		if len(archives) == 0 {
			fmt.Println("No archives processed yet.")
			return nil
		}

		fmt.Printf("%-5s %-30s %-8s %-10s %-10s %-10s %s\n",
			"ID", "NAME", "KIND", "MESSAGES", "RECORDS", "TIME(MS)", "PROCESSED AT")
		for _, a := range archives {
			fmt.Printf("%-5d %-30s %-8s %-10d %-10d %-10d %s\n",
				a.ID, a.Name, a.SourceKind, a.MessageCount, a.RecordCount,
				a.DurationMs, a.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	archiveListCmd.Flags().Int("limit", 50, "maximum number of archives to list")
	archiveCmd.AddCommand(archiveListCmd)
}
