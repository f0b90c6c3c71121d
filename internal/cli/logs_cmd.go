package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/staylens/core/internal/database/models"
)

// logsCmd shows recent operation logs
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent operation logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		module, _ := cmd.Flags().GetString("module")

		var entries []models.Log
		var err error
		if module != "" {
			entries, err = logService.GetLogsByModule(models.LogModule(module), limit)
		} else {
			entries, err = logService.GetRecentLogs(limit)
		}
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No log entries.")
			return nil
		}

		fmt.Printf("%-20s %-6s %-8s %-12s %s\n", "TIME", "LEVEL", "MODULE", "ACTION", "MESSAGE")
		for _, e := range entries {
			fmt.Printf("%-20s %-6s %-8s %-12s %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.Level, e.Module, e.Action, e.Message)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().Int("limit", 100, "maximum number of log entries to show")
	logsCmd.Flags().String("module", "", "only show entries from one module (parse, api, cli)")
}
