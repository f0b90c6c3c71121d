package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/staylens/core/internal/database/models"
)

// keyCmd groups API key management commands
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "API key management commands",
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current API key",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(apiKeyManager.GetCurrentKey())
	},
}

var keyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := apiKeyManager.ResetKey()
		if err != nil {
			return err
		}
		logService.LogWarn(models.LogModuleCLI, "key_reset", "API key reset from the command line", nil)
		fmt.Println("API key reset.")
		fmt.Println(key)
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyResetCmd)
}
