package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hpkotak/bootstrap/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bootstrap overrides",
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// targetConfigPath is the file config commands read and write.
func targetConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.Path()
}
