package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/config"
)

// NewSettingsCommand creates the "settings" command: show the resolved
// runtime settings, with an "init" subcommand that writes them to disk so
// an operator can edit the file instead of starting from nothing.
func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the resolved runtime settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			fmt.Printf("settings file:    %s\n", settingsPath)
			fmt.Printf("platform URL:     %s\n", orUnset(settings.PlatformURL))
			fmt.Printf("platform API key: %s\n", maskSecret(settings.PlatformAPIKey))
			fmt.Printf("destination root: %s\n", settings.DestinationRoot)
			fmt.Printf("max workers:      %d\n", settings.MaxWorkers)
			fmt.Printf("datasets file:    %s\n", orUnset(settings.DatasetsFile))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the settings file",
		Long: `Init writes the resolved settings (file contents merged with defaults)
to the settings file, creating it with defaults when absent. Existing
values are preserved; edit the file afterwards to configure the
platform URL and API key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if err := config.Save(settingsPath, settings); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", settingsPath)
			return nil
		},
	})

	return cmd
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func maskSecret(v string) string {
	if v == "" {
		return "(not set)"
	}
	return "(set)"
}
