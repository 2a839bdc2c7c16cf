package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/FrenchMajesty/ticket-triage/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage saved preferences",
	Long:  `Save, show or clear the API key, AI toggle and model used by default.`,
}

var settingsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save preferences to the settings file",
	Long: `Update the settings file with the given flags. Flags that are not passed keep
their saved value.

Example:
  ticket-triage settings save --api-key sk-... --ai --model gpt-4.1-mini`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}

		current, err := settings.LoadFile(path)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("api-key") {
			current.APIKey, _ = flags.GetString("api-key")
		}
		if flags.Changed("ai") {
			current.UseAI, _ = flags.GetBool("ai")
		}
		if flags.Changed("model") {
			current.Model, _ = flags.GetString("model")
		}

		if err := settings.Save(path, current); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved settings to %s\n", path)
		return nil
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective preferences with the key redacted",
	RunE: func(cmd *cobra.Command, args []string) error {
		effective := settings.Load(viper.GetViper()).Redacted()

		out, err := yaml.Marshal(effective)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the settings file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		if err := settings.Clear(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared settings at %s\n", path)
		return nil
	},
}

func init() {
	settingsSaveCmd.Flags().String("api-key", "", "OpenAI API key to store")
	settingsSaveCmd.Flags().Bool("ai", false, "turn AI mode on or off by default")
	settingsSaveCmd.Flags().String("model", "", "default model for AI mode")

	settingsCmd.AddCommand(settingsSaveCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsClearCmd)
}
