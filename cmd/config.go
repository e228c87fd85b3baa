package cmd

import (
	"fmt"

	"fancylink/pkg/config"

	"github.com/spf13/cobra"
)

var configShowOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fancylink settings",
	Long:  `Show and change the settings stored in the fancylink config file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Long:  `Display the effective settings: the config file with FANCYLINK_* overrides applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateOutputFormat(configShowOutput); err != nil {
			return err
		}
		s, err := config.Load(registry)
		if err != nil {
			return err
		}

		output := NewOutputWriter(configShowOutput, cmd.OutOrStdout())
		if output.IsStructured() {
			return output.Write(s)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Current Settings:")
		fmt.Fprintln(w, "=================")
		fmt.Fprintf(w, "Default format: %s\n", s.DefaultFormat)
		fmt.Fprintf(w, "Clean URLs: %t\n", s.CleanURLs)
		fmt.Fprintf(w, "Show notifications: %t\n", s.ShowNotifications)
		fmt.Fprintf(w, "Debug mode: %t\n", s.DebugMode)
		fmt.Fprintf(w, "Include current page in bug reports: %t\n", s.IncludeCurrentPageInBugReports)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change one setting and save the config file.

Keys: default-format, clean-urls, show-notifications, debug-mode,
include-current-page-in-bug-reports.`,
	Example: `  fancylink config set default-format slack
  fancylink config set clean-urls true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		// Read the file alone so environment overrides are not persisted.
		s, err := config.LoadFileFromPath(path)
		if err != nil {
			return err
		}
		if err := s.Set(args[0], args[1], registry); err != nil {
			return err
		}
		if err := config.SaveToPath(path, s); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := RequireConfirmation("All settings will be reset to their defaults"); err != nil {
			return err
		}

		defaults := config.Defaults()
		if err := config.Save(&defaults); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults.")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVarP(&configShowOutput, "output", "o", "table", "Output format (table, json, yaml)")
}
