package cmd

import (
	"fancylink/pkg/config"
	"fancylink/pkg/diagnostics"
	"fancylink/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	bugreportIncludePage bool
	bugreportTitle       string
	bugreportURL         string
	bugreportMarkdown    bool
	bugreportCopy        bool
)

var bugreportCmd = &cobra.Command{
	Use:     "bugreport",
	Aliases: []string{"bug"},
	Short:   "Prepare a bug report with system information",
	Long: `Print a GitHub new-issue URL prefilled with fancylink's version, platform
and settings. The page passed with --url/--title is only included when
--include-page is given or include_current_page_in_bug_reports is enabled.`,
	Example: `  # Open the printed URL in a browser to file an issue
  fancylink bugreport

  # Include the page that failed to copy
  fancylink bugreport --include-page --url https://example.com --title Example

  # Copy the diagnostics block instead
  fancylink bugreport --markdown --copy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(registry)
		if err != nil {
			// Still useful with a broken config: report defaults.
			logger.Warn().Err(err).Msg("using default settings for bug report")
			defaults := config.Defaults()
			settings = &defaults
		}

		s := *settings
		if cmd.Flags().Changed("include-page") {
			s.IncludeCurrentPageInBugReports = bugreportIncludePage
		}

		var page *diagnostics.Page
		if bugreportURL != "" || bugreportTitle != "" {
			page = &diagnostics.Page{Title: bugreportTitle, URL: bugreportURL}
		}

		d := diagnostics.Collect(s, versionString(), page)

		content := diagnostics.IssueURL(d)
		if bugreportMarkdown {
			content = diagnostics.Markdown(d)
		}
		terminal := content
		if !bugreportMarkdown {
			terminal += "\n"
		}
		return OutputWithCopy(cmd.OutOrStdout(), terminal, content, bugreportCopy)
	},
}

func init() {
	bugreportCmd.Flags().BoolVar(&bugreportIncludePage, "include-page", false, "Include the page given by --url/--title")
	bugreportCmd.Flags().StringVar(&bugreportTitle, "title", "", "Title of the page the problem happened on")
	bugreportCmd.Flags().StringVar(&bugreportURL, "url", "", "URL of the page the problem happened on")
	bugreportCmd.Flags().BoolVar(&bugreportMarkdown, "markdown", false, "Print the diagnostics block instead of the issue URL")
	bugreportCmd.Flags().BoolVar(&bugreportCopy, "copy", false, "Copy the output to the clipboard")
}
