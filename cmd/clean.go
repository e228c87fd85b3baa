package cmd

import (
	"fmt"
	"strings"

	"fancylink/pkg/cleanurl"

	"github.com/spf13/cobra"
)

var (
	cleanCheck bool
	cleanCopy  bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <url>",
	Short: "Remove tracking parameters from a URL",
	Long: `Remove known tracking parameters (utm_*, fbclid, gclid, ...) from a URL.
Other parameters keep their order; the fragment is preserved. Input that is
not an absolute URL is printed unchanged.`,
	Example: `  fancylink clean "https://example.com/?id=1&utm_source=news#top"

  # Only report what would be removed
  fancylink clean --check "https://example.com/?fbclid=abc"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := args[0]

		if cleanCheck {
			found := cleanurl.Found(raw)
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracking parameters found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking parameters: %s\n", strings.Join(found, ", "))
			return nil
		}

		cleaned := cleanurl.Clean(raw)
		return OutputWithCopy(cmd.OutOrStdout(), cleaned+"\n", cleaned, cleanCopy)
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanCheck, "check", false, "List tracking parameters instead of removing them")
	cleanCmd.Flags().BoolVar(&cleanCopy, "copy", false, "Copy the cleaned URL to the clipboard")
}
