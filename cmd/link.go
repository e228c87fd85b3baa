package cmd

import (
	"fancylink/pkg/config"
	"fancylink/pkg/copier"
	"fancylink/pkg/errors"
	"fancylink/pkg/linkparse"
	"fancylink/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	linkTitle         string
	linkFormat        string
	linkCleanURL      bool
	linkNoCopy        bool
	linkFromClipboard bool
)

var linkCmd = &cobra.Command{
	Use:   "link [url]",
	Short: "Format a link and copy it to the clipboard",
	Long: `Format a page title and URL and copy the result to the clipboard.

Without --format the configured default format is used. Rich formats (rtf) are
copied together with a plain-text alternative so plain editors still get
readable text.`,
	Example: `  # Copy a Markdown link
  fancylink link https://example.com --title "Example Domain"

  # Copy a Slack link with tracking parameters removed
  fancylink link "https://example.com/?utm_source=news" -t Example -f slack --clean-url

  # Print without copying
  fancylink link https://example.com -t Example -f html --no-copy

  # Reformat the link already on the clipboard
  fancylink link --from-clipboard -f rtf`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(registry)
		if err != nil {
			return errors.Wrap(err, "load settings")
		}

		req, err := buildLinkRequest(cmd, args, settings)
		if err != nil {
			return err
		}

		c := copier.New(registry, clipboardWriter, copier.WithDefaultFormat(settings.DefaultFormat))

		if linkNoCopy {
			res, err := c.Render(req)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res.Text)
		}

		ctx, cancel := GetContext()
		defer cancel()

		res, err := c.Copy(ctx, req)
		if err != nil {
			return err
		}

		if settings.ShowNotifications {
			notifyf("✓ Copied %s link!", res.Format)
		}
		return writeResult(cmd.OutOrStdout(), res.Text)
	},
}

func buildLinkRequest(cmd *cobra.Command, args []string, settings *config.Settings) (copier.Request, error) {
	req := copier.Request{
		Title:    linkTitle,
		Format:   linkFormat,
		CleanURL: settings.CleanURLs,
	}
	if cmd.Flags().Changed("clean-url") {
		req.CleanURL = linkCleanURL
	}

	if !linkFromClipboard {
		if len(args) == 0 {
			return req, errors.NewWithSuggestion(errors.ExitCodeValidation,
				"a URL argument is required",
				"Pass the page URL or use --from-clipboard.")
		}
		req.URL = args[0]
		return req, nil
	}

	text, err := clipboardReader()
	if err != nil {
		return req, errors.NewWithError(errors.ExitCodeClipboard, errors.ErrMsgClipboardRead, err)
	}
	l, ok := linkparse.Parse(text)
	if !ok {
		return req, errors.NewWithSuggestion(errors.ExitCodeValidation, errors.ErrMsgNoLinkFound,
			"Copy a URL or a formatted link first.")
	}
	logger.Debug().Str("url", l.URL).Str("title", l.Title).Msg("link read from clipboard")

	req.URL = l.URL
	if !cmd.Flags().Changed("title") {
		req.Title = l.Title
	}
	if len(args) > 0 {
		logger.Warn().Str("url", args[0]).Msg("ignoring URL argument with --from-clipboard")
	}
	return req, nil
}

func init() {
	linkCmd.Flags().StringVarP(&linkTitle, "title", "t", "", "Page title (the URL is used when empty)")
	linkCmd.Flags().StringVarP(&linkFormat, "format", "f", "", "Link format (default: configured default_format)")
	linkCmd.Flags().BoolVar(&linkCleanURL, "clean-url", false, "Remove tracking parameters (overrides clean_urls)")
	linkCmd.Flags().BoolVar(&linkNoCopy, "no-copy", false, "Print the link without copying it")
	linkCmd.Flags().BoolVar(&linkFromClipboard, "from-clipboard", false, "Read the link to reformat from the clipboard")
}
