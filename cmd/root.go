package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"fancylink/pkg/clipboard"
	"fancylink/pkg/completions"
	"fancylink/pkg/config"
	"fancylink/pkg/errors"
	"fancylink/pkg/formats"
	"fancylink/pkg/logger"

	"github.com/spf13/cobra"
)

const (
	unknownValue = "unknown"
)

var (
	Version   string
	BuildTime string
	GitCommit string
)

var defaultTimeout = 10 * time.Second
var assumeYesFlag bool
var logLevel string

// registry holds the link formats every command works with.
var registry = formats.Default()

// clipboardWriter and clipboardReader are swapped out in tests.
var (
	clipboardWriter clipboard.Writer = clipboard.System{}
	clipboardReader                  = clipboard.ReadText
)

var rootCmd = &cobra.Command{
	Use:   "fancylink",
	Short: "Copy page links as Markdown, Slack, HTML, RTF and more",
	Long: `fancylink turns a page title and URL into a formatted link and copies it
to the clipboard. Formats: slack, markdown, html, plaintext, rtf, urlparams.
Settings live in $XDG_CONFIG_HOME/fancylink/config.yaml and can be overridden
with FANCYLINK_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetLevel(resolveLogLevel(cmd))
		return nil
	},
}

// resolveLogLevel picks --log-level, then FANCYLINK_LOG_LEVEL, then debug
// when debug_mode is on.
func resolveLogLevel(cmd *cobra.Command) string {
	if cmd.Flags().Changed("log-level") {
		return logLevel
	}
	if envLevel := os.Getenv("FANCYLINK_LOG_LEVEL"); envLevel != "" {
		return envLevel
	}
	// A broken config file is reported by the command that needs it.
	if s, err := config.Load(registry); err == nil && s.DebugMode {
		return "debug"
	}
	return logLevel
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fancylink version %s\n", versionString())
		fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", orUnknown(BuildTime))
		fmt.Fprintf(cmd.OutOrStdout(), "Git commit: %s\n", orUnknown(GitCommit))
		fmt.Fprintf(cmd.OutOrStdout(), "Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func versionString() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

func orUnknown(s string) string {
	if s == "" {
		return unknownValue
	}
	return s
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitCode := errors.HandleReturn(err)
		os.Exit(int(exitCode))
	}
}

func GetContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultTimeout)
}

func init() {
	RegisterCommands(rootCmd)

	rootCmd.PersistentFlags().BoolVarP(&assumeYesFlag, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logger.DefaultLevel, "Log level (debug, info, warn, error, off)")

	completions.RegisterCompletions(rootCmd, registry)
}
