package cmd

import (
	"fancylink/pkg/clipboard"
	"fancylink/pkg/errors"

	"github.com/spf13/cobra"
)

var clipboardServeCmd = &cobra.Command{
	Use:    clipboard.ServeCommand,
	Hidden: true,
	Short:  "Internal: serve clipboard content over Wayland (do not call directly)",
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flavors, err := clipboard.DecodePayload(cmd.InOrStdin())
		if err != nil {
			return errors.WrapWithCode(err, errors.ExitCodeClipboard, "read clipboard payload")
		}
		if err := clipboard.Serve(flavors); err != nil {
			return errors.WrapWithCode(err, errors.ExitCodeClipboard, "serve clipboard")
		}
		return nil
	},
}
