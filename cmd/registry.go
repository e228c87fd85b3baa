package cmd

import "github.com/spf13/cobra"

func RegisterCommands(root *cobra.Command) {
	root.AddCommand(versionCmd)
	root.AddCommand(clipboardServeCmd)

	root.AddCommand(linkCmd)
	root.AddCommand(formatsCmd)
	root.AddCommand(cleanCmd)
	root.AddCommand(configCmd)
	root.AddCommand(bugreportCmd)

	configCmd.AddCommand(
		configShowCmd,
		configSetCmd,
		configResetCmd,
		configPathCmd,
	)
}
