package completions

import (
	"fmt"
	"strings"

	"fancylink/pkg/config"
	"fancylink/pkg/formats"

	"github.com/spf13/cobra"
)

type Completer struct {
	registry *formats.Registry
}

func NewCompleter(registry *formats.Registry) *Completer {
	return &Completer{registry: registry}
}

// CompleteFormat completes format keys, described by name.
func (c *Completer) CompleteFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var results []string
	for _, f := range c.registry.All() {
		results = append(results, fmt.Sprintf("%s\t%s", f.Key, f.Description))
	}
	return c.filterPrefix(results, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteOutput(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	outputs := []string{
		"table\tAligned columns",
		"json\tJSON array",
		"yaml\tYAML list",
	}
	return c.filterPrefix(outputs, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteLogLevel(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	levels := []string{"debug", "info", "warn", "error", "off"}
	return c.filterPrefix(levels, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// CompleteConfigSet completes `config set <key> <value>`.
func (c *Completer) CompleteConfigSet(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return c.filterPrefix(config.Keys(), toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		if args[0] == "default-format" {
			return c.CompleteFormat(cmd, args, toComplete)
		}
		return c.filterPrefix([]string{"true", "false"}, toComplete), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func (c *Completer) filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		itemName := strings.Split(item, "\t")[0]
		if strings.HasPrefix(strings.ToLower(itemName), strings.ToLower(prefix)) {
			result = append(result, item)
		}
	}
	return result
}

func RegisterCompletions(rootCmd *cobra.Command, registry *formats.Registry) {
	completer := NewCompleter(registry)

	rootCmd.RegisterFlagCompletionFunc("log-level", completer.CompleteLogLevel) //nolint:errcheck

	linkCmd, _, _ := rootCmd.Find([]string{"link"})
	if linkCmd != nil && linkCmd != rootCmd {
		linkCmd.RegisterFlagCompletionFunc("format", completer.CompleteFormat) //nolint:errcheck
	}

	formatsCmd, _, _ := rootCmd.Find([]string{"formats"})
	if formatsCmd != nil && formatsCmd != rootCmd {
		formatsCmd.RegisterFlagCompletionFunc("output", completer.CompleteOutput) //nolint:errcheck
		formatsCmd.ValidArgsFunction = completer.CompleteFormat
	}

	configSetCmd, _, _ := rootCmd.Find([]string{"config", "set"})
	if configSetCmd != nil && configSetCmd.Name() == "set" {
		configSetCmd.ValidArgsFunction = completer.CompleteConfigSet
	}
}
