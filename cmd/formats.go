package cmd

import (
	"strings"

	"fancylink/pkg/errors"
	"fancylink/pkg/filter"
	"fancylink/pkg/formats"

	"github.com/spf13/cobra"
)

var (
	formatsOutput string
	formatsMatch  string
)

var formatsCmd = &cobra.Command{
	Use:     "formats [query]",
	Aliases: []string{"format"},
	Short:   "List the available link formats",
	Long:    `List the available link formats with an example of each. A query filters by key and name (fuzzy by default).`,
	Example: `  # List all formats
  fancylink formats

  # Find formats matching "mk"
  fancylink formats mk

  # Regex match on key or name
  fancylink formats --match regex '^(rtf|html)$'

  # Output as JSON
  fancylink formats --output json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateOutputFormat(formatsOutput); err != nil {
			return err
		}
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		mode, err := filter.ParseMode(formatsMatch)
		if err != nil {
			return errors.ValidationError(err.Error())
		}
		f, err := filter.NewStringFilter(strings.TrimSpace(query), mode)
		if err != nil {
			return errors.ValidationError(err.Error())
		}
		list := filter.Formats(registry.All(), f)

		output := NewOutputWriter(formatsOutput, cmd.OutOrStdout())
		if output.IsStructured() {
			return output.Write(list)
		}
		return output.Table(
			[]string{"KEY", "NAME", "EXAMPLE", "WORKS WITH"},
			formatRows(list),
		)
	},
}

func formatRows(list []formats.Format) [][]string {
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		worksWith := registry.WorksWithText(f.Key, "")
		if worksWith == "" {
			worksWith = "-"
		}
		rows = append(rows, []string{f.Key, f.Name, f.Example, worksWith})
	}
	return rows
}

func init() {
	formatsCmd.Flags().StringVar(&formatsMatch, "match", "fuzzy", "How the query matches key and name (fuzzy, contains, exact, regex)")
	formatsCmd.Flags().StringVarP(&formatsOutput, "output", "o", "table", "Output format (table, json, yaml)")
}
