package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"fancylink/pkg/errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatTable is the default human-readable table format
	FormatTable OutputFormat = "table"
	// FormatJSON outputs as JSON
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs as YAML
	FormatYAML OutputFormat = "yaml"
)

// OutputWriter handles structured output formatting
type OutputWriter struct {
	format OutputFormat
	writer io.Writer
}

// NewOutputWriter creates a new output writer with the specified format
func NewOutputWriter(format string, w io.Writer) *OutputWriter {
	f := OutputFormat(format)
	if f != FormatJSON && f != FormatYAML {
		f = FormatTable
	}
	return &OutputWriter{
		format: f,
		writer: w,
	}
}

// IsStructured returns true if the format is JSON or YAML
func (w *OutputWriter) IsStructured() bool {
	return w.format == FormatJSON || w.format == FormatYAML
}

// Write outputs the data in the configured format
func (w *OutputWriter) Write(data interface{}) error {
	switch w.format {
	case FormatJSON:
		encoder := json.NewEncoder(w.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatYAML:
		encoder := yaml.NewEncoder(w.writer)
		defer encoder.Close()
		return encoder.Encode(data)
	default:
		// Table format is handled by individual commands
		return nil
	}
}

// Table renders headers and rows as a bordered table.
func (w *OutputWriter) Table(headers []string, rows [][]string) error {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	_, err := fmt.Fprintln(w.writer, t.String())
	return err
}

// ValidFormats returns a list of valid output formats
func ValidFormats() []string {
	return []string{"table", "json", "yaml"}
}

// ValidateOutputFormat rejects an --output value NewOutputWriter would not
// recognise.
func ValidateOutputFormat(format string) error {
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return errors.NewWithSuggestion(errors.ExitCodeValidation,
		fmt.Sprintf("unknown output format %q", format),
		"Valid output formats: "+strings.Join(ValidFormats(), ", "))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeResult prints a link or URL. Terminals get a trailing newline; pipes get
// the exact text.
func writeResult(w io.Writer, text string) error {
	if isTerminal(w) {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	_, err := io.WriteString(w, text)
	return err
}

// OutputWithCopy prints terminalContent and, when shouldCopy is set, puts
// clipboardContent on the clipboard as plain text.
func OutputWithCopy(writer io.Writer, terminalContent, clipboardContent string, shouldCopy bool) error {
	if _, err := fmt.Fprint(writer, terminalContent); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if shouldCopy {
		if err := clipboardWriter.WriteText(clipboardContent); err != nil {
			return errors.ClipboardError(err)
		}
		notifyf("✓ Copied to clipboard!")
	}

	return nil
}
