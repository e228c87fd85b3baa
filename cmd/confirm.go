package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"fancylink/pkg/errors"

	"github.com/fatih/color"
)

const (
	responseYes = "yes"
	responseY   = "y"
)

// promptInput is where confirmations are read from.
var promptInput io.Reader = os.Stdin

// ConfirmPrompt asks the user for confirmation
func ConfirmPrompt(message string) (bool, error) {
	if assumeYesFlag {
		return true, nil
	}

	yellow := color.New(color.FgYellow)
	_, _ = yellow.Fprintf(os.Stderr, "%s [y/N]: ", message)

	reader := bufio.NewReader(promptInput)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == responseY || response == responseYes, nil
}

// RequireConfirmation returns a cancellation error unless the user agrees.
func RequireConfirmation(action string) error {
	confirmed, err := ConfirmPrompt(fmt.Sprintf("%s. Do you want to continue", action))
	if err != nil {
		return err
	}
	if !confirmed {
		return errors.CancelledError(action)
	}
	return nil
}

// notifyf prints a green status line to stderr.
func notifyf(format string, args ...interface{}) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(os.Stderr, format+"\n", args...)
}
