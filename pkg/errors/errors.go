package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fancylink/pkg/logger"

	"github.com/fatih/color"
)

type ExitCode int

const (
	ExitCodeSuccess       ExitCode = 0
	ExitCodeGeneral       ExitCode = 1
	ExitCodeConfig        ExitCode = 2
	ExitCodeValidation    ExitCode = 3
	ExitCodeUnknownFormat ExitCode = 4
	ExitCodeClipboard     ExitCode = 5
	ExitCodeFileOperation ExitCode = 6
	ExitCodeCancellation  ExitCode = 7
)

// Standardized error messages for consistent user-facing errors
const (
	ErrMsgUnsupportedURL = "Cannot copy this type of URL"
	ErrMsgEmptyURL       = "No URL to copy"
	ErrMsgClipboard      = "Failed to copy link"
	ErrMsgClipboardRead  = "Failed to read clipboard"
	ErrMsgNoLinkFound    = "No link found on the clipboard"
)

type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func New(code ExitCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewWithError(code ExitCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

func NewWithSuggestion(code ExitCode, message string, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if wrapped, ok := err.(*Error); ok {
		return &Error{
			Code:       wrapped.Code,
			Message:    message + ": " + wrapped.Message,
			Underlying: wrapped.Underlying,
			Suggestion: wrapped.Suggestion,
		}
	}

	return &Error{
		Code:       ExitCodeGeneral,
		Message:    message,
		Underlying: err,
	}
}

func WrapWithCode(err error, code ExitCode, message string) *Error {
	if err == nil {
		return nil
	}

	var errMsg string
	if wrapped, ok := err.(*Error); ok {
		errMsg = wrapped.Message
		if wrapped.Underlying != nil {
			errMsg += ": " + wrapped.Underlying.Error()
		}
	} else {
		errMsg = err.Error()
	}

	return &Error{
		Code:       code,
		Message:    message + ": " + errMsg,
		Underlying: err,
	}
}

func IsExitCode(err error, code ExitCode) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(*Error); ok {
		return e.Code == code
	}

	return false
}

// HandleReturn logs err, prints it to stderr and returns the exit code the
// process should end with. The caller is responsible for exiting.
func HandleReturn(err error) ExitCode {
	return HandleTo(os.Stderr, err)
}

// HandleTo is HandleReturn with an explicit destination for the rendered message.
func HandleTo(w io.Writer, err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}

	exitCode := ExitCodeGeneral
	message := err.Error()
	var suggestion string

	if e, ok := err.(*Error); ok {
		exitCode = e.Code
		message = e.Message
		suggestion = e.Suggestion

		if e.Underlying != nil {
			logger.Error().Err(e.Underlying).Int("exit_code", int(exitCode)).Msg(e.Message)
			message = e.Error()
		} else {
			logger.Error().Int("exit_code", int(exitCode)).Msg(e.Message)
		}
	} else {
		logger.Error().Msg(message)
	}

	render(w, message, suggestion)
	return exitCode
}

func render(w io.Writer, message, suggestion string) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, message)

	if suggestion != "" {
		yellow.Fprint(w, "Suggestion: ")
		for i, line := range strings.Split(strings.TrimRight(suggestion, "\n"), "\n") {
			switch {
			case i == 0:
				fmt.Fprintln(w, line)
			case strings.HasPrefix(line, "  -"):
				cyan.Fprintln(w, line)
			default:
				fmt.Fprintln(w, "            "+line)
			}
		}
	}

	fmt.Fprintln(w)
}

func ConfigError(message string) *Error {
	return &Error{
		Code:       ExitCodeConfig,
		Message:    message,
		Suggestion: "Check ~/.config/fancylink/config.yaml or the FANCYLINK_* environment variables.",
	}
}

func ValidationError(message string) *Error {
	return &Error{
		Code:    ExitCodeValidation,
		Message: message,
	}
}

// UnknownFormatError reports a format key missing from the registry, listing
// close matches when there are any.
func UnknownFormatError(key string, similar []string) *Error {
	suggestion := "Use 'fancylink formats' to list available formats."
	if len(similar) > 0 {
		suggestion = "Did you mean:\n"
		for _, s := range similar {
			suggestion += fmt.Sprintf("  - %s\n", s)
		}
		suggestion += "\nOr use 'fancylink formats' to see all formats."
	}
	return &Error{
		Code:       ExitCodeUnknownFormat,
		Message:    fmt.Sprintf("Unknown format: %s", key),
		Suggestion: suggestion,
	}
}

func UnsupportedURLError(url string) *Error {
	return &Error{
		Code:       ExitCodeValidation,
		Message:    fmt.Sprintf("%s: %s", ErrMsgUnsupportedURL, url),
		Suggestion: "Only web pages can be copied; browser-internal pages are skipped.",
	}
}

func ClipboardError(err error) *Error {
	return &Error{
		Code:       ExitCodeClipboard,
		Message:    ErrMsgClipboard,
		Underlying: err,
		Suggestion: "Use --no-copy to print the link instead, or install xclip, xsel or wl-clipboard.",
	}
}

func CancelledError(operation string) *Error {
	return &Error{
		Code:       ExitCodeCancellation,
		Message:    fmt.Sprintf("Operation cancelled: %s", operation),
		Suggestion: "The operation was interrupted. No changes were made.",
	}
}
