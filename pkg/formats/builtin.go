package formats

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// Built-in format keys.
const (
	KeySlack     = "slack"
	KeyMarkdown  = "markdown"
	KeyHTML      = "html"
	KeyPlainText = "plaintext"
	KeyRTF       = "rtf"
	KeyURLParams = "urlparams"
)

// TitleParam is the query parameter the urlparams format appends. The leading
// underscore keeps it clear of parameters the target site defines.
const TitleParam = "_title"

var defaultRegistry = MustNewRegistry(Builtins()...)

// Default returns the registry of built-in formats. It is built once at
// package initialisation and never modified.
func Default() *Registry {
	return defaultRegistry
}

// Builtins returns fresh copies of the six built-in formats in display order.
func Builtins() []Format {
	return []Format{
		New(KeySlack, "Slack", "Slack-compatible link format",
			"<https://example.com|Page Title>", MIMEPlain, nil, formatSlack),
		New(KeyMarkdown, "Markdown", "Markdown link format",
			"[Page Title](https://example.com)", MIMEPlain,
			[]string{"Discord", "Reddit", "GitHub", "Notion"}, formatMarkdown),
		New(KeyHTML, "HTML", "HTML anchor tag",
			`<a href="https://example.com">Page Title</a>`, MIMEPlain, nil, formatHTML),
		New(KeyPlainText, "Plain Text", "Simple text format",
			"Page Title - https://example.com", MIMEPlain, nil, formatPlainText),
		New(KeyRTF, "RTF", "Rich Text Format",
			"For Word/Outlook compatibility", MIMERTF,
			[]string{"Microsoft Word", "Outlook"}, formatRTF),
		New(KeyURLParams, "URL + Title", "URL with title as parameter",
			"https://example.com?_title=Page_Title", MIMEPlain, nil, formatURLParams),
	}
}

// displayText is the capped link label: the title, or the URL when the title
// is empty.
func displayText(title, url string) string {
	if title == "" {
		title = url
	}
	return Truncate(title, MaxDisplayLength)
}

func formatMarkdown(title, url string) string {
	return "[" + SanitizeMarkdown(displayText(title, url)) + "](" + url + ")"
}

func formatSlack(title, url string) string {
	return "<" + url + "|" + SanitizeSlack(displayText(title, url)) + ">"
}

func formatHTML(title, url string) string {
	return `<a href="` + SanitizeHTML(url) + `">` + SanitizeHTML(displayText(title, url)) + "</a>"
}

func formatPlainText(title, url string) string {
	return displayText(title, url) + " - " + url
}

func formatRTF(title, url string) string {
	return fmt.Sprintf(
		`{\rtf1\ansi\deff0 {\fonttbl {\f0 Times New Roman;}} {\field {\*\fldinst HYPERLINK "%s"} {\fldrslt {\ul\cf1 %s}}}}`,
		rtfUnicode(SanitizeRTF(url)), rtfUnicode(SanitizeRTF(displayText(title, url))),
	)
}

// rtfUnicode writes runes outside ASCII as \uN? control words. N is the signed
// UTF-16 code unit and "?" the fallback for readers without Unicode support.
func rtfUnicode(text string) string {
	i := strings.IndexFunc(text, func(r rune) bool { return r > 0x7F })
	if i < 0 {
		return text
	}

	var b strings.Builder
	b.WriteString(text[:i])
	for _, r := range text[i:] {
		if r <= 0x7F {
			b.WriteRune(r)
			continue
		}
		for _, u := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&b, `\u%d?`, int16(u))
		}
	}
	return b.String()
}

func formatURLParams(title, url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + TitleParam + "=" + SanitizeURLParam(displayText(title, url))
}
