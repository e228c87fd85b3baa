package formats

import (
	"strings"
	"unicode"
)

var (
	markdownReplacer = strings.NewReplacer(
		`\`, `\\`,
		`[`, `\[`,
		`]`, `\]`,
		`(`, `\(`,
		`)`, `\)`,
	)

	htmlReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)

	slackReplacer = strings.NewReplacer(
		"<", "",
		">", "",
		"|", "",
		"[", "",
		"]", "",
	)

	urlParamReplacer = strings.NewReplacer(
		"&", "%26",
		"=", "%3D",
		"+", "%2B",
		"#", "%23",
		"%", "%25",
	)

	// strings.Replacer scans left to right without rescanning output, so the
	// backslashes it inserts are never escaped a second time.
	rtfReplacer = strings.NewReplacer(
		`\`, `\\`,
		`{`, `\{`,
		`}`, `\}`,
	)
)

// SanitizeMarkdown backslash-escapes the characters that can open or close a
// Markdown link: square brackets, parentheses and the backslash itself.
func SanitizeMarkdown(text string) string {
	return markdownReplacer.Replace(text)
}

// SanitizeHTML replaces &, <, >, " and ' with their entities.
func SanitizeHTML(text string) string {
	return htmlReplacer.Replace(text)
}

// SanitizeSlack deletes the characters that break Slack's <url|label> syntax.
// Slack has no escape mechanism for them.
func SanitizeSlack(text string) string {
	return slackReplacer.Replace(text)
}

// SanitizeURLParam makes text safe to embed as a query parameter value while
// keeping it readable: each run of whitespace becomes a single underscore and
// only the characters that would corrupt the query structure are
// percent-encoded.
func SanitizeURLParam(text string) string {
	return urlParamReplacer.Replace(underscoreWhitespace(text))
}

// SanitizeRTF escapes RTF control characters.
func SanitizeRTF(text string) string {
	return rtfReplacer.Replace(text)
}

func underscoreWhitespace(text string) string {
	if strings.IndexFunc(text, unicode.IsSpace) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	inSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
