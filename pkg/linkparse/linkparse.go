// Package linkparse recovers a title and URL from text that already holds a
// link, such as the output of a previous copy.
package linkparse

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"fancylink/pkg/formats"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// Link is a title/URL pair. Title may be empty.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

var (
	// The destination may hold one level of balanced parentheses, as in
	// https://en.wikipedia.org/wiki/Go_(programming_language).
	markdownLink = regexp.MustCompile(`\[((?:\\.|[^\]\\])*)\]\(((?:[^()\s]|\([^()\s]*\))+)\)`)
	slackLink    = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9+.-]*:[^|>\s]+)(?:\|([^>]*))?>`)
	rtfHyperlink = regexp.MustCompile(`HYPERLINK "([^"]+)"`)
	rtfLabel     = regexp.MustCompile(`\\fldrslt \{\\ul\\cf1 ((?:\\.|[^}\\])*)\}`)
	anchorHref   = regexp.MustCompile(`(?is)<a\s[^>]*?\bhref\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	rtfUnit      = regexp.MustCompile(`^\\u(-?\d+)\?`)
	escaped      = regexp.MustCompile(`\\(.)`)
)

// Parse extracts the first link it recognises in text. It understands every
// built-in output format plus bare URLs and HTML anchors.
func Parse(text string) (Link, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Link{}, false
	}

	switch {
	case strings.HasPrefix(text, `{\rtf`):
		return parseRTF(text)
	case anchorHref.MatchString(text):
		return parseHTML(text)
	}

	if l, ok := parseMarkdown(text); ok {
		return l, true
	}
	if l, ok := parseSlack(text); ok {
		return l, true
	}
	if l, ok := parsePlainText(text); ok {
		return l, true
	}
	return parseBareURL(text)
}

func parseMarkdown(text string) (Link, bool) {
	m := markdownLink.FindStringSubmatch(text)
	if m == nil || !isURL(m[2]) {
		return Link{}, false
	}
	return Link{Title: unescape(m[1]), URL: m[2]}, true
}

func parseSlack(text string) (Link, bool) {
	m := slackLink.FindStringSubmatch(text)
	if m == nil || !isURL(m[1]) {
		return Link{}, false
	}
	return Link{Title: m[2], URL: m[1]}, true
}

func parseRTF(text string) (Link, bool) {
	m := rtfHyperlink.FindStringSubmatch(text)
	if m == nil {
		return Link{}, false
	}
	l := Link{URL: decodeRTF(m[1])}
	if label := rtfLabel.FindStringSubmatch(text); label != nil {
		l.Title = decodeRTF(label[1])
	}
	return l, isURL(l.URL)
}

// decodeRTF reverses the rtf escaping: \\, \{, \} and runs of \uN? code units.
func decodeRTF(s string) string {
	var b strings.Builder
	var units []uint16
	flush := func() {
		if len(units) > 0 {
			b.WriteString(string(utf16.Decode(units)))
			units = units[:0]
		}
	}

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			flush()
			b.WriteByte(s[i])
			continue
		}
		if m := rtfUnit.FindStringSubmatch(s[i:]); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 32); err == nil {
				units = append(units, uint16(n))
				i += len(m[0]) - 1
				continue
			}
		}
		flush()
		b.WriteByte(s[i+1])
		i++
	}
	flush()
	return b.String()
}

// parseHTML takes the URL from the first anchor's href and the title from the
// anchor converted to Markdown, so nested markup is flattened.
func parseHTML(text string) (Link, bool) {
	m := anchorHref.FindStringSubmatch(text)
	if m == nil {
		return Link{}, false
	}
	l := Link{URL: strings.TrimSpace(html.UnescapeString(m[1] + m[2]))}
	if !isURL(l.URL) {
		return Link{}, false
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	markdown, err := conv.ConvertString(text)
	if err != nil {
		return l, true
	}
	if md, ok := parseMarkdown(markdown); ok {
		// The converter keeps < and > as entities in link text.
		l.Title = html.UnescapeString(md.Title)
	}
	return l, true
}

// parsePlainText splits "Title - URL" on the last separator.
func parsePlainText(text string) (Link, bool) {
	i := strings.LastIndex(text, " - ")
	if i < 0 {
		return Link{}, false
	}
	u := strings.TrimSpace(text[i+3:])
	if strings.ContainsAny(u, " \t\n") || !isURL(u) {
		return Link{}, false
	}
	return Link{Title: strings.TrimSpace(text[:i]), URL: u}, true
}

// parseBareURL accepts a single URL. A urlparams title is moved back out of
// the query.
func parseBareURL(text string) (Link, bool) {
	if strings.ContainsAny(text, " \t\n") || !isURL(text) {
		return Link{}, false
	}
	marker := formats.TitleParam + "="
	i := strings.LastIndex(text, marker)
	if i <= 0 || (text[i-1] != '?' && text[i-1] != '&') {
		return Link{URL: text}, true
	}

	raw := text[i+len(marker):]
	title, err := url.PathUnescape(raw)
	if err != nil {
		title = raw
	}
	return Link{
		Title: strings.ReplaceAll(title, "_", " "),
		URL:   text[:i-1],
	}, true
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func unescape(s string) string {
	return escaped.ReplaceAllString(s, "$1")
}
