// Package diagnostics builds bug reports: a Markdown system-information block
// and a prefilled GitHub new-issue URL.
package diagnostics

import (
	"fmt"
	"net/url"
	"runtime"
	"strings"

	"fancylink/pkg/config"
)

// IssuesURL is where new bug reports are filed.
const IssuesURL = "https://github.com/evanwon/fancy-links/issues/new"

// Page is the link the user was working with. It is only reported when the
// user opted in.
type Page struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

type Diagnostics struct {
	Version   string          `json:"version" yaml:"version"`
	OS        string          `json:"os" yaml:"os"`
	Arch      string          `json:"arch" yaml:"arch"`
	GoVersion string          `json:"go_version" yaml:"go_version"`
	Settings  config.Settings `json:"settings" yaml:"settings"`
	Page      *Page           `json:"current_page,omitempty" yaml:"current_page,omitempty"`
}

// Collect gathers diagnostics. page is dropped unless the settings allow
// including it.
func Collect(s config.Settings, version string, page *Page) Diagnostics {
	d := Diagnostics{
		Version:   version,
		OS:        osName(runtime.GOOS),
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		Settings:  s,
	}
	if s.IncludeCurrentPageInBugReports && page != nil {
		p := *page
		d.Page = &p
	}
	return d
}

func osName(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	default:
		return goos
	}
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// Markdown renders d for a GitHub issue.
func Markdown(d Diagnostics) string {
	var b strings.Builder

	b.WriteString("## System Information\n")
	fmt.Fprintf(&b, "- **Version**: %s\n", d.Version)
	fmt.Fprintf(&b, "- **OS**: %s (%s)\n", d.OS, d.Arch)
	fmt.Fprintf(&b, "- **Go**: %s\n", d.GoVersion)
	fmt.Fprintf(&b, "- **Settings**: Default format: %s, Clean URLs: %s, Debug mode: %s, Notifications: %s\n",
		d.Settings.DefaultFormat,
		enabled(d.Settings.CleanURLs),
		enabled(d.Settings.DebugMode),
		enabled(d.Settings.ShowNotifications))

	if d.Page != nil {
		b.WriteString("\n## Current Page Information\n")
		fmt.Fprintf(&b, "- **URL**: %s\n", d.Page.URL)
		fmt.Fprintf(&b, "- **Title**: %s\n", d.Page.Title)
	}

	return b.String()
}

// Title is the prefilled issue title.
func Title(d Diagnostics) string {
	return fmt.Sprintf("Bug report v%s: [Describe your issue briefly]", d.Version)
}

// Body is the prefilled issue body with the diagnostics embedded.
func Body(d Diagnostics) string {
	return `## Problem Description
[Please describe what happened and what you expected to happen]

## Steps to Reproduce
1. [First step]
2. [Second step]
3. [etc.]

` + Markdown(d) + `
## Additional Context
[Add any other context about the problem here]`
}

// IssueURL returns the new-issue URL with title, body and the bug label set.
func IssueURL(d Diagnostics) string {
	params := url.Values{}
	params.Set("title", Title(d))
	params.Set("body", Body(d))
	params.Set("labels", "bug")
	return IssuesURL + "?" + params.Encode()
}
