// Package clipboard writes formatted links to the system clipboard.
//
// Plain formats go through atotto/clipboard. Rich formats (RTF) are offered
// under several MIME types at once: on Linux/Wayland the binary re-executes
// itself as a small selection owner that serves every flavour until another
// client takes the clipboard, so word processors paste a hyperlink while text
// editors get readable plain text. Other platforms fall back to plain text.
package clipboard

import (
	"sort"

	atotto "github.com/atotto/clipboard"
)

// MIME types written alongside the plain-text flavour.
const (
	MIMEPlain = "text/plain"
	MIMERTF   = "text/rtf"
)

// ServeCommand is the hidden subcommand the Wayland selection owner runs as.
const ServeCommand = "__clipboard-serve"

// Flavors maps a MIME type to the bytes offered for it.
type Flavors map[string][]byte

// Plain returns the text/plain flavour.
func (f Flavors) Plain() string {
	return string(f[MIMEPlain])
}

// Types returns the offered MIME types, sorted.
func (f Flavors) Types() []string {
	types := make([]string, 0, len(f))
	for t := range f {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// withPlainAliases adds the legacy X11/Wayland names plain-text clients ask for.
func (f Flavors) withPlainAliases() Flavors {
	out := make(Flavors, len(f)+4)
	for k, v := range f {
		out[k] = v
	}
	plain := f[MIMEPlain]
	for _, alias := range []string{"text/plain;charset=utf-8", "UTF8_STRING", "STRING", "TEXT"} {
		if _, ok := out[alias]; !ok {
			out[alias] = plain
		}
	}
	return out
}

// Writer is a clipboard backend.
type Writer interface {
	WriteText(text string) error
	WriteMultiFormat(flavors Flavors) error
}

// System is the real system clipboard.
type System struct{}

// WriteText copies text as plain text.
func (System) WriteText(text string) error {
	return atotto.WriteAll(text)
}

// WriteMultiFormat offers every flavour where the platform supports it and
// the plain-text flavour otherwise.
func (System) WriteMultiFormat(flavors Flavors) error {
	return writeMultiFormat(flavors)
}

// ReadText returns the clipboard's plain-text contents.
func ReadText() (string, error) {
	return atotto.ReadAll()
}
