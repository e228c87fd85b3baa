// Package formats is the single source of truth for the link formats fancylink
// can produce. Every consumer (the copy command, the formats listing, shell
// completion, settings validation) reads from the same Registry.
package formats

import (
	"fmt"
	"slices"
	"strings"
)

// MIME types a rendered link can be offered as on the clipboard.
const (
	MIMEPlain = "text/plain"
	MIMERTF   = "text/rtf"
)

// Formatter renders a link label and URL into a single string. Formatters are
// pure: no side effects and no dependency on ambient state.
type Formatter func(title, url string) string

// Format describes one output format.
type Format struct {
	Key         string   `json:"key" yaml:"key"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Example     string   `json:"example" yaml:"example"`
	WorksWith   []string `json:"works_with" yaml:"works_with"`
	MIMEType    string   `json:"mime_type" yaml:"mime_type"`

	format Formatter
}

// New builds a Format around fn. mimeType defaults to MIMEPlain when empty.
func New(key, name, description, example, mimeType string, worksWith []string, fn Formatter) Format {
	if mimeType == "" {
		mimeType = MIMEPlain
	}
	if worksWith == nil {
		worksWith = []string{}
	}
	return Format{
		Key:         key,
		Name:        name,
		Description: description,
		Example:     example,
		WorksWith:   slices.Clone(worksWith),
		MIMEType:    mimeType,
		format:      fn,
	}
}

// Apply renders title and url. An empty title falls back to the URL.
func (f Format) Apply(title, url string) string {
	if f.format == nil {
		return ""
	}
	return f.format(title, url)
}

// IsRich reports whether the format is offered as something other than plain text.
func (f Format) IsRich() bool {
	return f.MIMEType != MIMEPlain
}

func (f Format) clone() Format {
	f.WorksWith = slices.Clone(f.WorksWith)
	return f
}

// Registry is an insertion-ordered, read-only set of formats.
type Registry struct {
	keys  []string
	byKey map[string]Format
}

// NewRegistry returns a registry holding formats in the given order. Keys must
// be non-empty and unique and every format needs a formatter.
func NewRegistry(formats ...Format) (*Registry, error) {
	r := &Registry{
		keys:  make([]string, 0, len(formats)),
		byKey: make(map[string]Format, len(formats)),
	}
	for _, f := range formats {
		if strings.TrimSpace(f.Key) == "" {
			return nil, fmt.Errorf("format %q: empty key", f.Name)
		}
		if f.format == nil {
			return nil, fmt.Errorf("format %q: missing formatter", f.Key)
		}
		if _, dup := r.byKey[f.Key]; dup {
			return nil, fmt.Errorf("format %q registered twice", f.Key)
		}
		r.keys = append(r.keys, f.Key)
		r.byKey[f.Key] = f.clone()
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(formats ...Format) *Registry {
	r, err := NewRegistry(formats...)
	if err != nil {
		panic(err)
	}
	return r
}

// Keys returns the format keys in registration order.
func (r *Registry) Keys() []string {
	return slices.Clone(r.keys)
}

// Get returns the format registered under key. The second result is false
// when no such format exists; callers decide what a miss means.
func (r *Registry) Get(key string) (Format, bool) {
	f, ok := r.byKey[key]
	if !ok {
		return Format{}, false
	}
	return f.clone(), true
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// All returns every format in registration order.
func (r *Registry) All() []Format {
	out := make([]Format, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.byKey[k].clone())
	}
	return out
}

// Len returns the number of registered formats.
func (r *Registry) Len() int {
	return len(r.keys)
}

// WorksWithText returns prefix followed by the comma-separated WorksWith list
// of key, or "" when the key is unknown or the list is empty.
func (r *Registry) WorksWithText(key, prefix string) string {
	f, ok := r.byKey[key]
	if !ok || len(f.WorksWith) == 0 {
		return ""
	}
	return prefix + strings.Join(f.WorksWith, ", ")
}
