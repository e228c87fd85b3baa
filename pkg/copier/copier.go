// Package copier turns a page title and URL into a formatted link and puts it
// on the clipboard.
package copier

import (
	"context"
	"strings"

	"fancylink/pkg/cleanurl"
	"fancylink/pkg/clipboard"
	"fancylink/pkg/errors"
	"fancylink/pkg/filter"
	"fancylink/pkg/formats"
	"fancylink/pkg/logger"

	"github.com/google/uuid"
)

// maxSuggestions caps the "did you mean" list for unknown formats.
const maxSuggestions = 3

// internalSchemes are browser pages that have no shareable URL.
var internalSchemes = []string{"about:", "chrome:", "chrome-extension:", "moz-extension:", "edge:"}

// Request describes one copy.
type Request struct {
	Title string
	URL   string
	// Format is a registry key. Empty means the configured default.
	Format   string
	CleanURL bool
}

// Result is what was (or would be) copied.
type Result struct {
	Format    string `json:"format"`
	Text      string `json:"text"`
	URL       string `json:"url"`
	Cleaned   bool   `json:"cleaned"`
	RequestID string `json:"request_id"`
}

type Copier struct {
	registry      *formats.Registry
	clipboard     clipboard.Writer
	defaultFormat string
	newID         func() string
}

type Option func(*Copier)

// WithDefaultFormat sets the key used when a request names no format.
func WithDefaultFormat(key string) Option {
	return func(c *Copier) {
		c.defaultFormat = key
	}
}

// WithRequestIDs replaces the UUID generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *Copier) {
		c.newID = fn
	}
}

func New(registry *formats.Registry, w clipboard.Writer, opts ...Option) *Copier {
	c := &Copier{
		registry:      registry,
		clipboard:     w,
		defaultFormat: formats.KeyMarkdown,
		newID:         func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy renders req and writes it to the clipboard. Rich formats are written
// together with the plain-text rendering of the same link.
func (c *Copier) Copy(ctx context.Context, req Request) (Result, error) {
	res, f, err := c.render(req)
	if err != nil {
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return res, errors.CancelledError("copy link")
	}

	log := logger.GetLogger().With().Str("request_id", res.RequestID).Str("format", res.Format).Logger()

	if f.IsRich() {
		flavors := clipboard.Flavors{
			f.MIMEType:          []byte(res.Text),
			clipboard.MIMEPlain: []byte(c.plainAlternative(req.Title, res.URL)),
		}
		if err := c.clipboard.WriteMultiFormat(flavors); err != nil {
			log.Error().Err(err).Strs("types", flavors.Types()).Msg("clipboard write failed")
			return res, errors.ClipboardError(err)
		}
	} else if err := c.clipboard.WriteText(res.Text); err != nil {
		log.Error().Err(err).Msg("clipboard write failed")
		return res, errors.ClipboardError(err)
	}

	log.Info().Bool("cleaned", res.Cleaned).Int("length", len(res.Text)).Msg("link copied")
	return res, nil
}

// Render does everything Copy does except touch the clipboard.
func (c *Copier) Render(req Request) (Result, error) {
	res, _, err := c.render(req)
	return res, err
}

func (c *Copier) render(req Request) (Result, formats.Format, error) {
	res := Result{RequestID: c.newID()}
	log := logger.GetLogger().With().Str("request_id", res.RequestID).Logger()

	if err := ValidateURL(req.URL); err != nil {
		log.Debug().Str("url", req.URL).Msg("url rejected")
		return res, formats.Format{}, err
	}

	f, err := c.resolve(req.Format)
	if err != nil {
		log.Debug().Str("format", req.Format).Msg("unknown format")
		return res, formats.Format{}, err
	}
	res.Format = f.Key

	res.URL = req.URL
	if req.CleanURL {
		res.URL = cleanurl.Clean(req.URL)
		res.Cleaned = res.URL != req.URL
	}

	res.Text = f.Apply(req.Title, res.URL)
	log.Debug().Str("format", f.Key).Bool("cleaned", res.Cleaned).Msg("link rendered")
	return res, f, nil
}

func (c *Copier) resolve(key string) (formats.Format, error) {
	if key == "" {
		key = c.defaultFormat
	}
	if f, ok := c.registry.Get(key); ok {
		return f, nil
	}
	return formats.Format{}, errors.UnknownFormatError(key, Suggest(key, c.registry.Keys()))
}

func (c *Copier) plainAlternative(title, url string) string {
	if f, ok := c.registry.Get(formats.KeyPlainText); ok {
		return f.Apply(title, url)
	}
	return url
}

// ValidateURL rejects empty and browser-internal URLs.
func ValidateURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return errors.NewWithSuggestion(errors.ExitCodeValidation, errors.ErrMsgUnsupportedURL,
			errors.ErrMsgEmptyURL+". Pass the page URL as an argument or use --from-clipboard.")
	}
	lower := strings.ToLower(url)
	for _, scheme := range internalSchemes {
		if strings.HasPrefix(lower, scheme) {
			return errors.UnsupportedURLError(url)
		}
	}
	return nil
}

// Suggest returns up to three keys that look like what key meant.
func Suggest(key string, keys []string) []string {
	return filter.Similar(key, keys, maxSuggestions)
}
