package copier

import (
	"context"
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"fancylink/pkg/clipboard"
	"fancylink/pkg/errors"
	"fancylink/pkg/formats"
)

type fakeClipboard struct {
	text    string
	flavors clipboard.Flavors
	writes  int
	err     error
}

func (f *fakeClipboard) WriteText(text string) error {
	f.writes++
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func (f *fakeClipboard) WriteMultiFormat(flavors clipboard.Flavors) error {
	f.writes++
	if f.err != nil {
		return f.err
	}
	f.flavors = flavors
	return nil
}

func newTestCopier(cb *fakeClipboard, opts ...Option) *Copier {
	opts = append([]Option{WithRequestIDs(func() string { return "req-1" })}, opts...)
	return New(formats.Default(), cb, opts...)
}

func TestCopy(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Result
	}{
		{
			name: "explicit format",
			req:  Request{Title: "Example", URL: "https://example.com", Format: "slack"},
			want: Result{Format: "slack", Text: "<https://example.com|Example>", URL: "https://example.com", RequestID: "req-1"},
		},
		{
			name: "default format",
			req:  Request{Title: "Example", URL: "https://example.com"},
			want: Result{Format: "markdown", Text: "[Example](https://example.com)", URL: "https://example.com", RequestID: "req-1"},
		},
		{
			name: "cleaned",
			req:  Request{Title: "Example", URL: "https://example.com/?utm_source=x&id=1", Format: "plaintext", CleanURL: true},
			want: Result{Format: "plaintext", Text: "Example - https://example.com/?id=1", URL: "https://example.com/?id=1", Cleaned: true, RequestID: "req-1"},
		},
		{
			name: "clean requested but nothing to strip",
			req:  Request{Title: "Example", URL: "https://example.com/?id=1", Format: "plaintext", CleanURL: true},
			want: Result{Format: "plaintext", Text: "Example - https://example.com/?id=1", URL: "https://example.com/?id=1", RequestID: "req-1"},
		},
		{
			name: "tracking params kept without clean",
			req:  Request{Title: "", URL: "https://example.com/?utm_source=x", Format: "html"},
			want: Result{Format: "html", Text: `<a href="https://example.com/?utm_source=x">https://example.com/?utm_source=x</a>`, URL: "https://example.com/?utm_source=x", RequestID: "req-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := &fakeClipboard{}
			got, err := newTestCopier(cb).Copy(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Copy() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Copy() = %+v, want %+v", got, tt.want)
			}
			if cb.text != tt.want.Text || cb.flavors != nil {
				t.Errorf("clipboard text = %q, flavors = %v", cb.text, cb.flavors)
			}
		})
	}
}

func TestCopyUsesConfiguredDefault(t *testing.T) {
	cb := &fakeClipboard{}
	got, err := newTestCopier(cb, WithDefaultFormat("urlparams")).Copy(context.Background(),
		Request{Title: "Page Title", URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if got.Text != "https://example.com?_title=Page_Title" {
		t.Errorf("Text = %q", got.Text)
	}
}

func TestCopyRTFWritesPlainAlternative(t *testing.T) {
	cb := &fakeClipboard{}
	got, err := newTestCopier(cb).Copy(context.Background(),
		Request{Title: "Example", URL: "https://example.com", Format: "rtf"})
	if err != nil {
		t.Fatalf("Copy() error: %v", err)
	}

	if cb.text != "" {
		t.Errorf("rich format also written as plain text: %q", cb.text)
	}
	want := clipboard.Flavors{
		"text/rtf":   []byte(got.Text),
		"text/plain": []byte("Example - https://example.com"),
	}
	if !reflect.DeepEqual(cb.flavors, want) {
		t.Errorf("flavors = %v, want %v", cb.flavors, want)
	}
	if !strings.HasPrefix(got.Text, `{\rtf1`) {
		t.Errorf("Text = %q", got.Text)
	}
}

func TestCopyRejectsURLs(t *testing.T) {
	for _, url := range []string{"", "  ", "about:blank", "chrome://settings", "moz-extension://abc/popup.html", "Chrome-Extension://x", "edge://flags"} {
		t.Run(url, func(t *testing.T) {
			cb := &fakeClipboard{}
			_, err := newTestCopier(cb).Copy(context.Background(), Request{Title: "x", URL: url})
			if !errors.IsExitCode(err, errors.ExitCodeValidation) {
				t.Fatalf("Copy(%q) error = %v, want validation error", url, err)
			}
			if !strings.HasPrefix(err.Error(), "Cannot copy this type of URL") {
				t.Errorf("Error() = %q", err.Error())
			}
			if cb.writes != 0 {
				t.Error("clipboard written for rejected URL")
			}
		})
	}
}

func TestCopyUnknownFormatHasNoFallback(t *testing.T) {
	cb := &fakeClipboard{}
	_, err := newTestCopier(cb).Copy(context.Background(),
		Request{Title: "x", URL: "https://example.com", Format: "markdwn"})
	if !errors.IsExitCode(err, errors.ExitCodeUnknownFormat) {
		t.Fatalf("error = %v, want unknown format", err)
	}
	if err.Error() != "Unknown format: markdwn" {
		t.Errorf("Error() = %q", err.Error())
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || !strings.Contains(e.Suggestion, "markdown") {
		t.Errorf("expected markdown suggestion, got %+v", e)
	}
	if cb.writes != 0 {
		t.Error("clipboard written for unknown format")
	}
}

func TestCopyClipboardFailure(t *testing.T) {
	cb := &fakeClipboard{err: stderrors.New("no clipboard utilities available")}
	_, err := newTestCopier(cb).Copy(context.Background(),
		Request{Title: "x", URL: "https://example.com"})
	if !errors.IsExitCode(err, errors.ExitCodeClipboard) {
		t.Fatalf("error = %v, want clipboard error", err)
	}
	if !stderrors.Is(err, cb.err) {
		t.Error("clipboard error does not wrap the cause")
	}
}

func TestCopyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cb := &fakeClipboard{}
	_, err := newTestCopier(cb).Copy(ctx, Request{Title: "x", URL: "https://example.com"})
	if !errors.IsExitCode(err, errors.ExitCodeCancellation) {
		t.Fatalf("error = %v, want cancellation", err)
	}
	if cb.writes != 0 {
		t.Error("clipboard written after cancellation")
	}
}

func TestRenderDoesNotTouchClipboard(t *testing.T) {
	cb := &fakeClipboard{}
	got, err := newTestCopier(cb).Render(Request{Title: "a|b", URL: "https://example.com", Format: "slack"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got.Text != "<https://example.com|ab>" {
		t.Errorf("Text = %q", got.Text)
	}
	if cb.writes != 0 {
		t.Error("Render() wrote to the clipboard")
	}
}

func TestRequestIDs(t *testing.T) {
	c := New(formats.Default(), &fakeClipboard{})
	a, _ := c.Render(Request{URL: "https://example.com"})
	b, _ := c.Render(Request{URL: "https://example.com"})
	if a.RequestID == "" || a.RequestID == b.RequestID {
		t.Errorf("request IDs %q and %q", a.RequestID, b.RequestID)
	}
}

func TestSuggest(t *testing.T) {
	keys := formats.Default().Keys()
	tests := []struct {
		key  string
		want []string
	}{
		{"mark", []string{"markdown"}},
		{"slak", []string{"slack"}},
		{"markdown-link", []string{"markdown"}},
		{"markdwon", []string{"markdown"}},
		{"bbcode", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Suggest(tt.key, keys); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Suggest(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
