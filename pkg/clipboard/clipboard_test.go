package clipboard

import (
	"reflect"
	"strings"
	"testing"
)

func TestFlavorsTypes(t *testing.T) {
	f := Flavors{MIMERTF: []byte("{\\rtf1}"), MIMEPlain: []byte("x")}
	want := []string{MIMEPlain, MIMERTF}
	if got := f.Types(); !reflect.DeepEqual(got, want) {
		t.Errorf("Types() = %v, want %v", got, want)
	}
	if f.Plain() != "x" {
		t.Errorf("Plain() = %q", f.Plain())
	}
}

func TestWithPlainAliases(t *testing.T) {
	f := Flavors{
		MIMEPlain: []byte("Example - https://example.com"),
		MIMERTF:   []byte("{\\rtf1}"),
		"STRING":  []byte("kept"),
	}
	got := f.withPlainAliases()

	if string(got["UTF8_STRING"]) != "Example - https://example.com" {
		t.Errorf("UTF8_STRING = %q", got["UTF8_STRING"])
	}
	if string(got["STRING"]) != "kept" {
		t.Errorf("existing flavour overwritten: %q", got["STRING"])
	}
	if _, ok := f["UTF8_STRING"]; ok {
		t.Error("withPlainAliases modified its receiver")
	}
}

func TestPayload(t *testing.T) {
	f := Flavors{MIMEPlain: []byte("a"), MIMERTF: []byte("{\\rtf1 \\u233?}")}
	data, err := EncodePayload(f)
	if err != nil {
		t.Fatalf("EncodePayload() error: %v", err)
	}

	back, err := DecodePayload(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("DecodePayload() error: %v", err)
	}
	if !reflect.DeepEqual(back, f) {
		t.Errorf("DecodePayload() = %v, want %v", back, f)
	}
}

func TestDecodePayloadErrors(t *testing.T) {
	for _, in := range []string{"", "not json", `{"flavors":{}}`} {
		if _, err := DecodePayload(strings.NewReader(in)); err == nil {
			t.Errorf("DecodePayload(%q) should fail", in)
		}
	}
}
