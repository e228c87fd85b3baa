// Package cleanurl strips analytics and attribution query parameters from URLs.
package cleanurl

import (
	"net/url"
	"strings"
)

// TrackingParams lists the query keys Clean removes.
var TrackingParams = []string{
	// Google Analytics / Ads
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"gclid", "gclsrc", "dclid", "gbraid", "wbraid",

	// Facebook
	"fbclid", "fb_action_ids", "fb_action_types", "fb_source", "fb_ref",

	// Microsoft / Bing, Mailchimp
	"msclkid", "mc_cid", "mc_eid",

	// Twitter
	"twclid", "ref_src", "ref_url",

	// Amazon
	"tag", "ref", "ref_", "pf_rd_p", "pf_rd_r", "pf_rd_s", "pf_rd_t", "pf_rd_i",
	"pd_rd_wg", "pd_rd_r", "pd_rd_w", "psc", "ascsubtag",

	// YouTube
	"feature", "kw", "si",

	// Other
	"_hsenc", "_hsmi", "vero_id", "vero_conv", "yclid",
	"wickedid", "at_medium", "at_campaign", "at_custom1", "at_custom2", "at_custom3", "at_custom4",
	"igshid", "epik", "pp", "cvid", "form", "sk",
}

var trackingSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(TrackingParams))
	for _, p := range TrackingParams {
		set[p] = struct{}{}
	}
	return set
}()

// IsTrackingParam reports whether name is a known tracking parameter.
func IsTrackingParam(name string) bool {
	_, ok := trackingSet[name]
	return ok
}

type queryPair struct {
	key, value string
}

// Clean removes tracking parameters from rawURL. Remaining parameters keep
// their order and are re-encoded with form encoding, so a space comes back
// as "+". The fragment is preserved and an empty query drops its "?".
// Input that does not parse as an absolute URL is returned unchanged.
func Clean(rawURL string) string {
	u, ok := parse(rawURL)
	if !ok {
		return rawURL
	}

	var kept []queryPair
	for _, p := range splitQuery(u.RawQuery) {
		if IsTrackingParam(p.key) {
			continue
		}
		kept = append(kept, p)
	}

	u.RawQuery = encodeQuery(kept)
	u.ForceQuery = false
	normalizePath(u)
	return u.String()
}

// HasTrackingParams reports whether rawURL carries at least one tracking
// parameter. Unparseable input reports false.
func HasTrackingParams(rawURL string) bool {
	u, ok := parse(rawURL)
	if !ok {
		return false
	}
	for _, p := range splitQuery(u.RawQuery) {
		if IsTrackingParam(p.key) {
			return true
		}
	}
	return false
}

// Found returns the tracking parameter names present in rawURL, in query order
// and without duplicates.
func Found(rawURL string) []string {
	u, ok := parse(rawURL)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, p := range splitQuery(u.RawQuery) {
		if IsTrackingParam(p.key) && !seen[p.key] {
			seen[p.key] = true
			names = append(names, p.key)
		}
	}
	return names
}

func parse(rawURL string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !u.IsAbs() {
		return nil, false
	}
	if u.Opaque == "" && u.Host == "" && isSpecialScheme(u.Scheme) {
		return nil, false
	}
	return u, true
}

// splitQuery decodes a raw query the way browsers do: pairs split on "&",
// empty pairs skipped, "+" read as space, bad escapes kept literally.
func splitQuery(rawQuery string) []queryPair {
	if rawQuery == "" {
		return nil
	}
	var pairs []queryPair
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		pairs = append(pairs, queryPair{key: unescape(key), value: unescape(value)})
	}
	return pairs
}

func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return strings.ReplaceAll(s, "+", " ")
	}
	return decoded
}

func encodeQuery(pairs []queryPair) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEscape(p.key))
		b.WriteByte('=')
		b.WriteString(formEscape(p.value))
	}
	return b.String()
}

// formReplacer adjusts url.QueryEscape to the browser form serializer, which
// leaves "*" literal and encodes "~".
var formReplacer = strings.NewReplacer("%2A", "*", "~", "%7E")

func formEscape(s string) string {
	return formReplacer.Replace(url.QueryEscape(s))
}

func isSpecialScheme(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "http", "https", "ws", "wss", "ftp":
		return true
	}
	return false
}

// normalizePath gives special-scheme URLs a root path, as browsers serialise them.
func normalizePath(u *url.URL) {
	if u.Opaque == "" && u.Path == "" && isSpecialScheme(u.Scheme) {
		u.Path = "/"
		u.RawPath = ""
	}
}
