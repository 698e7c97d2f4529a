// Package variables implements {$NAME} substitution against a
// playlist's EXT-X-DEFINE scopes, and RFC 3986 URI resolution against a
// playlist's base URL.
package variables

import (
	"net/url"
	"strings"

	"github.com/ar13101085/hls-playlist/m3u8/playlist"
)

// MissingFunc is invoked once per unresolved {$NAME} reference.
type MissingFunc func(name string)

// isNameChar matches the conventional HLS variable name alphabet.
func isNameChar(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// lookup resolves NAME against playlist.define.name, then .import, then
// .queryParam, in that order.
func lookup(define *playlist.Define, name string) (string, bool) {
	if v, ok := define.Name[name]; ok {
		return v, true
	}
	if v, ok := define.Import[name]; ok {
		return v, true
	}
	if v, ok := define.QueryParam[name]; ok {
		return v, true
	}
	return "", false
}

// Substitute replaces every {$NAME} occurrence in s that resolves
// against define. An unresolved reference is left intact (no
// partial-replace) and reported once via onMissing, which may be nil.
func Substitute(s string, define *playlist.Define, onMissing MissingFunc) string {
	if !strings.Contains(s, "{$") {
		return s
	}

	var out strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "{$")
		if start < 0 {
			out.WriteString(s[i:])
			break
		}
		start += i
		out.WriteString(s[i:start])

		j := start + 2
		for j < len(s) && isNameChar(s[j]) {
			j++
		}
		if j < len(s) && s[j] == '}' && j > start+2 {
			name := s[start+2 : j]
			if val, ok := lookup(define, name); ok {
				out.WriteString(val)
			} else {
				if onMissing != nil {
					onMissing(name)
				}
				out.WriteString(s[start : j+1])
			}
			i = j + 1
			continue
		}

		// Not a well-formed {$NAME} reference: emit the two literal
		// characters and keep scanning from just past them.
		out.WriteString(s[start : start+2])
		i = start + 2
	}
	return out.String()
}

// Resolve resolves uri against baseURL per RFC 3986. It returns ok=false
// (signaling the caller to fall back to the raw value) when baseURL is
// empty or either URI fails to parse.
func Resolve(uri string, baseURL *url.URL) (string, bool) {
	if baseURL == nil {
		return "", false
	}
	ref, err := url.Parse(uri)
	if err != nil {
		return "", false
	}
	return baseURL.ResolveReference(ref).String(), true
}

// QueryParams extracts query parameters from a base URL into a flat
// string map, for EXT-X-DEFINE QUERYPARAM lookups.
func QueryParams(baseURL *url.URL) map[string]string {
	out := make(map[string]string)
	if baseURL == nil {
		return out
	}
	for k, v := range baseURL.Query() {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
