package processors

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/ar13101085/hls-playlist/m3u8/shared"
	"github.com/ar13101085/hls-playlist/m3u8/variables"
)

// resolveURI resolves uri against st's base URL, for every attribute
// tag that carries a URI of its own (EXT-X-KEY, EXT-X-MAP,
// EXT-X-MEDIA, EXT-X-PRELOAD-HINT, EXT-X-RENDITION-REPORT,
// EXT-X-SESSION-KEY).
// Segment and variant URIs are resolved separately, in
// m3u8/assembler, once the URI line itself is recognized. Falls back
// to the raw value when there is no base URL or it fails to resolve.
func resolveURI(uri string, st *shared.State) string {
	if uri == "" {
		return uri
	}
	resolved, ok := variables.Resolve(uri, st.BaseURLParsed())
	if !ok {
		return uri
	}
	return resolved
}

func parseIntAttr(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseInt64Attr(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFloatAttr(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isYes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "YES")
}

// parseByteRangeSpec parses the "<n>[@<o>]" grammar shared by
// EXT-X-BYTERANGE, EXT-X-MAP's BYTERANGE attribute and EXT-X-PART's
// BYTERANGE attribute.
func parseByteRangeSpec(s string) (length int64, offset int64, hasOffset bool, ok bool) {
	parts := strings.SplitN(s, "@", 2)
	length, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, false, false
	}
	if len(parts) == 2 {
		offset, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return 0, 0, false, false
		}
		hasOffset = true
	}
	return length, offset, hasOffset, true
}

// parseISO8601Millis parses an RFC3339-ish timestamp to milliseconds
// since the Unix epoch.
func parseISO8601Millis(s string) (int64, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
	}
	return t.UnixNano() / int64(time.Millisecond), true
}

// parseResolutionAttr parses the "<w>x<h>" RESOLUTION attribute grammar.
func parseResolutionAttr(s string) (width, height int, ok bool) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return w, h, true
}

// parseCodecs splits the comma-separated CODECS attribute value.
func parseCodecs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseHexBytes decodes a 0x-prefixed (or bare) hex string, as used by
// EXT-X-DATERANGE's SCTE35-* attributes and 0x-prefixed X- client
// attributes.
func parseHexBytes(s string) ([]byte, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		s = s[2:]
	}
	if len(s)%2 != 0 {
		return nil, false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}

func defaultKeyFormatVersions(attrs map[string]string) []int {
	raw, ok := attrs["KEYFORMATVERSIONS"]
	if !ok || raw == "" {
		return []int{1}
	}
	parts := strings.Split(raw, "/")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if n, ok := parseIntAttr(p); ok {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return []int{1}
	}
	return out
}
