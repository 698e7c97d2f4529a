package variables

import (
	"net/url"
	"testing"

	"github.com/matryer/is"

	"github.com/ar13101085/hls-playlist/m3u8/playlist"
)

func TestSubstituteName(t *testing.T) {
	is := is.New(t)

	define := &playlist.Define{Name: map[string]string{"HOST": "example.com"}}
	out := Substitute("https://{$HOST}/video/index.m3u8", define, nil)
	is.Equal(out, "https://example.com/video/index.m3u8")
}

func TestSubstituteScopeOrder(t *testing.T) {
	is := is.New(t)

	define := &playlist.Define{
		Name:       map[string]string{"X": "from-name"},
		Import:     map[string]string{"X": "from-import"},
		QueryParam: map[string]string{"X": "from-queryparam"},
	}
	out := Substitute("{$X}", define, nil)
	is.Equal(out, "from-name")
}

func TestSubstituteMissingLeavesReferenceIntact(t *testing.T) {
	is := is.New(t)

	var missing []string
	define := &playlist.Define{Name: map[string]string{}}
	out := Substitute("{$UNKNOWN}/segment.ts", define, func(name string) {
		missing = append(missing, name)
	})
	is.Equal(out, "{$UNKNOWN}/segment.ts")
	is.Equal(len(missing), 1)
	is.Equal(missing[0], "UNKNOWN")
}

func TestSubstituteMalformedBraceIsLiteral(t *testing.T) {
	is := is.New(t)

	define := &playlist.Define{Name: map[string]string{}}
	out := Substitute("{$ not a name}", define, nil)
	is.Equal(out, "{$ not a name}")
}

func TestSubstituteNoOccurrences(t *testing.T) {
	is := is.New(t)

	define := &playlist.Define{Name: map[string]string{}}
	out := Substitute("plain.ts", define, nil)
	is.Equal(out, "plain.ts")
}

func TestResolveAgainstBaseURL(t *testing.T) {
	is := is.New(t)

	base, err := url.Parse("https://example.com/video/master.m3u8")
	is.NoErr(err)

	resolved, ok := Resolve("low/index.m3u8", base)
	is.True(ok)
	is.Equal(resolved, "https://example.com/video/low/index.m3u8")
}

func TestResolveNilBaseURLFails(t *testing.T) {
	is := is.New(t)

	_, ok := Resolve("low/index.m3u8", nil)
	is.Equal(ok, false)
}

func TestQueryParams(t *testing.T) {
	is := is.New(t)

	base, err := url.Parse("https://example.com/video/master.m3u8?token=abc123")
	is.NoErr(err)

	params := QueryParams(base)
	is.Equal(params["token"], "abc123")
}
