package processors

import (
	"testing"

	"github.com/matryer/is"

	"github.com/ar13101085/hls-playlist/m3u8/playlist"
	"github.com/ar13101085/hls-playlist/m3u8/registry"
	"github.com/ar13101085/hls-playlist/m3u8/shared"
)

func newTestRegistry() *registry.Registry {
	r := registry.New()
	RegisterAll(r)
	return r
}

func TestRegisterKeySetsCurrentEncryption(t *testing.T) {
	is := is.New(t)

	r := newTestRegistry()
	pl := playlist.New()
	st := shared.New("", 0, nil)

	r.Dispatch(registry.TagEvent{
		TagKey:        "EXT-X-KEY",
		HasAttributes: true,
		Attributes:    map[string]string{"METHOD": "AES-128", "URI": "key.bin"},
	}, pl, st, &registry.Hooks{})

	is.True(st.CurrentEncryption != nil)
	is.Equal(st.CurrentEncryption.Method, playlist.EncryptionMethod("AES-128"))
	is.Equal(st.CurrentEncryption.KeyFormatVersions, []int{1})
}

func TestRegisterKeyMethodNoneClearsEncryption(t *testing.T) {
	is := is.New(t)

	r := newTestRegistry()
	pl := playlist.New()
	st := shared.New("", 0, nil)
	st.CurrentEncryption = &playlist.Key{Method: "AES-128"}

	r.Dispatch(registry.TagEvent{
		TagKey:        "EXT-X-KEY",
		HasAttributes: true,
		Attributes:    map[string]string{"METHOD": "NONE"},
	}, pl, st, &registry.Hooks{})

	is.Equal(st.CurrentEncryption == nil, true)
}

func TestRegisterMapParsesByteRange(t *testing.T) {
	is := is.New(t)

	r := newTestRegistry()
	pl := playlist.New()
	st := shared.New("", 0, nil)

	r.Dispatch(registry.TagEvent{
		TagKey:        "EXT-X-MAP",
		HasAttributes: true,
		Attributes:    map[string]string{"URI": "init.mp4", "BYTERANGE": "1000@0"},
	}, pl, st, &registry.Hooks{})

	is.True(st.CurrentMap != nil)
	is.Equal(st.CurrentMap.URI, "init.mp4")
	is.Equal(st.CurrentMap.ByteRange.Start, int64(0))
	is.Equal(st.CurrentMap.ByteRange.End, int64(999))
}

func TestRegisterMediaAddsRenditionToGroup(t *testing.T) {
	is := is.New(t)

	r := newTestRegistry()
	pl := playlist.New()
	st := shared.New("", 0, nil)

	r.Dispatch(registry.TagEvent{
		TagKey:        "EXT-X-MEDIA",
		HasAttributes: true,
		Attributes: map[string]string{
			"TYPE": "AUDIO", "GROUP-ID": "aac", "NAME": "English",
			"LANGUAGE": "en", "DEFAULT": "YES", "URI": "audio.m3u8",
		},
	}, pl, st, &registry.Hooks{})

	group := pl.RenditionGroups.Audio["aac"]
	is.True(group != nil)
	rend := group["English"]
	is.True(rend != nil)
	is.True(rend.Default)
	is.Equal(rend.Language, "en")
}

func TestRegisterDateRangeParsesSCTE35(t *testing.T) {
	is := is.New(t)

	r := newTestRegistry()
	pl := playlist.New()
	st := shared.New("", 0, nil)

	r.Dispatch(registry.TagEvent{
		TagKey:        "EXT-X-DATERANGE",
		HasAttributes: true,
		Attributes: map[string]string{
			"ID":         "ad-1",
			"START-DATE": "2024-01-01T00:00:00.000Z",
			"SCTE35-OUT": "0xFC002F0000",
		},
	}, pl, st, &registry.Hooks{})

	is.Equal(len(pl.DateRanges), 1)
	is.Equal(pl.DateRanges[0].ID, "ad-1")
	is.True(pl.DateRanges[0].SCTE35Out != nil)
}

func TestRegisterSkipSplitsRecentlyRemovedDateRanges(t *testing.T) {
	is := is.New(t)

	r := newTestRegistry()
	pl := playlist.New()
	st := shared.New("", 0, nil)

	r.Dispatch(registry.TagEvent{
		TagKey:        "EXT-X-SKIP",
		HasAttributes: true,
		Attributes:    map[string]string{"SKIPPED-SEGMENTS": "10", "RECENTLY-REMOVED-DATERANGES": "ad-1\tad-2"},
	}, pl, st, &registry.Hooks{})

	is.True(pl.Skip != nil)
	is.Equal(pl.Skip.SkippedSegments, 10)
	is.Equal(len(pl.Skip.RecentlyRemovedDateRanges), 2)
	is.Equal(pl.Skip.RecentlyRemovedDateRanges[1], "ad-2")
}

func TestRegisterKeyURIIsResolvedAgainstBaseURL(t *testing.T) {
	is := is.New(t)

	r := newTestRegistry()
	pl := playlist.New()
	st := shared.New("https://example.com/video/master.m3u8", 0, nil)

	r.Dispatch(registry.TagEvent{
		TagKey:        "EXT-X-KEY",
		HasAttributes: true,
		Attributes:    map[string]string{"METHOD": "AES-128", "URI": "key.bin"},
	}, pl, st, &registry.Hooks{})

	is.Equal(st.CurrentEncryption.ResolvedURI, "https://example.com/video/key.bin")
}
