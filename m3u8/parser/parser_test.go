package parser

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/ar13101085/hls-playlist/m3u8/playlist"
)

func TestParseFullMinimalVOD(t *testing.T) {
	is := is.New(t)

	input := `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-PLAYLIST-TYPE:VOD
#EXTINF:9.009,
segment0.ts
#EXTINF:9.009,
segment1.ts
#EXT-X-ENDLIST
`
	pl := NewDefault(Options{}).ParseFull(input, ParseOptions{})

	is.True(pl.M3U)
	is.Equal(pl.Version, 3)
	is.Equal(pl.TargetDuration, float64(10))
	is.Equal(pl.PlaylistType, playlist.PlaylistTypeVOD)
	is.True(pl.EndList)
	is.Equal(len(pl.Segments), 2)
	is.Equal(pl.Segments[0].URI, "segment0.ts")
	is.Equal(pl.Segments[0].MediaSequence, 0)
	is.Equal(pl.Segments[1].MediaSequence, 1)
	is.Equal(pl.Segments[1].StartTime, pl.Segments[0].Duration)
}

func TestParseFullDiscontinuity(t *testing.T) {
	is := is.New(t)

	input := `#EXTM3U
#EXT-X-TARGETDURATION:10
#EXTINF:10,
segment0.ts
#EXT-X-DISCONTINUITY
#EXTINF:10,
segment1.ts
`
	pl := NewDefault(Options{}).ParseFull(input, ParseOptions{})

	is.Equal(len(pl.Segments), 2)
	is.Equal(pl.Segments[0].DiscontinuitySequence, 0)
	is.True(pl.Segments[1].IsDiscontinuity)
	is.Equal(pl.Segments[1].DiscontinuitySequence, 1)
}

func TestParseFullMultivariant(t *testing.T) {
	is := is.New(t)

	input := `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=1280000,CODECS="avc1.4d401f,mp4a.40.2",RESOLUTION=640x360
low.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2560000,CODECS="avc1.4d401f,mp4a.40.2",RESOLUTION=1280x720
high.m3u8
`
	pl := NewDefault(Options{}).ParseFull(input, ParseOptions{})

	is.True(pl.IsMultivariant())
	is.Equal(len(pl.VariantStreams), 2)
	is.Equal(pl.VariantStreams[0].Bandwidth, 1280000)
	is.Equal(pl.VariantStreams[0].Resolution.Width, 640)
	is.Equal(pl.VariantStreams[1].URI, "high.m3u8")
}

func TestParseFullByteRangeImplicitOffset(t *testing.T) {
	is := is.New(t)

	input := `#EXTM3U
#EXT-X-TARGETDURATION:10
#EXTINF:10,
#EXT-X-BYTERANGE:1000@0
segment.ts
#EXTINF:10,
#EXT-X-BYTERANGE:500
segment.ts
`
	pl := NewDefault(Options{}).ParseFull(input, ParseOptions{})

	is.Equal(len(pl.Segments), 2)
	is.Equal(pl.Segments[0].ByteRange.Start, int64(0))
	is.Equal(pl.Segments[0].ByteRange.End, int64(999))
	is.Equal(pl.Segments[1].ByteRange.Start, int64(1000))
	is.Equal(pl.Segments[1].ByteRange.End, int64(1499))
}

func TestParseFullVariableSubstitution(t *testing.T) {
	is := is.New(t)

	input := `#EXTM3U
#EXT-X-DEFINE:NAME="HOST",VALUE="example.com"
#EXT-X-TARGETDURATION:10
#EXTINF:10,
https://{$HOST}/segment0.ts
`
	pl := NewDefault(Options{}).ParseFull(input, ParseOptions{})

	is.Equal(len(pl.Segments), 1)
	is.Equal(pl.Segments[0].URI, "https://example.com/segment0.ts")
}

func TestProgressivePushChunkingEquivalence(t *testing.T) {
	is := is.New(t)

	input := `#EXTM3U
#EXT-X-TARGETDURATION:10
#EXTINF:10,
segment0.ts
#EXTINF:10,
segment1.ts
#EXT-X-ENDLIST
`
	full := NewDefault(Options{}).ParseFull(input, ParseOptions{})

	p := NewDefault(Options{})
	var chunked *playlistSnapshot
	for _, chunk := range splitIntoChunks(input, 7) {
		p.Push(chunk, ParseOptions{})
	}
	result := p.Done()
	chunked = &playlistSnapshot{segments: len(result.Segments), endList: result.EndList}

	is.Equal(chunked.segments, len(full.Segments))
	is.Equal(chunked.endList, full.EndList)
}

type playlistSnapshot struct {
	segments int
	endList  bool
}

func splitIntoChunks(s string, size int) []string {
	var chunks []string
	for len(s) > 0 {
		if len(s) <= size {
			chunks = append(chunks, s)
			break
		}
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	return chunks
}

func TestParserIsReusableAfterDone(t *testing.T) {
	is := is.New(t)

	p := NewDefault(Options{})
	first := p.ParseFull("#EXTM3U\n#EXTINF:1,\na.ts\n", ParseOptions{})
	second := p.ParseFull("#EXTM3U\n#EXTINF:2,\nb.ts\n", ParseOptions{})

	is.Equal(len(first.Segments), 1)
	is.Equal(len(second.Segments), 1)
	is.Equal(second.Segments[0].URI, "b.ts")
}

func TestParseFullWarnsOnUnsupportedTag(t *testing.T) {
	is := is.New(t)

	var warnings []string
	opts := Options{Warn: func(msg string) { warnings = append(warnings, msg) }}
	NewDefault(opts).ParseFull("#EXTM3U\n#EXT-X-NOT-A-REAL-TAG:1\n", ParseOptions{})

	is.True(len(warnings) >= 1)
	is.True(strings.Contains(warnings[0], "EXT-X-NOT-A-REAL-TAG"))
}
