package scanner

import (
	"testing"

	"github.com/matryer/is"
)

func feedAll(s *Scanner, input string) []Event {
	var events []Event
	for i := 0; i < len(input); i++ {
		if ev, ok := s.Feed(input[i]); ok {
			events = append(events, ev)
		}
	}
	return events
}

func TestScannerEmptyTag(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), "#EXTM3U\n")
	is.Equal(len(events), 1)
	is.Equal(events[0].Kind, EventTag)
	is.Equal(events[0].TagKey, "EXTM3U")
	is.Equal(events[0].HasValue, false)
	is.Equal(events[0].HasAttributes, false)
}

func TestScannerValueTag(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), "#EXT-X-VERSION:4\n")
	is.Equal(len(events), 1)
	is.Equal(events[0].TagKey, "EXT-X-VERSION")
	is.True(events[0].HasValue)
	is.Equal(events[0].Value, "4")
}

func TestScannerAttributeTag(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), `#EXT-X-KEY:METHOD=AES-128,URI="https://example.com/key"`+"\n")
	is.Equal(len(events), 1)
	is.True(events[0].HasAttributes)
	is.Equal(events[0].Attributes["METHOD"], "AES-128")
	is.Equal(events[0].Attributes["URI"], "https://example.com/key")
}

func TestScannerURILine(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), "segment0.ts\n")
	is.Equal(len(events), 1)
	is.Equal(events[0].Kind, EventURI)
	is.Equal(events[0].URI, "segment0.ts")
}

func TestScannerCommentLineIsIgnored(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), "# a plain comment, not a tag\n")
	is.Equal(len(events), 0)
}

func TestScannerBlankLineIsIgnored(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), "\n\n")
	is.Equal(len(events), 0)
}

func TestScannerQuotedCommaAttributeLineIsOneEvent(t *testing.T) {
	// This exercises the quote-tracking in feedTagBody: a quoted comma
	// survives across the attribute lexer boundary (already covered by
	// attrlex tests); here we check that an ordinary multi-attribute line
	// with a quoted comma parses as one event, not two.
	is := is.New(t)

	events := feedAll(New(), `#EXT-X-STREAM-INF:BANDWIDTH=1000,CODECS="avc1.4d401f,mp4a.40.2"`+"\nlow.m3u8\n")
	is.Equal(len(events), 2)
	is.Equal(events[0].Kind, EventTag)
	is.Equal(events[0].Attributes["CODECS"], "avc1.4d401f,mp4a.40.2")
	is.Equal(events[1].Kind, EventURI)
	is.Equal(events[1].URI, "low.m3u8")
}

func TestScannerCRLFLineEnding(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), "segment0.ts\r\n")
	is.Equal(len(events), 1)
	is.Equal(events[0].URI, "segment0.ts")
}

func TestScannerAtLineStart(t *testing.T) {
	is := is.New(t)

	s := New()
	is.True(s.AtLineStart())
	s.Feed('#')
	is.Equal(s.AtLineStart(), false)
}

func TestScannerCRLFEmptyTag(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), "#EXT-X-ENDLIST\r\n")
	is.Equal(len(events), 1)
	is.Equal(events[0].TagKey, "EXT-X-ENDLIST")
}

func TestScannerCRLFAttributeTag(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), "#EXT-X-KEY:METHOD=AES-128,URI=\"key.bin\"\r\n")
	is.Equal(len(events), 1)
	is.True(events[0].HasAttributes)
	is.Equal(events[0].Attributes["URI"], "key.bin")
}

func TestScannerCRLFValueTag(t *testing.T) {
	is := is.New(t)

	events := feedAll(New(), "#EXT-X-VERSION:4\r\n")
	is.Equal(len(events), 1)
	is.True(events[0].HasValue)
	is.Equal(events[0].Value, "4")
}
