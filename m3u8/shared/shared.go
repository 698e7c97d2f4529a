// Package shared defines the transient working set a parse carries
// forward across tag processors: the segment and variant under
// construction, the encryption key and init map currently in force, and
// the variable-substitution scope.
package shared

import (
	"net/url"

	"github.com/ar13101085/hls-playlist/m3u8/playlist"
)

// State is owned by one parser for the duration of one parse and passed
// by pointer to every tag processor. It must not be shared across
// parsers or retained by a callback past the call that received it.
type State struct {
	CurrentSegment *playlist.Segment
	CurrentVariant *playlist.Variant

	CurrentEncryption *playlist.Key
	CurrentMap        *playlist.Map
	CurrentBitrate    *int

	BaseURL  string
	baseURL  *url.URL
	BaseTime float64

	BaseDefine *playlist.Define

	HasVariablesForSubstitution bool
	IsMultivariantPlaylist      bool

	lastByteRangeEnd     int64
	lastPartByteRangeEnd int64
	lastProgramDateTime  int64
}

// New returns a State reset to its defaults for a fresh parse.
func New(baseURL string, baseTime float64, baseDefine *playlist.Define) *State {
	s := &State{
		CurrentSegment: &playlist.Segment{},
		CurrentVariant: &playlist.Variant{Attributes: make(map[string]string)},
		BaseURL:        baseURL,
		BaseTime:       baseTime,
		BaseDefine:     baseDefine,
	}
	if baseURL != "" {
		if parsed, err := url.Parse(baseURL); err == nil {
			s.baseURL = parsed
		}
	}
	return s
}

// BaseURLParsed returns the parsed form of BaseURL, or nil if BaseURL is
// empty or could not be parsed.
func (s *State) BaseURLParsed() *url.URL {
	return s.baseURL
}

// ResetSegment replaces CurrentSegment with a fresh default, called
// whenever a URI line finalizes the one under construction.
func (s *State) ResetSegment() {
	s.CurrentSegment = &playlist.Segment{}
	s.lastPartByteRangeEnd = 0
}

// ResetVariant replaces CurrentVariant with a fresh default, called
// whenever a URI line finalizes the one under construction.
func (s *State) ResetVariant() {
	s.CurrentVariant = &playlist.Variant{Attributes: make(map[string]string)}
}

// LastByteRangeEnd returns the offset just past the end of the previous
// EXT-X-BYTERANGE, used as the start of a range whose offset is omitted.
func (s *State) LastByteRangeEnd() int64 { return s.lastByteRangeEnd }

// SetLastByteRangeEnd records the offset just past the end of the byte
// range just assigned to the current segment.
func (s *State) SetLastByteRangeEnd(end int64) { s.lastByteRangeEnd = end }

// LastPartByteRangeEnd returns the offset just past the end of the
// previous EXT-X-PART's byte range within the current segment.
func (s *State) LastPartByteRangeEnd() int64 { return s.lastPartByteRangeEnd }

// SetLastPartByteRangeEnd records the offset just past the end of the
// byte range just assigned to the current partial segment.
func (s *State) SetLastPartByteRangeEnd(end int64) { s.lastPartByteRangeEnd = end }

// LastProgramDateTime returns the most recently known program-date-time,
// in milliseconds since epoch, or 0 if none has been seen yet.
func (s *State) LastProgramDateTime() int64 { return s.lastProgramDateTime }

// SetLastProgramDateTime records the most recently known program-date-time.
func (s *State) SetLastProgramDateTime(ms int64) { s.lastProgramDateTime = ms }
