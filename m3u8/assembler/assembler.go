// Package assembler folds the linear *uri-recognized* event stream into
// ordered segments or variant streams, per spec.md §4.4: linking each
// URI to the tag state accumulated since the previous URI, and deriving
// media-sequence numbers, discontinuity-sequence numbers, start/end
// times and program-date-time extrapolation.
package assembler

import (
	"github.com/ar13101085/hls-playlist/m3u8/playlist"
	"github.com/ar13101085/hls-playlist/m3u8/registry"
	"github.com/ar13101085/hls-playlist/m3u8/shared"
	"github.com/ar13101085/hls-playlist/m3u8/variables"
)

// Finalize consumes one *uri-recognized* event: it applies variable
// substitution and URI resolution, then either appends a variant stream
// or a fully-assembled segment, and resets the corresponding
// under-construction value in st.
func Finalize(uri string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
	if st.HasVariablesForSubstitution {
		uri = variables.Substitute(uri, &pl.Define, func(name string) {
			if warn != nil {
				warn("missing variable {$" + name + "} referenced in URI")
			}
		})
	}

	resolved, ok := variables.Resolve(uri, st.BaseURLParsed())
	if !ok {
		if warn != nil && st.BaseURL != "" {
			warn("could not resolve URI " + uri + " against base URL " + st.BaseURL)
		}
		resolved = uri
	}

	if st.IsMultivariantPlaylist {
		finalizeVariant(uri, resolved, pl, st)
		return
	}
	finalizeSegment(uri, resolved, pl, st, warn)
}

func finalizeVariant(uri, resolved string, pl *playlist.Playlist, st *shared.State) {
	st.CurrentVariant.URI = uri
	st.CurrentVariant.ResolvedURI = resolved
	pl.VariantStreams = append(pl.VariantStreams, st.CurrentVariant)
	st.ResetVariant()
}

func finalizeSegment(uri, resolved string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
	seg := st.CurrentSegment

	if pl.TargetDuration > 0 && seg.Duration > pl.TargetDuration && warn != nil {
		warn("segment duration exceeds target duration")
	}

	seg.Encryption = st.CurrentEncryption
	seg.Map = st.CurrentMap
	seg.URI = uri
	seg.ResolvedURI = resolved

	var prev *playlist.Segment
	if n := len(pl.Segments); n > 0 {
		prev = pl.Segments[n-1]
	}

	if prev != nil {
		seg.MediaSequence = prev.MediaSequence + 1
		seg.StartTime = prev.EndTime
		seg.DiscontinuitySequence = prev.DiscontinuitySequence
		if seg.IsDiscontinuity {
			seg.DiscontinuitySequence++
		}
	} else {
		seg.StartTime = st.BaseTime
		seg.MediaSequence = pl.MediaSequence
		seg.DiscontinuitySequence = pl.DiscontinuitySequence
	}
	seg.EndTime = seg.StartTime + seg.Duration

	if st.CurrentBitrate != nil && seg.ByteRange == nil {
		bitrate := *st.CurrentBitrate
		seg.Bitrate = &bitrate
	}

	if seg.ProgramDateTimeStart == nil && prev != nil && prev.ProgramDateTimeStart != nil {
		extrapolated := *prev.ProgramDateTimeStart + int64(prev.Duration*1000)
		seg.ProgramDateTimeStart = &extrapolated
	}
	if seg.ProgramDateTimeStart != nil {
		end := *seg.ProgramDateTimeStart + int64(seg.Duration*1000)
		seg.ProgramDateTimeEnd = &end
	}

	pl.Segments = append(pl.Segments, seg)
	st.ResetSegment()
}
