package playlist

import (
	"testing"

	"github.com/matryer/is"
)

func TestNewInitializesMapsAndSlices(t *testing.T) {
	is := is.New(t)

	pl := New()
	is.Equal(len(pl.PreloadHints), 0)
	is.Equal(len(pl.SessionData), 0)
	is.Equal(len(pl.Custom), 0)
	is.Equal(pl.IsMultivariant(), false)
}

func TestIsMultivariantWithVariantStreams(t *testing.T) {
	is := is.New(t)

	pl := New()
	pl.VariantStreams = append(pl.VariantStreams, &Variant{URI: "low.m3u8"})
	is.True(pl.IsMultivariant())
}

func TestRenditionGroupsAddByTypeAndGroupID(t *testing.T) {
	is := is.New(t)

	groups := newRenditionGroups()
	groups.Add(&Rendition{Type: RenditionAudio, GroupID: "aac", Name: "English"})
	groups.Add(&Rendition{Type: RenditionSubtitles, GroupID: "subs", Name: "French"})

	is.Equal(groups.Audio["aac"]["English"].Name, "English")
	is.Equal(groups.Subtitles["subs"]["French"].Name, "French")
	is.Equal(len(groups.Video), 0)
}

func TestByteRangeLen(t *testing.T) {
	is := is.New(t)

	br := ByteRange{Start: 0, End: 999}
	is.Equal(br.Len(), int64(1000))
}
