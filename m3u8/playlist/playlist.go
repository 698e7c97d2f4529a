// Package playlist defines the typed output model a parse produces: the
// aggregate Playlist plus the Segment, Variant, Rendition and related
// value types nested inside it.
package playlist

// PlaylistType is the value of EXT-X-PLAYLIST-TYPE.
type PlaylistType string

const (
	PlaylistTypeNone  PlaylistType = ""
	PlaylistTypeVOD   PlaylistType = "VOD"
	PlaylistTypeEvent PlaylistType = "EVENT"
)

// ByteRange is an inclusive [Start, End] byte span, as used by
// EXT-X-BYTERANGE, EXT-X-MAP and EXT-X-PART.
type ByteRange struct {
	Start int64
	End   int64
}

// Len reports the byte length of the range.
func (b ByteRange) Len() int64 {
	return b.End - b.Start + 1
}

// Start carries EXT-X-START.
type Start struct {
	TimeOffset float64
	Precise    bool
}

// EncryptionMethod is the METHOD attribute of EXT-X-KEY / EXT-X-SESSION-KEY.
type EncryptionMethod string

const (
	EncryptionMethodNone      EncryptionMethod = "NONE"
	EncryptionMethodAES128    EncryptionMethod = "AES-128"
	EncryptionMethodSampleAES EncryptionMethod = "SAMPLE-AES"
)

// Key represents an EXT-X-KEY or EXT-X-SESSION-KEY declaration.
type Key struct {
	Method            EncryptionMethod
	URI               string
	ResolvedURI       string
	IV                string
	KeyFormat         string
	KeyFormatVersions []int
}

// Map represents an EXT-X-MAP initialization segment.
type Map struct {
	URI         string
	ResolvedURI string
	ByteRange   *ByteRange
}

// PartialSegment represents one EXT-X-PART.
type PartialSegment struct {
	URI         string
	ResolvedURI string
	Duration    float64
	Independent bool
	Gap         bool
	ByteRange   *ByteRange
}

// Segment represents one media-playlist segment, assembled from the tags
// that preceded its URI line.
type Segment struct {
	URI                 string
	ResolvedURI          string
	Duration            float64
	Title               string
	ByteRange           *ByteRange
	Bitrate             *int
	IsDiscontinuity     bool
	IsGap               bool
	Encryption          *Key
	Map                 *Map
	Parts               []PartialSegment
	ProgramDateTimeStart *int64
	ProgramDateTimeEnd   *int64
	MediaSequence       int
	DiscontinuitySequence int
	StartTime           float64
	EndTime             float64
}

// Resolution is the parsed RESOLUTION attribute.
type Resolution struct {
	Width  int
	Height int
}

// Variant represents one EXT-X-STREAM-INF entry (a variant stream) or,
// when IFrame is true, one EXT-X-I-FRAME-STREAM-INF entry.
type Variant struct {
	URI         string
	ResolvedURI string
	Bandwidth   int
	AverageBandwidth int
	Codecs      []string
	Resolution  *Resolution
	FrameRate   float64
	Audio       string
	Video       string
	Subtitles   string
	ClosedCaptions string
	HDCPLevel   string
	ProgramID   int
	IFrame      bool
	Attributes  map[string]string
}

// RenditionType is the TYPE attribute of EXT-X-MEDIA.
type RenditionType string

const (
	RenditionAudio          RenditionType = "AUDIO"
	RenditionVideo          RenditionType = "VIDEO"
	RenditionSubtitles      RenditionType = "SUBTITLES"
	RenditionClosedCaptions RenditionType = "CLOSED-CAPTIONS"
)

// Rendition represents one EXT-X-MEDIA entry.
type Rendition struct {
	Type            RenditionType
	GroupID         string
	Name            string
	Language        string
	AssocLanguage   string
	Default         bool
	AutoSelect      bool
	Forced          bool
	InstreamID      string
	Characteristics string
	Channels        string
	URI             string
	ResolvedURI     string
}

// RenditionGroups holds the four EXT-X-MEDIA rendition families, each
// keyed by GROUP-ID and then by NAME.
type RenditionGroups struct {
	Audio          map[string]map[string]*Rendition
	Video          map[string]map[string]*Rendition
	Subtitles      map[string]map[string]*Rendition
	ClosedCaptions map[string]map[string]*Rendition
}

func newRenditionGroups() RenditionGroups {
	return RenditionGroups{
		Audio:          make(map[string]map[string]*Rendition),
		Video:          make(map[string]map[string]*Rendition),
		Subtitles:      make(map[string]map[string]*Rendition),
		ClosedCaptions: make(map[string]map[string]*Rendition),
	}
}

// groupFor returns (creating if necessary) the map of renditions for the
// given rendition type and group id.
func (r *RenditionGroups) groupFor(t RenditionType, groupID string) map[string]*Rendition {
	var family map[string]map[string]*Rendition
	switch t {
	case RenditionAudio:
		family = r.Audio
	case RenditionVideo:
		family = r.Video
	case RenditionSubtitles:
		family = r.Subtitles
	case RenditionClosedCaptions:
		family = r.ClosedCaptions
	default:
		return nil
	}
	group, ok := family[groupID]
	if !ok {
		group = make(map[string]*Rendition)
		family[groupID] = group
	}
	return group
}

// Add inserts a rendition into its type/group/name slot.
func (r *RenditionGroups) Add(rend *Rendition) {
	group := r.groupFor(rend.Type, rend.GroupID)
	if group == nil {
		return
	}
	group[rend.Name] = rend
}

// DateRange represents one EXT-X-DATERANGE.
type DateRange struct {
	ID               string
	Class            string
	StartDate        string
	StartDateMillis  int64
	EndDate          string
	Duration         *float64
	PlannedDuration  *float64
	EndOnNext        bool
	SCTE35Cmd        []byte
	SCTE35Out        []byte
	SCTE35In         []byte
	ClientAttributes map[string]interface{}
}

// Skip represents an EXT-X-SKIP tag.
type Skip struct {
	SkippedSegments          int
	RecentlyRemovedDateRanges []string
}

// ServerControl represents EXT-X-SERVER-CONTROL.
type ServerControl struct {
	CanSkipUntil     *float64
	CanSkipDateRanges bool
	CanBlockReload   bool
	HoldBack         *float64
	PartHoldBack     *float64
}

// PartInf represents EXT-X-PART-INF.
type PartInf struct {
	PartTarget float64
}

// PreloadHint represents one entry of EXT-X-PRELOAD-HINT, keyed by TYPE.
type PreloadHint struct {
	URI         string
	ResolvedURI string
	ByteRangeStart *int64
	ByteRangeEnd   *int64 // nil with OpenEnded true means "to end of resource"
	OpenEnded      bool
}

// RenditionReport represents one EXT-X-RENDITION-REPORT.
type RenditionReport struct {
	URI                   string
	ResolvedURI           string
	LastMSN               *int
	LastPart              *int
}

// SessionData represents one EXT-X-SESSION-DATA, keyed by DATA-ID.
type SessionData struct {
	DataID   string
	Value    string
	URI      string
	Language string
}

// Define holds the three EXT-X-DEFINE variable scopes.
type Define struct {
	Name       map[string]string
	Import     map[string]string
	QueryParam map[string]string
}

func newDefine() Define {
	return Define{
		Name:       make(map[string]string),
		Import:     make(map[string]string),
		QueryParam: make(map[string]string),
	}
}

// ContentSteering represents EXT-X-CONTENT-STEERING.
type ContentSteering struct {
	ServerURI string
	PathwayID string
}

// Playlist is the mutable aggregate a parse populates. A well-formed
// media playlist has Segments populated and VariantStreams empty; a
// well-formed multivariant playlist is the reverse. This module tolerates
// (rather than rejects) a playlist with both populated; see
// SPEC_FULL.md's Open Question resolutions.
type Playlist struct {
	M3U                   bool
	Version               int
	IndependentSegments   bool
	EndList               bool
	IFramesOnly           bool
	PlaylistType          PlaylistType
	TargetDuration        float64
	MediaSequence         int
	DiscontinuitySequence int
	Start                 *Start

	PartInf         *PartInf
	ServerControl   *ServerControl
	Skip            *Skip
	PreloadHints    map[string]*PreloadHint
	RenditionReports []*RenditionReport

	Define Define

	SessionKeys     []*Key
	SessionData     map[string]*SessionData
	ContentSteering *ContentSteering

	Segments   []*Segment
	DateRanges []*DateRange

	VariantStreams  []*Variant
	IFramePlaylists []*Variant
	RenditionGroups RenditionGroups

	Custom map[string]interface{}
}

// New returns a Playlist with every map/slice field initialized so
// callers and processors never need a nil check before writing into one.
func New() *Playlist {
	return &Playlist{
		PreloadHints:    make(map[string]*PreloadHint),
		Define:          newDefine(),
		SessionData:     make(map[string]*SessionData),
		RenditionGroups: newRenditionGroups(),
		Custom:          make(map[string]interface{}),
	}
}

// IsMultivariant reports whether this playlist describes variant streams
// rather than media segments.
func (p *Playlist) IsMultivariant() bool {
	return len(p.VariantStreams) > 0 || len(p.IFramePlaylists) > 0
}
