// Command hls-playlist is a thin demo binary: it parses a single HLS
// playlist file and prints a summary of what was found. It exists to
// exercise the parser package end to end, not as a production tool.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ar13101085/hls-playlist/config"
	"github.com/ar13101085/hls-playlist/m3u8/parser"
	"github.com/ar13101085/hls-playlist/m3u8/playlist"
	"github.com/ar13101085/hls-playlist/m3u8log"
)

func main() {
	filePath := "input.m3u8"
	if len(os.Args) > 1 {
		filePath = os.Args[1]
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", filePath, err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	runID := uuid.NewString()
	logger = logger.With(zap.String("runID", runID))
	adapter := m3u8log.New(logger, filePath)

	opts := parser.Options{Warn: adapter.Warn, Debug: adapter.Debug}
	parseOpts := parser.ParseOptions{BaseURL: filePath}

	if cfgPath := os.Getenv("HLS_PLAYLIST_CONFIG"); cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			logger.Warn("ignoring config file", zap.Error(err))
		} else {
			opts.IgnoreTags = cfg.IgnoreTagSet()
			parseOpts.BaseDefine = cfg.BaseDefine()
		}
	}

	pl := parser.NewDefault(opts).ParseFull(string(data), parseOpts)

	printSummary(pl)
}

func printSummary(pl *playlist.Playlist) {
	fmt.Printf("Manifest parsed successfully:\n")
	fmt.Printf("Is Multivariant: %v\n", pl.IsMultivariant())
	fmt.Printf("Version: %d\n", pl.Version)
	fmt.Printf("Target Duration: %.1f\n", pl.TargetDuration)
	fmt.Printf("Media Sequence: %d\n", pl.MediaSequence)
	fmt.Printf("Discontinuity Sequence: %d\n", pl.DiscontinuitySequence)
	fmt.Printf("End List: %v\n", pl.EndList)
	fmt.Printf("Playlist Type: %s\n", pl.PlaylistType)
	fmt.Printf("Independent Segments: %v\n", pl.IndependentSegments)
	fmt.Printf("IFrames Only: %v\n", pl.IFramesOnly)

	if pl.Start != nil {
		fmt.Printf("\nStart:\n  Time Offset: %.1f\n  Precise: %v\n", pl.Start.TimeOffset, pl.Start.Precise)
	}

	if len(pl.DateRanges) > 0 {
		fmt.Printf("\nDate Ranges:\n")
		for i, dr := range pl.DateRanges {
			fmt.Printf("  %d: ID=%s StartDate=%s", i+1, dr.ID, dr.StartDate)
			if dr.Duration != nil {
				fmt.Printf(" Duration=%.1f", *dr.Duration)
			}
			fmt.Println()
		}
	}

	if sc := pl.ServerControl; sc != nil {
		fmt.Printf("\nServer Control:\n  CanBlockReload=%v", sc.CanBlockReload)
		if sc.HoldBack != nil {
			fmt.Printf(" HoldBack=%.1f", *sc.HoldBack)
		}
		if sc.PartHoldBack != nil {
			fmt.Printf(" PartHoldBack=%.1f", *sc.PartHoldBack)
		}
		fmt.Println()
	}

	if pl.PartInf != nil {
		fmt.Printf("\nPart Inf:\n  PartTarget=%.3f\n", pl.PartInf.PartTarget)
	}

	if n := len(pl.Segments); n > 0 {
		fmt.Printf("\nSegments: %d\n", n)
		limit := n
		if limit > 5 {
			limit = 5
		}
		for i, seg := range pl.Segments[:limit] {
			fmt.Printf("  Segment %d:\n    URI: %s\n    Duration: %.3f\n    MediaSequence: %d\n",
				i+1, seg.URI, seg.Duration, seg.MediaSequence)
			if seg.Title != "" {
				fmt.Printf("    Title: %s\n", seg.Title)
			}
			if seg.IsDiscontinuity {
				fmt.Printf("    Discontinuity: true\n")
			}
			if seg.ProgramDateTimeStart != nil {
				fmt.Printf("    Program Date Time: %d\n", *seg.ProgramDateTimeStart)
			}
			if seg.Map != nil {
				fmt.Printf("    Map URI: %s\n", seg.Map.URI)
			}
			if seg.ByteRange != nil {
				fmt.Printf("    ByteRange: len=%d offset=%d\n", seg.ByteRange.Len(), seg.ByteRange.Start)
			}
			if seg.Encryption != nil {
				fmt.Printf("    Encryption: Method=%s URI=%s\n", seg.Encryption.Method, seg.Encryption.URI)
			}
		}
		if n > limit {
			fmt.Printf("  ... and %d more segments\n", n-limit)
		}
	}

	if n := len(pl.VariantStreams); n > 0 {
		fmt.Printf("\nVariant Streams: %d\n", n)
		for i, v := range pl.VariantStreams {
			resolution := "unknown"
			if v.Resolution != nil {
				resolution = fmt.Sprintf("%dx%d", v.Resolution.Width, v.Resolution.Height)
			}
			fmt.Printf("  %d: URI=%s Bandwidth=%d Codecs=%v Resolution=%s\n",
				i+1, v.URI, v.Bandwidth, v.Codecs, resolution)
		}
	}

	if n := len(pl.IFramePlaylists); n > 0 {
		fmt.Printf("\nI-Frame Playlists: %d\n", n)
		for i, v := range pl.IFramePlaylists {
			fmt.Printf("  %d: URI=%s Bandwidth=%d\n", i+1, v.URI, v.Bandwidth)
		}
	}

	groups := pl.RenditionGroups
	for _, groupType := range []string{"AUDIO", "VIDEO", "SUBTITLES", "CLOSED-CAPTIONS"} {
		var byGroup map[string]map[string]*playlist.Rendition
		switch groupType {
		case "AUDIO":
			byGroup = groups.Audio
		case "VIDEO":
			byGroup = groups.Video
		case "SUBTITLES":
			byGroup = groups.Subtitles
		case "CLOSED-CAPTIONS":
			byGroup = groups.ClosedCaptions
		}
		if len(byGroup) == 0 {
			continue
		}
		fmt.Printf("\n%s Groups:\n", groupType)
		for groupID, renditions := range byGroup {
			fmt.Printf("  Group %s:\n", groupID)
			for _, r := range renditions {
				fmt.Printf("    Name=%s Default=%v Autoselect=%v Language=%s\n", r.Name, r.Default, r.AutoSelect, r.Language)
			}
		}
	}
}
