// Package processors implements the per-tag processors from spec.md
// §4.3.3: one small function per recognized HLS tag, each validating,
// coercing, running variable substitution where the dispatcher hands it
// down, and mutating the playlist plus the shared working state.
package processors

import (
	"strconv"
	"strings"

	"github.com/ar13101085/hls-playlist/m3u8/playlist"
	"github.com/ar13101085/hls-playlist/m3u8/registry"
	"github.com/ar13101085/hls-playlist/m3u8/shared"
)

// RegisterAll installs every built-in tag processor into r.
func RegisterAll(r *registry.Registry) {
	registerEmptyTags(r)
	registerValueTags(r)
	registerAttributeTags(r)
}

func registerEmptyTags(r *registry.Registry) {
	r.RegisterEmpty("EXTM3U", func(pl *playlist.Playlist, st *shared.State) {
		pl.M3U = true
	})
	r.RegisterEmpty("EXT-X-INDEPENDENT-SEGMENTS", func(pl *playlist.Playlist, st *shared.State) {
		pl.IndependentSegments = true
	})
	r.RegisterEmpty("EXT-X-ENDLIST", func(pl *playlist.Playlist, st *shared.State) {
		pl.EndList = true
	})
	r.RegisterEmpty("EXT-X-I-FRAMES-ONLY", func(pl *playlist.Playlist, st *shared.State) {
		pl.IFramesOnly = true
	})
	r.RegisterEmpty("EXT-X-DISCONTINUITY", func(pl *playlist.Playlist, st *shared.State) {
		st.CurrentSegment.IsDiscontinuity = true
	})
	r.RegisterEmpty("EXT-X-GAP", func(pl *playlist.Playlist, st *shared.State) {
		st.CurrentSegment.IsGap = true
	})
}

func registerValueTags(r *registry.Registry) {
	r.RegisterValue("EXT-X-VERSION", registry.ValueTagProcessor{
		Process: func(value string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			n, ok := parseIntAttr(value)
			if !ok {
				warn("EXT-X-VERSION: unparsable integer value " + value)
				return
			}
			pl.Version = n
		},
	})

	r.RegisterValue("EXT-X-TARGETDURATION", registry.ValueTagProcessor{
		Process: func(value string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			f, ok := parseFloatAttr(value)
			if !ok {
				warn("EXT-X-TARGETDURATION: unparsable value " + value)
				return
			}
			pl.TargetDuration = f
		},
	})

	r.RegisterValue("EXT-X-MEDIA-SEQUENCE", registry.ValueTagProcessor{
		Process: func(value string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			n, ok := parseIntAttr(value)
			if !ok {
				warn("EXT-X-MEDIA-SEQUENCE: unparsable integer value " + value)
				return
			}
			pl.MediaSequence = n
		},
	})

	r.RegisterValue("EXT-X-DISCONTINUITY-SEQUENCE", registry.ValueTagProcessor{
		Process: func(value string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			n, ok := parseIntAttr(value)
			if !ok {
				warn("EXT-X-DISCONTINUITY-SEQUENCE: unparsable integer value " + value)
				return
			}
			pl.DiscontinuitySequence = n
		},
	})

	r.RegisterValue("EXT-X-PLAYLIST-TYPE", registry.ValueTagProcessor{
		Process: func(value string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			switch strings.TrimSpace(value) {
			case "VOD":
				pl.PlaylistType = playlist.PlaylistTypeVOD
			case "EVENT":
				pl.PlaylistType = playlist.PlaylistTypeEvent
			default:
				warn("EXT-X-PLAYLIST-TYPE: unsupported enum value " + value)
			}
		},
	})

	r.RegisterValue("EXTINF", registry.ValueTagProcessor{
		Process: func(value string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			parts := strings.SplitN(value, ",", 2)
			dur, ok := parseFloatAttr(parts[0])
			if !ok {
				warn("EXTINF: unparsable duration " + parts[0])
				return
			}
			st.CurrentSegment.Duration = dur
			if len(parts) == 2 {
				st.CurrentSegment.Title = parts[1]
			}
		},
	})

	r.RegisterValue("EXT-X-BYTERANGE", registry.ValueTagProcessor{
		Process: func(value string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			length, offset, hasOffset, ok := parseByteRangeSpec(value)
			if !ok {
				warn("EXT-X-BYTERANGE: unparsable value " + value)
				return
			}
			if !hasOffset {
				offset = st.LastByteRangeEnd()
			}
			br := playlist.ByteRange{Start: offset, End: offset + length - 1}
			st.CurrentSegment.ByteRange = &br
			st.SetLastByteRangeEnd(br.End + 1)
		},
	})

	r.RegisterValue("EXT-X-BITRATE", registry.ValueTagProcessor{
		Process: func(value string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			n, ok := parseIntAttr(value)
			if !ok {
				warn("EXT-X-BITRATE: unparsable integer value " + value)
				return
			}
			st.CurrentBitrate = &n
		},
	})

	r.RegisterValue("EXT-X-PROGRAM-DATE-TIME", registry.ValueTagProcessor{
		Process: func(value string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			ms, ok := parseISO8601Millis(value)
			if !ok {
				warn("EXT-X-PROGRAM-DATE-TIME: unparsable timestamp " + value)
				return
			}
			st.CurrentSegment.ProgramDateTimeStart = &ms
			st.SetLastProgramDateTime(ms)
		},
	})
}

func registerAttributeTags(r *registry.Registry) {
	registerStart(r)
	registerPartInf(r)
	registerServerControl(r)
	registerKey(r)
	registerMap(r)
	registerPart(r)
	registerMedia(r)
	registerStreamInf(r)
	registerIFrameStreamInf(r)
	registerSkip(r)
	registerDateRange(r)
	registerPreloadHint(r)
	registerRenditionReport(r)
	registerSessionData(r)
	registerSessionKey(r)
	registerContentSteering(r)
	registerDefine(r)
}

func registerStart(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-START", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"TIME-OFFSET"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			offset, ok := parseFloatAttr(attrs["TIME-OFFSET"])
			if !ok {
				warn("EXT-X-START: unparsable TIME-OFFSET " + attrs["TIME-OFFSET"])
				return
			}
			pl.Start = &playlist.Start{
				TimeOffset: offset,
				Precise:    isYes(attrs["PRECISE"]),
			}
		},
	})
}

func registerPartInf(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-PART-INF", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"PART-TARGET"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			target, ok := parseFloatAttr(attrs["PART-TARGET"])
			if !ok {
				warn("EXT-X-PART-INF: unparsable PART-TARGET " + attrs["PART-TARGET"])
				return
			}
			pl.PartInf = &playlist.PartInf{PartTarget: target}
		},
	})
}

func registerServerControl(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-SERVER-CONTROL", registry.AttributeTagProcessor{
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			sc := &playlist.ServerControl{
				CanSkipDateRanges: isYes(attrs["CAN-SKIP-DATERANGES"]),
				CanBlockReload:    isYes(attrs["CAN-BLOCK-RELOAD"]),
			}
			if v, ok := attrs["CAN-SKIP-UNTIL"]; ok {
				if f, ok := parseFloatAttr(v); ok {
					sc.CanSkipUntil = &f
				}
			}
			if v, ok := attrs["HOLD-BACK"]; ok {
				if f, ok := parseFloatAttr(v); ok {
					sc.HoldBack = &f
				}
			}
			if v, ok := attrs["PART-HOLD-BACK"]; ok {
				if f, ok := parseFloatAttr(v); ok {
					sc.PartHoldBack = &f
				}
			}
			if sc.CanSkipDateRanges && sc.CanSkipUntil == nil {
				warn("EXT-X-SERVER-CONTROL: CAN-SKIP-DATERANGES requires CAN-SKIP-UNTIL")
			}
			pl.ServerControl = sc
		},
	})
}

func registerKey(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-KEY", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"METHOD"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			method := attrs["METHOD"]
			if method == "NONE" {
				st.CurrentEncryption = nil
				return
			}
			uri, ok := attrs["URI"]
			if !ok {
				warn("EXT-X-KEY: missing URI for METHOD=" + method)
				return
			}
			key := &playlist.Key{
				Method:            playlist.EncryptionMethod(method),
				URI:               uri,
				ResolvedURI:       resolveURI(uri, st),
				KeyFormat:         attrs["KEYFORMAT"],
				KeyFormatVersions: defaultKeyFormatVersions(attrs),
			}
			if iv, ok := attrs["IV"]; ok {
				key.IV = iv
			}
			st.CurrentEncryption = key
		},
	})
}

func registerMap(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-MAP", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"URI"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			m := &playlist.Map{URI: attrs["URI"], ResolvedURI: resolveURI(attrs["URI"], st)}
			if br, ok := attrs["BYTERANGE"]; ok {
				length, offset, hasOffset, ok := parseByteRangeSpec(br)
				if ok {
					if !hasOffset {
						offset = 0
					}
					m.ByteRange = &playlist.ByteRange{Start: offset, End: offset + length - 1}
				}
			}
			st.CurrentMap = m
		},
	})
}

func registerPart(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-PART", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"URI", "DURATION"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			dur, ok := parseFloatAttr(attrs["DURATION"])
			if !ok {
				warn("EXT-X-PART: unparsable DURATION " + attrs["DURATION"])
				return
			}
			part := playlist.PartialSegment{
				URI:         attrs["URI"],
				Duration:    dur,
				Independent: isYes(attrs["INDEPENDENT"]),
				Gap:         isYes(attrs["GAP"]),
			}
			if br, ok := attrs["BYTERANGE"]; ok {
				length, offset, hasOffset, ok := parseByteRangeSpec(br)
				if ok {
					if !hasOffset {
						offset = st.LastPartByteRangeEnd()
					}
					rng := playlist.ByteRange{Start: offset, End: offset + length - 1}
					part.ByteRange = &rng
					st.SetLastPartByteRangeEnd(rng.End + 1)
				}
			}
			st.CurrentSegment.Parts = append(st.CurrentSegment.Parts, part)
		},
	})
}

func registerMedia(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-MEDIA", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"TYPE", "GROUP-ID", "NAME"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			rendType := playlist.RenditionType(attrs["TYPE"])
			switch rendType {
			case playlist.RenditionAudio, playlist.RenditionVideo, playlist.RenditionSubtitles, playlist.RenditionClosedCaptions:
			default:
				warn("EXT-X-MEDIA: unsupported TYPE " + attrs["TYPE"])
				return
			}
			rend := &playlist.Rendition{
				Type:            rendType,
				GroupID:         attrs["GROUP-ID"],
				Name:            attrs["NAME"],
				Language:        attrs["LANGUAGE"],
				AssocLanguage:   attrs["ASSOC-LANGUAGE"],
				Default:         isYes(attrs["DEFAULT"]),
				AutoSelect:      isYes(attrs["AUTOSELECT"]),
				Forced:          isYes(attrs["FORCED"]),
				InstreamID:      attrs["INSTREAM-ID"],
				Characteristics: attrs["CHARACTERISTICS"],
				Channels:        attrs["CHANNELS"],
				URI:             attrs["URI"],
				ResolvedURI:     resolveURI(attrs["URI"], st),
			}
			pl.RenditionGroups.Add(rend)
		},
	})
}

func parseVariantAttrs(attrs map[string]string, warn registry.WarnFunc, tag string) *playlist.Variant {
	v := &playlist.Variant{Attributes: attrs}
	if bw, ok := attrs["BANDWIDTH"]; ok {
		if n, ok := parseIntAttr(bw); ok {
			v.Bandwidth = n
		} else {
			warn(tag + ": unparsable BANDWIDTH " + bw)
		}
	}
	if abw, ok := attrs["AVERAGE-BANDWIDTH"]; ok {
		if n, ok := parseIntAttr(abw); ok {
			v.AverageBandwidth = n
		}
	}
	if codecs, ok := attrs["CODECS"]; ok {
		v.Codecs = parseCodecs(codecs)
	}
	if res, ok := attrs["RESOLUTION"]; ok {
		if w, h, ok := parseResolutionAttr(res); ok {
			v.Resolution = &playlist.Resolution{Width: w, Height: h}
		}
	}
	if fr, ok := attrs["FRAME-RATE"]; ok {
		if f, ok := parseFloatAttr(fr); ok {
			v.FrameRate = f
		}
	}
	if pid, ok := attrs["PROGRAM-ID"]; ok {
		if n, ok := parseIntAttr(pid); ok {
			v.ProgramID = n
		}
	}
	v.Audio = attrs["AUDIO"]
	v.Video = attrs["VIDEO"]
	v.Subtitles = attrs["SUBTITLES"]
	v.ClosedCaptions = attrs["CLOSED-CAPTIONS"]
	v.HDCPLevel = attrs["HDCP-LEVEL"]
	return v
}

func registerStreamInf(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-STREAM-INF", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"BANDWIDTH"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			v := parseVariantAttrs(attrs, warn, "EXT-X-STREAM-INF")
			st.CurrentVariant = v
			st.IsMultivariantPlaylist = true
		},
	})
}

func registerIFrameStreamInf(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-I-FRAME-STREAM-INF", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"BANDWIDTH", "URI"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			v := parseVariantAttrs(attrs, warn, "EXT-X-I-FRAME-STREAM-INF")
			v.URI = attrs["URI"]
			v.IFrame = true
			st.IsMultivariantPlaylist = true
			pl.IFramePlaylists = append(pl.IFramePlaylists, v)
		},
	})
}

func registerSkip(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-SKIP", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"SKIPPED-SEGMENTS"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			n, ok := parseIntAttr(attrs["SKIPPED-SEGMENTS"])
			if !ok {
				warn("EXT-X-SKIP: unparsable SKIPPED-SEGMENTS " + attrs["SKIPPED-SEGMENTS"])
				return
			}
			skip := &playlist.Skip{SkippedSegments: n}
			// Per SPEC_FULL.md's Open Question resolution: split on tab
			// when the attribute is present, regardless of whether the
			// result is empty, rather than testing a constant name.
			if raw, ok := attrs["RECENTLY-REMOVED-DATERANGES"]; ok {
				if raw == "" {
					skip.RecentlyRemovedDateRanges = []string{}
				} else {
					skip.RecentlyRemovedDateRanges = strings.Split(raw, "\t")
				}
			} else {
				skip.RecentlyRemovedDateRanges = []string{}
			}
			pl.Skip = skip
		},
	})
}

func registerDateRange(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-DATERANGE", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"ID", "START-DATE"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			dr := &playlist.DateRange{
				ID:               attrs["ID"],
				Class:            attrs["CLASS"],
				StartDate:        attrs["START-DATE"],
				EndDate:          attrs["END-DATE"],
				EndOnNext:        isYes(attrs["END-ON-NEXT"]),
				ClientAttributes: make(map[string]interface{}),
			}
			if ms, ok := parseISO8601Millis(attrs["START-DATE"]); ok {
				dr.StartDateMillis = ms
			}
			if v, ok := attrs["DURATION"]; ok {
				if f, ok := parseFloatAttr(v); ok {
					dr.Duration = &f
				}
			}
			if v, ok := attrs["PLANNED-DURATION"]; ok {
				if f, ok := parseFloatAttr(v); ok {
					dr.PlannedDuration = &f
				}
			}
			if v, ok := attrs["SCTE35-CMD"]; ok {
				if b, ok := parseHexBytes(v); ok {
					dr.SCTE35Cmd = b
				}
			}
			if v, ok := attrs["SCTE35-OUT"]; ok {
				if b, ok := parseHexBytes(v); ok {
					dr.SCTE35Out = b
				}
			}
			if v, ok := attrs["SCTE35-IN"]; ok {
				if b, ok := parseHexBytes(v); ok {
					dr.SCTE35In = b
				}
			}
			for k, v := range attrs {
				if strings.HasPrefix(k, "X-") {
					if b, ok := parseHexBytes(v); ok && strings.HasPrefix(strings.ToLower(v), "0x") {
						dr.ClientAttributes[k] = b
					} else if f, err := strconv.ParseFloat(v, 64); err == nil {
						dr.ClientAttributes[k] = f
					} else {
						dr.ClientAttributes[k] = v
					}
				}
			}
			pl.DateRanges = append(pl.DateRanges, dr)
		},
	})
}

// preloadHintMaxSafeInteger is the open-range sentinel spec.md §4.3.3
// case 2 names. Nothing in this package references it; open-ended
// ranges are marked with PreloadHint.OpenEnded instead.
const preloadHintMaxSafeInteger = int64(1<<53 - 1)

func registerPreloadHint(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-PRELOAD-HINT", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"TYPE", "URI"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			hint := &playlist.PreloadHint{URI: attrs["URI"], ResolvedURI: resolveURI(attrs["URI"], st)}

			startStr, hasStart := attrs["BYTERANGE-START"]
			lengthStr, hasLength := attrs["BYTERANGE-LENGTH"]

			var start int64
			if hasStart {
				if v, ok := parseInt64Attr(startStr); ok {
					start = v
				}
			}

			switch {
			case hasStart && hasLength:
				if length, ok := parseInt64Attr(lengthStr); ok {
					end := start + length - 1
					hint.ByteRangeStart = &start
					hint.ByteRangeEnd = &end
				}
			case hasStart && !hasLength:
				// Case 2: an open-ended range from start to the end of
				// the resource.
				hint.ByteRangeStart = &start
				hint.OpenEnded = true
			case !hasStart && hasLength:
				if length, ok := parseInt64Attr(lengthStr); ok {
					zero := int64(0)
					end := length - 1
					hint.ByteRangeStart = &zero
					hint.ByteRangeEnd = &end
				}
			default:
				// Case 4: no byte range at all.
			}

			pl.PreloadHints[attrs["TYPE"]] = hint
		},
	})
}

func registerRenditionReport(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-RENDITION-REPORT", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"URI"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			rr := &playlist.RenditionReport{URI: attrs["URI"], ResolvedURI: resolveURI(attrs["URI"], st)}
			if v, ok := attrs["LAST-MSN"]; ok {
				if n, ok := parseIntAttr(v); ok {
					rr.LastMSN = &n
				}
			}
			if v, ok := attrs["LAST-PART"]; ok {
				if n, ok := parseIntAttr(v); ok {
					rr.LastPart = &n
				}
			}
			pl.RenditionReports = append(pl.RenditionReports, rr)
		},
	})
}

func registerSessionData(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-SESSION-DATA", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"DATA-ID"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			sd := &playlist.SessionData{
				DataID:   attrs["DATA-ID"],
				Value:    attrs["VALUE"],
				URI:      attrs["URI"],
				Language: attrs["LANGUAGE"],
			}
			pl.SessionData[sd.DataID] = sd
		},
	})
}

func registerSessionKey(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-SESSION-KEY", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"METHOD", "URI"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			key := &playlist.Key{
				Method:            playlist.EncryptionMethod(attrs["METHOD"]),
				URI:               attrs["URI"],
				ResolvedURI:       resolveURI(attrs["URI"], st),
				KeyFormat:         attrs["KEYFORMAT"],
				KeyFormatVersions: defaultKeyFormatVersions(attrs),
			}
			if iv, ok := attrs["IV"]; ok {
				key.IV = iv
			}
			pl.SessionKeys = append(pl.SessionKeys, key)
		},
	})
}

func registerContentSteering(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-CONTENT-STEERING", registry.AttributeTagProcessor{
		RequiredAttributes: []string{"SERVER-URI"},
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			pl.ContentSteering = &playlist.ContentSteering{
				ServerURI: attrs["SERVER-URI"],
				PathwayID: attrs["PATHWAY-ID"],
			}
		},
	})
}

func registerDefine(r *registry.Registry) {
	r.RegisterAttribute("EXT-X-DEFINE", registry.AttributeTagProcessor{
		SafeProcess: func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn registry.WarnFunc) {
			name, hasName := attrs["NAME"]
			imp, hasImport := attrs["IMPORT"]
			qp, hasQueryParam := attrs["QUERYPARAM"]

			set := 0
			if hasName {
				set++
			}
			if hasImport {
				set++
			}
			if hasQueryParam {
				set++
			}
			if set != 1 {
				warn("EXT-X-DEFINE: exactly one of NAME, IMPORT or QUERYPARAM must be set")
				return
			}

			switch {
			case hasName:
				pl.Define.Name[name] = attrs["VALUE"]
				st.HasVariablesForSubstitution = true
			case hasImport:
				var value string
				var found bool
				if st.BaseDefine != nil {
					if v, ok := st.BaseDefine.Name[imp]; ok {
						value, found = v, true
					} else if v, ok := st.BaseDefine.Import[imp]; ok {
						value, found = v, true
					} else if v, ok := st.BaseDefine.QueryParam[imp]; ok {
						value, found = v, true
					}
				}
				if !found {
					warn("EXT-X-DEFINE: IMPORT " + imp + " not found in base variable scope")
				}
				pl.Define.Import[imp] = value
				st.HasVariablesForSubstitution = true
			case hasQueryParam:
				var value string
				if base := st.BaseURLParsed(); base != nil {
					if vals, ok := base.Query()[qp]; ok && len(vals) > 0 {
						value = vals[0]
					} else {
						warn("EXT-X-DEFINE: QUERYPARAM " + qp + " not found in base URL")
					}
				} else {
					warn("EXT-X-DEFINE: QUERYPARAM " + qp + " not found in base URL")
				}
				pl.Define.QueryParam[qp] = value
				st.HasVariablesForSubstitution = true
			}
		},
	})
}
