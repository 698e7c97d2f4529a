// Package registry holds the three built-in tag-processor maps (empty,
// value, attribute) plus the caller-supplied custom map and hooks, and
// implements the dispatch order from spec.md §4.3.
package registry

import (
	"github.com/ar13101085/hls-playlist/m3u8/playlist"
	"github.com/ar13101085/hls-playlist/m3u8/shared"
	"github.com/ar13101085/hls-playlist/m3u8/variables"
)

// WarnFunc receives a human-readable diagnostic. The parser never
// throws for input problems; every recoverable defect flows through here.
type WarnFunc func(message string)

// DebugFunc receives optional tracing data; arguments are free-form.
type DebugFunc func(args ...interface{})

// EmptyTagProcessor handles a tag with no value and no attributes
// (e.g. EXT-X-ENDLIST).
type EmptyTagProcessor func(pl *playlist.Playlist, st *shared.State)

// ValueTagProcessor handles a tag whose body is a bare value
// (e.g. EXTINF). Process does its own coercion and reports an
// unparsable value through warn.
type ValueTagProcessor struct {
	Process func(value string, pl *playlist.Playlist, st *shared.State, warn WarnFunc)
}

// AttributeTagProcessor handles a tag whose body is an attribute list
// (e.g. EXT-X-KEY). RequiredAttributes lists attribute keys whose
// absence aborts processing of the tag with a warning.
type AttributeTagProcessor struct {
	RequiredAttributes []string
	SafeProcess        func(attrs map[string]string, pl *playlist.Playlist, st *shared.State, warn WarnFunc)
}

// CustomTagHandler is the caller-supplied handler invoked for tags in
// the custom map, per spec.md §4.3 step 5.
type CustomTagHandler func(tagKey string, value string, hasValue bool, attrs map[string]string, hasAttrs bool, custom map[string]interface{}, st *shared.State)

// TransformTagValueFunc is the pre-dispatch value hook (spec.md §6.3).
// Returning ok=false causes a "no tag value" warning and aborts
// processing of that tag.
type TransformTagValueFunc func(tagKey, value string) (string, bool)

// TransformTagAttributesFunc is the pre-dispatch attribute hook.
type TransformTagAttributesFunc func(tagKey string, attrs map[string]string) map[string]string

// Registry holds the built-in per-tag processor maps.
type Registry struct {
	EmptyTagMap     map[string]EmptyTagProcessor
	ValueTagMap     map[string]ValueTagProcessor
	AttributeTagMap map[string]AttributeTagProcessor
}

// New returns an empty Registry; processors register themselves into it
// via the Register* methods.
func New() *Registry {
	return &Registry{
		EmptyTagMap:     make(map[string]EmptyTagProcessor),
		ValueTagMap:     make(map[string]ValueTagProcessor),
		AttributeTagMap: make(map[string]AttributeTagProcessor),
	}
}

// RegisterEmpty adds an empty-tag processor.
func (r *Registry) RegisterEmpty(tag string, p EmptyTagProcessor) {
	r.EmptyTagMap[tag] = p
}

// RegisterValue adds a value-tag processor.
func (r *Registry) RegisterValue(tag string, p ValueTagProcessor) {
	r.ValueTagMap[tag] = p
}

// RegisterAttribute adds an attribute-tag processor.
func (r *Registry) RegisterAttribute(tag string, p AttributeTagProcessor) {
	r.AttributeTagMap[tag] = p
}

// Hooks bundles the caller-supplied, per-parser dispatch options from
// spec.md §6.3 that the dispatcher consults alongside the built-in maps.
type Hooks struct {
	IgnoreTags              map[string]struct{}
	CustomTagMap            map[string]CustomTagHandler
	TransformTagValue       TransformTagValueFunc
	TransformTagAttributes  TransformTagAttributesFunc
	Warn                    WarnFunc
	Debug                   DebugFunc
}

func (h *Hooks) warn(msg string) {
	if h.Warn != nil {
		h.Warn(msg)
	}
}

func (h *Hooks) debug(args ...interface{}) {
	if h.Debug != nil {
		h.Debug(args...)
	}
}

// TagEvent is the minimal shape of a scanner tag event the dispatcher
// needs; kept separate from scanner.Event to avoid an import cycle and
// to let the dispatcher be driven by anything shaped like a tag.
type TagEvent struct {
	TagKey        string
	HasValue      bool
	Value         string
	HasAttributes bool
	Attributes    map[string]string
}

// Dispatch implements the six-step lookup order of spec.md §4.3.
func (r *Registry) Dispatch(ev TagEvent, pl *playlist.Playlist, st *shared.State, h *Hooks) {
	if _, ignored := h.IgnoreTags[ev.TagKey]; ignored {
		h.warn("ignoring tag in ignore list: " + ev.TagKey)
		return
	}

	if proc, ok := r.EmptyTagMap[ev.TagKey]; ok {
		proc(pl, st)
		return
	}

	if proc, ok := r.ValueTagMap[ev.TagKey]; ok {
		value := ev.Value
		if h.TransformTagValue != nil {
			transformed, ok := h.TransformTagValue(ev.TagKey, value)
			if !ok {
				h.warn("missing tag value for " + ev.TagKey)
				return
			}
			value = transformed
		} else if !ev.HasValue {
			h.warn("missing tag value for " + ev.TagKey)
			return
		}
		proc.Process(value, pl, st, h.Warn)
		return
	}

	if proc, ok := r.AttributeTagMap[ev.TagKey]; ok {
		attrs := ev.Attributes
		if attrs == nil {
			attrs = make(map[string]string)
		}
		if h.TransformTagAttributes != nil {
			attrs = h.TransformTagAttributes(ev.TagKey, attrs)
		}
		if st.HasVariablesForSubstitution {
			substituted := make(map[string]string, len(attrs))
			for k, v := range attrs {
				substituted[k] = variables.Substitute(v, &pl.Define, func(name string) {
					h.warn("missing variable {$" + name + "} referenced in " + ev.TagKey)
				})
			}
			attrs = substituted
		}
		for _, required := range proc.RequiredAttributes {
			if _, present := attrs[required]; !present {
				h.warn(ev.TagKey + " is missing required attribute " + required)
				return
			}
		}
		proc.SafeProcess(attrs, pl, st, h.Warn)
		return
	}

	if handler, ok := h.CustomTagMap[ev.TagKey]; ok {
		handler(ev.TagKey, ev.Value, ev.HasValue, ev.Attributes, ev.HasAttributes, pl.Custom, st)
		return
	}

	h.warn("unsupported tag: " + ev.TagKey)
}
