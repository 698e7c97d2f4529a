// Package parser is the façade: it drives the character scanner and the
// tag dispatcher in either of two modes (one-shot and incremental) over
// the same internal state, per spec.md §4.6.
package parser

import (
	"github.com/ar13101085/hls-playlist/m3u8/assembler"
	"github.com/ar13101085/hls-playlist/m3u8/playlist"
	"github.com/ar13101085/hls-playlist/m3u8/processors"
	"github.com/ar13101085/hls-playlist/m3u8/registry"
	"github.com/ar13101085/hls-playlist/m3u8/scanner"
	"github.com/ar13101085/hls-playlist/m3u8/shared"
)

// Options configures a Parser instance; every field is optional.
type Options struct {
	Warn                   registry.WarnFunc
	Debug                  registry.DebugFunc
	CustomTagMap           map[string]registry.CustomTagHandler
	IgnoreTags             map[string]struct{}
	TransformTagValue      registry.TransformTagValueFunc
	TransformTagAttributes registry.TransformTagAttributesFunc
}

// ParseOptions configures one parse (or one progressive session): the
// base URL segment/variant URIs resolve against, the caller-supplied
// variable scope EXT-X-DEFINE IMPORT draws from, and the time offset the
// first segment's StartTime is measured from.
type ParseOptions struct {
	BaseURL    string
	BaseDefine *playlist.Define
	BaseTime   float64
}

// Parser drives the scanner and dispatcher. It is single-threaded and
// cooperative: no method blocks, and a Parser must not be used from more
// than one goroutine at a time. Independent Parsers may run in parallel.
type Parser struct {
	opts     Options
	registry *registry.Registry

	sc  *scanner.Scanner
	pl  *playlist.Playlist
	st  *shared.State
	hks *registry.Hooks

	started bool
}

// defaultRegistry is shared by every Parser built with NewDefault; it
// holds no per-parse state, only the built-in tag->processor maps, so
// sharing it across Parser instances is safe.
var defaultRegistry = func() *registry.Registry {
	r := registry.New()
	processors.RegisterAll(r)
	return r
}()

// New returns a Parser configured with opts, dispatching against reg.
// Use NewDefault unless the caller needs a registry with a non-standard
// processor set.
func New(opts Options, reg *registry.Registry) *Parser {
	p := &Parser{opts: opts, registry: reg}
	p.hks = &registry.Hooks{
		IgnoreTags:             opts.IgnoreTags,
		CustomTagMap:           opts.CustomTagMap,
		TransformTagValue:      opts.TransformTagValue,
		TransformTagAttributes: opts.TransformTagAttributes,
		Warn:                   opts.Warn,
		Debug:                  opts.Debug,
	}
	return p
}

// NewDefault returns a Parser wired with every built-in tag processor.
func NewDefault(opts Options) *Parser {
	return New(opts, defaultRegistry)
}

func (p *Parser) ensureStarted(po ParseOptions) {
	if p.started {
		return
	}
	p.sc = scanner.New()
	p.pl = playlist.New()
	p.st = shared.New(po.BaseURL, po.BaseTime, po.BaseDefine)
	p.started = true
}

// feed drives the scanner over one chunk of characters, dispatching any
// events it emits.
func (p *Parser) feed(chunk string) {
	for i := 0; i < len(chunk); i++ {
		ev, ok := p.sc.Feed(chunk[i])
		if !ok {
			continue
		}
		p.handleEvent(ev)
	}
}

func (p *Parser) handleEvent(ev scanner.Event) {
	switch ev.Kind {
	case scanner.EventTag:
		p.registry.Dispatch(registry.TagEvent{
			TagKey:        ev.TagKey,
			HasValue:      ev.HasValue,
			Value:         ev.Value,
			HasAttributes: ev.HasAttributes,
			Attributes:    ev.Attributes,
		}, p.pl, p.st, p.hks)
	case scanner.EventURI:
		assembler.Finalize(ev.URI, p.pl, p.st, p.opts.Warn)
	}
}

// Push consumes one chunk of a progressive parse. The state machine is
// created lazily on the first Push and retained across calls; a chunk
// ending mid-line leaves its accumulator in place for the next Push.
func (p *Parser) Push(chunk string, po ParseOptions) {
	p.ensureStarted(po)
	p.feed(chunk)
}

// Done finalizes a progressive parse: it injects a synthetic trailing
// newline (so a final line without one is still recognized), snapshots
// the resulting playlist, and resets the parser for reuse. Calling Push
// again after Done starts a new parse.
func (p *Parser) Done() *playlist.Playlist {
	if !p.started {
		p.ensureStarted(ParseOptions{})
	}
	p.feed("\n")
	result := p.pl
	p.clean()
	return result
}

// ParseFull consumes an entire input in one call: it feeds every
// character, injects the synthetic trailing newline, snapshots, and
// resets. It is equivalent to one Push of the whole text followed by
// Done.
func (p *Parser) ParseFull(text string, po ParseOptions) *playlist.Playlist {
	p.ensureStarted(po)
	p.feed(text)
	return p.Done()
}

// clean resets the parser's internal state to defaults, making it safe
// to reuse for another parse.
func (p *Parser) clean() {
	p.sc = nil
	p.pl = nil
	p.st = nil
	p.started = false
}
