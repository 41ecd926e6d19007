package vars

import (
	"regexp"
	"strings"
)

// Scope identifies which store a variable value came from.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeCollection
	ScopeDynamic
)

func (s Scope) String() string {
	switch s {
	case ScopeCollection:
		return "collection"
	case ScopeDynamic:
		return "dynamic"
	default:
		return "global"
	}
}

// Definition is one variable row as exposed to completion and hover:
// the name is the bare key without braces or scope prefix.
type Definition struct {
	Name  string
	Value string
	Scope Scope
}

type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentVariable
)

// Segment is one run of a template: either literal text or a single
// {{...}} reference. Name keeps the token exactly as written between
// the braces, scope prefix and leading $ included. Resolved is only
// meaningful on segments produced by OverlaySegments.
type Segment struct {
	Kind     SegmentKind
	Text     string
	Name     string
	Resolved bool
}

// Raw re-serializes the segment to its source form.
func (s Segment) Raw() string {
	if s.Kind == SegmentVariable {
		return "{{" + s.Name + "}}"
	}
	return s.Text
}

// Placeholders are {{name}}, {{scope.name}} or {{$dynamic}} with no
// whitespace inside the braces. Anything else between doubled braces,
// and any dangling brace pair, stays literal text.
var placeholderPattern = regexp.MustCompile(`\{\{(\$?[A-Za-z0-9_.]+)\}\}`)

// Parse splits text into literal and variable segments. It is total:
// every input produces a segment list whose Join equals the input, and
// parsing malformed syntax never fails, it just yields text segments.
func Parse(text string) []Segment {
	if text == "" {
		return nil
	}
	matches := placeholderPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Kind: SegmentText, Text: text}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > last {
			segments = append(segments, Segment{Kind: SegmentText, Text: text[last:start]})
		}
		segments = append(segments, Segment{Kind: SegmentVariable, Name: text[m[2]:m[3]]})
		last = end
	}
	if last < len(text) {
		segments = append(segments, Segment{Kind: SegmentText, Text: text[last:]})
	}
	return segments
}

// Join reconstructs the exact source text of a segment list.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Raw())
	}
	return b.String()
}

const (
	collectionPrefix = "collection."
	globalPrefix     = "global."
)

type refKind int

const (
	refBare refKind = iota
	refCollection
	refGlobal
	refDynamic
)

// classify splits a placeholder token into its reference kind and the
// store lookup key. Only a literal "collection." or "global." prefix
// scopes a reference; any other dotted name ("foo.bar") is treated as
// a bare key, dots and all.
func classify(token string) (refKind, string) {
	switch {
	case strings.HasPrefix(token, "$"):
		return refDynamic, token
	case strings.HasPrefix(token, collectionPrefix):
		return refCollection, token[len(collectionPrefix):]
	case strings.HasPrefix(token, globalPrefix):
		return refGlobal, token[len(globalPrefix):]
	default:
		return refBare, token
	}
}
