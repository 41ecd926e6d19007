package vars

import "strings"

// OverlaySegments re-parses text and marks each variable segment as
// resolved or not for capsule rendering. The k-th variable segment is
// paired with the k-th info row from a Resolve over the same text, so
// resolved means "produced a non-empty value" there. Dynamic names are
// recognized by their leading $ alone: an unrecognized $name still
// renders as resolved, the convention is trusted without a catalog
// lookup.
func OverlaySegments(text string, infos []VariableInfo) []Segment {
	segments := Parse(text)
	k := 0
	for i := range segments {
		if segments[i].Kind != SegmentVariable {
			continue
		}
		if strings.HasPrefix(segments[i].Name, "$") {
			segments[i].Resolved = true
		} else if k < len(infos) {
			segments[i].Resolved = infos[k].Value != ""
		}
		k++
	}
	return segments
}
