package vars

import "strings"

// Snapshot is the read-only store pair a resolution runs against.
// Maps are never mutated here; callers hand in whatever layering the
// workspace currently has (either map may be nil).
type Snapshot struct {
	Collection map[string]string
	Global     map[string]string
}

// VariableInfo records one placeholder occurrence in document order.
// Name is the token as written between the braces.
type VariableInfo struct {
	Name         string
	Value        string
	Scope        Scope
	OriginalText string
}

type Result struct {
	Resolved   string
	Unresolved []string
	Variables  []VariableInfo
}

// Resolve substitutes every placeholder in text against snap in a
// single pass. Substituted values are inserted literally and never
// re-scanned, so a value containing {{...}} syntax stays as-is.
// Unresolved lists the token of every occurrence that produced an
// empty value, duplicates included; dynamic references never appear
// there. Resolve cannot fail: unknown names become empty strings.
func Resolve(text string, snap Snapshot) Result {
	segments := Parse(text)
	if len(segments) == 0 {
		return Result{}
	}

	var out strings.Builder
	out.Grow(len(text))
	result := Result{}
	for _, seg := range segments {
		if seg.Kind == SegmentText {
			out.WriteString(seg.Text)
			continue
		}
		info := resolveToken(seg.Name, snap)
		out.WriteString(info.Value)
		if info.Scope != ScopeDynamic && info.Value == "" {
			result.Unresolved = append(result.Unresolved, seg.Name)
		}
		result.Variables = append(result.Variables, info)
	}
	result.Resolved = out.String()
	return result
}

// ResolveOne applies the single-reference rule to a bare token. The
// boolean reports whether the name exists in any store at all, which
// is a stronger statement than a non-empty value: hover distinguishes
// "not found" from "defined but empty", the resolver does not.
func ResolveOne(token string, snap Snapshot) (Definition, bool) {
	kind, key := classify(token)
	switch kind {
	case refDynamic:
		if dyn, ok := LookupDynamic(token); ok {
			return Definition{Name: token, Value: dyn.Generate(), Scope: ScopeDynamic}, true
		}
		return Definition{Name: token, Scope: ScopeDynamic}, false
	case refCollection:
		value, ok := lookup(snap.Collection, key)
		return Definition{Name: key, Value: value, Scope: ScopeCollection}, ok
	case refGlobal:
		value, ok := lookup(snap.Global, key)
		return Definition{Name: key, Value: value, Scope: ScopeGlobal}, ok
	default:
		if value, ok := lookup(snap.Collection, key); ok && value != "" {
			return Definition{Name: key, Value: value, Scope: ScopeCollection}, true
		}
		if value, ok := lookup(snap.Global, key); ok {
			return Definition{Name: key, Value: value, Scope: ScopeGlobal}, true
		}
		// A present-but-empty collection entry still counts as found
		// even though unscoped precedence skipped it for the value.
		if _, ok := lookup(snap.Collection, key); ok {
			return Definition{Name: key, Scope: ScopeCollection}, true
		}
		return Definition{Name: key, Scope: ScopeGlobal}, false
	}
}

func resolveToken(token string, snap Snapshot) VariableInfo {
	original := "{{" + token + "}}"
	kind, key := classify(token)
	switch kind {
	case refDynamic:
		value := ""
		if dyn, ok := LookupDynamic(token); ok {
			value = dyn.Generate()
		}
		return VariableInfo{Name: token, Value: value, Scope: ScopeDynamic, OriginalText: original}
	case refCollection:
		value, _ := lookup(snap.Collection, key)
		return VariableInfo{Name: token, Value: value, Scope: ScopeCollection, OriginalText: original}
	case refGlobal:
		value, _ := lookup(snap.Global, key)
		return VariableInfo{Name: token, Value: value, Scope: ScopeGlobal, OriginalText: original}
	default:
		if value, ok := lookup(snap.Collection, key); ok && value != "" {
			return VariableInfo{Name: token, Value: value, Scope: ScopeCollection, OriginalText: original}
		}
		value, _ := lookup(snap.Global, key)
		return VariableInfo{Name: token, Value: value, Scope: ScopeGlobal, OriginalText: original}
	}
}

func lookup(store map[string]string, key string) (string, bool) {
	if store == nil {
		return "", false
	}
	value, ok := store[key]
	return value, ok
}

// Definitions flattens a snapshot into completion candidates: dynamic
// catalog entries first, then collection keys, then global keys. The
// caller sorts; order here only fixes which duplicates survive when a
// name exists in both stores (both rows are kept, scopes differ).
func (s Snapshot) Definitions() []Definition {
	defs := make([]Definition, 0, len(dynamicCatalog)+len(s.Collection)+len(s.Global))
	for _, dyn := range Dynamics() {
		defs = append(defs, Definition{Name: dyn.Name, Value: "", Scope: ScopeDynamic})
	}
	for name, value := range s.Collection {
		defs = append(defs, Definition{Name: name, Value: value, Scope: ScopeCollection})
	}
	for name, value := range s.Global {
		defs = append(defs, Definition{Name: name, Value: value, Scope: ScopeGlobal})
	}
	return defs
}
