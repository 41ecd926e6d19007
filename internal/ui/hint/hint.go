// Package hint implements variable autocomplete for {{...}} tokens:
// trigger detection while typing, candidate filtering and ranking, and
// the splice that rewrites the field when a suggestion is accepted.
//
// Detection looks at the text leading up to the caret only, so a
// trigger inside an already closed pair further left never fires.
package hint

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/unkn0wn-root/restbench/internal/vars"
)

// Trigger describes whether the tail of the text is an in-progress
// placeholder and what has been typed of it so far.
type Trigger struct {
	Active      bool
	SearchTerm  string
	DynamicOnly bool
}

// Detect inspects text for an unclosed {{ token at its tail. A lone
// "$" right after the braces restricts the match to dynamic variables
// before any name characters arrive.
func Detect(text string) Trigger {
	idx := strings.LastIndex(text, "{{")
	if idx < 0 {
		return Trigger{}
	}
	rest := text[idx+2:]
	if strings.Contains(rest, "}}") {
		return Trigger{}
	}
	if rest == "$" {
		return Trigger{Active: true, DynamicOnly: true}
	}
	if strings.HasPrefix(rest, "$") {
		return Trigger{Active: true, SearchTerm: rest[1:], DynamicOnly: true}
	}
	return Trigger{Active: true, SearchTerm: rest}
}

// Candidate is one completion row. Name is the text to insert between
// the braces: bare for store variables until Filter folds an explicit
// scope prefix in, $-prefixed for dynamics.
type Candidate struct {
	Name        string
	Value       string
	Scope       vars.Scope
	Description string
}

// Candidates builds completion rows from variable definitions,
// attaching catalog descriptions to dynamic names.
func Candidates(defs []vars.Definition) []Candidate {
	cands := make([]Candidate, 0, len(defs))
	for _, def := range defs {
		cand := Candidate{Name: def.Name, Value: def.Value, Scope: def.Scope}
		if def.Scope == vars.ScopeDynamic {
			if dyn, ok := vars.LookupDynamic(def.Name); ok {
				cand.Description = dyn.Description
			}
		}
		cands = append(cands, cand)
	}
	return cands
}

const (
	collectionPrefix = "collection."
	globalPrefix     = "global."
)

// Filter narrows candidates to the trigger's search term. Matching is
// substring and case-insensitive. A literal "collection." or "global."
// prefix in the term pins that scope and folds itself into the
// surviving names so the eventual insert carries it. Results are
// ranked dynamic first, then collection, then global, names ordered
// within each scope.
func Filter(cands []Candidate, trig Trigger) []Candidate {
	if !trig.Active {
		return nil
	}

	term := trig.SearchTerm
	scopePin := vars.Scope(-1)
	fold := ""
	switch {
	case trig.DynamicOnly:
		scopePin = vars.ScopeDynamic
	case strings.HasPrefix(term, collectionPrefix):
		scopePin = vars.ScopeCollection
		fold = collectionPrefix
		term = term[len(collectionPrefix):]
	case strings.HasPrefix(term, globalPrefix):
		scopePin = vars.ScopeGlobal
		fold = globalPrefix
		term = term[len(globalPrefix):]
	}
	needle := strings.ToLower(term)

	matched := make([]Candidate, 0, len(cands))
	for _, cand := range cands {
		if scopePin >= 0 && cand.Scope != scopePin {
			continue
		}
		name := cand.Name
		if cand.Scope == vars.ScopeDynamic {
			name = strings.TrimPrefix(name, "$")
		}
		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		if fold != "" {
			cand.Name = fold + cand.Name
		}
		matched = append(matched, cand)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		pi, pj := scopeRank(matched[i].Scope), scopeRank(matched[j].Scope)
		if pi != pj {
			return pi < pj
		}
		return matched[i].Name < matched[j].Name
	})
	return matched
}

func scopeRank(scope vars.Scope) int {
	switch scope {
	case vars.ScopeDynamic:
		return 0
	case vars.ScopeCollection:
		return 1
	default:
		return 2
	}
}

// Apply splices an accepted name into text: the partial token after
// the last {{ is replaced, an existing closing brace pair is consumed,
// and anything after it survives. The returned caret is a rune offset
// just past the new closing braces.
func Apply(text, name string) (string, int) {
	idx := strings.LastIndex(text, "{{")
	if idx < 0 {
		return text, utf8.RuneCountInString(text)
	}
	tail := ""
	if j := strings.Index(text[idx+2:], "}}"); j >= 0 {
		tail = text[idx+2+j+2:]
	}
	next := text[:idx] + "{{" + name + "}}" + tail
	caret := utf8.RuneCountInString(text[:idx]) + utf8.RuneCountInString(name) + 4
	return next, caret
}
