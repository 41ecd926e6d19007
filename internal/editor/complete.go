package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/unkn0wn-root/restbench/internal/ui/hint"
	"github.com/unkn0wn-root/restbench/internal/vars"
)

// CompletionItem is one suggestion row. InsertText carries only the
// closing portion (name plus closing braces); Range spans the user's
// partial token from just after the opening braces to the caret, so
// applying the edit never duplicates what was already typed.
type CompletionItem struct {
	Label         string
	InsertText    string
	Detail        string
	Documentation string
	Range         Range
}

const detailPreviewLimit = 40

// VariableCompletionProvider suggests workspace variables inside
// unclosed {{ tokens. It holds the candidate list it was attached
// with; when variables change the session re-registers a fresh one
// rather than mutating this in place.
type VariableCompletionProvider struct {
	candidates []hint.Candidate
}

func NewVariableCompletionProvider(defs []vars.Definition) *VariableCompletionProvider {
	return &VariableCompletionProvider{candidates: hint.Candidates(defs)}
}

func (p *VariableCompletionProvider) Complete(line string, pos Position) []CompletionItem {
	prefix, ok := runePrefix(line, pos.Column)
	if !ok {
		return nil
	}
	braceIdx := strings.LastIndex(prefix, "{{")
	if braceIdx < 0 {
		return nil
	}
	trig := hint.Detect(prefix)
	if !trig.Active {
		return nil
	}

	// The replace range opens right after the {{ pair: one for the
	// 1-based column plus two for the braces themselves.
	startColumn := utf8.RuneCountInString(prefix[:braceIdx]) + 3
	span := Range{
		Start: Position{Line: pos.Line, Column: startColumn},
		End:   Position{Line: pos.Line, Column: pos.Column},
	}

	matches := hint.Filter(p.candidates, trig)
	items := make([]CompletionItem, 0, len(matches))
	for _, cand := range matches {
		items = append(items, CompletionItem{
			Label:         cand.Name,
			InsertText:    cand.Name + "}}",
			Detail:        candidateDetail(cand),
			Documentation: candidateDocumentation(cand),
			Range:         span,
		})
	}
	return items
}

// runePrefix cuts line at a 1-based rune column. A column outside the
// line reports false, matching how editors refuse stale positions.
func runePrefix(line string, column int) (string, bool) {
	if column < 1 {
		return "", false
	}
	runes := []rune(line)
	if column-1 > len(runes) {
		return "", false
	}
	return string(runes[:column-1]), true
}

func candidateDetail(cand hint.Candidate) string {
	if cand.Scope == vars.ScopeDynamic {
		return cand.Description
	}
	return previewValue(cand.Value)
}

func previewValue(value string) string {
	if value == "" {
		return "(no value set)"
	}
	runes := []rune(value)
	if len(runes) <= detailPreviewLimit {
		return value
	}
	return string(runes[:detailPreviewLimit]) + "…"
}

func candidateDocumentation(cand hint.Candidate) string {
	lines := make([]string, 0, 3)
	lines = append(lines, cand.Scope.String()+" variable")
	if cand.Description != "" {
		lines = append(lines, cand.Description)
	}
	if cand.Scope != vars.ScopeDynamic {
		if cand.Value != "" {
			lines = append(lines, "Value: "+cand.Value)
		} else {
			lines = append(lines, "(no value set)")
		}
	}
	lines = append(lines, "Usage: {{"+cand.Name+"}}")
	return strings.Join(lines, "\n")
}
