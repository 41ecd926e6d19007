package editor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/unkn0wn-root/restbench/internal/vars"
)

// Hover is tooltip content plus the placeholder span it describes.
type Hover struct {
	Contents string
	Range    Range
}

// hoverPattern is stricter than the live parse grammar: one optional
// dot, as a scope separator or a plain dotted key, nothing else.
var hoverPattern = regexp.MustCompile(`\{\{(\$?[A-Za-z0-9_]+(?:\.[A-Za-z0-9_]+)?)\}\}`)

// hoverWindow bounds the scan around the caret so a pathological
// one-line document stays cheap to hover.
const hoverWindow = 200

// VariableHoverProvider describes the placeholder under the caret
// against the snapshot it was attached with.
type VariableHoverProvider struct {
	snap vars.Snapshot
}

func NewVariableHoverProvider(snap vars.Snapshot) *VariableHoverProvider {
	return &VariableHoverProvider{snap: snap}
}

func (p *VariableHoverProvider) Hover(line string, pos Position) (Hover, bool) {
	runes := []rune(line)
	cursor := pos.Column - 1
	if cursor < 0 || cursor > len(runes) {
		return Hover{}, false
	}

	lo := cursor - hoverWindow
	if lo < 0 {
		lo = 0
	}
	hi := cursor + hoverWindow
	if hi > len(runes) {
		hi = len(runes)
	}
	window := string(runes[lo:hi])

	token, span, ok := matchAtCursor(window, lo, cursor)
	if !ok {
		return Hover{}, false
	}
	span.Start.Line = pos.Line
	span.End.Line = pos.Line

	return Hover{Contents: p.describe(token), Range: span}, true
}

// matchAtCursor finds the placeholder whose span contains the caret,
// preferring the one whose center is nearest when spans touch. Offsets
// in and out are rune counts; base is the window's offset in the line.
func matchAtCursor(window string, base, cursor int) (string, Range, bool) {
	matches := hoverPattern.FindAllStringSubmatchIndex(window, -1)
	if len(matches) == 0 {
		return "", Range{}, false
	}

	bestDist := -1
	var token string
	var span Range
	for _, m := range matches {
		start := base + runeLen(window[:m[0]])
		end := base + runeLen(window[:m[1]])
		if cursor < start || cursor > end {
			continue
		}
		center := (start + end) / 2
		dist := cursor - center
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			token = window[m[2]:m[3]]
			span = Range{
				Start: Position{Column: start + 1},
				End:   Position{Column: end + 1},
			}
		}
	}
	return token, span, bestDist >= 0
}

func runeLen(s string) int {
	return len([]rune(s))
}

func (p *VariableHoverProvider) describe(token string) string {
	def, found := vars.ResolveOne(token, p.snap)
	if !found {
		if strings.HasPrefix(token, "$") {
			return fmt.Sprintf("{{%s}}\nUnknown dynamic variable", token)
		}
		return fmt.Sprintf(
			"{{%s}}\nVariable %q not found in the active environments",
			token,
			def.Name,
		)
	}

	lines := []string{"{{" + token + "}}", def.Scope.String() + " variable"}
	if def.Scope == vars.ScopeDynamic {
		if dyn, ok := vars.LookupDynamic(token); ok {
			lines = append(lines, dyn.Description)
		}
	}
	if def.Value == "" {
		lines = append(lines, "(no value set)")
	} else {
		lines = append(lines, "Value: "+def.Value)
	}
	return strings.Join(lines, "\n")
}
