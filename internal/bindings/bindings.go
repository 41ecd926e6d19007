// Package bindings resolves keyboard shortcuts for the workbench.
// Defaults live in definitions.go; users may override them with a
// bindings.toml or bindings.json in the config directory.
package bindings

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/unkn0wn-root/restbench/internal/errdef"
)

// Format identifies the serialization format for shortcut configs.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Source describes where the bindings config was loaded from.
type Source struct {
	Path   string
	Format Format
}

// ActionID uniquely identifies a shortcut action.
type ActionID string

// Binding represents a resolved shortcut binding.
type Binding struct {
	Action ActionID
	Steps  []string
}

// Map stores runtime shortcut bindings and lookup helpers.
type Map struct {
	single        map[string]bindingRef
	chords        map[string]map[string]bindingRef
	chordPrefixes map[string]struct{}
	actions       map[ActionID][]bindingRef
}

type bindingRef struct {
	action ActionID
	steps  []string
}

// Load attempts to read bindings from bindings.toml/json in dir. Missing files fall back to defaults.
func Load(dir string) (*Map, Source, error) {
	candidates := []Source{
		{Path: filepath.Join(dir, "bindings.toml"), Format: FormatTOML},
		{Path: filepath.Join(dir, "bindings.json"), Format: FormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				errdef.Wrap(errdef.CodeFilesystem, err, "read bindings %q", candidate.Path),
			)
			continue
		}
		overrides, err := parseConfig(data, candidate.Format)
		if err != nil {
			return nil, Source{}, errdef.Wrap(errdef.CodeParse, err, "parse bindings %q", candidate.Path)
		}
		built, err := buildMap(overrides)
		if err != nil {
			return nil, Source{}, errdef.Wrap(errdef.CodeParse, err, "apply bindings %q", candidate.Path)
		}
		return built, candidate, nil
	}

	if accumulated != nil {
		return nil, Source{}, accumulated
	}

	built, err := buildMap(nil)
	if err != nil {
		return nil, Source{}, err
	}
	return built, Source{Path: candidates[0].Path, Format: FormatTOML}, nil
}

// DefaultMap builds the built-in bindings without consulting disk.
func DefaultMap() *Map {
	m, err := buildMap(nil)
	if err != nil {
		panic(err)
	}
	return m
}

// MatchSingle returns the binding bound to a single-step shortcut, if any.
func (m *Map) MatchSingle(key string) (Binding, bool) {
	if m == nil {
		return Binding{}, false
	}
	ref, ok := m.single[key]
	if !ok {
		return Binding{}, false
	}
	return ref.binding(), true
}

// HasChordPrefix reports whether the given key can start a chord sequence.
func (m *Map) HasChordPrefix(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.chordPrefixes[key]
	return ok
}

// ResolveChord resolves a chord prefix + next key into a binding.
func (m *Map) ResolveChord(prefix, next string) (Binding, bool) {
	if m == nil {
		return Binding{}, false
	}
	nextMap, ok := m.chords[prefix]
	if !ok {
		return Binding{}, false
	}
	ref, ok := nextMap[next]
	if !ok {
		return Binding{}, false
	}
	return ref.binding(), true
}

// Bindings returns a copy of every binding for the provided action.
func (m *Map) Bindings(action ActionID) []Binding {
	if m == nil {
		return nil
	}
	refs, ok := m.actions[action]
	if !ok || len(refs) == 0 {
		return nil
	}
	out := make([]Binding, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.binding())
	}
	return out
}

func (ref bindingRef) binding() Binding {
	seq := make([]string, len(ref.steps))
	copy(seq, ref.steps)
	return Binding{Action: ref.action, Steps: seq}
}

type configFile struct {
	Bindings map[string][]string `json:"bindings" toml:"bindings"`
}

func parseConfig(data []byte, format Format) (map[ActionID][][]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var payload configFile
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	default:
		return nil, errdef.New(errdef.CodeParse, "unsupported format %q", format)
	}

	if len(payload.Bindings) == 0 {
		return nil, nil
	}

	overrides := make(map[ActionID][][]string, len(payload.Bindings))
	for key, specs := range payload.Bindings {
		id := ActionID(key)
		def, ok := definitionLookup[id]
		if !ok {
			return nil, errdef.New(errdef.CodeParse, "unknown action %q", key)
		}
		sequences := make([][]string, 0, len(specs))
		for _, spec := range specs {
			seq, err := parseSequence(spec)
			if err != nil {
				return nil, errdef.Wrap(errdef.CodeParse, err, "action %q", key)
			}
			sequences = append(sequences, seq)
		}
		overrides[def.id] = sequences
	}
	return overrides, nil
}

func buildMap(overrides map[ActionID][][]string) (*Map, error) {
	bindingsByAction := make(map[ActionID][][]string, len(definitions))
	singleStepOnly := make(map[ActionID]bool, len(definitions))
	for _, def := range definitions {
		singleStepOnly[def.id] = def.singleStep
		defaults := make([][]string, len(def.defaults))
		for i, seq := range def.defaults {
			cp := make([]string, len(seq))
			copy(cp, seq)
			defaults[i] = cp
		}
		bindingsByAction[def.id] = defaults
	}

	for id, seqs := range overrides {
		// copy to avoid retaining slices backed by decode buffer
		dup := make([][]string, len(seqs))
		for i, seq := range seqs {
			cp := make([]string, len(seq))
			copy(cp, seq)
			dup[i] = cp
		}
		bindingsByAction[id] = dup
	}

	single := make(map[string]bindingRef)
	chords := make(map[string]map[string]bindingRef)
	chordPrefixes := make(map[string]struct{})
	actions := make(map[ActionID][]bindingRef, len(definitions))

	for id, seqs := range bindingsByAction {
		seen := make(map[string]struct{})
		for _, seq := range seqs {
			if len(seq) == 0 {
				continue
			}
			if len(seq) > 2 {
				return nil, errdef.New(errdef.CodeParse, "action %s: bindings may not exceed two steps", id)
			}
			if singleStepOnly[id] && len(seq) != 1 {
				return nil, errdef.New(errdef.CodeParse, "action %s only supports single-step bindings", id)
			}
			key := strings.Join(seq, " ⇒ ")
			if _, ok := seen[key]; ok {
				return nil, errdef.New(
					errdef.CodeParse,
					"action %s: duplicate binding %q",
					id,
					strings.Join(seq, " "),
				)
			}
			seen[key] = struct{}{}

			ref := bindingRef{
				action: id,
				steps:  append([]string(nil), seq...),
			}
			actions[id] = append(actions[id], ref)

			if len(seq) == 1 {
				step := seq[0]
				if existing, ok := single[step]; ok {
					return nil, errdef.New(
						errdef.CodeParse,
						"binding %q assigned to both %s and %s",
						step,
						existing.action,
						id,
					)
				}
				single[step] = ref
				continue
			}

			prefix := seq[0]
			next := seq[1]
			bucket := chords[prefix]
			if bucket == nil {
				bucket = make(map[string]bindingRef)
				chords[prefix] = bucket
			}
			if existing, ok := bucket[next]; ok {
				return nil, errdef.New(
					errdef.CodeParse,
					"binding %q %q assigned to both %s and %s",
					prefix,
					next,
					existing.action,
					id,
				)
			}
			bucket[next] = ref
			chordPrefixes[prefix] = struct{}{}
		}
	}

	for prefix := range chordPrefixes {
		if existing, ok := single[prefix]; ok {
			return nil, errdef.New(
				errdef.CodeParse,
				"key %q cannot be both a chord prefix and standalone shortcut (conflicts with %s)",
				prefix,
				existing.action,
			)
		}
	}

	return &Map{
		single:        single,
		chords:        chords,
		chordPrefixes: chordPrefixes,
		actions:       actions,
	}, nil
}

func parseSequence(spec string) ([]string, error) {
	steps := strings.Fields(spec)
	if len(steps) == 0 {
		return nil, errors.New("empty binding")
	}
	seq := make([]string, len(steps))
	for i, step := range steps {
		canon, err := canonicalStep(step)
		if err != nil {
			return nil, err
		}
		seq[i] = canon
	}
	return seq, nil
}

// Canonical modifier order for lookup keys. Aliases collapse before
// the rank applies.
var modifierRank = map[string]int{"ctrl": 0, "alt": 1, "shift": 2, "cmd": 3}

var modifierAlias = map[string]string{
	"control": "ctrl",
	"option":  "alt",
	"command": "cmd",
	"meta":    "cmd",
}

// canonicalStep rewrites one key step into its lookup form: lowercase,
// aliases collapsed, modifiers ordered ctrl/alt/shift/cmd, a bare
// uppercase letter treated as shift+letter.
func canonicalStep(raw string) (string, error) {
	switch raw {
	case " ":
		return "space", nil
	case "?":
		return "shift+/", nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty key step")
	}

	if !strings.Contains(raw, "+") {
		if runes := []rune(raw); len(runes) == 1 && unicode.IsUpper(runes[0]) {
			return "shift+" + string(unicode.ToLower(runes[0])), nil
		}
		return strings.ToLower(raw), nil
	}

	var present [4]bool
	var keys []string
	for _, piece := range strings.Split(raw, "+") {
		piece = strings.ToLower(strings.TrimSpace(piece))
		if piece == "" {
			continue
		}
		if canon, ok := modifierAlias[piece]; ok {
			piece = canon
		}
		if rank, ok := modifierRank[piece]; ok {
			present[rank] = true
			continue
		}
		keys = append(keys, piece)
	}
	if len(keys) == 0 {
		return "", errdef.New(errdef.CodeParse, "binding %q missing key", raw)
	}

	parts := make([]string, 0, 5)
	for _, name := range [4]string{"ctrl", "alt", "shift", "cmd"} {
		if present[modifierRank[name]] {
			parts = append(parts, name)
		}
	}
	return strings.Join(append(parts, strings.Join(keys, "+")), "+"), nil
}

// NormalizeKeyString converts runtime key strings into canonical form for lookup.
func NormalizeKeyString(raw string) string {
	normalized, err := canonicalStep(raw)
	if err != nil {
		return ""
	}
	return normalized
}

// KnownActions returns the sorted list of action identifiers.
func KnownActions() []ActionID {
	ids := make([]ActionID, 0, len(definitions))
	for _, def := range definitions {
		ids = append(ids, def.id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
