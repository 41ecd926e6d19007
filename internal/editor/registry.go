package editor

// CompletionProvider supplies suggestions for the caret position on a
// single line of editor text.
type CompletionProvider interface {
	Complete(line string, pos Position) []CompletionItem
}

// HoverProvider supplies tooltip content for the token under the
// caret. The boolean is false when the position holds nothing to
// describe.
type HoverProvider interface {
	Hover(line string, pos Position) (Hover, bool)
}

type completionEntry struct {
	id       int
	provider CompletionProvider
}

type hoverEntry struct {
	id       int
	provider HoverProvider
}

// Registry routes editor queries to the providers registered for a
// language id. It aggregates every live registration, so a forgotten
// Dispose shows up as duplicated suggestions rather than silent
// shadowing; sessions keep it at one of each kind per editor.
type Registry struct {
	nextID      int
	completions map[string][]completionEntry
	hovers      map[string][]hoverEntry
}

func NewRegistry() *Registry {
	return &Registry{
		completions: make(map[string][]completionEntry),
		hovers:      make(map[string][]hoverEntry),
	}
}

// Registration undoes one provider registration. Dispose is idempotent
// and safe on nil.
type Registration struct {
	remove func()
}

func (r *Registration) Dispose() {
	if r == nil || r.remove == nil {
		return
	}
	r.remove()
	r.remove = nil
}

func (r *Registry) RegisterCompletion(languageID string, p CompletionProvider) *Registration {
	r.nextID++
	id := r.nextID
	r.completions[languageID] = append(
		r.completions[languageID],
		completionEntry{id: id, provider: p},
	)
	return &Registration{remove: func() {
		entries := r.completions[languageID]
		for i, entry := range entries {
			if entry.id == id {
				r.completions[languageID] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}}
}

func (r *Registry) RegisterHover(languageID string, p HoverProvider) *Registration {
	r.nextID++
	id := r.nextID
	r.hovers[languageID] = append(r.hovers[languageID], hoverEntry{id: id, provider: p})
	return &Registration{remove: func() {
		entries := r.hovers[languageID]
		for i, entry := range entries {
			if entry.id == id {
				r.hovers[languageID] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}}
}

// Complete collects suggestions from every completion provider bound
// to the language, in registration order.
func (r *Registry) Complete(languageID, line string, pos Position) []CompletionItem {
	var items []CompletionItem
	for _, entry := range r.completions[languageID] {
		items = append(items, entry.provider.Complete(line, pos)...)
	}
	return items
}

// Hover asks the language's hover providers in registration order and
// returns the first hit.
func (r *Registry) Hover(languageID, line string, pos Position) (Hover, bool) {
	for _, entry := range r.hovers[languageID] {
		if hover, ok := entry.provider.Hover(line, pos); ok {
			return hover, true
		}
	}
	return Hover{}, false
}

// CompletionCount reports live completion registrations for a
// language; tests use it to pin the one-provider discipline.
func (r *Registry) CompletionCount(languageID string) int {
	return len(r.completions[languageID])
}

func (r *Registry) HoverCount(languageID string) int {
	return len(r.hovers[languageID])
}
