package editor

import "github.com/unkn0wn-root/restbench/internal/vars"

// Session ties one completion and one hover registration together so
// they share a lifecycle. Providers capture their definitions and
// snapshot by value at attach time: when the variable set changes the
// owner must Dispose and Attach again, otherwise completions keep
// serving the world as it was.
type Session struct {
	completion *Registration
	hover      *Registration
}

// Attach registers the variable providers for languageID and returns
// the session controlling them.
func Attach(
	reg *Registry,
	languageID string,
	defs []vars.Definition,
	snap vars.Snapshot,
) *Session {
	return &Session{
		completion: reg.RegisterCompletion(languageID, NewVariableCompletionProvider(defs)),
		hover:      reg.RegisterHover(languageID, NewVariableHoverProvider(snap)),
	}
}

// Dispose unregisters both providers. Safe to call twice and on nil.
func (s *Session) Dispose() {
	if s == nil {
		return
	}
	s.completion.Dispose()
	s.hover.Dispose()
}
