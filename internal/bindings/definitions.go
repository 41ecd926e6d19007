package bindings

// Workbench shortcut actions. Config files refer to these by their
// string value, e.g. `cycle_environment = ["ctrl+g"]`.
const (
	ActionQuitApp            ActionID = "quit"
	ActionCycleFocusNext     ActionID = "focus_next"
	ActionCycleFocusPrev     ActionID = "focus_prev"
	ActionCycleEnvironment   ActionID = "cycle_environment"
	ActionCycleCollectionEnv ActionID = "cycle_collection_environment"
	ActionToggleCompare      ActionID = "toggle_compare"
	ActionCopyResolved       ActionID = "copy_resolved"
	ActionNextRequest        ActionID = "next_request"
	ActionPrevRequest        ActionID = "prev_request"
)

type actionDefinition struct {
	id         ActionID
	defaults   [][]string
	singleStep bool
}

// Quit stays single-step so it can never hide behind a chord prefix.
var definitions = []actionDefinition{
	{id: ActionQuitApp, defaults: [][]string{{"ctrl+c"}}, singleStep: true},
	{id: ActionCycleFocusNext, defaults: [][]string{{"tab"}}},
	{id: ActionCycleFocusPrev, defaults: [][]string{{"shift+tab"}}},
	{id: ActionCycleEnvironment, defaults: [][]string{{"ctrl+e"}}},
	{id: ActionCycleCollectionEnv, defaults: [][]string{{"alt+e"}}},
	{id: ActionToggleCompare, defaults: [][]string{{"ctrl+d"}}},
	{id: ActionCopyResolved, defaults: [][]string{{"ctrl+y"}}},
	{id: ActionNextRequest, defaults: [][]string{{"alt+down"}}},
	{id: ActionPrevRequest, defaults: [][]string{{"alt+up"}}},
}

var definitionLookup = func() map[ActionID]actionDefinition {
	lookup := make(map[ActionID]actionDefinition, len(definitions))
	for _, def := range definitions {
		lookup[def.id] = def
	}
	return lookup
}()
