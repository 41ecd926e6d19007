package workspace

import (
	"sort"
	"strings"

	"github.com/unkn0wn-root/restbench/internal/errdef"
	"github.com/unkn0wn-root/restbench/internal/vars"
)

// Environment is one named variable table. The same shape serves the
// workspace-wide globals and a collection's sub-environments.
type Environment struct {
	Name string            `yaml:"name"`
	Vars map[string]string `yaml:"vars"`
}

type Header struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type Request struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Method  string   `yaml:"method"`
	URL     string   `yaml:"url"`
	Headers []Header `yaml:"headers"`
	Auth    string   `yaml:"auth"`
	Body    string   `yaml:"body"`
}

// Collection owns requests plus a base variable table that an active
// sub-environment may overlay key by key.
type Collection struct {
	ID                string            `yaml:"id"`
	Name              string            `yaml:"name"`
	Vars              map[string]string `yaml:"vars"`
	Environments      []Environment     `yaml:"environments"`
	ActiveEnvironment string            `yaml:"active"`
	Requests          []*Request        `yaml:"requests"`
}

type Workspace struct {
	Environments      []Environment `yaml:"globals"`
	ActiveEnvironment string        `yaml:"active"`
	Collections       []*Collection `yaml:"collections"`
}

type OwnerKind int

const (
	OwnerEnvironment OwnerKind = iota
	OwnerCollection
)

// Owner points edit/view navigation at the surface holding a variable.
type Owner struct {
	Kind OwnerKind
	ID   string
	Name string
}

// EffectiveVars flattens the collection's base table with its active
// sub-environment, sub-environment keys winning. The result is a fresh
// map; callers may hold it as a snapshot.
func (c *Collection) EffectiveVars() map[string]string {
	if c == nil {
		return nil
	}
	merged := make(map[string]string, len(c.Vars))
	for k, v := range c.Vars {
		merged[k] = v
	}
	if env := c.environment(c.ActiveEnvironment); env != nil {
		for k, v := range env.Vars {
			merged[k] = v
		}
	}
	return merged
}

func (c *Collection) environment(name string) *Environment {
	if c == nil || name == "" {
		return nil
	}
	for i := range c.Environments {
		if strings.EqualFold(c.Environments[i].Name, name) {
			return &c.Environments[i]
		}
	}
	return nil
}

func (c *Collection) EnvironmentNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Environments))
	for _, env := range c.Environments {
		names = append(names, env.Name)
	}
	return names
}

// RequestByID finds a request in any collection; the collection comes
// back too because request text resolves against its owner.
func (w *Workspace) RequestByID(id string) (*Request, *Collection) {
	for _, col := range w.Collections {
		for _, req := range col.Requests {
			if req.ID == id {
				return req, col
			}
		}
	}
	return nil, nil
}

func (w *Workspace) CollectionByID(id string) *Collection {
	for _, col := range w.Collections {
		if col.ID == id {
			return col
		}
	}
	return nil
}

func (w *Workspace) globalEnvironment(name string) *Environment {
	if name == "" {
		return nil
	}
	for i := range w.Environments {
		if strings.EqualFold(w.Environments[i].Name, name) {
			return &w.Environments[i]
		}
	}
	return nil
}

// ActiveGlobals returns the active global environment's table, nil
// when nothing is active.
func (w *Workspace) ActiveGlobals() map[string]string {
	if env := w.globalEnvironment(w.ActiveEnvironment); env != nil {
		return env.Vars
	}
	return nil
}

// Snapshot composes the read-only store pair for a request owned by
// collectionID. Unknown or empty collection IDs yield a global-only
// snapshot.
func (w *Workspace) Snapshot(collectionID string) vars.Snapshot {
	return vars.Snapshot{
		Collection: w.CollectionByID(collectionID).EffectiveVars(),
		Global:     w.ActiveGlobals(),
	}
}

// Definitions lists completion candidates for a request's editors:
// the dynamic catalog plus both stores of the collection's snapshot.
func (w *Workspace) Definitions(collectionID string) []vars.Definition {
	return w.Snapshot(collectionID).Definitions()
}

// SetActiveEnvironment switches the workspace-wide environment.
func (w *Workspace) SetActiveEnvironment(name string) error {
	if w.globalEnvironment(name) == nil {
		return errdef.New(errdef.CodeWorkspace, "no environment named %q", name)
	}
	w.ActiveEnvironment = name
	return nil
}

// SetCollectionEnvironment switches a collection's sub-environment.
// An empty name deactivates it, leaving the base table alone.
func (w *Workspace) SetCollectionEnvironment(collectionID, name string) error {
	col := w.CollectionByID(collectionID)
	if col == nil {
		return errdef.New(errdef.CodeWorkspace, "no collection %q", collectionID)
	}
	if name != "" && col.environment(name) == nil {
		return errdef.New(
			errdef.CodeWorkspace,
			"collection %s has no environment named %q",
			col.Name,
			name,
		)
	}
	col.ActiveEnvironment = name
	return nil
}

// FindOwner locates the global environment defining name, active one
// first so edit navigation lands where the current value comes from.
func (w *Workspace) FindOwner(name string) (Owner, bool) {
	if env := w.globalEnvironment(w.ActiveEnvironment); env != nil {
		if _, ok := env.Vars[name]; ok {
			return Owner{Kind: OwnerEnvironment, ID: env.Name, Name: env.Name}, true
		}
	}
	for i := range w.Environments {
		env := &w.Environments[i]
		if strings.EqualFold(env.Name, w.ActiveEnvironment) {
			continue
		}
		if _, ok := env.Vars[name]; ok {
			return Owner{Kind: OwnerEnvironment, ID: env.Name, Name: env.Name}, true
		}
	}
	return Owner{}, false
}

// FindCollectionOwner locates where a collection-scoped variable is
// defined: the active sub-environment first, then the base table.
func (w *Workspace) FindCollectionOwner(collectionID, name string) (Owner, bool) {
	col := w.CollectionByID(collectionID)
	if col == nil {
		return Owner{}, false
	}
	if env := col.environment(col.ActiveEnvironment); env != nil {
		if _, ok := env.Vars[name]; ok {
			return Owner{Kind: OwnerCollection, ID: col.ID, Name: col.Name + "/" + env.Name}, true
		}
	}
	if _, ok := col.Vars[name]; ok {
		return Owner{Kind: OwnerCollection, ID: col.ID, Name: col.Name}, true
	}
	return Owner{}, false
}

// AttachEnvironments merges externally loaded environment files into
// the workspace globals. Existing environments win on name collisions
// so the workspace file stays authoritative.
func (w *Workspace) AttachEnvironments(set vars.EnvironmentSet) {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if w.globalEnvironment(name) != nil {
			continue
		}
		w.Environments = append(w.Environments, Environment{Name: name, Vars: set[name]})
	}
}

func (w *Workspace) EnvironmentNames() []string {
	names := make([]string, 0, len(w.Environments))
	for _, env := range w.Environments {
		names = append(names, env.Name)
	}
	return names
}
