package workspace

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unkn0wn-root/restbench/internal/vars"
)

func benchWorkspace() *Workspace {
	return &Workspace{
		Environments: []Environment{
			{Name: "dev", Vars: map[string]string{"host": "localhost", "shared": "dev"}},
			{Name: "prod", Vars: map[string]string{"host": "api.example.com"}},
		},
		ActiveEnvironment: "dev",
		Collections: []*Collection{
			{
				ID:   "col-pay",
				Name: "Payments",
				Vars: map[string]string{"base": "/v1", "shared": "col"},
				Environments: []Environment{
					{Name: "staging", Vars: map[string]string{"base": "/v1-stage"}},
				},
				Requests: []*Request{
					{ID: "req-1", Method: "GET", URL: "https://{{host}}{{base}}/charges"},
				},
			},
		},
	}
}

func TestSnapshotComposition(t *testing.T) {
	t.Parallel()

	ws := benchWorkspace()
	snap := ws.Snapshot("col-pay")
	if snap.Global["host"] != "localhost" {
		t.Fatalf("global host = %q", snap.Global["host"])
	}
	if snap.Collection["base"] != "/v1" {
		t.Fatalf("collection base = %q", snap.Collection["base"])
	}

	res := vars.Resolve("https://{{host}}{{base}}/charges", snap)
	if res.Resolved != "https://localhost/v1/charges" {
		t.Fatalf("resolved = %q", res.Resolved)
	}
	// Collection value shadows the global one for unscoped names.
	if got := vars.Resolve("{{shared}}", snap).Resolved; got != "col" {
		t.Fatalf("shared = %q, want col", got)
	}
}

func TestSnapshotSubEnvironmentOverlay(t *testing.T) {
	t.Parallel()

	ws := benchWorkspace()
	if err := ws.SetCollectionEnvironment("col-pay", "staging"); err != nil {
		t.Fatalf("set collection env: %v", err)
	}
	snap := ws.Snapshot("col-pay")
	if snap.Collection["base"] != "/v1-stage" {
		t.Fatalf("base = %q, want sub-environment override", snap.Collection["base"])
	}
	if snap.Collection["shared"] != "col" {
		t.Fatalf("shared = %q, base table keys must survive", snap.Collection["shared"])
	}

	if err := ws.SetCollectionEnvironment("col-pay", ""); err != nil {
		t.Fatalf("clear collection env: %v", err)
	}
	if ws.Snapshot("col-pay").Collection["base"] != "/v1" {
		t.Fatalf("clearing the sub-environment must restore the base table")
	}
}

func TestSnapshotUnknownCollection(t *testing.T) {
	t.Parallel()

	ws := benchWorkspace()
	snap := ws.Snapshot("nope")
	if snap.Collection != nil {
		t.Fatalf("unknown collection should have no store, got %v", snap.Collection)
	}
	if snap.Global == nil {
		t.Fatalf("global store missing")
	}
}

func TestSetActiveEnvironment(t *testing.T) {
	t.Parallel()

	ws := benchWorkspace()
	if err := ws.SetActiveEnvironment("prod"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if ws.Snapshot("").Global["host"] != "api.example.com" {
		t.Fatalf("snapshot did not follow the switch")
	}
	if err := ws.SetActiveEnvironment("qa"); err == nil {
		t.Fatalf("expected error for unknown environment")
	}
	if err := ws.SetCollectionEnvironment("col-pay", "qa"); err == nil {
		t.Fatalf("expected error for unknown sub-environment")
	}
}

func TestFindOwnerPrefersActive(t *testing.T) {
	t.Parallel()

	ws := benchWorkspace()
	owner, ok := ws.FindOwner("host")
	if !ok || owner.Name != "dev" {
		t.Fatalf("owner = %+v, ok = %v", owner, ok)
	}

	if err := ws.SetActiveEnvironment("prod"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	owner, ok = ws.FindOwner("shared")
	if !ok || owner.Name != "dev" {
		t.Fatalf("owner = %+v, want fallback scan to find dev", owner)
	}

	if _, ok := ws.FindOwner("absent"); ok {
		t.Fatalf("absent name reported as owned")
	}
}

func TestFindCollectionOwner(t *testing.T) {
	t.Parallel()

	ws := benchWorkspace()
	owner, ok := ws.FindCollectionOwner("col-pay", "base")
	if !ok || owner.Kind != OwnerCollection || owner.Name != "Payments" {
		t.Fatalf("owner = %+v, ok = %v", owner, ok)
	}

	// With a sub-environment active its table is reported first.
	if err := ws.SetCollectionEnvironment("col-pay", "staging"); err != nil {
		t.Fatalf("set collection env: %v", err)
	}
	owner, ok = ws.FindCollectionOwner("col-pay", "base")
	if !ok || owner.Name != "Payments/staging" {
		t.Fatalf("owner = %+v, want sub-environment hit", owner)
	}
	owner, ok = ws.FindCollectionOwner("col-pay", "shared")
	if !ok || owner.Name != "Payments" {
		t.Fatalf("owner = %+v, want base table hit", owner)
	}

	if _, ok := ws.FindCollectionOwner("col-pay", "host"); ok {
		t.Fatalf("global name reported as collection-owned")
	}
	if _, ok := ws.FindCollectionOwner("nope", "base"); ok {
		t.Fatalf("unknown collection reported an owner")
	}
}

func TestDefinitionsIncludeAllScopes(t *testing.T) {
	t.Parallel()

	ws := benchWorkspace()
	defs := ws.Definitions("col-pay")

	var scopes []vars.Scope
	names := map[string]bool{}
	for _, def := range defs {
		scopes = append(scopes, def.Scope)
		names[def.Name] = true
	}
	if !names["$uuid"] || !names["base"] || !names["host"] {
		t.Fatalf("definitions missing expected names: %v", names)
	}
	if scopes[0] != vars.ScopeDynamic {
		t.Fatalf("dynamic catalog must lead the definition list")
	}
}

func TestAttachEnvironments(t *testing.T) {
	t.Parallel()

	ws := benchWorkspace()
	ws.AttachEnvironments(vars.EnvironmentSet{
		"ci":  {"host": "ci.example.com"},
		"dev": {"host": "should-not-win"},
	})

	want := []string{"dev", "prod", "ci"}
	if diff := cmp.Diff(want, ws.EnvironmentNames()); diff != "" {
		t.Fatalf("environment names (-want +got):\n%s", diff)
	}
	if ws.ActiveGlobals()["host"] != "localhost" {
		t.Fatalf("existing environment was overwritten")
	}
}
