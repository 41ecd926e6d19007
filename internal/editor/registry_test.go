package editor

import (
	"testing"
)

type staticCompletion struct {
	items []CompletionItem
}

func (p staticCompletion) Complete(string, Position) []CompletionItem {
	return p.items
}

type staticHover struct {
	hover Hover
	ok    bool
}

func (p staticHover) Hover(string, Position) (Hover, bool) {
	return p.hover, p.ok
}

func TestRegistryAggregatesInRegistrationOrder(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.RegisterCompletion("req", staticCompletion{items: []CompletionItem{{Label: "first"}}})
	reg.RegisterCompletion("req", staticCompletion{items: []CompletionItem{{Label: "second"}}})

	items := reg.Complete("req", "", Position{Line: 1, Column: 1})
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Label != "first" || items[1].Label != "second" {
		t.Fatalf("items out of order: %q, %q", items[0].Label, items[1].Label)
	}
}

func TestRegistryDisposeRemovesProvider(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	first := reg.RegisterCompletion("req", staticCompletion{items: []CompletionItem{{Label: "first"}}})
	reg.RegisterCompletion("req", staticCompletion{items: []CompletionItem{{Label: "second"}}})

	first.Dispose()

	if got := reg.CompletionCount("req"); got != 1 {
		t.Fatalf("CompletionCount = %d, want 1", got)
	}
	items := reg.Complete("req", "", Position{Line: 1, Column: 1})
	if len(items) != 1 || items[0].Label != "second" {
		t.Fatalf("items = %+v, want only second", items)
	}
}

func TestRegistryDisposeIsIdempotent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	r := reg.RegisterHover("req", staticHover{ok: true})
	r.Dispose()
	r.Dispose()

	if got := reg.HoverCount("req"); got != 0 {
		t.Fatalf("HoverCount = %d, want 0", got)
	}

	var nilReg *Registration
	nilReg.Dispose()
}

func TestRegistryScopesByLanguage(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.RegisterCompletion("req", staticCompletion{items: []CompletionItem{{Label: "x"}}})

	if items := reg.Complete("other", "", Position{Line: 1, Column: 1}); items != nil {
		t.Fatalf("Complete(other) = %+v, want nil", items)
	}
	if got := reg.CompletionCount("other"); got != 0 {
		t.Fatalf("CompletionCount(other) = %d, want 0", got)
	}
}

func TestRegistryHoverReturnsFirstHit(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.RegisterHover("req", staticHover{ok: false})
	reg.RegisterHover("req", staticHover{hover: Hover{Contents: "second"}, ok: true})
	reg.RegisterHover("req", staticHover{hover: Hover{Contents: "third"}, ok: true})

	hover, ok := reg.Hover("req", "", Position{Line: 1, Column: 1})
	if !ok {
		t.Fatal("expected a hover hit")
	}
	if hover.Contents != "second" {
		t.Fatalf("Contents = %q, want %q", hover.Contents, "second")
	}
}

func TestRegistryForgottenDisposeDoublesSuggestions(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	provider := staticCompletion{items: []CompletionItem{{Label: "dupe"}}}
	keep := reg.RegisterCompletion("req", provider)
	leak := reg.RegisterCompletion("req", provider)

	if items := reg.Complete("req", "", Position{Line: 1, Column: 1}); len(items) != 2 {
		t.Fatalf("len(items) = %d with a leaked registration, want 2", len(items))
	}

	leak.Dispose()
	if items := reg.Complete("req", "", Position{Line: 1, Column: 1}); len(items) != 1 {
		t.Fatalf("len(items) = %d after dispose, want 1", len(items))
	}
	keep.Dispose()
}
