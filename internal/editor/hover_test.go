package editor

import (
	"strings"
	"testing"

	"github.com/unkn0wn-root/restbench/internal/vars"
)

func TestHoverDescribesGlobalVariable(t *testing.T) {
	t.Parallel()

	p := NewVariableHoverProvider(benchSnapshot())
	hover, ok := p.Hover("GET {{host}}/health", Position{Line: 1, Column: 8})
	if !ok {
		t.Fatal("expected a hover hit")
	}
	want := "{{host}}\nglobal variable\nValue: api.example.com"
	if hover.Contents != want {
		t.Fatalf("Contents = %q, want %q", hover.Contents, want)
	}
	wantRange := Range{
		Start: Position{Line: 1, Column: 5},
		End:   Position{Line: 1, Column: 13},
	}
	if hover.Range != wantRange {
		t.Fatalf("Range = %+v, want %+v", hover.Range, wantRange)
	}
}

func TestHoverPrefersCollectionValue(t *testing.T) {
	t.Parallel()

	p := NewVariableHoverProvider(benchSnapshot())
	hover, ok := p.Hover("{{apiKey}}", Position{Line: 1, Column: 4})
	if !ok {
		t.Fatal("expected a hover hit")
	}
	want := "{{apiKey}}\ncollection variable\nValue: col-key-123"
	if hover.Contents != want {
		t.Fatalf("Contents = %q, want %q", hover.Contents, want)
	}
}

func TestHoverDistinguishesEmptyFromMissing(t *testing.T) {
	t.Parallel()

	p := NewVariableHoverProvider(benchSnapshot())

	hover, ok := p.Hover("{{empty}}", Position{Line: 1, Column: 4})
	if !ok {
		t.Fatal("expected a hover hit for a defined-but-empty variable")
	}
	want := "{{empty}}\ncollection variable\n(no value set)"
	if hover.Contents != want {
		t.Fatalf("Contents = %q, want %q", hover.Contents, want)
	}

	hover, ok = p.Hover("{{missing}}", Position{Line: 1, Column: 4})
	if !ok {
		t.Fatal("expected a hover hit for an unknown variable")
	}
	want = "{{missing}}\nVariable \"missing\" not found in the active environments"
	if hover.Contents != want {
		t.Fatalf("Contents = %q, want %q", hover.Contents, want)
	}
}

func TestHoverScopedNameNeverFallsThrough(t *testing.T) {
	t.Parallel()

	// host exists globally; pinning the collection scope must miss.
	p := NewVariableHoverProvider(benchSnapshot())
	hover, ok := p.Hover("{{collection.host}}", Position{Line: 1, Column: 5})
	if !ok {
		t.Fatal("expected a hover hit")
	}
	want := "{{collection.host}}\nVariable \"host\" not found in the active environments"
	if hover.Contents != want {
		t.Fatalf("Contents = %q, want %q", hover.Contents, want)
	}
}

func TestHoverDynamicVariable(t *testing.T) {
	t.Parallel()

	p := NewVariableHoverProvider(vars.Snapshot{})
	hover, ok := p.Hover("{{$timestamp}}", Position{Line: 1, Column: 5})
	if !ok {
		t.Fatal("expected a hover hit")
	}
	lines := strings.Split(hover.Contents, "\n")
	if len(lines) != 4 {
		t.Fatalf("len(lines) = %d, want 4: %q", len(lines), hover.Contents)
	}
	if lines[0] != "{{$timestamp}}" || lines[1] != "dynamic variable" {
		t.Fatalf("header lines = %q, %q", lines[0], lines[1])
	}
	if lines[2] != "Current Unix timestamp in seconds" {
		t.Fatalf("description = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "Value: ") {
		t.Fatalf("value line = %q, want a sample value", lines[3])
	}
}

func TestHoverUnknownDynamic(t *testing.T) {
	t.Parallel()

	p := NewVariableHoverProvider(vars.Snapshot{})
	hover, ok := p.Hover("{{$nope}}", Position{Line: 1, Column: 4})
	if !ok {
		t.Fatal("expected a hover hit")
	}
	want := "{{$nope}}\nUnknown dynamic variable"
	if hover.Contents != want {
		t.Fatalf("Contents = %q, want %q", hover.Contents, want)
	}
}

func TestHoverPicksNearestSpanAtBoundary(t *testing.T) {
	t.Parallel()

	snap := vars.Snapshot{Global: map[string]string{"a": "1", "b": "2"}}
	p := NewVariableHoverProvider(snap)

	// Column 6 sits in the gap where {{a}} ends and {{b}} begins; the
	// caret is nearer b's center.
	hover, ok := p.Hover("{{a}}{{b}}", Position{Line: 1, Column: 6})
	if !ok {
		t.Fatal("expected a hover hit")
	}
	if !strings.HasPrefix(hover.Contents, "{{b}}") {
		t.Fatalf("Contents = %q, want the right-hand token", hover.Contents)
	}
	wantRange := Range{
		Start: Position{Line: 1, Column: 6},
		End:   Position{Line: 1, Column: 11},
	}
	if hover.Range != wantRange {
		t.Fatalf("Range = %+v, want %+v", hover.Range, wantRange)
	}
}

func TestHoverIgnoresTokensOutsideWindow(t *testing.T) {
	t.Parallel()

	p := NewVariableHoverProvider(benchSnapshot())
	line := "{{host}}" + strings.Repeat("x", 250)
	if _, ok := p.Hover(line, Position{Line: 1, Column: len(line) + 1}); ok {
		t.Fatal("hover should not reach a token 250 columns away")
	}
	if _, ok := p.Hover(line, Position{Line: 1, Column: 5}); !ok {
		t.Fatal("hover should still hit the token when the caret is on it")
	}
}

func TestHoverNothingUnderCaret(t *testing.T) {
	t.Parallel()

	p := NewVariableHoverProvider(benchSnapshot())
	if _, ok := p.Hover("plain text", Position{Line: 1, Column: 3}); ok {
		t.Fatal("expected no hover on plain text")
	}
	if _, ok := p.Hover("GET {{host}} tail", Position{Line: 1, Column: 16}); ok {
		t.Fatal("expected no hover outside the token span")
	}
}

func TestHoverCountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	p := NewVariableHoverProvider(benchSnapshot())
	hover, ok := p.Hover("héllo {{host}}", Position{Line: 1, Column: 10})
	if !ok {
		t.Fatal("expected a hover hit")
	}
	wantRange := Range{
		Start: Position{Line: 1, Column: 7},
		End:   Position{Line: 1, Column: 15},
	}
	if hover.Range != wantRange {
		t.Fatalf("Range = %+v, want %+v", hover.Range, wantRange)
	}
}
