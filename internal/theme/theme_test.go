package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestVariableStylePicksCapsule(t *testing.T) {
	t.Parallel()

	th := DarkTheme()
	cases := []struct {
		resolved bool
		dynamic  bool
		want     lipgloss.Style
	}{
		{resolved: true, want: th.Variables.Resolved},
		{resolved: false, want: th.Variables.Unresolved},
		{resolved: false, dynamic: true, want: th.Variables.Dynamic},
		{resolved: true, dynamic: true, want: th.Variables.Dynamic},
	}
	for _, tc := range cases {
		got := th.VariableStyle(tc.resolved, tc.dynamic)
		if got.GetBackground() != tc.want.GetBackground() {
			t.Fatalf(
				"VariableStyle(%v, %v) background = %v, want %v",
				tc.resolved, tc.dynamic, got.GetBackground(), tc.want.GetBackground(),
			)
		}
	}
}

func TestCapsuleStatesAreDistinct(t *testing.T) {
	t.Parallel()

	for name, th := range map[string]Theme{"dark": DarkTheme(), "light": LightTheme()} {
		resolved := th.Variables.Resolved.GetBackground()
		unresolved := th.Variables.Unresolved.GetBackground()
		dynamic := th.Variables.Dynamic.GetBackground()
		if resolved == unresolved || resolved == dynamic || unresolved == dynamic {
			t.Fatalf("%s theme reuses a capsule background: %v %v %v", name, resolved, unresolved, dynamic)
		}
	}
}

func TestMethodColor(t *testing.T) {
	t.Parallel()

	th := DarkTheme()
	if got := th.MethodColor("get"); got != th.MethodColors.GET {
		t.Fatalf("MethodColor(get) = %v, want GET color", got)
	}
	if got := th.MethodColor(" DELETE "); got != th.MethodColors.DELETE {
		t.Fatalf("MethodColor(DELETE) = %v, want DELETE color", got)
	}
	if got := th.MethodColor("TRACE"); got != th.MethodColors.Default {
		t.Fatalf("MethodColor(TRACE) = %v, want default color", got)
	}
}

func TestLightThemeDivergesFromDark(t *testing.T) {
	t.Parallel()

	dark := DarkTheme()
	light := LightTheme()
	if dark.FieldText.GetForeground() == light.FieldText.GetForeground() {
		t.Fatal("light flavor should recolor field text")
	}
	if dark.Variables.Resolved.GetBackground() == light.Variables.Resolved.GetBackground() {
		t.Fatal("light flavor should recolor the resolved capsule")
	}
}
