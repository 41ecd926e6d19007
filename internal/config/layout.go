package config

// LayoutSettings tunes the workbench split between the request form
// and the resolved preview. The ratio is the form pane's share of the
// terminal width.
type LayoutSettings struct {
	FormSplit float64 `json:"form_split" toml:"form_split"`
}

const (
	LayoutFormSplitDefault = 0.5
	LayoutFormSplitMin     = 0.25
	LayoutFormSplitMax     = 0.75
)

func DefaultLayoutSettings() LayoutSettings {
	return LayoutSettings{FormSplit: LayoutFormSplitDefault}
}

// NormaliseLayoutSettings clamps user values into the renderable range
// so a hand-edited settings file can never squeeze a pane to nothing.
func NormaliseLayoutSettings(in LayoutSettings) LayoutSettings {
	layout := DefaultLayoutSettings()
	layout.FormSplit = clampFloat(
		in.FormSplit,
		LayoutFormSplitMin,
		LayoutFormSplitMax,
		LayoutFormSplitDefault,
	)
	return layout
}

func clampFloat[T ~float64](value, min, max, fallback T) T {
	if value == 0 {
		return fallback
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
