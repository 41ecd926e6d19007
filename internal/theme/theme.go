package theme

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// VariableStyles colors the inline {{...}} capsules. Resolved and
// unresolved must stay distinguishable at a glance; dynamic names get
// their own tint so built-ins read differently from store values.
type VariableStyles struct {
	Resolved   lipgloss.Style
	Unresolved lipgloss.Style
	Dynamic    lipgloss.Style
}

type MethodColors struct {
	GET     lipgloss.Color
	POST    lipgloss.Color
	PUT     lipgloss.Color
	PATCH   lipgloss.Color
	DELETE  lipgloss.Color
	HEAD    lipgloss.Color
	OPTIONS lipgloss.Color
	Default lipgloss.Color
}

type Theme struct {
	AppFrame         lipgloss.Style
	PaneBorder       lipgloss.Style
	PaneBorderFocus  lipgloss.Color
	PaneTitle        lipgloss.Style
	PaneTitleFocused lipgloss.Style

	StatusBar      lipgloss.Style
	StatusBarKey   lipgloss.Style
	StatusBarValue lipgloss.Style
	InfoBar        lipgloss.Style
	Notification   lipgloss.Style
	Error          lipgloss.Style
	Success        lipgloss.Style

	FieldLabel   lipgloss.Style
	FieldText    lipgloss.Style
	FieldFocused lipgloss.Style
	Placeholder  lipgloss.Style

	Variables VariableStyles

	HintBox      lipgloss.Style
	HintItem     lipgloss.Style
	HintSelected lipgloss.Style
	HintDetail   lipgloss.Style

	MenuBox      lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style

	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
	ModalLabel lipgloss.Style
	ModalValue lipgloss.Style

	SelectorItem   lipgloss.Style
	SelectorActive lipgloss.Style

	PreviewText lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	MethodColors MethodColors
}

// DefaultTheme picks the flavor matching the terminal background.
func DefaultTheme() Theme {
	if termenv.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

func DarkTheme() Theme {
	accent := lipgloss.Color("#7D56F4")
	text := lipgloss.Color("#E6E1FF")
	dim := lipgloss.Color("#6E6A86")

	return Theme{
		AppFrame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#403B59")),
		PaneBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4A4760")),
		PaneBorderFocus:  accent,
		PaneTitle:        lipgloss.NewStyle().Foreground(dim).Bold(true),
		PaneTitleFocused: lipgloss.NewStyle().Foreground(accent).Bold(true),

		StatusBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Padding(0, 1),
		StatusBarKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8B39")).Bold(true),
		StatusBarValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#EAEAEA")),
		InfoBar:        lipgloss.NewStyle().Foreground(lipgloss.Color("#C2C0D9")).Padding(0, 1),
		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0DEF4")).
			Background(lipgloss.Color("#433C59")).
			Padding(0, 1),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6E6E")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")),

		FieldLabel:   lipgloss.NewStyle().Foreground(dim),
		FieldText:    lipgloss.NewStyle().Foreground(text),
		FieldFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("#FDFBFF")),
		Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")),

		Variables: VariableStyles{
			Resolved: lipgloss.NewStyle().
				Foreground(lipgloss.Color("#05301B")).
				Background(lipgloss.Color("#33C481")),
			Unresolved: lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3A0A0A")).
				Background(lipgloss.Color("#FF6E6E")),
			Dynamic: lipgloss.NewStyle().
				Foreground(lipgloss.Color("#120A2E")).
				Background(lipgloss.Color("#B9A5FF")),
		},

		HintBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Foreground(text),
		HintItem: lipgloss.NewStyle().Foreground(lipgloss.Color("#D8D4F1")),
		HintSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1020")).
			Background(lipgloss.Color("#FFD46A")).
			Bold(true),
		HintDetail: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),

		MenuBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5689")).
			Padding(0, 1),
		MenuItem: lipgloss.NewStyle().Foreground(text),
		MenuSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0F111A")).
			Background(lipgloss.Color("#FFD46A")).
			Bold(true),

		ModalBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Foreground(accent).Bold(true),
		ModalLabel: lipgloss.NewStyle().Foreground(dim),
		ModalValue: lipgloss.NewStyle().Foreground(text),

		SelectorItem: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Padding(0, 1),
		SelectorActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FDFBFF")).
			Background(accent).
			Bold(true).
			Padding(0, 1),

		PreviewText: lipgloss.NewStyle().Foreground(text),

		DiffHeader:  lipgloss.NewStyle().Foreground(lipgloss.Color("#15AABF")).Bold(true),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6E6E")),
		DiffContext: lipgloss.NewStyle().Foreground(dim),

		MethodColors: MethodColors{
			GET:     lipgloss.Color("#34d399"),
			POST:    lipgloss.Color("#60a5fa"),
			PUT:     lipgloss.Color("#f59e0b"),
			PATCH:   lipgloss.Color("#14b8a6"),
			DELETE:  lipgloss.Color("#f87171"),
			HEAD:    lipgloss.Color("#a1a1aa"),
			OPTIONS: lipgloss.Color("#c084fc"),
			Default: lipgloss.Color("#9ca3af"),
		},
	}
}

func LightTheme() Theme {
	t := DarkTheme()
	accent := lipgloss.Color("#5B3DF5")
	text := lipgloss.Color("#2A2540")
	dim := lipgloss.Color("#7A7692")

	t.AppFrame = t.AppFrame.BorderForeground(lipgloss.Color("#C9C4E4"))
	t.PaneBorder = t.PaneBorder.BorderForeground(lipgloss.Color("#B9B4D6"))
	t.PaneBorderFocus = accent
	t.PaneTitle = t.PaneTitle.Foreground(dim)
	t.PaneTitleFocused = t.PaneTitleFocused.Foreground(accent)

	t.StatusBar = t.StatusBar.Foreground(lipgloss.Color("#5E5A72"))
	t.StatusBarValue = t.StatusBarValue.Foreground(text)
	t.InfoBar = t.InfoBar.Foreground(lipgloss.Color("#4A4760"))
	t.Error = t.Error.Foreground(lipgloss.Color("#C22F2F"))
	t.Success = t.Success.Foreground(lipgloss.Color("#1F7A3D"))

	t.FieldLabel = t.FieldLabel.Foreground(dim)
	t.FieldText = t.FieldText.Foreground(text)
	t.FieldFocused = t.FieldFocused.Foreground(lipgloss.Color("#14101F"))
	t.Placeholder = t.Placeholder.Foreground(lipgloss.Color("#A7A3BD"))

	t.Variables = VariableStyles{
		Resolved: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0B3D22")).
			Background(lipgloss.Color("#A7E8C4")),
		Unresolved: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A1010")).
			Background(lipgloss.Color("#F5B5B5")),
		Dynamic: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2A1A5E")).
			Background(lipgloss.Color("#D6CCFA")),
	}

	t.HintBox = t.HintBox.BorderForeground(accent).Foreground(text)
	t.HintItem = t.HintItem.Foreground(lipgloss.Color("#3A3456"))
	t.HintDetail = t.HintDetail.Foreground(dim)

	t.MenuItem = t.MenuItem.Foreground(text)
	t.ModalTitle = t.ModalTitle.Foreground(accent)
	t.ModalLabel = t.ModalLabel.Foreground(dim)
	t.ModalValue = t.ModalValue.Foreground(text)
	t.SelectorItem = t.SelectorItem.Foreground(dim)
	t.SelectorActive = t.SelectorActive.Background(accent)
	t.PreviewText = t.PreviewText.Foreground(text)

	t.DiffAdd = t.DiffAdd.Foreground(lipgloss.Color("#1F7A3D"))
	t.DiffRemove = t.DiffRemove.Foreground(lipgloss.Color("#C22F2F"))
	t.DiffContext = t.DiffContext.Foreground(dim)

	return t
}

// MethodColor maps an HTTP method to its accent color.
func (t Theme) MethodColor(method string) lipgloss.Color {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case http.MethodGet:
		return t.MethodColors.GET
	case http.MethodPost:
		return t.MethodColors.POST
	case http.MethodPut:
		return t.MethodColors.PUT
	case http.MethodPatch:
		return t.MethodColors.PATCH
	case http.MethodDelete:
		return t.MethodColors.DELETE
	case http.MethodHead:
		return t.MethodColors.HEAD
	case http.MethodOptions:
		return t.MethodColors.OPTIONS
	default:
		return t.MethodColors.Default
	}
}

// VariableStyle picks the capsule style for one placeholder state.
func (t Theme) VariableStyle(resolved, dynamic bool) lipgloss.Style {
	switch {
	case dynamic:
		return t.Variables.Dynamic
	case resolved:
		return t.Variables.Resolved
	default:
		return t.Variables.Unresolved
	}
}
