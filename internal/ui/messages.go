package ui

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
	statusSuccess
)

// statusMsg updates the status bar. Any component may emit one as a
// tea.Cmd result; the model keeps only the latest.
type statusMsg struct {
	text  string
	level statusLevel
}
