package editor

// Position is a caret location in editor coordinates. Lines and
// columns are 1-based and count runes; a column names the gap before
// the rune it points at, so column 1 is the start of the line and
// column len+1 is past its end.
type Position struct {
	Line   int
	Column int
}

// Range is a half-open span between two positions on one line: Start
// is inclusive, End is exclusive in the same gap terms as Position.
type Range struct {
	Start Position
	End   Position
}
