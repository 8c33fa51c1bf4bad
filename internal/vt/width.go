package vt

import "github.com/mattn/go-runewidth"

// widthCondition mirrors the teacher's East-Asian-ambiguous handling
// (framegrace-texelation vendors go-runewidth transitively via tcell; here
// it is used directly to back the spec's wcwidth requirement, §4.4).
var widthCondition = runewidth.NewCondition()

func init() {
	// Terminal emulators conventionally treat ambiguous-width runes as
	// narrow unless the application has negotiated otherwise; xterm's
	// default matches this.
	widthCondition.EastAsianWidth = false
}

// RuneWidth returns the terminal display width of r: 0 for combining marks
// and most control/format codepoints reaching this function in error, 1 for
// narrow runes, 2 for wide (CJK, emoji-presentation) runes.
func RuneWidth(r rune) int {
	if r == 0 {
		return 0
	}
	return widthCondition.RuneWidth(r)
}

// IsWide reports whether r occupies two display columns.
func IsWide(r rune) bool {
	return RuneWidth(r) == 2
}
