// Package vt implements the VT100/VT220/…/VT525-family terminal backend
// core: parser, sequencer, grid, screen, terminal orchestrator, input
// generator, vi-style viewport overlay and render double-buffer.
package vt

// ColorMode identifies how a Color's components are interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota
	ColorIndexed           // Value in 0..255 (0..7 base, 8..15 bright, 16..255 palette)
	ColorRGB               // R, G, B in use
)

// Color is a cell foreground/background/underline color.
type Color struct {
	Mode    ColorMode
	Value   uint8 // indexed palette slot
	R, G, B uint8 // RGB components
}

// DefaultColor is the sentinel "use the terminal's default" color.
var DefaultColor = Color{Mode: ColorDefault}

// Indexed builds an indexed-palette color, folding bright 8..15 the way SGR
// 90-97/100-107 and 38;5;n do.
func Indexed(v uint8) Color { return Color{Mode: ColorIndexed, Value: v} }

// RGB builds a 24-bit true color.
func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// CellFlags is a bitset of SGR-derived rendition attributes. Named after the
// full VT220+/xterm extended rendition set (§3 Data Model).
type CellFlags uint32

const (
	FlagBold CellFlags = 1 << iota
	FlagFaint
	FlagItalic
	FlagUnderline
	FlagDoublyUnderlined
	FlagCurlyUnderline
	FlagDottedUnderline
	FlagDashedUnderline
	FlagBlinking
	FlagRapidBlinking
	FlagInverse
	FlagHidden
	FlagCrossedOut
	FlagFramed
	FlagEncircled
	FlagOverline
	FlagCharacterProtected
)

// underlineFlags is the subset of flags mutually exclusive underline styles
// occupy; setting one clears the others, mirroring SGR 4:n sub-parameters.
var underlineFlags = FlagUnderline | FlagDoublyUnderlined | FlagCurlyUnderline |
	FlagDottedUnderline | FlagDashedUnderline

// SGRAttrs is the resolved graphic-rendition state applied to newly written
// cells: flags plus the three color slots.
type SGRAttrs struct {
	Flags     CellFlags
	Foreground Color
	Background Color
	Underline  Color // ColorDefault means "use Foreground"
}

// DefaultSGR returns the reset rendition state (SGR 0).
func DefaultSGR() SGRAttrs {
	return SGRAttrs{Foreground: DefaultColor, Background: DefaultColor, Underline: DefaultColor}
}

func (a *SGRAttrs) setUnderlineStyle(f CellFlags) {
	a.Flags &^= underlineFlags
	a.Flags |= f
}

// HyperlinkID identifies an OSC-8 hyperlink registered on the terminal.
// Zero means "no hyperlink".
type HyperlinkID uint32

// ImageFragmentID references a bitmap fragment owned by the image pool.
// Zero means "no image".
type ImageFragmentID uint64

// Cell is a single grid cell: a primary codepoint plus any combining marks,
// a display width, colors, flags, and optional hyperlink/image handles.
type Cell struct {
	Codepoints []rune // Codepoints[0] is the base character; rest are combining marks
	Width      uint8  // 0 (continuation of a wide cell to its left), 1, or 2
	SGRAttrs
	Hyperlink HyperlinkID
	Image     ImageFragmentID
}

// BlankCell returns an empty, width-1 cell carrying the given SGR attributes,
// as used to fill erased/scrolled-in regions (§4.4 "Erasure").
func BlankCell(sgr SGRAttrs) Cell {
	return Cell{Codepoints: []rune{' '}, Width: 1, SGRAttrs: sgr}
}

// IsBlank reports whether the cell is an unattributed space, the identity
// element scrollUp/scrollDown fill with.
func (c Cell) IsBlank() bool {
	return len(c.Codepoints) == 1 && c.Codepoints[0] == ' ' && c.SGRAttrs == DefaultSGR() && c.Hyperlink == 0 && c.Image == 0
}

// Rune returns the base codepoint, or 0 for an empty/continuation cell.
func (c Cell) Rune() rune {
	if len(c.Codepoints) == 0 {
		return 0
	}
	return c.Codepoints[0]
}

// AppendCombining appends a combining mark codepoint to the cell in place.
func (c *Cell) AppendCombining(r rune) {
	c.Codepoints = append(c.Codepoints, r)
}
