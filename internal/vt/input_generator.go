package vt

import "fmt"

// Modifier is a bitset of keyboard modifier keys, used both by Settings
// (MouseProtocolBypassModifier, MouseBlockSelectionModifier) and by the
// InputGenerator's key/mouse encoders (§6 "Input generation").
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// xtermModifierCode converts a Modifier set to the 1-based Ps xterm's
// modifyOtherKeys/CSI-u encodings expect (1=none, then +1 Shift, +2 Alt,
// +4 Ctrl, +8 Meta).
func (m Modifier) xtermModifierCode() int {
	code := 1
	if m&ModShift != 0 {
		code += 1
	}
	if m&ModAlt != 0 {
		code += 2
	}
	if m&ModCtrl != 0 {
		code += 4
	}
	if m&ModMeta != 0 {
		code += 8
	}
	return code
}

// Key identifies a non-printable key the collaborator reports to the
// InputGenerator (arrow keys, function keys, editing keys; §6 "Input
// generation"). Printable keys are sent through Terminal.WriteInput instead.
type Key uint16

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyTab
	KeyEnter
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// MouseButton identifies which button (if any) a mouse event reports.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
	MouseWheelUp
	MouseWheelDown
)

// MouseEventKind distinguishes press/release/motion for the button-event
// and any-event mouse protocols.
type MouseEventKind uint8

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
)

// InputGenerator encodes collaborator-reported input (keys, mouse, focus,
// paste) into the byte sequences the active Modes select (§6 "Input
// generation"). It is stateless beyond the Modes/Settings it reads, so one
// instance serves the whole Terminal.
//
// Grounded on framegrace-texelation's input handling, which only forwards a
// fixed set of literal escape strings for arrow/function keys
// (apps/texelterm/parser — see its keymap table); generalized here into a
// function of the live Modes (application cursor keys, SGR/urxvt/X10 mouse
// variants, bracketed paste) instead of a static table.
type InputGenerator struct {
	modes    *Modes
	settings Settings
}

// NewInputGenerator returns a generator reading live state from modes.
func NewInputGenerator(modes *Modes, settings Settings) *InputGenerator {
	return &InputGenerator{modes: modes, settings: settings}
}

// EncodeKey returns the byte sequence for a non-printable key press,
// honoring DECCKM (application cursor keys) for the arrow/Home/End keys.
func (g *InputGenerator) EncodeKey(key Key, mods Modifier) []byte {
	if seq, ok := g.encodeArrowOrEditing(key, mods); ok {
		return seq
	}
	if f, ok := functionKeyCode(key); ok {
		return g.encodeFunctionKey(f, mods)
	}
	switch key {
	case KeyBackspace:
		return []byte{0x7f}
	case KeyTab:
		return []byte{'\t'}
	case KeyEnter:
		return []byte{'\r'}
	case KeyEscape:
		return []byte{0x1b}
	}
	return nil
}

func (g *InputGenerator) encodeArrowOrEditing(key Key, mods Modifier) ([]byte, bool) {
	var final byte
	switch key {
	case KeyUp:
		final = 'A'
	case KeyDown:
		final = 'B'
	case KeyRight:
		final = 'C'
	case KeyLeft:
		final = 'D'
	case KeyHome:
		final = 'H'
	case KeyEnd:
		final = 'F'
	default:
		return nil, false
	}
	if mods != 0 {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mods.xtermModifierCode(), final)), true
	}
	if g.modes.DEC(DECModeAppCursorKeys) {
		return []byte{0x1b, 'O', final}, true
	}
	return []byte{0x1b, '[', final}, true
}

func functionKeyCode(key Key) (int, bool) {
	switch key {
	case KeyPageUp:
		return 5, true
	case KeyPageDown:
		return 6, true
	case KeyInsert:
		return 2, true
	case KeyDelete:
		return 3, true
	case KeyF1:
		return 11, true
	case KeyF2:
		return 12, true
	case KeyF3:
		return 13, true
	case KeyF4:
		return 14, true
	case KeyF5:
		return 15, true
	case KeyF6:
		return 17, true
	case KeyF7:
		return 18, true
	case KeyF8:
		return 19, true
	case KeyF9:
		return 20, true
	case KeyF10:
		return 21, true
	case KeyF11:
		return 23, true
	case KeyF12:
		return 24, true
	}
	return 0, false
}

func (g *InputGenerator) encodeFunctionKey(code int, mods Modifier) []byte {
	if mods != 0 {
		return []byte(fmt.Sprintf("\x1b[%d;%d~", code, mods.xtermModifierCode()))
	}
	return []byte(fmt.Sprintf("\x1b[%d~", code))
}

// EncodeText forwards printable text unmodified, except that DECCKM/meta
// handling is out of scope for plain text: Alt-modified ASCII is ESC-prefixed
// per the xterm "meta sends escape" convention.
func (g *InputGenerator) EncodeText(text string, mods Modifier) []byte {
	b := []byte(text)
	if mods&ModAlt != 0 && len(b) > 0 {
		return append([]byte{0x1b}, b...)
	}
	return b
}

// EncodePaste wraps text in bracketed-paste markers when DECSET 2004 is
// active, stripping any embedded paste-end marker the content might
// otherwise be mistaken for (§4.4 "Bracketed paste").
func (g *InputGenerator) EncodePaste(text string) []byte {
	if !g.modes.DEC(DECModeBracketedPaste) {
		return []byte(text)
	}
	sanitized := stripPasteEndMarker(text)
	var out []byte
	out = append(out, "\x1b[200~"...)
	out = append(out, sanitized...)
	out = append(out, "\x1b[201~"...)
	return out
}

func stripPasteEndMarker(s string) string {
	const marker = "\x1b[201~"
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if i+len(marker) <= len(s) && s[i:i+len(marker)] == marker {
			i += len(marker) - 1
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// EncodeMouse encodes a mouse event per whichever of X10/Normal/Button/Any/
// SGR/SGR-Pixels/URXVT protocols is active, returning nil if no mouse mode
// is enabled (§4.4 "Mouse protocols").
func (g *InputGenerator) EncodeMouse(kind MouseEventKind, button MouseButton, col, row, pixelX, pixelY int, mods Modifier) []byte {
	if !g.mouseTrackingEnabled(kind) {
		return nil
	}
	code := mouseButtonCode(button, kind) + mouseModifierBits(mods)

	switch {
	case g.modes.DEC(DECModeSGRPixelsMouse):
		return sgrMouseSeq(code, pixelX, pixelY, kind == MouseRelease)
	case g.modes.DEC(DECModeSGRMouse):
		return sgrMouseSeq(code, col, row, kind == MouseRelease)
	case g.modes.DEC(DECModeURXVTMouse):
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", code+32, col, row))
	default:
		return x10MouseSeq(code, col, row)
	}
}

func (g *InputGenerator) mouseTrackingEnabled(kind MouseEventKind) bool {
	switch {
	case g.modes.DEC(DECModeAnyEventMouse):
		return true
	case g.modes.DEC(DECModeButtonEventMouse):
		return true
	case g.modes.DEC(DECModeNormalMouse):
		return kind != MouseMotion
	case g.modes.DEC(DECModeX10Mouse):
		return kind == MousePress
	}
	return false
}

func mouseButtonCode(button MouseButton, kind MouseEventKind) int {
	if kind == MouseRelease {
		return 3
	}
	switch button {
	case MouseButtonLeft:
		return 0
	case MouseButtonMiddle:
		return 1
	case MouseButtonRight:
		return 2
	case MouseWheelUp:
		return 64
	case MouseWheelDown:
		return 65
	}
	return 3
}

func mouseModifierBits(mods Modifier) int {
	bits := 0
	if mods&ModShift != 0 {
		bits |= 4
	}
	if mods&ModAlt != 0 {
		bits |= 8
	}
	if mods&ModCtrl != 0 {
		bits |= 16
	}
	return bits
}

func sgrMouseSeq(code, x, y int, release bool) []byte {
	final := byte('M')
	if release {
		final = 'm'
	}
	return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", code, x, y, final))
}

func x10MouseSeq(code, col, row int) []byte {
	return []byte{0x1b, '[', 'M', byte(code + 32), byte(col + 32), byte(row + 32)}
}

// EncodeFocus implements focus tracking (DEC mode 1004): "\x1b[I" on gain,
// "\x1b[O" on loss.
func (g *InputGenerator) EncodeFocus(gained bool) []byte {
	if !g.modes.DEC(DECModeFocusTracking) {
		return nil
	}
	if gained {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}
