package vt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the 256-slot indexed color table plus the default
// foreground/background/cursor colors, all mutable via OSC 4/10/11/12/17/19
// and saveable/restorable via XTPUSHCOLORS/XTPOPCOLORS (§4.4 "Color
// palette").
//
// Grounded on framegrace-texelation's Attribute color pair
// (apps/texelterm/parser/vterm.go), generalized from a fixed fg/bg pair into
// a full 256-entry table; color parsing uses go-colorful instead of a
// hand-rolled hex/rgb splitter.
type Palette struct {
	slots      [256]Color
	defaultFG  Color
	defaultBG  Color
	cursor     Color
	saveStack  []paletteSnapshot
}

type paletteSnapshot struct {
	slots     [256]Color
	defaultFG Color
	defaultBG Color
	cursor    Color
}

// NewPalette returns the xterm default 256-color table.
func NewPalette() *Palette {
	p := &Palette{defaultFG: RGB(229, 229, 229), defaultBG: RGB(0, 0, 0), cursor: RGB(255, 255, 255)}
	for i := 0; i < 16; i++ {
		p.slots[i] = ansi16[i]
	}
	for i := 0; i < 216; i++ {
		r := cube6[i/36%6]
		g := cube6[i/6%6]
		b := cube6[i%6]
		p.slots[16+i] = RGB(r, g, b)
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + i*10)
		p.slots[232+i] = RGB(v, v, v)
	}
	return p
}

var cube6 = [6]uint8{0, 95, 135, 175, 215, 255}

var ansi16 = [16]Color{
	RGB(0, 0, 0), RGB(205, 0, 0), RGB(0, 205, 0), RGB(205, 205, 0),
	RGB(0, 0, 238), RGB(205, 0, 205), RGB(0, 205, 205), RGB(229, 229, 229),
	RGB(127, 127, 127), RGB(255, 0, 0), RGB(0, 255, 0), RGB(255, 255, 0),
	RGB(92, 92, 255), RGB(255, 0, 255), RGB(0, 255, 255), RGB(255, 255, 255),
}

// Resolve returns the effective color a Color value renders as, looking up
// the palette table for ColorIndexed and passing RGB/Default through.
func (p *Palette) Resolve(c Color, defaultIsFG bool) Color {
	switch c.Mode {
	case ColorIndexed:
		return p.slots[c.Value]
	case ColorRGB:
		return c
	default:
		if defaultIsFG {
			return p.defaultFG
		}
		return p.defaultBG
	}
}

// SetSlot implements OSC 4: assign an indexed slot's RGB value from an
// xparsecolor-style spec ("rgb:rr/gg/bb" or "#rrggbb"). X11 color names
// are not recognized.
func (p *Palette) SetSlot(index int, spec string) bool {
	c, ok := parseColorSpec(spec)
	if !ok || index < 0 || index > 255 {
		return false
	}
	p.slots[index] = c
	return true
}

// SlotSpec formats a slot's current value as an OSC 4 query reply
// ("rgb:rrrr/gggg/bbbb", 16-bit-per-channel per xterm convention).
func (p *Palette) SlotSpec(index int) string {
	if index < 0 || index > 255 {
		return ""
	}
	return formatColorSpec(p.slots[index])
}

// SetDefault implements OSC 10/11/12 (fg/bg/cursor); which selects the slot.
func (p *Palette) SetDefault(which int, spec string) bool {
	c, ok := parseColorSpec(spec)
	if !ok {
		return false
	}
	switch which {
	case 10:
		p.defaultFG = c
	case 11:
		p.defaultBG = c
	case 12:
		p.cursor = c
	default:
		return false
	}
	return true
}

// DefaultSpec formats the current fg/bg/cursor default for an OSC query
// reply.
func (p *Palette) DefaultSpec(which int) string {
	switch which {
	case 10:
		return formatColorSpec(p.defaultFG)
	case 11:
		return formatColorSpec(p.defaultBG)
	case 12:
		return formatColorSpec(p.cursor)
	}
	return ""
}

// Reset restores the entire palette — indexed slots plus default
// fg/bg/cursor — to power-on defaults, discarding any XTPUSHCOLORS stack
// (RIS hard reset, §4.5).
func (p *Palette) Reset() {
	*p = *NewPalette()
}

// ResetSlot implements OSC 104: restore one (or, if index<0, every) indexed
// slot to its power-on default.
func (p *Palette) ResetSlot(index int) {
	fresh := NewPalette()
	if index < 0 {
		p.slots = fresh.slots
		return
	}
	if index <= 255 {
		p.slots[index] = fresh.slots[index]
	}
}

// Push implements XTPUSHCOLORS: save the full palette state.
func (p *Palette) Push() {
	p.saveStack = append(p.saveStack, paletteSnapshot{slots: p.slots, defaultFG: p.defaultFG, defaultBG: p.defaultBG, cursor: p.cursor})
}

// Pop implements XTPOPCOLORS: restore the most recently pushed state.
func (p *Palette) Pop() bool {
	if len(p.saveStack) == 0 {
		return false
	}
	top := p.saveStack[len(p.saveStack)-1]
	p.saveStack = p.saveStack[:len(p.saveStack)-1]
	p.slots, p.defaultFG, p.defaultBG, p.cursor = top.slots, top.defaultFG, top.defaultBG, top.cursor
	return true
}

// ReportDepth implements XTREPORTCOLORS: the save stack depth.
func (p *Palette) ReportDepth() int { return len(p.saveStack) }

func parseColorSpec(spec string) (Color, bool) {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "rgb:") {
		parts := strings.Split(spec[4:], "/")
		if len(parts) != 3 {
			return Color{}, false
		}
		r, ok1 := parseHexChannel(parts[0])
		g, ok2 := parseHexChannel(parts[1])
		b, ok3 := parseHexChannel(parts[2])
		if !ok1 || !ok2 || !ok3 {
			return Color{}, false
		}
		return RGB(r, g, b), true
	}
	c, err := colorful.Hex(normalizeHex(spec))
	if err == nil {
		r, g, b := c.RGB255()
		return RGB(r, g, b), true
	}
	return Color{}, false
}

func normalizeHex(spec string) string {
	if strings.HasPrefix(spec, "#") {
		return spec
	}
	return "#" + spec
}

// parseHexChannel accepts 1-4 hex digits per channel (xterm's "rgb:" spec
// allows varying precision) and scales to 8 bits.
func parseHexChannel(s string) (uint8, bool) {
	if len(s) == 0 || len(s) > 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	maxVal := uint64(1)<<(4*len(s)) - 1
	scaled := v * 255 / maxVal
	return uint8(scaled), true
}

func formatColorSpec(c Color) string {
	return fmt.Sprintf("rgb:%02x%02x/%02x%02x/%02x%02x", c.R, c.R, c.G, c.G, c.B, c.B)
}
