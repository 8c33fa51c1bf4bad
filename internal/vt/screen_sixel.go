package vt

// sixelParser is the DCSSubParser Screen.HookDCS installs for "DCS
// Pa;Pb;Pc q <sixel data> ST" (§4.4 "Sixel graphics"). It decodes the
// six-row-per-byte bitmap format into an RGBA fragment and, on Unhook,
// registers it with the Screen's ImagePool and attaches it at the cursor.
//
// Grounded on the Sixel grammar summarized in original_source/vtbackend
// (SixelImageBuilder); the teacher has no Sixel support, so this is built
// from the spec's description of color introducers (#Pc;Pu;Px;Py;Pz),
// repeat counts (!Pn Pch), graphics newline (-) and carriage return ($).
type sixelParser struct {
	screen *Screen

	palette    map[int][3]uint8
	curColor   int
	x, y       int
	maxX, maxY int

	pixels map[[2]int][3]uint8

	pendingRepeat int
	scanningRepeat bool
	scanningColor  bool
	colorArgs      []int
	colorArgBuf    int
	colorArgSeen   bool
}

func (s *Screen) newSixelParser(params Params) *sixelParser {
	p := &sixelParser{
		screen:  s,
		palette: defaultSixelPalette(),
		pixels:  make(map[[2]int][3]uint8),
	}
	return p
}

func defaultSixelPalette() map[int][3]uint8 {
	m := make(map[int][3]uint8, 16)
	for i, c := range ansi16 {
		m[i] = [3]uint8{c.R, c.G, c.B}
	}
	return m
}

func (p *sixelParser) Put(b byte) {
	switch {
	case b == '#':
		p.scanningColor = true
		p.colorArgs = p.colorArgs[:0]
		p.colorArgBuf = 0
		p.colorArgSeen = false
	case p.scanningColor && (b == ';' || (b >= '0' && b <= '9')):
		p.collectColorArg(b)
	case p.scanningColor:
		p.finishColorIntroducer()
		p.scanningColor = false
		p.putGraphic(b)
	case b == '!':
		p.scanningRepeat = true
		p.pendingRepeat = 0
	case p.scanningRepeat && b >= '0' && b <= '9':
		p.pendingRepeat = p.pendingRepeat*10 + int(b-'0')
	case p.scanningRepeat:
		p.scanningRepeat = false
		n := p.pendingRepeat
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			p.putGraphic(b)
		}
	default:
		p.putGraphic(b)
	}
}

func (p *sixelParser) collectColorArg(b byte) {
	if b == ';' {
		p.colorArgs = append(p.colorArgs, p.colorArgBuf)
		p.colorArgBuf = 0
		p.colorArgSeen = false
		return
	}
	p.colorArgBuf = p.colorArgBuf*10 + int(b-'0')
	p.colorArgSeen = true
}

func (p *sixelParser) finishColorIntroducer() {
	if p.colorArgSeen || len(p.colorArgs) == 0 {
		p.colorArgs = append(p.colorArgs, p.colorArgBuf)
	}
	if len(p.colorArgs) == 0 {
		return
	}
	idx := p.colorArgs[0]
	if len(p.colorArgs) == 5 && p.colorArgs[1] == 2 {
		// #Pc;2;Pr;Pg;Pb — percentages 0..100
		r := scalePercent(p.colorArgs[2])
		g := scalePercent(p.colorArgs[3])
		b := scalePercent(p.colorArgs[4])
		p.palette[idx] = [3]uint8{r, g, b}
	}
	p.curColor = idx
}

func scalePercent(v int) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return uint8(v * 255 / 100)
}

func (p *sixelParser) putGraphic(b byte) {
	switch b {
	case '-': // graphics newline
		p.x = 0
		p.y += 6
	case '$': // graphics carriage return
		p.x = 0
	default:
		if b < '?' || b > '~' {
			return
		}
		bits := b - '?'
		color := p.palette[p.curColor]
		for row := 0; row < 6; row++ {
			if bits&(1<<uint(row)) != 0 {
				p.pixels[[2]int{p.x, p.y + row}] = color
			}
		}
		if p.x > p.maxX {
			p.maxX = p.x
		}
		if p.y+5 > p.maxY {
			p.maxY = p.y + 5
		}
		p.x++
	}
}

// Unhook rasterizes the accumulated pixel set into an RGBA fragment,
// registers it with the ImagePool, and attaches it to the cell(s) under the
// cursor, then advances the cursor per the active Sixel cursor-movement
// mode (§9 "VT340 off-by-one cursor rule").
func (p *sixelParser) Unhook() {
	if len(p.pixels) == 0 {
		return
	}
	width, height := p.maxX+1, p.maxY+1
	rgba := make([]byte, width*height*4)
	for pos, c := range p.pixels {
		x, y := pos[0], pos[1]
		if x < 0 || y < 0 || x >= width || y >= height {
			continue
		}
		i := (y*width + x) * 4
		rgba[i], rgba[i+1], rgba[i+2], rgba[i+3] = c[0], c[1], c[2], 255
	}

	frag, err := p.screen.images.Register(width, height, rgba)
	if err != nil {
		p.screen.logger.Warnf("vt: sixel image rejected: %v", err)
		return
	}

	cellCols := (width + 9) / 10 // approximate 10px-per-cell glyph advance
	startCol := p.screen.cursor.Column
	line := p.screen.activeGrid().Line(p.screen.cursor.Line)
	if line != nil {
		pageWidth := p.screen.pageSize().Columns
		cells := line.Cells(pageWidth)
		for c := startCol; c < startCol+cellCols && c < len(cells); c++ {
			cells[c] = Cell{Codepoints: []rune{' '}, Width: 1, SGRAttrs: p.screen.cursor.SGR, Image: frag.ID}
		}
	}

	if !p.screen.modes.DEC(DECModeSixelScrollsRight) {
		// Cursor returns to the start column; its row is left unchanged,
		// not moved below the image.
		p.screen.cursor.Column = startCol
	} else {
		p.screen.cursor.Column = startCol + cellCols
	}
}
