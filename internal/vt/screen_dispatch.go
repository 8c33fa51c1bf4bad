package vt

import "strconv"

// DispatchESC and DispatchCSI route a completed Sequence to the operation it
// names (§4.4). Dispatch is a plain switch keyed on leader/intermediate/final
// rather than a literal map, but plays the same role as the teacher's single
// case statement in apps/texelterm/parser/parser.go's handleEscapeSequence —
// generalized here to cover the DEC-private leaders and sub-parameter forms
// that teacher switch never had to.

// DispatchESC handles a two-character (plus optional intermediate) escape
// sequence that is not CSI/DCS/OSC/APC/PM/SOS.
func (s *Screen) DispatchESC(seq *Sequence) SequenceOutcome {
	if len(seq.Intermediate) == 1 && seq.Intermediate[0] == '#' {
		switch seq.Final {
		case '8': // DECALN
			s.decAlignmentTest()
			return OutcomeOK
		}
		return OutcomeUnsupported
	}
	if len(seq.Intermediate) == 1 && seq.Intermediate[0] == '(' {
		s.designateCharset(0, seq.Final)
		return OutcomeOK
	}
	if len(seq.Intermediate) == 1 && seq.Intermediate[0] == ')' {
		s.designateCharset(1, seq.Final)
		return OutcomeOK
	}
	if len(seq.Intermediate) == 1 && seq.Intermediate[0] == '*' {
		s.designateCharset(2, seq.Final)
		return OutcomeOK
	}
	if len(seq.Intermediate) == 1 && seq.Intermediate[0] == '+' {
		s.designateCharset(3, seq.Final)
		return OutcomeOK
	}

	switch seq.Final {
	case 'D': // IND
		s.Index()
	case 'M': // RI
		s.ReverseIndex()
	case 'E': // NEL
		s.NextLine()
	case 'H': // HTS
		s.SetTabStop()
	case '7': // DECSC
		s.savedDEC.Push(s.cursor.Save())
	case '8': // DECRC
		if sc, ok := s.savedDEC.Pop(); ok {
			s.cursor.Restore(sc)
		}
	case 'c': // RIS
		s.HardReset()
	case 'n': // LS2
		s.cursor.Charsets.GL = 2
	case 'o': // LS3
		s.cursor.Charsets.GL = 3
	case 'N': // SS2
		s.cursor.Charsets.SingleShift = 2
	case 'O': // SS3
		s.cursor.Charsets.SingleShift = 3
	case '=': // DECKPAM
	case '>': // DECKPNM
	case '6': // DECBI
		s.BackIndex()
	case '9': // DECFI
		s.ForwardIndex()
	default:
		return OutcomeUnsupported
	}
	return OutcomeOK
}

func (s *Screen) designateCharset(slot int, final byte) {
	cs := CharsetUSASCII
	if final == '0' {
		cs = CharsetSpecialGraphics
	}
	s.cursor.Charsets.G[slot] = cs
}

// decAlignmentTest implements DECALN: fill the page with 'E'.
func (s *Screen) decAlignmentTest() {
	size := s.pageSize()
	for row := 0; row < size.Lines; row++ {
		line := s.activeGrid().Line(row)
		if line == nil {
			continue
		}
		cells := line.Cells(size.Columns)
		for col := range cells {
			cells[col] = Cell{Codepoints: []rune{'E'}, Width: 1, SGRAttrs: DefaultSGR()}
		}
	}
	s.cursor.Line, s.cursor.Column = 0, 0
	s.cursor.WrapPending = false
}

// DispatchCSI handles a completed CSI sequence.
func (s *Screen) DispatchCSI(seq *Sequence) SequenceOutcome {
	switch seq.Leader {
	case '?':
		return s.dispatchDECPrivateCSI(seq)
	case '>':
		return s.dispatchGreaterCSI(seq)
	case '=':
		return s.dispatchEqualCSI(seq)
	case '<', 0:
		// fallthrough to the unprefixed table below
	default:
		return OutcomeUnsupported
	}

	p := seq.Params
	n1 := func(def int) int { return orAtLeast1(p.Or(0, def)) }

	switch seq.Final {
	case 'A': // CUU
		s.cursor.Line -= n1(1)
		s.clampToMargin()
	case 'B': // CUD
		s.cursor.Line += n1(1)
		s.clampToMargin()
	case 'C': // CUF
		s.cursor.Column += n1(1)
		s.clampToMargin()
	case 'D': // CUB
		s.cursor.Column -= n1(1)
		s.clampToMargin()
	case 'E': // CNL
		s.cursor.Line += n1(1)
		s.cursor.Column = s.originLeft()
		s.clampToMargin()
	case 'F': // CPL
		s.cursor.Line -= n1(1)
		s.cursor.Column = s.originLeft()
		s.clampToMargin()
	case 'G', '`': // CHA / HPA
		s.MoveCursorOrigin(s.cursor.Line-s.originTop(), n1(1)-1)
	case 'd': // VPA
		s.MoveCursorOrigin(n1(1)-1, s.cursor.Column-s.originLeft())
	case 'H', 'f': // CUP / HVP
		s.MoveCursorOrigin(n1(1)-1, n1FromIndex(p, 1, 1)-1)
	case 'I': // CHT
		s.TabForward(n1(1))
	case 'Z': // CBT
		s.TabBackward(n1(1))
	case 'J': // ED
		s.EraseInDisplay(p.Int(0), false)
	case 'K': // EL
		s.EraseInLine(p.Int(0), false)
	case 'L': // IL
		s.InsertLines(n1(1))
	case 'M': // DL
		s.DeleteLines(n1(1))
	case '@': // ICH
		s.InsertCharacters(n1(1))
	case 'X': // ECH
		s.EraseCharacters(n1(1))
	case 'S': // SU
		s.activeGrid().ScrollUp(n1(1), s.cursor.SGR, s.margin)
	case 'T':
		if seq.Leader == 0 && p.Len() <= 1 { // SD
			s.activeGrid().ScrollDown(n1(1), s.cursor.SGR, s.margin)
		}
	case 'b': // REP
		s.RepeatCharacter(n1(1))
	case 'c': // DA1
		s.replyBytes(s.caps.DA1Response())
	case 'n': // DSR
		s.reportDSR(p.Int(0))
	case 'g': // TBC
		s.ClearTabStop(p.Int(0))
	case 'm': // SGR
		s.applySGR(seq.Params)
	case 'r': // DECSTBM
		s.setTopBottomMargin(p)
	case 's': // DECSLRM or SCOSC
		if s.modes.DEC(DECModeDECLRMM) {
			s.setLeftRightMargin(p)
		} else {
			sc := s.cursor.Save()
			s.savedSCO = &sc
		}
	case 'u': // SCORC
		if s.savedSCO != nil {
			s.cursor.Restore(*s.savedSCO)
		}
	case 'h': // SM
		s.setAnsiMode(p, true)
	case 'l': // RM
		s.setAnsiMode(p, false)
	case 'q':
		if len(seq.Intermediate) == 1 && seq.Intermediate[0] == ' ' { // DECSCUSR
			s.setCursorStyle(p.Int(0))
		}
	case 't': // window manipulation
		return s.windowManipulation(p)
	case 'p':
		if len(seq.Intermediate) == 1 && seq.Intermediate[0] == '!' { // DECSTR soft reset
			s.SoftReset()
		}
	case 'P':
		if len(seq.Intermediate) == 1 && seq.Intermediate[0] == '#' { // XTPUSHCOLORS
			s.palette.Push()
		} else { // DCH
			s.DeleteCharacters(n1(1))
		}
	case 'Q':
		if len(seq.Intermediate) == 1 && seq.Intermediate[0] == '#' { // XTPOPCOLORS
			if !s.palette.Pop() {
				return OutcomeInvalid
			}
		}
	case 'R':
		if len(seq.Intermediate) == 1 && seq.Intermediate[0] == '#' { // XTREPORTCOLORS
			s.replyBytes([]byte("\x1b[?" + strconv.Itoa(s.palette.ReportDepth()) + "#Q"))
		}
	default:
		return OutcomeUnsupported
	}
	return OutcomeOK
}

func orAtLeast1(v int) int {
	if v <= 0 {
		return 1
	}
	return v
}

func n1FromIndex(p Params, i, def int) int {
	return orAtLeast1(p.Or(i, def))
}

func (s *Screen) clampToMargin() {
	if s.cursor.Line < s.margin.Top {
		s.cursor.Line = s.margin.Top
	}
	if s.cursor.Line > s.margin.Bottom {
		s.cursor.Line = s.margin.Bottom
	}
	if s.cursor.Column < s.margin.Left {
		s.cursor.Column = s.margin.Left
	}
	if s.cursor.Column > s.margin.Right {
		s.cursor.Column = s.margin.Right
	}
	s.cursor.WrapPending = false
}

// setTopBottomMargin implements DECSTBM: set the vertical scroll margin and
// home the cursor to the origin.
func (s *Screen) setTopBottomMargin(p Params) {
	size := s.pageSize()
	top := p.Or(0, 1) - 1
	bottom := p.Or(1, size.Lines) - 1
	if bottom >= size.Lines {
		bottom = size.Lines - 1
	}
	if top < 0 || bottom <= top {
		return
	}
	s.margin.Top, s.margin.Bottom = top, bottom
	s.MoveCursorOrigin(0, 0)
}

// setLeftRightMargin implements DECSLRM, gated by DECLRMM (mode 69).
func (s *Screen) setLeftRightMargin(p Params) {
	size := s.pageSize()
	left := p.Or(0, 1) - 1
	right := p.Or(1, size.Columns) - 1
	if right >= size.Columns {
		right = size.Columns - 1
	}
	if left < 0 || right <= left {
		return
	}
	s.margin.Left, s.margin.Right = left, right
	s.MoveCursorOrigin(0, 0)
}

func (s *Screen) setAnsiMode(p Params, on bool) {
	for _, param := range p {
		if param.Value() == int(AnsiModeIRM) {
			s.insertMode = on
			s.modes.SetAnsi(AnsiModeIRM, on)
		}
	}
}

func (s *Screen) dispatchDECPrivateCSI(seq *Sequence) SequenceOutcome {
	p := seq.Params
	switch seq.Final {
	case 'h':
		for _, param := range p {
			s.setDECMode(DECMode(param.Value()), true)
		}
	case 'l':
		for _, param := range p {
			s.setDECMode(DECMode(param.Value()), false)
		}
	case 's': // XTSAVE
		modes := make([]DECMode, 0, len(p))
		for _, param := range p {
			modes = append(modes, DECMode(param.Value()))
		}
		s.modes.Save(modes)
	case 'r': // XTRESTORE
		if !s.modes.Restore() {
			return OutcomeInvalid
		}
		s.syncModesToState()
	default:
		return OutcomeUnsupported
	}
	return OutcomeOK
}

func (s *Screen) dispatchGreaterCSI(seq *Sequence) SequenceOutcome {
	switch seq.Final {
	case 'c': // DA2
		s.replyBytes(s.caps.DA2Response())
		return OutcomeOK
	}
	return OutcomeUnsupported
}

func (s *Screen) dispatchEqualCSI(seq *Sequence) SequenceOutcome {
	switch seq.Final {
	case 'c': // DA3
		s.replyBytes(s.caps.DA3Response())
		return OutcomeOK
	}
	return OutcomeUnsupported
}

// setDECMode applies a DEC private mode change, updating the derived Screen
// fields (AutoWrap, OriginMode, alt-screen selection) that mirror bits in
// Modes (§3 "Modes").
func (s *Screen) setDECMode(mode DECMode, on bool) {
	s.modes.SetDEC(mode, on)
	switch mode {
	case DECModeAutoWrap:
		s.cursor.AutoWrap = on
	case DECModeOriginMode:
		s.cursor.OriginMode = on
		s.MoveCursorOrigin(0, 0)
	case DECModeShowCursor:
		s.cursor.Visible = on
	case DECModeAltScreen47:
		s.switchScreen(on, false, false)
	case DECModeAltScreen1047:
		s.switchScreen(on, false, true)
	case DECModeSaveCursor:
		if on {
			s.savedAltMain = s.cursor.Save()
		} else {
			s.cursor.Restore(s.savedAltMain)
		}
	case DECModeAltScreen1049:
		s.switchScreen(on, true, true)
	case DECModeSynchronizedUpdate:
		s.synchronizedUpdate = on
	}
}

// switchScreen implements the primary/alternate swap for modes 47/1047/1049.
// withCursor and clear are independent per mode (§9 "Design Notes": "1049:
// saves+switches+clears alt on set, restores cursor+switches back on reset;
// 1047: switches+clears only; 47: switches only") — 1047 clears without
// touching the cursor, which a single combined flag cannot express.
func (s *Screen) switchScreen(toAlternate bool, withCursor bool, clear bool) {
	wantAlt := toAlternate
	if s.active == ScreenAlternate && wantAlt {
		return
	}
	if s.active == ScreenPrimary && !wantAlt {
		return
	}
	if wantAlt {
		if withCursor {
			s.savedAltMain = s.cursor.Save()
		}
		s.active = ScreenAlternate
		if clear {
			s.EraseInDisplay(2, false)
		}
	} else {
		s.active = ScreenPrimary
		if withCursor {
			s.cursor.Restore(s.savedAltMain)
		}
	}
	s.cb.BufferChanged(s.active)
}

// syncModesToState reapplies the derived Screen fields after XTRESTORE pops
// a batch of DEC modes back onto the live map.
func (s *Screen) syncModesToState() {
	s.cursor.AutoWrap = s.modes.DEC(DECModeAutoWrap)
	s.cursor.OriginMode = s.modes.DEC(DECModeOriginMode)
	s.cursor.Visible = s.modes.DEC(DECModeShowCursor)
}

func (s *Screen) setCursorStyle(n int) {
	switch n {
	case 0, 1:
		s.settings.CursorShape, s.settings.CursorDisplay = CursorBlock, CursorBlink
	case 2:
		s.settings.CursorShape, s.settings.CursorDisplay = CursorBlock, CursorSteady
	case 3:
		s.settings.CursorShape, s.settings.CursorDisplay = CursorUnderscore, CursorBlink
	case 4:
		s.settings.CursorShape, s.settings.CursorDisplay = CursorUnderscore, CursorSteady
	case 5:
		s.settings.CursorShape, s.settings.CursorDisplay = CursorBar, CursorBlink
	case 6:
		s.settings.CursorShape, s.settings.CursorDisplay = CursorBar, CursorSteady
	}
}

// HardReset implements RIS: reinitialize modes, margins, cursor, tab stops,
// blank both grids, and clear scrollback (§4.5 "Hard reset (RIS)").
func (s *Screen) HardReset() {
	s.modes.reset()
	s.cursor = NewCursor()
	size := s.pageSize()
	s.margin = Margin{Top: 0, Bottom: size.Lines - 1, Left: 0, Right: size.Columns - 1}
	s.tabStops = defaultTabStops(size.Columns)
	s.insertMode = false
	s.active = ScreenPrimary
	s.savedDEC = SavedCursorStack{}
	s.savedSCO = nil
	s.EraseInDisplay(2, false)
	s.windowTitle = nil
	s.windowTitleStack = nil
	s.synchronizedUpdate = false
	s.primary.ClearHistory()
	s.alternate.ClearHistory()
	s.palette.Reset()
}

// SoftReset implements DECSTR: like RIS but leaves page contents and
// scrollback untouched (§4.4 "DECSTR").
func (s *Screen) SoftReset() {
	s.cursor.OriginMode = false
	s.cursor.AutoWrap = true
	s.cursor.Visible = true
	s.cursor.SGR = DefaultSGR()
	s.cursor.Charsets = defaultCharsetState()
	size := s.pageSize()
	s.margin = Margin{Top: 0, Bottom: size.Lines - 1, Left: 0, Right: size.Columns - 1}
	s.insertMode = false
	s.savedDEC = SavedCursorStack{}
	s.savedSCO = nil
}
