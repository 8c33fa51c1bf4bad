package vt

import "unicode/utf8"

// WriteRune is the hot path for printable text (§4.4 "Writing text"). The
// Parser has already UTF-8-decoded the rune by the time it reaches here;
// Screen still performs the wrap-pending/grapheme/width handling the spec
// describes as three steps.
func (s *Screen) WriteRune(r rune) {
	if s.cursor.WrapPending && s.cursor.AutoWrap {
		s.wrapToNextLine()
	}

	charset := s.cursor.Charsets.Active()
	mapped := charset.Translate(r)

	grid := s.activeGrid()
	width := s.pageSize().Columns

	// Combining marks extend the previous cell instead of starting a new
	// one (step 2).
	if s.grapheme.Step(mapped) && s.cursor.Column > s.originLeft() {
		prevCol := s.cursor.Column - 1
		line := grid.Line(s.cursor.Line)
		if line != nil {
			cell := line.CellAt(width, prevCol)
			cell.AppendCombining(mapped)
			line.SetCellAt(width, prevCol, cell)
		}
		return
	}

	w := RuneWidth(mapped)
	if w == 0 {
		w = 1 // control/format codepoints reaching here render as a narrow glyph
	}

	if s.cursor.Column+w > s.margin.Right+1 {
		if s.cursor.AutoWrap {
			s.wrapToNextLine()
		} else {
			s.cursor.Column = s.margin.Right - w + 1
			if s.cursor.Column < s.originLeft() {
				s.cursor.Column = s.originLeft()
			}
		}
	}

	line := grid.Line(s.cursor.Line)
	if line == nil {
		return
	}

	if s.insertMode {
		s.shiftRightForInsert(line, width, w)
	}

	cell := Cell{Codepoints: []rune{mapped}, Width: uint8(w), SGRAttrs: s.cursor.SGR, Hyperlink: s.cursor.Hyperlink}
	line.SetCellAt(width, s.cursor.Column, cell)
	if w == 2 && s.cursor.Column+1 < width {
		line.SetCellAt(width, s.cursor.Column+1, Cell{Width: 0, SGRAttrs: s.cursor.SGR})
	}

	s.advanceCursorAfterWrite(w)
}

// WriteRunes writes each rune through WriteRune in order, for callers (the
// vi overlay's Paste) that already have a decoded rune slice rather than a
// raw PTY byte stream.
func (s *Screen) WriteRunes(runes []rune) {
	for _, r := range runes {
		s.WriteRune(r)
	}
}

func (s *Screen) shiftRightForInsert(line *Line, width, w int) {
	cells := line.Cells(width)
	end := s.margin.Right + 1
	for i := end - 1; i >= s.cursor.Column+w; i-- {
		cells[i] = cells[i-w]
	}
}

func (s *Screen) advanceCursorAfterWrite(w int) {
	if s.cursor.Column+w > s.margin.Right {
		s.cursor.Column = s.margin.Right
		s.cursor.WrapPending = true
		return
	}
	s.cursor.Column += w
}

func (s *Screen) wrapToNextLine() {
	line := s.activeGrid().Line(s.cursor.Line)
	if line != nil {
		line.Flags |= LineWrapped
	}
	s.cursor.WrapPending = false
	s.cursor.Column = s.originLeft()
	if s.cursor.Line == s.margin.Bottom {
		s.activeGrid().ScrollUp(1, s.cursor.SGR, s.margin)
		return
	}
	if s.cursor.Line < s.pageSize().Lines-1 {
		s.cursor.Line++
	}
}

// WriteTrivialRun appends a run of single-width printable ASCII bytes
// directly to a trivial line when the fast-path conditions of §4.4 step 2
// hold: the run targets a single horizontal span within the right margin,
// the destination line is empty, and the active charset is USASCII. Nothing
// in the package calls it: Terminal feeds every PTY byte through the Parser,
// which prints rune by rune via WriteRune, and grid rows are created
// inflated (NewBlankLine), so it only applies to a line built with
// NewTrivialLine.
func (s *Screen) WriteTrivialRun(b []byte) (consumed int) {
	if s.cursor.WrapPending || s.insertMode || s.cursor.Charsets.Active() != CharsetUSASCII {
		return 0
	}
	if s.cursor.Column != s.originLeft() {
		return 0
	}
	line := s.activeGrid().Line(s.cursor.Line)
	if line == nil || !line.IsTrivial() || !line.CanAppendTrivial(s.cursor.SGR) {
		return 0
	}
	avail := s.margin.Right - s.cursor.Column + 1
	n := 0
	for n < len(b) && n < avail {
		c := b[n]
		if c < 0x20 || c >= 0x7f || !utf8.RuneStart(c) {
			break
		}
		n++
	}
	if n == 0 {
		return 0
	}
	line.AppendTrivial(b[:n], s.cursor.SGR)
	s.cursor.Column += n
	if s.cursor.Column > s.margin.Right {
		s.cursor.Column = s.margin.Right
		s.cursor.WrapPending = true
	}
	return n
}
