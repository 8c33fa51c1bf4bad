package vt

// LineFlags carries per-line metadata independent of any single cell
// (§3 Line).
type LineFlags uint8

const (
	LineWrappable LineFlags = 1 << iota
	LineWrapped
	LineMarked
)

// Line is either a trivial contiguous-text buffer (hot path for plain
// appends under uniform SGR) or an inflated per-cell array. Transitions are
// one-directional: trivial → inflated, never back (§3 Line).
//
// Grounded on framegrace-texelation's dual representation of committed rows
// (memory_buffer.go's []Cell rows vs disk_history.go's encoded byte pages),
// generalized here into a single type with an explicit trivial/inflated
// mode instead of two separate storage subsystems.
type Line struct {
	Flags LineFlags

	// Trivial representation.
	trivial     bool
	text        []byte // raw bytes referencing (a copy of) an input fragment
	usedColumns int
	trivialSGR  SGRAttrs

	// Inflated representation.
	cells []Cell
}

// NewBlankLine returns an inflated, blank line of the given width, filled
// with sgr, matching what scrollUp/scrollDown/resize insert.
func NewBlankLine(width int, sgr SGRAttrs) *Line {
	l := &Line{Flags: LineWrappable, cells: make([]Cell, width)}
	for i := range l.cells {
		l.cells[i] = BlankCell(sgr)
	}
	return l
}

// NewTrivialLine returns a trivial line ready to receive an append-only run
// of printable ASCII under uniform SGR.
func NewTrivialLine(width int) *Line {
	return &Line{Flags: LineWrappable, trivial: true, text: make([]byte, 0, width)}
}

// IsTrivial reports whether the line is still in its compact representation.
func (l *Line) IsTrivial() bool { return l.trivial }

// UsedColumns returns the number of columns occupied by content (trivial
// lines only track this cheaply; inflated lines compute it from cell
// widths).
func (l *Line) UsedColumns() int {
	if l.trivial {
		return l.usedColumns
	}
	last := -1
	for i, c := range l.cells {
		if !c.IsBlank() {
			last = i
		}
	}
	if last < 0 {
		return 0
	}
	w := int(l.cells[last].Width)
	if w == 0 {
		w = 1
	}
	return last + w
}

// AppendTrivial appends raw bytes (already validated as single-width
// printable ASCII, §4.4 step 2) to a trivial line under the given SGR. The
// caller must have already verified sgr matches trivialSGR or that the line
// is empty.
func (l *Line) AppendTrivial(b []byte, sgr SGRAttrs) {
	if !l.trivial {
		panic("vt: AppendTrivial on inflated line")
	}
	if len(l.text) == 0 {
		l.trivialSGR = sgr
	}
	l.text = append(l.text, b...)
	l.usedColumns += len(b)
}

// CanAppendTrivial reports whether b can be appended to this trivial line
// under sgr without forcing inflation: the line must still be trivial and
// either empty or already carrying the same SGR.
func (l *Line) CanAppendTrivial(sgr SGRAttrs) bool {
	return l.trivial && (len(l.text) == 0 || l.trivialSGR == sgr)
}

// Inflate converts a trivial line to its per-cell representation in place.
// Idempotent.
func (l *Line) Inflate(width int) {
	if !l.trivial {
		return
	}
	cells := make([]Cell, width)
	col := 0
	for _, b := range l.text {
		if col >= width {
			break
		}
		cells[col] = Cell{Codepoints: []rune{rune(b)}, Width: 1, SGRAttrs: l.trivialSGR}
		col++
	}
	for ; col < width; col++ {
		cells[col] = BlankCell(DefaultSGR())
	}
	l.cells = cells
	l.trivial = false
	l.text = nil
}

// Cells returns the line's cell array, inflating first if necessary. width
// is used only if inflation is required.
func (l *Line) Cells(width int) []Cell {
	if l.trivial {
		l.Inflate(width)
	}
	return l.cells
}

// CellAt returns the cell at column, inflating first if necessary.
func (l *Line) CellAt(width, column int) Cell {
	cells := l.Cells(width)
	if column < 0 || column >= len(cells) {
		return Cell{}
	}
	return cells[column]
}

// SetCellAt writes a cell at column, inflating first if necessary.
func (l *Line) SetCellAt(width, column int, c Cell) {
	cells := l.Cells(width)
	if column < 0 || column >= len(cells) {
		return
	}
	cells[column] = c
}

// Clone returns a deep copy, used when a Line must be duplicated (e.g. a
// captured scrollback line, or DECCRA rectangle copy source snapshot).
func (l *Line) Clone() *Line {
	c := &Line{Flags: l.Flags, trivial: l.trivial, trivialSGR: l.trivialSGR, usedColumns: l.usedColumns}
	if l.trivial {
		c.text = append([]byte(nil), l.text...)
	} else {
		c.cells = make([]Cell, len(l.cells))
		for i, cell := range l.cells {
			cc := cell
			cc.Codepoints = append([]rune(nil), cell.Codepoints...)
			c.cells[i] = cc
		}
	}
	return c
}

// PlainText renders every codepoint of the line's cells (base and combining
// marks, no attributes) as a string, skipping wide-glyph continuation cells,
// used by capture-buffer (OSC 314) and search. An inflated line yields one
// character per column, so blank cells come out as spaces; a trivial line
// yields only its appended text.
func (l *Line) PlainText(width int) string {
	if l.trivial {
		return string(l.text)
	}
	runes := make([]rune, 0, len(l.cells))
	for _, c := range l.cells {
		if c.Width == 0 {
			continue // continuation cell of a wide glyph
		}
		runes = append(runes, c.Codepoints...)
	}
	return string(runes)
}
