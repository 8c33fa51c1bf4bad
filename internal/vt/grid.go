package vt

// Margin is a rectangular sub-region of the page bounding scrolling and (in
// origin mode) cursor positioning (§3 Margins invariant).
type Margin struct {
	Top, Bottom int // inclusive row range
	Left, Right int // inclusive column range
}

// FullPage reports whether the margin spans the entire page of the given
// size — the condition under which scrollUp migrates lines to scrollback
// and resize reflow is permitted (§4.3 Grid).
func (m Margin) FullPage(size PageSize) bool {
	return m.Top == 0 && m.Bottom == size.Lines-1 && m.Left == 0 && m.Right == size.Columns-1
}

// Grid is the cell storage for one screen (primary or alternate): an
// ordered sequence of page lines plus a bounded scrollback ring. Logical
// index range is [-len(history), pageLines) per §3.
//
// Grounded on framegrace-texelation's ScrollbackHistory (scrollback_history.go)
// for the ring-buffer eviction policy, generalized from []*LogicalLine (a
// width-independent persisted line) to []*Line (this package's
// trivial/inflated cell line) since persistence is out of scope here.
type Grid struct {
	size PageSize

	lines   []*Line // page lines, length == size.Lines
	history []*Line // scrollback ring, oldest first

	hasScrollback       bool // alternate screens never accumulate history
	maxHistoryLineCount HistoryLimit
}

// NewGrid allocates a blank grid of the given size. hasScrollback is false
// for the alternate screen (§4.5 "alternate screen's grid has no
// scrollback").
func NewGrid(size PageSize, hasScrollback bool, maxHistory HistoryLimit) *Grid {
	g := &Grid{size: size, hasScrollback: hasScrollback, maxHistoryLineCount: maxHistory}
	g.lines = make([]*Line, size.Lines)
	for i := range g.lines {
		g.lines[i] = NewBlankLine(size.Columns, DefaultSGR())
	}
	return g
}

// Size returns the grid's current page dimensions.
func (g *Grid) Size() PageSize { return g.size }

// HistoryLineCount returns the number of lines currently in scrollback.
func (g *Grid) HistoryLineCount() int { return len(g.history) }

// ClearHistory discards all scrollback lines (RIS hard reset, §4.5).
func (g *Grid) ClearHistory() { g.history = nil }

// LineAt returns the *Line for a logical offset in [-len(history), lines),
// allocating nothing. offset 0 is the top page row.
func (g *Grid) LineAt(offset int) *Line {
	if offset < 0 {
		idx := len(g.history) + offset
		if idx < 0 || idx >= len(g.history) {
			return nil
		}
		return g.history[idx]
	}
	if offset >= len(g.lines) {
		return nil
	}
	return g.lines[offset]
}

// Line returns the page line at row (0-based, page coordinates only; use
// LineAt for scrollback access).
func (g *Grid) Line(row int) *Line {
	if row < 0 || row >= len(g.lines) {
		return nil
	}
	return g.lines[row]
}

func (g *Grid) pushHistory(l *Line) {
	if !g.hasScrollback {
		return
	}
	if g.maxHistoryLineCount.Disabled {
		return
	}
	g.history = append(g.history, l)
	if g.maxHistoryLineCount.Unbounded {
		return
	}
	if excess := len(g.history) - g.maxHistoryLineCount.Max; excess > 0 {
		g.history = g.history[excess:]
	}
}

// ScrollUp removes n lines at margin.Top, migrating them to scrollback iff
// margin is full-page, and inserts n blank lines (filled with sgr) at
// margin.Bottom (§4.3 "scrollUp").
func (g *Grid) ScrollUp(n int, sgr SGRAttrs, margin Margin) {
	if n <= 0 {
		return
	}
	height := margin.Bottom - margin.Top + 1
	if n > height {
		n = height
	}
	fullPage := margin.FullPage(g.size)
	for i := 0; i < n; i++ {
		removed := g.lines[margin.Top]
		if fullPage {
			g.pushHistory(removed)
		}
		copy(g.lines[margin.Top:margin.Bottom], g.lines[margin.Top+1:margin.Bottom+1])
		g.lines[margin.Bottom] = g.blankRow(sgr)
	}
}

// ScrollDown removes n lines at margin.Bottom and inserts n blank lines at
// margin.Top (§4.3 "scrollDown": mirror of scrollUp).
func (g *Grid) ScrollDown(n int, sgr SGRAttrs, margin Margin) {
	if n <= 0 {
		return
	}
	height := margin.Bottom - margin.Top + 1
	if n > height {
		n = height
	}
	for i := 0; i < n; i++ {
		copy(g.lines[margin.Top+1:margin.Bottom+1], g.lines[margin.Top:margin.Bottom])
		g.lines[margin.Top] = g.blankRow(sgr)
	}
}

// ScrollLeft rotates cells within margin.Left..margin.Right on every row of
// the margin left by n, shifting new blank columns in at the right
// (DECIC-like horizontal scroll, §4.3 "scrollLeft/Right").
func (g *Grid) ScrollLeft(n int, sgr SGRAttrs, margin Margin) {
	g.scrollHorizontal(n, sgr, margin, true)
}

// ScrollRight is the mirror of ScrollLeft.
func (g *Grid) ScrollRight(n int, sgr SGRAttrs, margin Margin) {
	g.scrollHorizontal(n, sgr, margin, false)
}

func (g *Grid) scrollHorizontal(n int, sgr SGRAttrs, margin Margin, left bool) {
	width := margin.Right - margin.Left + 1
	if n > width {
		n = width
	}
	if n <= 0 {
		return
	}
	for row := margin.Top; row <= margin.Bottom; row++ {
		line := g.lines[row]
		cells := line.Cells(g.size.Columns)
		span := cells[margin.Left : margin.Right+1]
		if left {
			copy(span, span[n:])
			for i := width - n; i < width; i++ {
				span[i] = BlankCell(sgr)
			}
		} else {
			copy(span[n:], span)
			for i := 0; i < n; i++ {
				span[i] = BlankCell(sgr)
			}
		}
	}
}

func (g *Grid) blankRow(sgr SGRAttrs) *Line {
	return NewBlankLine(g.size.Columns, sgr)
}

// Resize adjusts the grid to newSize. When reflow && primary full-page
// margins hold, content reflows across line boundaries preserving wrapped
// chains (§4.3 "Resize"); otherwise columns are simply truncated/padded,
// growing adds blank rows at the top, and shrinking removes rows from the
// top into history.
func (g *Grid) Resize(newSize PageSize, reflow bool) {
	if reflow {
		g.resizeWithReflow(newSize)
		return
	}
	g.resizeNoReflow(newSize)
}

func (g *Grid) resizeNoReflow(newSize PageSize) {
	for i, l := range g.lines {
		_ = i
		l.Inflate(g.size.Columns)
	}
	if newSize.Columns != g.size.Columns {
		for _, l := range g.lines {
			resizeInflatedWidth(l, newSize.Columns)
		}
		for _, l := range g.history {
			l.Inflate(g.size.Columns)
			resizeInflatedWidth(l, newSize.Columns)
		}
	}
	switch {
	case newSize.Lines > g.size.Lines:
		grown := make([]*Line, 0, newSize.Lines)
		for i := 0; i < newSize.Lines-g.size.Lines; i++ {
			grown = append(grown, NewBlankLine(newSize.Columns, DefaultSGR()))
		}
		g.lines = append(grown, g.lines...)
	case newSize.Lines < g.size.Lines:
		removedCount := g.size.Lines - newSize.Lines
		for i := 0; i < removedCount; i++ {
			g.pushHistory(g.lines[i])
		}
		g.lines = g.lines[removedCount:]
	}
	g.size = newSize
}

func resizeInflatedWidth(l *Line, columns int) {
	cells := l.cells
	if len(cells) == columns {
		return
	}
	if len(cells) > columns {
		l.cells = cells[:columns]
		return
	}
	grown := make([]Cell, columns)
	copy(grown, cells)
	for i := len(cells); i < columns; i++ {
		grown[i] = BlankCell(DefaultSGR())
	}
	l.cells = grown
}

// resizeWithReflow implements §4.3's reflow algorithm: concatenate each
// logical line's wrapped segments, then re-split at the new column count.
func (g *Grid) resizeWithReflow(newSize PageSize) {
	all := make([]*Line, 0, len(g.history)+len(g.lines))
	all = append(all, g.history...)
	all = append(all, g.lines...)

	logical := groupLogicalLines(all, g.size.Columns)
	var reflowed []*Line
	for _, lg := range logical {
		reflowed = append(reflowed, splitLogicalLine(lg, newSize.Columns)...)
	}

	if len(reflowed) < newSize.Lines {
		pad := newSize.Lines - len(reflowed)
		for i := 0; i < pad; i++ {
			reflowed = append(reflowed, NewBlankLine(newSize.Columns, DefaultSGR()))
		}
	}

	if len(reflowed) > newSize.Lines {
		split := len(reflowed) - newSize.Lines
		if g.hasScrollback {
			g.history = reflowed[:split]
		} else {
			g.history = nil
		}
		g.lines = reflowed[split:]
	} else {
		g.history = nil
		g.lines = reflowed
	}
	g.size = newSize
}

// logicalGroup is the concatenated cell run for one logical (possibly
// multi-segment, wrap-chained) line, plus whether its first segment was
// Marked.
type logicalGroup struct {
	cells  []Cell
	marked bool
}

func groupLogicalLines(lines []*Line, width int) []logicalGroup {
	var groups []logicalGroup
	var cur []Cell
	marked := false
	flush := func() {
		if cur != nil {
			groups = append(groups, logicalGroup{cells: cur, marked: marked})
		}
		cur = nil
		marked = false
	}
	for _, l := range lines {
		if cur == nil {
			marked = l.Flags&LineMarked != 0
		}
		cur = append(cur, l.Cells(width)...)
		if l.Flags&LineWrapped == 0 {
			flush()
		}
	}
	flush()
	return groups
}

// splitLogicalLine re-splits a concatenated logical line's cells at the new
// column count, trimming trailing blanks beyond the last non-blank cell and
// setting the Wrapped flag on every segment but the last.
func splitLogicalLine(lg logicalGroup, width int) []*Line {
	cells := trimTrailingBlank(lg.cells)
	if len(cells) == 0 {
		l := NewBlankLine(width, DefaultSGR())
		l.Flags = LineWrappable
		if lg.marked {
			l.Flags |= LineMarked
		}
		return []*Line{l}
	}
	var out []*Line
	for start := 0; start < len(cells); start += width {
		end := start + width
		if end > len(cells) {
			end = len(cells)
		}
		row := make([]Cell, width)
		copy(row, cells[start:end])
		for i := end - start; i < width; i++ {
			row[i] = BlankCell(DefaultSGR())
		}
		l := &Line{Flags: LineWrappable, cells: row}
		if end < len(cells) {
			l.Flags |= LineWrapped
		}
		out = append(out, l)
	}
	if lg.marked && len(out) > 0 {
		out[0].Flags |= LineMarked
	}
	return out
}

func trimTrailingBlank(cells []Cell) []Cell {
	last := -1
	for i, c := range cells {
		if !c.IsBlank() {
			last = i
		}
	}
	return cells[:last+1]
}

// LogicalLine is one Wrapped-chain of physical Lines presented as a single
// unit, for search and OSC 314 capture (§4.3 "logicalLinesFrom").
type LogicalLine struct {
	// StartOffset is the logical offset (per LineAt) of the first segment.
	StartOffset int
	Segments    []*Line
}

// Text concatenates every segment's plain text.
func (ll LogicalLine) Text(width int) string {
	var sb []byte
	for _, seg := range ll.Segments {
		sb = append(sb, []byte(seg.PlainText(width))...)
	}
	return string(sb)
}

// LogicalLinesFrom iterates forward from a logical offset, grouping
// Wrapped-flag chains into single LogicalLine units.
func (g *Grid) LogicalLinesFrom(offset int) []LogicalLine {
	var all []*Line
	var offsets []int
	for o := -len(g.history); o < g.size.Lines; o++ {
		all = append(all, g.LineAt(o))
		offsets = append(offsets, o)
	}
	var out []LogicalLine
	var cur LogicalLine
	started := false
	for i, l := range all {
		if offsets[i] < offset {
			if l.Flags&LineWrapped == 0 {
				cur = LogicalLine{}
				started = false
			}
			continue
		}
		if !started {
			cur = LogicalLine{StartOffset: offsets[i]}
			started = true
		}
		cur.Segments = append(cur.Segments, l)
		if l.Flags&LineWrapped == 0 {
			out = append(out, cur)
			cur = LogicalLine{}
			started = false
		}
	}
	if started && len(cur.Segments) > 0 {
		out = append(out, cur)
	}
	return out
}

// LogicalLinesReverseFrom iterates backward from a logical offset.
func (g *Grid) LogicalLinesReverseFrom(offset int) []LogicalLine {
	fwd := g.LogicalLinesFrom(-len(g.history))
	var out []LogicalLine
	for i := len(fwd) - 1; i >= 0; i-- {
		if fwd[i].StartOffset <= offset {
			out = append(out, fwd[i])
		}
	}
	return out
}
