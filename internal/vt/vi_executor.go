package vt

import "strings"

// ScreenExecutor implements Executor directly against a Screen and a
// Viewport, giving the ViInputHandler somewhere to land without the
// overlay needing to know about Grid/Line internals (§4.7).
type ScreenExecutor struct {
	screen   *Screen
	viewport *Viewport

	yankBuf  string
	yankLine bool // true if the last yank was line-wise (paste inserts a new line)

	visualAnchor Position
	searchTerm   string
	lastSearch   string
}

// NewScreenExecutor wires an executor over screen's active grid.
func NewScreenExecutor(screen *Screen, viewport *Viewport) *ScreenExecutor {
	return &ScreenExecutor{screen: screen, viewport: viewport}
}

func (e *ScreenExecutor) grid() *Grid { return e.screen.activeGrid() }

// MoveCursor resolves one of the enumerated motions against the active
// grid's text and repositions the cursor.
func (e *ScreenExecutor) MoveCursor(motion ViMotion, count int, target rune) {
	for i := 0; i < count; i++ {
		e.moveCursorOnce(motion, target)
	}
	e.viewport.MakeVisible(e.screen.Cursor().Line)
}

func (e *ScreenExecutor) moveCursorOnce(motion ViMotion, target rune) {
	cur := e.screen.Cursor()
	size := e.grid().Size()
	line, col := cur.Line, cur.Column
	text := e.lineText(line)

	switch motion {
	case MotionLeft:
		col--
	case MotionRight:
		col++
	case MotionUp:
		line--
	case MotionDown:
		line++
	case MotionLineStart:
		col = 0
	case MotionLineFirstNonBlank:
		col = firstNonBlank(text)
	case MotionLineEnd:
		col = lastColumn(text)
	case MotionWordForward:
		line, col = e.wordForward(line, col, false)
	case MotionWordBackward:
		line, col = e.wordBackward(line, col, false)
	case MotionWordEnd:
		line, col = e.wordEnd(line, col, false)
	case MotionBigWordForward:
		line, col = e.wordForward(line, col, true)
	case MotionBigWordBackward:
		line, col = e.wordBackward(line, col, true)
	case MotionBigWordEnd:
		line, col = e.wordEnd(line, col, true)
	case MotionFileStart:
		line, col = -e.grid().HistoryLineCount(), 0
	case MotionFileEnd:
		line, col = size.Lines-1, 0
	case MotionPageUp:
		line -= size.Lines
	case MotionPageDown:
		line += size.Lines
	case MotionHalfPageUp:
		line -= size.Lines / 2
	case MotionHalfPageDown:
		line += size.Lines / 2
	case MotionScreenTop:
		line = e.viewport.Offset()
	case MotionScreenMiddle:
		line = e.viewport.Offset() + size.Lines/2
	case MotionScreenBottom:
		line = e.viewport.Offset() + size.Lines - 1
	case MotionParagraphNext:
		line = e.paragraphBoundary(line, 1)
	case MotionParagraphPrev:
		line = e.paragraphBoundary(line, -1)
	case MotionFindChar:
		if c, ok := findInLine(text, col+1, target, 1); ok {
			col = c
		}
	case MotionFindCharBack:
		if c, ok := findInLine(text, col-1, target, -1); ok {
			col = c
		}
	case MotionTillChar:
		if c, ok := findInLine(text, col+2, target, 1); ok {
			col = c - 1
		}
	case MotionTillCharBack:
		if c, ok := findInLine(text, col-2, target, -1); ok {
			col = c + 1
		}
	}
	e.screen.MoveCursorTo(line, col)
}

func (e *ScreenExecutor) lineText(logical int) string {
	l := e.grid().LineAt(logical)
	if l == nil {
		return ""
	}
	return l.PlainText(e.grid().Size().Columns)
}

func firstNonBlank(text string) int {
	for i, r := range text {
		if r != ' ' {
			return i
		}
	}
	return 0
}

func lastColumn(text string) int {
	trimmed := strings.TrimRight(text, " ")
	if len(trimmed) == 0 {
		return 0
	}
	return len([]rune(trimmed)) - 1
}

func findInLine(text string, start int, target rune, dir int) (int, bool) {
	runes := []rune(text)
	for i := start; i >= 0 && i < len(runes); i += dir {
		if runes[i] == target {
			return i, true
		}
	}
	return 0, false
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func classAt(r rune, big bool) int {
	switch {
	case r == ' ' || r == 0:
		return 0
	case big:
		return 1
	case isWordRune(r):
		return 1
	default:
		return 2
	}
}

// wordForward/wordBackward/wordEnd walk within a single line's text; they
// don't cross line boundaries, a pragmatic simplification over vim's full
// cross-line word motion.
func (e *ScreenExecutor) wordForward(line, col int, big bool) (int, int) {
	runes := []rune(e.lineText(line))
	if col >= len(runes) {
		return line, col
	}
	cls := classAt(runes[col], big)
	i := col
	for i < len(runes) && classAt(runes[i], big) == cls {
		i++
	}
	for i < len(runes) && classAt(runes[i], big) == 0 {
		i++
	}
	if i >= len(runes) {
		return line, col
	}
	return line, i
}

func (e *ScreenExecutor) wordBackward(line, col int, big bool) (int, int) {
	runes := []rune(e.lineText(line))
	i := col - 1
	for i >= 0 && classAt(runes[i], big) == 0 {
		i--
	}
	if i < 0 {
		return line, 0
	}
	cls := classAt(runes[i], big)
	for i > 0 && classAt(runes[i-1], big) == cls {
		i--
	}
	return line, i
}

func (e *ScreenExecutor) wordEnd(line, col int, big bool) (int, int) {
	runes := []rune(e.lineText(line))
	i := col + 1
	for i < len(runes) && classAt(runes[i], big) == 0 {
		i++
	}
	if i >= len(runes) {
		return line, col
	}
	cls := classAt(runes[i], big)
	for i+1 < len(runes) && classAt(runes[i+1], big) == cls {
		i++
	}
	return line, i
}

func (e *ScreenExecutor) paragraphBoundary(line, dir int) int {
	size := e.grid().Size()
	min, max := -e.grid().HistoryLineCount(), size.Lines-1
	l := line + dir
	for l >= min && l <= max {
		if strings.TrimSpace(e.lineText(l)) == "" {
			return l
		}
		l += dir
	}
	if l < min {
		return min
	}
	return max
}

// ScrollViewport moves the viewport without touching the cursor.
func (e *ScreenExecutor) ScrollViewport(motion ViMotion, count int) {
	switch motion {
	case MotionUp:
		e.viewport.ScrollUp(count)
	case MotionDown:
		e.viewport.ScrollDown(count)
	case MotionPageUp, MotionHalfPageUp:
		e.viewport.ScrollUp(count * e.grid().Size().Lines)
	case MotionPageDown, MotionHalfPageDown:
		e.viewport.ScrollDown(count * e.grid().Size().Lines)
	}
}

// Yank copies the resolved span's text into the internal register.
func (e *ScreenExecutor) Yank(scope ViScope, motion ViMotion, count int, target rune) {
	cur := e.screen.Cursor()
	switch scope {
	case ScopeLine:
		var lines []string
		for i := 0; i < count; i++ {
			lines = append(lines, e.lineText(cur.Line+i))
		}
		e.yankBuf = strings.Join(lines, "\n")
		e.yankLine = true
		return
	}
	text := e.lineText(cur.Line)
	runes := []rune(text)
	startLine, endCol := cur.Line, cur.Column
	for i := 0; i < count; i++ {
		_, endCol = e.moveForYank(motion, cur.Line, endCol, target)
	}
	lo, hi := cur.Column, endCol
	if lo > hi {
		lo, hi = hi, lo
	}
	hi++
	if hi > len(runes) {
		hi = len(runes)
	}
	if lo < 0 {
		lo = 0
	}
	if lo > hi {
		lo = hi
	}
	e.yankBuf = string(runes[lo:hi])
	e.yankLine = false
	_ = startLine
}

func (e *ScreenExecutor) moveForYank(motion ViMotion, line, col int, target rune) (int, int) {
	switch motion {
	case MotionWordForward:
		return e.wordForward(line, col, false)
	case MotionWordBackward:
		return e.wordBackward(line, col, false)
	case MotionWordEnd:
		return e.wordEnd(line, col, false)
	case MotionBigWordForward:
		return e.wordForward(line, col, true)
	case MotionBigWordBackward:
		return e.wordBackward(line, col, true)
	case MotionBigWordEnd:
		return e.wordEnd(line, col, true)
	case MotionTillChar:
		text := e.lineText(line)
		if c, ok := findInLine(text, col+2, target, 1); ok {
			return line, c - 1
		}
	case MotionTillCharBack:
		text := e.lineText(line)
		if c, ok := findInLine(text, col-2, target, -1); ok {
			return line, c + 1
		}
	case MotionFindChar:
		text := e.lineText(line)
		if c, ok := findInLine(text, col+1, target, 1); ok {
			return line, c
		}
	case MotionFindCharBack:
		text := e.lineText(line)
		if c, ok := findInLine(text, col-1, target, -1); ok {
			return line, c
		}
	case MotionLineEnd:
		return line, lastColumn(e.lineText(line))
	}
	return line, col
}

// YankTextObject resolves an i/a text-object against the current line's
// text and stores it.
func (e *ScreenExecutor) YankTextObject(obj ViTextObject, inner bool, count int) {
	cur := e.screen.Cursor()
	text := e.lineText(cur.Line)
	switch obj {
	case ObjWord:
		_, end := e.wordEnd(cur.Line, cur.Column, false)
		start := cur.Column
		runes := []rune(text)
		if end+1 <= len(runes) {
			e.yankBuf = string(runes[start : end+1])
		}
	case ObjBigWord:
		_, end := e.wordEnd(cur.Line, cur.Column, true)
		start := cur.Column
		runes := []rune(text)
		if end+1 <= len(runes) {
			e.yankBuf = string(runes[start : end+1])
		}
	case ObjDoubleQuote, ObjSingleQuote, ObjBacktick:
		e.yankBuf = yankDelimited(text, cur.Column, rune(obj[0]), rune(obj[0]), inner)
	case ObjParen:
		e.yankBuf = yankDelimited(text, cur.Column, '(', ')', inner)
	case ObjAngle:
		e.yankBuf = yankDelimited(text, cur.Column, '<', '>', inner)
	case ObjBracket:
		e.yankBuf = yankDelimited(text, cur.Column, '[', ']', inner)
	case ObjBrace:
		e.yankBuf = yankDelimited(text, cur.Column, '{', '}', inner)
	case ObjParagraph:
		top := e.paragraphBoundary(cur.Line, -1)
		bottom := e.paragraphBoundary(cur.Line, 1)
		var lines []string
		for l := top; l <= bottom; l++ {
			lines = append(lines, e.lineText(l))
		}
		e.yankBuf = strings.Join(lines, "\n")
	case ObjMark:
		e.yankBuf = text
	}
	e.yankLine = false
}

func yankDelimited(text string, col int, open, close rune, inner bool) string {
	runes := []rune(text)
	lo, hi := -1, -1
	for i := col; i >= 0; i-- {
		if runes[i] == open {
			lo = i
			break
		}
	}
	for i := col; i < len(runes); i++ {
		if runes[i] == close {
			hi = i
			break
		}
	}
	if lo < 0 || hi < 0 || lo > hi {
		return ""
	}
	if inner {
		if lo+1 > hi {
			return ""
		}
		return string(runes[lo+1 : hi])
	}
	return string(runes[lo : hi+1])
}

// Paste inserts the yank register directly into the active grid at the
// cursor, rather than through the PTY reply path: this overlay edits a
// read-only snapshot of shell output, so there is no remote process to echo
// the pasted text back.
func (e *ScreenExecutor) Paste(before bool, count int) {
	if e.yankBuf == "" {
		return
	}
	cur := e.screen.Cursor()
	col := cur.Column
	if !before {
		col++
	}
	for i := 0; i < count; i++ {
		e.screen.MoveCursorTo(cur.Line, col)
		e.screen.WriteRunes([]rune(e.yankBuf))
	}
}

// Select enters/extends a visual selection anchored at the cursor.
func (e *ScreenExecutor) Select(mode ViMode) {
	e.visualAnchor = e.screen.Cursor().Position
}

// ToggleLineMark flips the current line's LineMarked flag.
func (e *ScreenExecutor) ToggleLineMark() {
	l := e.grid().LineAt(e.screen.Cursor().Line)
	if l == nil {
		return
	}
	l.Flags ^= LineMarked
}

// SetMark marks the current line (mm).
func (e *ScreenExecutor) SetMark() {
	l := e.grid().LineAt(e.screen.Cursor().Line)
	if l == nil {
		return
	}
	l.Flags |= LineMarked
}

func (e *ScreenExecutor) SearchStart()             { e.searchTerm = "" }
func (e *ScreenExecutor) SearchCancel()             { e.searchTerm = "" }
func (e *ScreenExecutor) UpdateSearchTerm(t string) { e.searchTerm = t }

func (e *ScreenExecutor) SearchDone(term string) {
	if term != "" {
		e.lastSearch = term
	}
	e.JumpToNextMatch(1)
}

func (e *ScreenExecutor) JumpToNextMatch(count int) { e.jumpMatch(count, 1) }
func (e *ScreenExecutor) JumpToPreviousMatch(count int) { e.jumpMatch(count, -1) }

func (e *ScreenExecutor) jumpMatch(count, dir int) {
	if e.lastSearch == "" {
		return
	}
	size := e.grid().Size()
	min, max := -e.grid().HistoryLineCount(), size.Lines-1
	cur := e.screen.Cursor()
	found := 0
	l := cur.Line + dir
	for l >= min && l <= max && found < count {
		if col := strings.Index(e.lineText(l), e.lastSearch); col >= 0 {
			found++
			if found == count {
				e.screen.MoveCursorTo(l, col)
				e.viewport.MakeVisible(l)
				return
			}
		}
		l += dir
	}
}

// JoinLines concatenates count following lines onto the current one,
// separated by a single space (vim's J).
func (e *ScreenExecutor) JoinLines(count int) {
	cur := e.screen.Cursor()
	joined := strings.TrimRight(e.lineText(cur.Line), " ")
	for i := 1; i <= count; i++ {
		joined += " " + strings.TrimLeft(e.lineText(cur.Line+i), " ")
	}
	e.screen.MoveCursorTo(cur.Line, len([]rune(joined)))
}

func (e *ScreenExecutor) EnterInsert() {}
