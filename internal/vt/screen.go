package vt

// ScreenKind distinguishes the primary screen from the alternate screen
// (§4.5, DEC private modes 47/1047/1049).
type ScreenKind uint8

const (
	ScreenPrimary ScreenKind = iota
	ScreenAlternate
)

// ActiveDisplay selects which grid DECSASD routes writes to: the main
// screen or the status line (§4.4 "Status line").
type ActiveDisplay uint8

const (
	DisplayMain ActiveDisplay = iota
	DisplayStatusLine
)

// Callbacks is the collaborator-implemented event surface (§6 "Event
// callbacks").
type Callbacks interface {
	Bell()
	BufferChanged(kind ScreenKind)
	ScreenUpdated()
	RenderBufferUpdated()
	RequestCaptureBuffer(lines int, logical bool)
	CopyToClipboard(data []byte)
	Notify(title, content string)
	SetWindowTitle(title []byte)
	SetMouseCursorShape(shape string)
	DiscardImage(id ImageFragmentID)
	PlaySound(params []int)
	OnClosed()
	RequestPermission(kind, topic string) bool
}

// NopCallbacks implements Callbacks with no-ops, for tests and
// collaborators that only care about some events.
type NopCallbacks struct{}

func (NopCallbacks) Bell()                                         {}
func (NopCallbacks) BufferChanged(ScreenKind)                       {}
func (NopCallbacks) ScreenUpdated()                                 {}
func (NopCallbacks) RenderBufferUpdated()                           {}
func (NopCallbacks) RequestCaptureBuffer(int, bool)                 {}
func (NopCallbacks) CopyToClipboard([]byte)                         {}
func (NopCallbacks) Notify(string, string)                          {}
func (NopCallbacks) SetWindowTitle([]byte)                          {}
func (NopCallbacks) SetMouseCursorShape(string)                     {}
func (NopCallbacks) DiscardImage(ImageFragmentID)                   {}
func (NopCallbacks) PlaySound([]int)                                {}
func (NopCallbacks) OnClosed()                                      {}
func (NopCallbacks) RequestPermission(string, string) bool          { return false }

// Screen operates on a Grid under a Cursor and Modes, implementing every VT
// operation (§4.4). It is the heart of the core: the Terminal owns one
// Screen per active buffer context (primary/alternate share one Screen that
// swaps its active Grid; the status line has its own).
//
// Grounded on framegrace-texelation's VTerm (apps/texelterm/parser/vterm.go),
// generalized from VTerm's single fixed grid + bespoke alt-buffer field
// into primary/alternate Grid values switched by SetActiveScreen, and from
// VTerm's hand-rolled Attribute/Color pair into this package's SGRAttrs.
type Screen struct {
	settings Settings
	logger   Logger
	cb       Callbacks
	reply    func([]byte)

	primary   *Grid
	alternate *Grid
	status    *Grid
	active    ScreenKind
	display   ActiveDisplay

	cursor    Cursor
	savedDEC  SavedCursorStack // DECSC/DECRC
	savedSCO  *SavedCursor     // SCOSC/SCORC (single slot)
	savedAltMain SavedCursor   // cursor snapshot taken on 1047/1049 screen switch

	margin Margin
	modes  *Modes

	tabStops   map[int]bool
	insertMode bool // IRM

	defaultFG, defaultBG, cursorColor Color
	palette *Palette

	hyperlinks *HyperlinkRegistry
	images     *ImagePool
	urlMatch   *URLMatcher
	caps       *CapabilityDB

	windowTitleStack [][]byte
	windowTitle      []byte

	grapheme *GraphemeSegmenter

	statusLineType StatusDisplayType

	synchronizedUpdate bool
}

// NewScreen constructs a Screen with fresh primary/alternate/status grids
// sized per settings.
func NewScreen(settings Settings, logger Logger, cb Callbacks) *Screen {
	if logger == nil {
		logger = noopLogger{}
	}
	if cb == nil {
		cb = NopCallbacks{}
	}
	s := &Screen{
		settings:       settings,
		logger:         logger,
		cb:             cb,
		primary:        NewGrid(settings.PageSize, true, settings.MaxHistoryLineCount),
		alternate:      NewGrid(settings.PageSize, false, HistoryLimit{Disabled: true}),
		status:         NewGrid(PageSize{Lines: 1, Columns: settings.PageSize.Columns}, false, HistoryLimit{Disabled: true}),
		cursor:         NewCursor(),
		modes:          NewModes(),
		tabStops:       defaultTabStops(settings.PageSize.Columns),
		defaultFG:       DefaultColor,
		defaultBG:       DefaultColor,
		palette:        NewPalette(),
		hyperlinks:     NewHyperlinkRegistry(),
		images:         NewImagePool(settings.MaxImageSize, settings.MaxImageRegisterCount),
		grapheme:       NewGraphemeSegmenter(),
		statusLineType: settings.StatusDisplayType,
	}
	s.margin = Margin{Top: 0, Bottom: settings.PageSize.Lines - 1, Left: 0, Right: settings.PageSize.Columns - 1}
	s.urlMatch = NewURLMatcher(settings.URLPattern)
	s.caps = DefaultCapabilityDB(settings.TerminalID)
	return s
}

// SetReply installs the callback used to send bytes back to the PTY
// (§6 "Reply channel"). Terminal wires this to its own reply buffer.
func (s *Screen) SetReply(fn func([]byte)) { s.reply = fn }

func (s *Screen) replyBytes(b []byte) {
	if s.reply != nil {
		s.reply(b)
	}
}

func defaultTabStops(columns int) map[int]bool {
	stops := make(map[int]bool)
	for c := 8; c < columns; c += 8 {
		stops[c] = true
	}
	return stops
}

// activeGrid returns the grid writes and scrolling currently target:
// status line if selected, else primary or alternate.
func (s *Screen) activeGrid() *Grid {
	if s.display == DisplayStatusLine {
		return s.status
	}
	if s.active == ScreenAlternate {
		return s.alternate
	}
	return s.primary
}

// PrimaryGrid, AlternateGrid, StatusGrid expose the grids for the render
// buffer and tests.
func (s *Screen) PrimaryGrid() *Grid   { return s.primary }
func (s *Screen) AlternateGrid() *Grid { return s.alternate }
func (s *Screen) StatusGrid() *Grid    { return s.status }
func (s *Screen) ActiveScreen() ScreenKind { return s.active }
func (s *Screen) Cursor() Cursor       { return s.cursor }
func (s *Screen) Margin() Margin       { return s.margin }
func (s *Screen) Modes() *Modes        { return s.modes }

// pageSize returns the configured page size (Settings.PageSize) as is; the
// status line lives in its own grid, so no rows are subtracted for it.
func (s *Screen) pageSize() PageSize { return s.settings.PageSize }

// clampCursor keeps the cursor within [0,lines)×[0,columns) (§3 invariant).
func (s *Screen) clampCursor() {
	size := s.pageSize()
	if s.cursor.Line < 0 {
		s.cursor.Line = 0
	}
	if s.cursor.Line >= size.Lines {
		s.cursor.Line = size.Lines - 1
	}
	if s.cursor.Column < 0 {
		s.cursor.Column = 0
	}
	if s.cursor.Column >= size.Columns {
		s.cursor.Column = size.Columns - 1
	}
}

// originTop/originLeft return the row/column the cursor's origin-mode
// coordinate system is relative to (§4.4 "Cursor clamping and origin mode").
func (s *Screen) originTop() int {
	if s.cursor.OriginMode {
		return s.margin.Top
	}
	return 0
}

func (s *Screen) originLeft() int {
	if s.cursor.OriginMode {
		return s.margin.Left
	}
	return 0
}

// MoveCursorTo sets the cursor to a page-absolute (line, column), clamping
// to the page only; it does not clamp to the margin. MoveCursorOrigin adds
// the origin-mode offset before calling it.
func (s *Screen) MoveCursorTo(line, column int) {
	s.cursor.Line = line
	s.cursor.Column = column
	s.cursor.WrapPending = false
	s.clampCursor()
}

// MoveCursorOrigin implements CUP/HVP's origin-relative addressing.
func (s *Screen) MoveCursorOrigin(line, column int) {
	s.MoveCursorTo(s.originTop()+line, s.originLeft()+column)
}

// ExecuteC0 handles a C0 control code (§6 "Control codes").
func (s *Screen) ExecuteC0(b byte) {
	switch b {
	case 0x07: // BEL
		s.cb.Bell()
	case 0x08: // BS
		s.Backspace()
	case 0x09: // HT
		s.TabForward(1)
	case 0x0a: // LF
		s.LineFeed()
	case 0x0b: // VT -> IND
		s.Index()
	case 0x0c: // FF -> IND
		s.Index()
	case 0x0d: // CR
		s.CarriageReturn()
	case 0x0e: // SO -> LS1
		s.cursor.Charsets.GL = 1
	case 0x0f: // SI -> LS0
		s.cursor.Charsets.GL = 0
	case 0x05: // ENQ
		s.replyBytes([]byte(s.caps.AnswerbackString()))
	}
}

// Backspace moves the cursor left one column, never wrapping to the
// previous line.
func (s *Screen) Backspace() {
	s.cursor.WrapPending = false
	if s.cursor.Column > s.originLeft() {
		s.cursor.Column--
	}
}

// CarriageReturn moves the cursor to the left margin (origin-relative).
func (s *Screen) CarriageReturn() {
	s.cursor.WrapPending = false
	s.cursor.Column = s.originLeft()
}

// TabForward advances to the next n tab stops, or the right margin.
func (s *Screen) TabForward(n int) {
	s.cursor.WrapPending = false
	for i := 0; i < n; i++ {
		next := s.nextTabStop(s.cursor.Column)
		if next > s.margin.Right {
			s.cursor.Column = s.margin.Right
			return
		}
		s.cursor.Column = next
	}
}

// TabBackward (CBT) retreats to the previous n tab stops, or the left
// margin.
func (s *Screen) TabBackward(n int) {
	s.cursor.WrapPending = false
	for i := 0; i < n; i++ {
		s.cursor.Column = s.prevTabStop(s.cursor.Column)
	}
}

func (s *Screen) nextTabStop(col int) int {
	for c := col + 1; c <= s.margin.Right; c++ {
		if s.tabStops[c] {
			return c
		}
	}
	return s.margin.Right
}

func (s *Screen) prevTabStop(col int) int {
	for c := col - 1; c >= s.margin.Left; c-- {
		if s.tabStops[c] {
			return c
		}
	}
	return s.margin.Left
}

// SetTabStop sets a tab stop at the cursor column (HTS).
func (s *Screen) SetTabStop() { s.tabStops[s.cursor.Column] = true }

// ClearTabStop implements TBC: mode 0 clears under cursor, mode 3 clears all.
func (s *Screen) ClearTabStop(mode int) {
	switch mode {
	case 0:
		delete(s.tabStops, s.cursor.Column)
	case 3:
		s.tabStops = make(map[int]bool)
	}
}

// Index implements IND: move down one line, scrolling within margins if
// already at the bottom margin.
func (s *Screen) Index() {
	s.cursor.WrapPending = false
	if s.cursor.Line == s.margin.Bottom {
		s.activeGrid().ScrollUp(1, s.cursor.SGR, s.margin)
		return
	}
	if s.cursor.Line < s.pageSize().Lines-1 {
		s.cursor.Line++
	}
}

// LineFeed implements LF: identical to IND in this implementation (LNM is
// not modeled as a distinct state; CR+LF sequences issue both explicitly).
func (s *Screen) LineFeed() { s.Index() }

// NextLine implements NEL: CR then IND.
func (s *Screen) NextLine() {
	s.CarriageReturn()
	s.Index()
}

// ReverseIndex implements RI: move up one line, scrolling down within
// margins if already at the top margin.
func (s *Screen) ReverseIndex() {
	s.cursor.WrapPending = false
	if s.cursor.Line == s.margin.Top {
		s.activeGrid().ScrollDown(1, s.cursor.SGR, s.margin)
		return
	}
	if s.cursor.Line > 0 {
		s.cursor.Line--
	}
}

// BackIndex implements DECBI: move left one column, scrolling the margin
// right if already at the left margin.
func (s *Screen) BackIndex() {
	if s.cursor.Column == s.margin.Left {
		s.activeGrid().ScrollRight(1, s.cursor.SGR, s.margin)
		return
	}
	if s.cursor.Column > 0 {
		s.cursor.Column--
	}
}

// ForwardIndex implements DECFI: mirror of BackIndex.
func (s *Screen) ForwardIndex() {
	if s.cursor.Column == s.margin.Right {
		s.activeGrid().ScrollLeft(1, s.cursor.SGR, s.margin)
		return
	}
	if s.cursor.Column < s.pageSize().Columns-1 {
		s.cursor.Column++
	}
}
