package vt

import "sync"

// RenderCursor is the cursor information carried in a render snapshot.
type RenderCursor struct {
	Line, Column int
	Visible      bool
	Shape        CursorShape
	Blink        bool
}

// RenderLine is one row of a render snapshot: either a reference to a
// trivial line's raw text (fast path for the common case of plain, uniform
// text) or a full cell slice.
type RenderLine struct {
	Trivial    bool
	Text       string
	TrivialSGR SGRAttrs
	Cells      []Cell
}

// RenderBuffer is one immutable snapshot of a screen's visible page, handed
// to renderers via the front buffer (§4.6 "Render buffer").
type RenderBuffer struct {
	FrameID int64
	Lines   []RenderLine
	Cursor  RenderCursor
	Screen  ScreenKind
}

func snapshotLine(l *Line, width int) RenderLine {
	if l.IsTrivial() {
		return RenderLine{Trivial: true, Text: string(l.text), TrivialSGR: l.trivialSGR}
	}
	cells := make([]Cell, width)
	copy(cells, l.Cells(width))
	return RenderLine{Cells: cells}
}

// renderRefreshState drives WaitingForRefresh → RefreshBuffersAndTrySwap →
// TrySwapBuffers → WaitingForRefresh (§4.6's state machine).
type renderRefreshState uint8

const (
	stateWaitingForRefresh renderRefreshState = iota
	stateRefreshBuffersAndTrySwap
	stateTrySwapBuffers
)

// RenderPipeline owns the front/back double buffer and the state machine
// that refreshes and swaps it (§4.6 "Render buffer").
//
// Grounded on framegrace-texelation's screen refresh loop (apps/texelterm's
// renderer pulling from VTerm under a mutex each tick), generalized from a
// single mutable grid read under lock into an explicit front/back swap so a
// renderer holding the front buffer never blocks the I/O goroutine.
type RenderPipeline struct {
	mu    sync.RWMutex
	front *RenderBuffer
	back  *RenderBuffer

	state   renderRefreshState
	nextID  int64
	pending bool
}

// NewRenderPipeline returns a pipeline with an empty front buffer.
func NewRenderPipeline() *RenderPipeline {
	return &RenderPipeline{front: &RenderBuffer{}}
}

// RequestRefresh marks the pipeline dirty; the next call to Refresh will
// rebuild the back buffer and attempt to swap.
func (p *RenderPipeline) RequestRefresh() {
	p.mu.Lock()
	p.pending = true
	p.mu.Unlock()
}

// Refresh runs one step of the state machine against the given screen. It
// is safe to call on every render tick; it is a no-op when nothing is
// pending.
func (p *RenderPipeline) Refresh(s *Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.pending {
		return
	}
	p.state = stateRefreshBuffersAndTrySwap
	p.back = buildRenderBuffer(s, p.nextID+1)
	p.state = stateTrySwapBuffers
	p.front, p.back = p.back, p.front
	p.nextID++
	p.pending = false
	p.state = stateWaitingForRefresh
}

// Front returns the current front buffer. Callers must treat it as
// immutable; a new buffer is installed atomically by Refresh, never mutated
// in place, so holding a reference across calls is always safe.
func (p *RenderPipeline) Front() *RenderBuffer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.front
}

func buildRenderBuffer(s *Screen, frameID int64) *RenderBuffer {
	grid := s.activeGrid()
	size := grid.Size()
	lines := make([]RenderLine, size.Lines)
	for i := 0; i < size.Lines; i++ {
		l := grid.Line(i)
		if l == nil {
			continue
		}
		lines[i] = snapshotLine(l, size.Columns)
	}
	cursor := s.Cursor()
	return &RenderBuffer{
		FrameID: frameID,
		Lines:   lines,
		Screen:  s.ActiveScreen(),
		Cursor: RenderCursor{
			Line:    cursor.Line,
			Column:  cursor.Column,
			Visible: cursor.Visible,
			Shape:   s.settings.CursorShape,
			Blink:   s.settings.CursorDisplay == CursorBlink,
		},
	}
}
