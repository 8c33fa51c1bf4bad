package vt

// Viewport tracks the vi overlay's scroll position into a Grid's
// scrollback-plus-page range, independent of the live cursor (§4.7
// "Viewport tracks a scroll offset into scrollback plus a scroll-off
// margin").
type Viewport struct {
	grid      *Grid
	offset    int // logical offset (per Grid.LineAt) of the viewport's top row
	scrollOff int // lines kept visible above/below makeVisible's target
}

// NewViewport returns a viewport over grid, anchored at the live page (not
// scrolled into history).
func NewViewport(grid *Grid, scrollOff int) *Viewport {
	return &Viewport{grid: grid, scrollOff: scrollOff}
}

func (v *Viewport) clamp() {
	min := -v.grid.HistoryLineCount()
	max := v.grid.Size().Lines - 1
	if v.offset < min {
		v.offset = min
	}
	if v.offset > max {
		v.offset = max
	}
}

// ScrollUp moves the viewport n lines further into scrollback.
func (v *Viewport) ScrollUp(n int) {
	v.offset -= n
	v.clamp()
}

// ScrollDown moves the viewport n lines toward the live page.
func (v *Viewport) ScrollDown(n int) {
	v.offset += n
	v.clamp()
}

// ScrollMarkUp/ScrollMarkDown jump to the previous/next Marked line.
func (v *Viewport) ScrollMarkUp() {
	for o := v.offset - 1; o >= -v.grid.HistoryLineCount(); o-- {
		if l := v.grid.LineAt(o); l != nil && l.Flags&LineMarked != 0 {
			v.offset = o
			return
		}
	}
}

func (v *Viewport) ScrollMarkDown() {
	for o := v.offset + 1; o < v.grid.Size().Lines; o++ {
		if l := v.grid.LineAt(o); l != nil && l.Flags&LineMarked != 0 {
			v.offset = o
			return
		}
	}
}

// ScrollToTop/ScrollToBottom jump to the oldest scrollback line or the live
// page's top.
func (v *Viewport) ScrollToTop()    { v.offset = -v.grid.HistoryLineCount() }
func (v *Viewport) ScrollToBottom() { v.offset = 0 }

// MakeVisible scrolls the minimum amount necessary so logical offset line
// is within the page, honoring scrollOff.
func (v *Viewport) MakeVisible(line int) {
	size := v.grid.Size().Lines
	top := v.offset + v.scrollOff
	bottom := v.offset + size - 1 - v.scrollOff
	switch {
	case line < top:
		v.offset -= top - line
	case line > bottom:
		v.offset += line - bottom
	}
	v.clamp()
}

// Offset returns the current top-row logical offset.
func (v *Viewport) Offset() int { return v.offset }
