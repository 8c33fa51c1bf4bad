package vt

import "fmt"

// windowManipulation implements CSI t (§4.4 "Window manipulation"): title
// stack push/pop and geometry reports. Resize/move requests (codes 3,4,8)
// are reported back as unsupported since this core has no window of its
// own to move — a real terminal emulator's GUI shell owns that, out of
// scope per the purpose statement.
func (s *Screen) windowManipulation(p Params) SequenceOutcome {
	switch p.Int(0) {
	case 14: // report text area size in pixels: unknown without a cell metric
		return OutcomeUnsupported
	case 18: // report text area size in characters
		size := s.pageSize()
		s.replyBytes([]byte(fmt.Sprintf("\x1b[8;%d;%dt", size.Lines, size.Columns)))
	case 19: // report screen size in characters (identical here)
		size := s.pageSize()
		s.replyBytes([]byte(fmt.Sprintf("\x1b[9;%d;%dt", size.Lines, size.Columns)))
	case 21: // report window title
		s.replyBytes(append(append([]byte("\x1b]l"), s.windowTitle...), 0x1b, '\\'))
	case 22: // push title
		switch p.Int(1) {
		case 0, 2:
			title := append([]byte(nil), s.windowTitle...)
			s.windowTitleStack = append(s.windowTitleStack, title)
		}
	case 23: // pop title
		switch p.Int(1) {
		case 0, 2:
			if n := len(s.windowTitleStack); n > 0 {
				s.windowTitle = s.windowTitleStack[n-1]
				s.windowTitleStack = s.windowTitleStack[:n-1]
				s.cb.SetWindowTitle(s.windowTitle)
			}
		}
	default:
		return OutcomeUnsupported
	}
	return OutcomeOK
}
