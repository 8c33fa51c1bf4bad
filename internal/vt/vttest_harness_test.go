package vt

import "testing"

// testTerm wires a Parser through a Sequencer into a Screen without a PTY,
// for tests that only need to feed raw VT bytes and inspect the resulting
// grid/cursor state.
//
// Grounded on framegrace-texelation's TestHarness
// (apps/texelterm/parser/testharness.go), generalized from its VTerm-as-
// Handler shortcut (the teacher's Parser dispatches straight to VTerm) into
// the spec's explicit Parser→Sequencer→Screen pipeline.
type testTerm struct {
	screen *Screen
	seq    *Sequencer
	parser *Parser
	replies [][]byte
}

func newTestTerm(t *testing.T, lines, columns int) *testTerm {
	t.Helper()
	settings := DefaultSettings(lines, columns)
	tt := &testTerm{}
	tt.screen = NewScreen(settings, nil, NopCallbacks{})
	tt.screen.SetReply(func(b []byte) { tt.replies = append(tt.replies, b) })
	tt.seq = NewSequencer(tt.screen, nil)
	tt.parser = NewParser(tt.seq)
	return tt
}

func (tt *testTerm) send(s string) {
	tt.parser.ParseBytes([]byte(s))
}

func (tt *testTerm) cellAt(line, col int) Cell {
	g := tt.screen.activeGrid()
	l := g.Line(line)
	if l == nil {
		return Cell{}
	}
	return l.CellAt(tt.screen.pageSize().Columns, col)
}

func (tt *testTerm) lineText(line int) string {
	g := tt.screen.activeGrid()
	l := g.Line(line)
	if l == nil {
		return ""
	}
	return l.PlainText(tt.screen.pageSize().Columns)
}

func (tt *testTerm) lastReply() []byte {
	if len(tt.replies) == 0 {
		return nil
	}
	return tt.replies[len(tt.replies)-1]
}
