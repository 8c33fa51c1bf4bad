package vt

import (
	"strings"
	"testing"
)

func TestCursorMovementCSI(t *testing.T) {
	tests := []struct {
		name       string
		seq        string
		wantLine   int
		wantColumn int
	}{
		{"CUU default", "\x1b[10;10H\x1b[A", 8, 9},
		{"CUU explicit", "\x1b[10;10H\x1b[5A", 4, 9},
		{"CUU clamps to top", "\x1b[2;1H\x1b[100A", 0, 0},
		{"CUD", "\x1b[1;1H\x1b[3B", 3, 0},
		{"CUF", "\x1b[1;1H\x1b[4C", 0, 4},
		{"CUB", "\x1b[1;5H\x1b[2D", 0, 2},
		{"CUP both params", "\x1b[5;10H", 4, 9},
		{"CUP row only", "\x1b[5H", 4, 0},
		{"HVP alias", "\x1b[3;4f", 2, 3},
		{"CHA", "\x1b[2;2H\x1b[9G", 1, 8},
		{"VPA", "\x1b[2;2H\x1b[9d", 8, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := newTestTerm(t, 24, 80)
			term.send(tt.seq)
			cur := term.screen.Cursor()
			if cur.Line != tt.wantLine || cur.Column != tt.wantColumn {
				t.Errorf("cursor = (%d,%d), want (%d,%d)", cur.Line, cur.Column, tt.wantLine, tt.wantColumn)
			}
		})
	}
}

func TestEraseInLine(t *testing.T) {
	term := newTestTerm(t, 5, 10)
	term.send("0123456789")
	term.send("\x1b[1;5H\x1b[K") // erase to end of line from column 5 (1-based)
	got := term.lineText(0)
	want := "0123"
	if got[:4] != want {
		t.Errorf("lineText = %q, want prefix %q", got, want)
	}
}

func TestEraseInDisplayClearsWholeScreen(t *testing.T) {
	term := newTestTerm(t, 3, 10)
	term.send("abc")
	term.send("\x1b[2J")
	for i := 0; i < 3; i++ {
		if got := term.lineText(i); got != strings.Repeat(" ", 10) {
			t.Errorf("line %d = %q, want blank (10 spaces) after ED 2", i, got)
		}
	}
}

func TestSGRBoldAndColor(t *testing.T) {
	term := newTestTerm(t, 5, 10)
	term.send("\x1b[1;31mX")
	cell := term.cellAt(0, 0)
	if cell.Flags&FlagBold == 0 {
		t.Error("expected FlagBold set")
	}
	if cell.Foreground.Mode != ColorIndexed || cell.Foreground.Value != 1 {
		t.Errorf("foreground = %+v, want indexed 1", cell.Foreground)
	}
}

func TestSGRTrueColorColon(t *testing.T) {
	term := newTestTerm(t, 5, 10)
	term.send("\x1b[38:2::10:20:30mX")
	cell := term.cellAt(0, 0)
	if cell.Foreground.Mode != ColorRGB || cell.Foreground.R != 10 || cell.Foreground.G != 20 || cell.Foreground.B != 30 {
		t.Errorf("foreground = %+v, want rgb(10,20,30)", cell.Foreground)
	}
}

func TestSGRResetClearsAttributes(t *testing.T) {
	term := newTestTerm(t, 5, 10)
	term.send("\x1b[1;31m\x1b[0mX")
	cell := term.cellAt(0, 0)
	if cell.Flags != 0 {
		t.Errorf("flags = %v, want 0 after SGR 0", cell.Flags)
	}
	if cell.Foreground.Mode != ColorDefault {
		t.Errorf("foreground = %+v, want default after SGR 0", cell.Foreground)
	}
}

func TestDSRCursorPositionReport(t *testing.T) {
	term := newTestTerm(t, 24, 80)
	term.send("\x1b[10;20H\x1b[6n")
	want := "\x1b[10;20R"
	if got := string(term.lastReply()); got != want {
		t.Errorf("DSR reply = %q, want %q", got, want)
	}
}

func TestDECSTBMSetsScrollMargin(t *testing.T) {
	term := newTestTerm(t, 24, 80)
	term.send("\x1b[5;10r")
	m := term.screen.Margin()
	if m.Top != 4 || m.Bottom != 9 {
		t.Errorf("margin = %+v, want Top=4 Bottom=9", m)
	}
}

func TestInsertModeShiftsExistingText(t *testing.T) {
	term := newTestTerm(t, 3, 10)
	term.send("ABCDE")
	term.send("\x1b[1;2H\x1b[4h") // IRM on, cursor at column 2 (1-based)
	term.send("X")
	got := term.lineText(0)
	want := "AXBCDE"
	if got[:len(want)] != want {
		t.Errorf("lineText = %q, want prefix %q", got, want)
	}
}

func TestHardResetClearsScrollbackAndPalette(t *testing.T) {
	term := newTestTerm(t, 3, 10)
	for i := 0; i < 20; i++ {
		term.send("line\r\n")
	}
	if term.screen.primary.HistoryLineCount() == 0 {
		t.Fatal("expected scrollback to have accumulated before reset")
	}
	term.screen.palette.SetSlot(1, "#112233")
	term.send("\x1bc") // RIS
	if term.screen.primary.HistoryLineCount() != 0 {
		t.Error("expected RIS to clear scrollback")
	}
	if spec := term.screen.palette.SlotSpec(1); spec == "rgb:1111/2222/3333" {
		t.Error("expected RIS to restore default palette slot 1")
	}
}

func TestXTPushPopColors(t *testing.T) {
	term := newTestTerm(t, 3, 10)
	original := term.screen.palette.SlotSpec(1)
	term.send("\x1b[#P") // XTPUSHCOLORS
	term.screen.palette.SetSlot(1, "#abcdef")
	term.send("\x1b[#Q") // XTPOPCOLORS
	if got := term.screen.palette.SlotSpec(1); got != original {
		t.Errorf("slot 1 after pop = %q, want restored %q", got, original)
	}
}
