package vt

import (
	"strings"
	"testing"
)

func fillLine(g *Grid, row int, text string) {
	l := g.Line(row)
	cells := l.Cells(g.Size().Columns)
	for i, r := range text {
		cells[i] = Cell{Codepoints: []rune{r}, Width: 1, SGRAttrs: DefaultSGR()}
	}
}

func TestScrollUpMigratesToHistory(t *testing.T) {
	g := NewGrid(PageSize{Lines: 3, Columns: 10}, true, HistoryLimit{Max: 100})
	fillLine(g, 0, "top")
	fillLine(g, 1, "mid")
	fillLine(g, 2, "bot")
	margin := Margin{Top: 0, Bottom: 2, Left: 0, Right: 9}

	g.ScrollUp(1, DefaultSGR(), margin)

	if g.HistoryLineCount() != 1 {
		t.Fatalf("HistoryLineCount = %d, want 1", g.HistoryLineCount())
	}
	if got := g.LineAt(-1).PlainText(10); got[:3] != "top" {
		t.Errorf("history line = %q, want prefix top", got)
	}
	if got := g.Line(0).PlainText(10); got[:3] != "mid" {
		t.Errorf("line 0 after scroll = %q, want prefix mid", got)
	}
	if got := g.Line(1).PlainText(10); got[:3] != "bot" {
		t.Errorf("line 1 after scroll = %q, want prefix bot", got)
	}
	if got := g.Line(2).PlainText(10); got != strings.Repeat(" ", 10) {
		t.Errorf("line 2 after scroll = %q, want blank (10 spaces)", got)
	}
}

func TestScrollUpPartialMarginDoesNotPushHistory(t *testing.T) {
	g := NewGrid(PageSize{Lines: 5, Columns: 10}, true, HistoryLimit{Max: 100})
	margin := Margin{Top: 1, Bottom: 3, Left: 0, Right: 9}
	g.ScrollUp(1, DefaultSGR(), margin)
	if g.HistoryLineCount() != 0 {
		t.Errorf("HistoryLineCount = %d, want 0 for a non-full-page margin", g.HistoryLineCount())
	}
}

func TestHistoryRingEvictsOldest(t *testing.T) {
	g := NewGrid(PageSize{Lines: 1, Columns: 10}, true, HistoryLimit{Max: 2})
	margin := Margin{Top: 0, Bottom: 0, Left: 0, Right: 9}
	for i := 0; i < 5; i++ {
		g.ScrollUp(1, DefaultSGR(), margin)
	}
	if g.HistoryLineCount() != 2 {
		t.Errorf("HistoryLineCount = %d, want 2 (bounded)", g.HistoryLineCount())
	}
}

func TestScrollLeftShiftsColumns(t *testing.T) {
	g := NewGrid(PageSize{Lines: 1, Columns: 5}, false, HistoryLimit{Disabled: true})
	fillLine(g, 0, "ABCDE")
	margin := Margin{Top: 0, Bottom: 0, Left: 0, Right: 4}
	g.ScrollLeft(2, DefaultSGR(), margin)
	got := g.Line(0).PlainText(5)
	want := "CDE"
	if got[:3] != want {
		t.Errorf("line = %q, want prefix %q", got, want)
	}
}

func TestResizeNoReflowPadsColumns(t *testing.T) {
	g := NewGrid(PageSize{Lines: 2, Columns: 5}, true, HistoryLimit{Max: 10})
	fillLine(g, 0, "AB")
	g.Resize(PageSize{Lines: 2, Columns: 8}, false)
	if g.Size().Columns != 8 {
		t.Fatalf("Size().Columns = %d, want 8", g.Size().Columns)
	}
	got := g.Line(0).PlainText(8)
	if got[:2] != "AB" {
		t.Errorf("line = %q, want prefix AB", got)
	}
}

func TestResizeWithReflowRejoinsWrappedChain(t *testing.T) {
	g := NewGrid(PageSize{Lines: 2, Columns: 5}, true, HistoryLimit{Max: 10})
	fillLine(g, 0, "ABCDE")
	g.Line(0).Flags |= LineWrapped
	fillLine(g, 1, "FG")

	g.Resize(PageSize{Lines: 2, Columns: 10}, true)

	got := g.Line(0).PlainText(10)
	want := "ABCDEFG"
	if got[:len(want)] != want {
		t.Errorf("reflowed line = %q, want prefix %q", got, want)
	}
}

func TestLogicalLinesFromGroupsWrappedChain(t *testing.T) {
	g := NewGrid(PageSize{Lines: 3, Columns: 5}, true, HistoryLimit{Max: 10})
	fillLine(g, 0, "ABCDE")
	g.Line(0).Flags |= LineWrapped
	fillLine(g, 1, "FG")
	fillLine(g, 2, "H")

	lls := g.LogicalLinesFrom(0)
	if len(lls) != 2 {
		t.Fatalf("len(LogicalLinesFrom) = %d, want 2", len(lls))
	}
	if got := lls[0].Text(5); got[:7] != "ABCDEFG" {
		t.Errorf("first logical line = %q, want prefix ABCDEFG", got)
	}
}
