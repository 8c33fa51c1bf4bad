package vt

import "testing"

// fakeExecutor records every call the ViInputHandler dispatches, so tests
// can assert on resolved motions/counts without wiring a real Screen.
type fakeExecutor struct {
	moves     []fakeMove
	selects   []ViMode
	marks     int
	inserts   int
	joins     int
}

type fakeMove struct {
	motion ViMotion
	count  int
	target rune
}

func (f *fakeExecutor) MoveCursor(motion ViMotion, count int, target rune) {
	f.moves = append(f.moves, fakeMove{motion, count, target})
}
func (f *fakeExecutor) ScrollViewport(motion ViMotion, count int)              {}
func (f *fakeExecutor) Yank(scope ViScope, motion ViMotion, count int, target rune) {}
func (f *fakeExecutor) YankTextObject(obj ViTextObject, inner bool, count int) {}
func (f *fakeExecutor) Paste(before bool, count int)                          {}
func (f *fakeExecutor) Select(mode ViMode)                                   { f.selects = append(f.selects, mode) }
func (f *fakeExecutor) ToggleLineMark()                                      {}
func (f *fakeExecutor) SetMark()                                             { f.marks++ }
func (f *fakeExecutor) SearchStart()                                         {}
func (f *fakeExecutor) SearchCancel()                                        {}
func (f *fakeExecutor) SearchDone(term string)                               {}
func (f *fakeExecutor) UpdateSearchTerm(term string)                         {}
func (f *fakeExecutor) JumpToNextMatch(count int)                            {}
func (f *fakeExecutor) JumpToPreviousMatch(count int)                        {}
func (f *fakeExecutor) JoinLines(count int)                                  { f.joins++ }
func (f *fakeExecutor) EnterInsert()                                         { f.inserts++ }

func TestViMotionTrieRoundTrips(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   ViMotion
	}{
		{"left", []string{"h"}, MotionLeft},
		{"right", []string{"l"}, MotionRight},
		{"word forward", []string{"w"}, MotionWordForward},
		{"section next", []string{"]", "]"}, MotionSectionNext},
		{"section prev", []string{"[", "["}, MotionSectionPrev},
		{"section next end", []string{"]", "["}, MotionSectionNextEnd},
		{"section prev end", []string{"[", "]"}, MotionSectionPrevEnd},
		{"mark next", []string{"]", "m"}, MotionMarkNext},
		{"mark prev", []string{"[", "m"}, MotionMarkPrev},
		{"file start", []string{"g", "g"}, MotionFileStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{}
			h := NewViInputHandler(exec)
			h.SetMode(ViModeNormal)
			for _, tok := range tt.tokens {
				h.Feed(tok)
			}
			if len(exec.moves) != 1 {
				t.Fatalf("moves = %v, want exactly one move", exec.moves)
			}
			if exec.moves[0].motion != tt.want {
				t.Errorf("motion = %q, want %q", exec.moves[0].motion, tt.want)
			}
		})
	}
}

func TestViFindCharMotionCapturesTarget(t *testing.T) {
	exec := &fakeExecutor{}
	h := NewViInputHandler(exec)
	h.SetMode(ViModeNormal)
	h.Feed("f")
	h.Feed("x")
	if len(exec.moves) != 1 {
		t.Fatalf("moves = %v, want exactly one move", exec.moves)
	}
	got := exec.moves[0]
	if got.motion != MotionFindChar || got.target != 'x' {
		t.Errorf("got %+v, want motion=find-char target='x'", got)
	}
}

func TestViCountPrefixAppliesToMotion(t *testing.T) {
	exec := &fakeExecutor{}
	h := NewViInputHandler(exec)
	h.SetMode(ViModeNormal)
	h.Feed("3")
	h.Feed("j")
	if len(exec.moves) != 1 || exec.moves[0].count != 3 {
		t.Fatalf("moves = %v, want one move with count 3", exec.moves)
	}
}

func TestViInsertModePassesKeysThrough(t *testing.T) {
	exec := &fakeExecutor{}
	h := NewViInputHandler(exec)
	if consumed := h.Feed("h"); consumed {
		t.Errorf("Feed consumed %q in Insert mode, want pass-through", "h")
	}
}

func TestViEnterVisualMode(t *testing.T) {
	exec := &fakeExecutor{}
	h := NewViInputHandler(exec)
	h.SetMode(ViModeNormal)
	h.Feed("v")
	if h.Mode() != ViModeVisual {
		t.Errorf("mode = %v, want ViModeVisual", h.Mode())
	}
	if len(exec.selects) != 1 || exec.selects[0] != ViModeVisual {
		t.Errorf("selects = %v, want [ViModeVisual]", exec.selects)
	}
}

func TestViSetMarkAndEnterInsert(t *testing.T) {
	exec := &fakeExecutor{}
	h := NewViInputHandler(exec)
	h.SetMode(ViModeNormal)
	h.Feed("m")
	h.Feed("m")
	if exec.marks != 1 {
		t.Errorf("marks = %d, want 1", exec.marks)
	}
	h.Feed("i")
	if h.Mode() != ViModeInsert || exec.inserts != 1 {
		t.Errorf("mode = %v inserts = %d, want ViModeInsert/1", h.Mode(), exec.inserts)
	}
}
