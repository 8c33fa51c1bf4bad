package vt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recordingHandler implements Handler and records every event it receives,
// so tests can assert on the parser's byte-level decisions without wiring a
// full Sequencer/Screen.
type recordingHandler struct {
	events []string
	hooked DCSSubParser
}

func (r *recordingHandler) Print(ru rune)        { r.events = append(r.events, "print:"+string(ru)) }
func (r *recordingHandler) Execute(b byte)       { r.events = append(r.events, "exec") }
func (r *recordingHandler) Collect(b byte)       { r.events = append(r.events, "collect") }
func (r *recordingHandler) CollectLeader(b byte) { r.events = append(r.events, "leader") }
func (r *recordingHandler) ParamDigit(b byte)    { r.events = append(r.events, "digit") }
func (r *recordingHandler) ParamSeparator()      { r.events = append(r.events, "sep") }
func (r *recordingHandler) ParamSubSeparator()   { r.events = append(r.events, "subsep") }
func (r *recordingHandler) DispatchESC(f byte)   { r.events = append(r.events, "esc:"+string(f)) }
func (r *recordingHandler) DispatchCSI(f byte)   { r.events = append(r.events, "csi:"+string(f)) }
func (r *recordingHandler) StartOSC()            { r.events = append(r.events, "osc-start") }
func (r *recordingHandler) PutOSC(b byte)        { r.events = append(r.events, "osc-put") }
func (r *recordingHandler) DispatchOSC()         { r.events = append(r.events, "osc-dispatch") }
func (r *recordingHandler) Hook(f byte) DCSSubParser {
	r.events = append(r.events, "hook")
	return r.hooked
}
func (r *recordingHandler) Put(b byte)     { r.events = append(r.events, "put") }
func (r *recordingHandler) Unhook()        { r.events = append(r.events, "unhook") }
func (r *recordingHandler) StartAPC()      { r.events = append(r.events, "apc-start") }
func (r *recordingHandler) PutAPC(b byte)  { r.events = append(r.events, "apc-put") }
func (r *recordingHandler) DispatchAPC()   { r.events = append(r.events, "apc-dispatch") }
func (r *recordingHandler) StartPM()       { r.events = append(r.events, "pm-start") }
func (r *recordingHandler) PutPM(b byte)   { r.events = append(r.events, "pm-put") }
func (r *recordingHandler) DispatchPM()    { r.events = append(r.events, "pm-dispatch") }
func (r *recordingHandler) Error(msg string) { r.events = append(r.events, "error") }

func TestParserGroundPrintsASCII(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.ParseBytes([]byte("hi"))
	want := []string{"print:h", "print:i"}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParserCSIWithParams(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.ParseBytes([]byte("\x1b[1;2H"))
	want := []string{"digit", "sep", "digit", "csi:H"}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if p.State() != StateGround {
		t.Errorf("state after CSI dispatch = %v, want StateGround", p.State())
	}
}

func TestParserCSIPrivateLeader(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.ParseBytes([]byte("\x1b[?25h"))
	want := []string{"leader", "digit", "digit", "csi:h"}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParserOSCTerminatedByBEL(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.ParseBytes([]byte("\x1b]0;title\x07"))
	if h.events[0] != "osc-start" {
		t.Fatalf("first event = %q, want osc-start", h.events[0])
	}
	if h.events[len(h.events)-1] != "osc-dispatch" {
		t.Fatalf("last event = %q, want osc-dispatch", h.events[len(h.events)-1])
	}
}

func TestParserOSCTerminatedBySevenBitST(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.ParseBytes([]byte("\x1b]0;title\x1b\\"))
	if h.events[len(h.events)-1] != "osc-dispatch" {
		t.Fatalf("last event = %q, want osc-dispatch", h.events[len(h.events)-1])
	}
	if p.State() != StateGround {
		t.Errorf("state after ST = %v, want StateGround", p.State())
	}
}

func TestParserUnterminatedStringReprocessesEscape(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	// ESC ] starts an OSC string; a second ESC [ that is NOT followed by '\\'
	// means the OSC was left unterminated and the ESC begins a fresh CSI
	// sequence instead.
	p.ParseBytes([]byte("\x1b]0;partial\x1b[5A"))
	if h.events[len(h.events)-1] != "csi:A" {
		t.Fatalf("events = %v, want trailing csi:A", h.events)
	}
}

func TestParserCANAbortsSequence(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.ParseBytes([]byte("\x1b[1;2\x18H"))
	// CAN (0x18) aborts the in-flight CSI; the trailing 'H' prints as plain
	// text instead of completing the sequence.
	if p.State() != StateGround {
		t.Errorf("state after CAN = %v, want StateGround", p.State())
	}
	last := h.events[len(h.events)-1]
	if last != "print:H" {
		t.Fatalf("last event = %q, want print:H", last)
	}
}

func TestParserDecodesMultiByteUTF8(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	p.ParseBytes([]byte("é")) // U+00E9, 2-byte UTF-8
	want := []string{"print:é"}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParserInvalidUTF8EmitsReplacementAndResyncs(t *testing.T) {
	h := &recordingHandler{}
	p := NewParser(h)
	// 0xC0 promises one continuation byte; 'A' (not a continuation byte) is
	// reprocessed as its own Ground byte after the replacement.
	p.ParseBytes([]byte{0xC0, 'A'})
	want := []string{"print:�", "print:A"}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParserDCSHookAndPassthrough(t *testing.T) {
	sub := &fakeDCSSubParser{}
	h := &recordingHandler{hooked: sub}
	p := NewParser(h)
	p.ParseBytes([]byte("\x1bP1$q\x1b\\"))
	if !sub.unhooked {
		t.Error("sub-parser Unhook was not called")
	}
}

type fakeDCSSubParser struct {
	puts     []byte
	unhooked bool
}

func (f *fakeDCSSubParser) Put(b byte) { f.puts = append(f.puts, b) }
func (f *fakeDCSSubParser) Unhook()    { f.unhooked = true }
