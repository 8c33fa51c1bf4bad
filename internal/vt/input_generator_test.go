package vt

import (
	"bytes"
	"testing"
)

func TestEncodeMouseSGRReport(t *testing.T) {
	modes := NewModes()
	modes.SetDEC(DECModeNormalMouse, true)
	modes.SetDEC(DECModeSGRMouse, true)
	g := NewInputGenerator(modes, Settings{})

	got := g.EncodeMouse(MousePress, MouseButtonLeft, 11, 6, 0, 0, ModShift)
	want := []byte("\x1b[<4;11;6M")
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeMouse = %q, want %q", got, want)
	}
}

func TestEncodeMouseSGRRelease(t *testing.T) {
	modes := NewModes()
	modes.SetDEC(DECModeNormalMouse, true)
	modes.SetDEC(DECModeSGRMouse, true)
	g := NewInputGenerator(modes, Settings{})

	got := g.EncodeMouse(MouseRelease, MouseButtonLeft, 11, 6, 0, 0, 0)
	want := []byte("\x1b[<3;11;6m")
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeMouse = %q, want %q", got, want)
	}
}

func TestEncodeMouseNoTrackingModeYieldsNil(t *testing.T) {
	modes := NewModes()
	g := NewInputGenerator(modes, Settings{})
	if got := g.EncodeMouse(MousePress, MouseButtonLeft, 1, 1, 0, 0, 0); got != nil {
		t.Errorf("EncodeMouse = %q, want nil with no tracking mode set", got)
	}
}

func TestEncodeKeyArrowAppCursorKeys(t *testing.T) {
	modes := NewModes()
	g := NewInputGenerator(modes, Settings{})
	if got := g.EncodeKey(KeyUp, 0); !bytes.Equal(got, []byte("\x1b[A")) {
		t.Errorf("EncodeKey(Up) = %q, want ESC [ A", got)
	}

	modes.SetDEC(DECModeAppCursorKeys, true)
	if got := g.EncodeKey(KeyUp, 0); !bytes.Equal(got, []byte("\x1bOA")) {
		t.Errorf("EncodeKey(Up) under DECCKM = %q, want ESC O A", got)
	}
}

func TestEncodeKeyArrowWithModifier(t *testing.T) {
	modes := NewModes()
	g := NewInputGenerator(modes, Settings{})
	got := g.EncodeKey(KeyUp, ModShift)
	want := []byte("\x1b[1;2A")
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeKey(Up, Shift) = %q, want %q", got, want)
	}
}

func TestEncodePasteWrapsWhenBracketedPasteEnabled(t *testing.T) {
	modes := NewModes()
	modes.SetDEC(DECModeBracketedPaste, true)
	g := NewInputGenerator(modes, Settings{})
	got := g.EncodePaste("hello")
	want := []byte("\x1b[200~hello\x1b[201~")
	if !bytes.Equal(got, want) {
		t.Errorf("EncodePaste = %q, want %q", got, want)
	}
}

func TestEncodePasteStripsEmbeddedEndMarker(t *testing.T) {
	modes := NewModes()
	modes.SetDEC(DECModeBracketedPaste, true)
	g := NewInputGenerator(modes, Settings{})
	got := g.EncodePaste("a\x1b[201~b")
	want := []byte("\x1b[200~ab\x1b[201~")
	if !bytes.Equal(got, want) {
		t.Errorf("EncodePaste = %q, want %q", got, want)
	}
}

func TestEncodeFocusTracking(t *testing.T) {
	modes := NewModes()
	modes.SetDEC(DECModeFocusTracking, true)
	g := NewInputGenerator(modes, Settings{})
	if got := g.EncodeFocus(true); !bytes.Equal(got, []byte("\x1b[I")) {
		t.Errorf("EncodeFocus(true) = %q, want ESC [ I", got)
	}
	if got := g.EncodeFocus(false); !bytes.Equal(got, []byte("\x1b[O")) {
		t.Errorf("EncodeFocus(false) = %q, want ESC [ O", got)
	}
}
