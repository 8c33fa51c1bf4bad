package vt

import "testing"

func TestPaletteSetSlotHexSpec(t *testing.T) {
	p := NewPalette()
	if !p.SetSlot(1, "#112233") {
		t.Fatal("SetSlot returned false for a valid hex spec")
	}
	got := p.SlotSpec(1)
	want := "rgb:1111/2222/3333"
	if got != want {
		t.Errorf("SlotSpec(1) = %q, want %q", got, want)
	}
}

func TestPaletteSetSlotRgbSpec(t *testing.T) {
	p := NewPalette()
	if !p.SetSlot(2, "rgb:ff/80/00") {
		t.Fatal("SetSlot returned false for a valid rgb: spec")
	}
	got := p.SlotSpec(2)
	want := "rgb:ffff/8080/0000"
	if got != want {
		t.Errorf("SlotSpec(2) = %q, want %q", got, want)
	}
}

func TestPaletteSetSlotRejectsGarbage(t *testing.T) {
	p := NewPalette()
	if p.SetSlot(3, "not-a-color") {
		t.Error("SetSlot should reject an unparsable spec")
	}
	if p.SetSlot(300, "#000000") {
		t.Error("SetSlot should reject an out-of-range index")
	}
}

func TestPaletteResolveIndexedLooksUpSlot(t *testing.T) {
	p := NewPalette()
	p.SetSlot(5, "#abcdef")
	got := p.Resolve(Indexed(5), true)
	want, _ := parseColorSpec("#abcdef")
	if got != want {
		t.Errorf("Resolve(Indexed(5)) = %+v, want %+v", got, want)
	}
}

func TestPaletteResolveDefaultUsesFGOrBG(t *testing.T) {
	p := NewPalette()
	p.SetDefault(10, "#010101")
	p.SetDefault(11, "#020202")
	if got := p.Resolve(DefaultColor, true); got != (Color{Mode: ColorRGB, R: 1, G: 1, B: 1}) {
		t.Errorf("Resolve(default, fg) = %+v, want fg default", got)
	}
	if got := p.Resolve(DefaultColor, false); got != (Color{Mode: ColorRGB, R: 2, G: 2, B: 2}) {
		t.Errorf("Resolve(default, bg) = %+v, want bg default", got)
	}
}

func TestPalettePushPopRestoresSnapshot(t *testing.T) {
	p := NewPalette()
	original := p.SlotSpec(1)
	p.Push()
	p.SetSlot(1, "#ffffff")
	if !p.Pop() {
		t.Fatal("Pop returned false with a pushed snapshot available")
	}
	if got := p.SlotSpec(1); got != original {
		t.Errorf("SlotSpec(1) after pop = %q, want %q", got, original)
	}
}

func TestPalettePopEmptyStackFails(t *testing.T) {
	p := NewPalette()
	if p.Pop() {
		t.Error("Pop should fail with no pushed snapshot")
	}
}

func TestPaletteReportDepthTracksStack(t *testing.T) {
	p := NewPalette()
	if p.ReportDepth() != 0 {
		t.Fatalf("ReportDepth() = %d, want 0", p.ReportDepth())
	}
	p.Push()
	p.Push()
	if p.ReportDepth() != 2 {
		t.Errorf("ReportDepth() = %d, want 2", p.ReportDepth())
	}
	p.Pop()
	if p.ReportDepth() != 1 {
		t.Errorf("ReportDepth() = %d, want 1", p.ReportDepth())
	}
}

func TestPaletteResetSlotRestoresOneSlot(t *testing.T) {
	p := NewPalette()
	fresh := NewPalette().SlotSpec(1)
	p.SetSlot(1, "#ffffff")
	p.ResetSlot(1)
	if got := p.SlotSpec(1); got != fresh {
		t.Errorf("SlotSpec(1) after ResetSlot = %q, want %q", got, fresh)
	}
}

func TestPaletteResetSlotAllRestoresEverySlot(t *testing.T) {
	p := NewPalette()
	p.SetSlot(0, "#ffffff")
	p.SetSlot(200, "#ffffff")
	p.ResetSlot(-1)
	fresh := NewPalette()
	if got := p.SlotSpec(0); got != fresh.SlotSpec(0) {
		t.Errorf("SlotSpec(0) after ResetSlot(-1) = %q, want %q", got, fresh.SlotSpec(0))
	}
	if got := p.SlotSpec(200); got != fresh.SlotSpec(200) {
		t.Errorf("SlotSpec(200) after ResetSlot(-1) = %q, want %q", got, fresh.SlotSpec(200))
	}
}
