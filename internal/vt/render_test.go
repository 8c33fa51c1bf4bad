package vt

import "testing"

func TestRenderPipelineSwapsOnRefresh(t *testing.T) {
	settings := DefaultSettings(5, 10)
	screen := NewScreen(settings, nil, NopCallbacks{})
	seq := NewSequencer(screen, nil)
	parser := NewParser(seq)

	pipe := NewRenderPipeline()
	first := pipe.Front()
	if first.FrameID != 0 {
		t.Fatalf("initial FrameID = %d, want 0", first.FrameID)
	}

	parser.ParseBytes([]byte("hello"))
	pipe.RequestRefresh()
	pipe.Refresh(screen)

	second := pipe.Front()
	if second.FrameID != 1 {
		t.Fatalf("FrameID after first refresh = %d, want 1", second.FrameID)
	}
	if second == first {
		t.Fatalf("Front() returned the same buffer object after a swap")
	}
	if got := second.Lines[0].Text; got != "hello" {
		t.Errorf("line 0 text = %q, want %q", got, "hello")
	}
}

// TestRenderBufferImmutableAcrossSwap proves that a reference to the front
// buffer obtained before a refresh is unaffected by a later refresh: the
// buffer a reader is holding never mutates in place, only the pipeline's
// pointer moves (§8 "while a read lock is held, the front buffer's cell
// vector does not mutate").
func TestRenderBufferImmutableAcrossSwap(t *testing.T) {
	settings := DefaultSettings(5, 10)
	screen := NewScreen(settings, nil, NopCallbacks{})
	seq := NewSequencer(screen, nil)
	parser := NewParser(seq)

	pipe := NewRenderPipeline()

	parser.ParseBytes([]byte("first"))
	pipe.RequestRefresh()
	pipe.Refresh(screen)
	held := pipe.Front()
	heldText := held.Lines[0].Text
	heldFrameID := held.FrameID

	parser.ParseBytes([]byte("\x1b[1;1Hsecond"))
	pipe.RequestRefresh()
	pipe.Refresh(screen)

	if held.FrameID != heldFrameID {
		t.Errorf("held buffer's FrameID changed from %d to %d after a later refresh", heldFrameID, held.FrameID)
	}
	if held.Lines[0].Text != heldText {
		t.Errorf("held buffer's line text changed from %q to %q after a later refresh", heldText, held.Lines[0].Text)
	}

	latest := pipe.Front()
	if latest == held {
		t.Fatalf("Front() still returns the buffer held from before the second refresh")
	}
}

func TestRenderPipelineNoopWithoutPendingRefresh(t *testing.T) {
	settings := DefaultSettings(5, 10)
	screen := NewScreen(settings, nil, NopCallbacks{})
	pipe := NewRenderPipeline()
	before := pipe.Front()
	pipe.Refresh(screen) // no RequestRefresh called: should be a no-op
	after := pipe.Front()
	if before != after {
		t.Errorf("Refresh swapped buffers despite no pending request")
	}
}
