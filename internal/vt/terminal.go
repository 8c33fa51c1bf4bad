package vt

import (
	"bytes"
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ExecutionMode controls how the Terminal's I/O goroutine consumes bytes
// from the PTY, primarily for deterministic testing (§6 "Execution modes").
type ExecutionMode uint8

const (
	// ExecutionNormal drains everything available each read.
	ExecutionNormal ExecutionMode = iota
	// ExecutionWaiting pauses after each read until Resume is called.
	ExecutionWaiting
	// ExecutionSingleStep processes exactly one parser byte per Resume.
	ExecutionSingleStep
	// ExecutionBreakAtEmptyQueue stops the I/O goroutine once a read
	// returns with the input queue empty, requiring an explicit Resume.
	ExecutionBreakAtEmptyQueue
)

// Terminal is the top-level orchestrator (§6): it owns Settings, wires a
// Parser through a Sequencer into a Screen, accumulates reply bytes,
// maintains the render double buffer, and drives PTY I/O under an
// errgroup-coordinated goroutine pair.
//
// Grounded on framegrace-texelation's texelTerm.Run (apps/texelterm/term.go),
// generalized from its bespoke stop-channel + sync.WaitGroup pair into
// golang.org/x/sync/errgroup, and from its single reader goroutine into a
// reader goroutine plus a render-tick goroutine coordinated by the same
// group.
type Terminal struct {
	settings Settings
	logger   Logger

	pty    PTY
	screen *Screen
	seq    *Sequencer
	parser *Parser
	render *RenderPipeline
	input  *InputGenerator

	mode      ExecutionMode
	resumeCh  chan struct{}
	instrCount int64

	mu       sync.Mutex
	replyBuf bytes.Buffer

	group  *errgroup.Group
	cancel context.CancelFunc
	closed bool
}

// NewTerminal wires a full parser→sequencer→screen pipeline over pty using
// settings, and returns a Terminal ready for Run.
func NewTerminal(settings Settings, pty PTY, cb Callbacks, logger Logger) *Terminal {
	if logger == nil {
		logger = noopLogger{}
	}
	t := &Terminal{
		settings: settings,
		logger:   logger,
		pty:      pty,
		render:   NewRenderPipeline(),
		resumeCh: make(chan struct{}, 1),
	}
	t.screen = NewScreen(settings, logger, cb)
	t.screen.SetReply(t.enqueueReply)
	t.seq = NewSequencer(t.screen, logger)
	t.parser = NewParser(t.seq)
	t.input = NewInputGenerator(t.screen.Modes(), settings)
	return t
}

// Screen exposes the underlying Screen for read access (render, tests,
// capture).
func (t *Terminal) Screen() *Screen { return t.screen }

// Render exposes the render pipeline's front buffer.
func (t *Terminal) Render() *RenderPipeline { return t.render }

// Input exposes the input generator collaborators encode key/mouse/paste
// events through.
func (t *Terminal) Input() *InputGenerator { return t.input }

func (t *Terminal) enqueueReply(b []byte) {
	t.mu.Lock()
	t.replyBuf.Write(b)
	t.mu.Unlock()
}

// FlushReplies returns and clears any bytes queued by DSR/DA/OSC-query
// responses since the last flush, for the caller to write to the PTY
// (§6 "Reply channel").
func (t *Terminal) FlushReplies() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.replyBuf.Len() == 0 {
		return nil
	}
	b := append([]byte(nil), t.replyBuf.Bytes()...)
	t.replyBuf.Reset()
	return b
}

// SetExecutionMode changes how the I/O goroutine paces byte consumption
// (§6 "Execution modes"), primarily for deterministic tests.
func (t *Terminal) SetExecutionMode(mode ExecutionMode) { t.mode = mode }

// Resume unblocks a goroutine paused by ExecutionWaiting/SingleStep/
// BreakAtEmptyQueue.
func (t *Terminal) Resume() {
	select {
	case t.resumeCh <- struct{}{}:
	default:
	}
}

// Run starts the I/O and render goroutines and blocks until either fails or
// ctx is cancelled. A PTY-read-failure (§7) stops the group and is
// returned; Callbacks.OnClosed is always invoked on the way out.
func (t *Terminal) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	group, gctx := errgroup.WithContext(ctx)
	t.group = group

	group.Go(func() error { return t.readLoop(gctx) })
	group.Go(func() error { return t.flushLoop(gctx) })

	err := group.Wait()
	t.screen.cb.OnClosed()
	return err
}

// Close stops the Terminal's goroutines and releases the PTY.
func (t *Terminal) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	return t.pty.Close()
}

func (t *Terminal) readLoop(ctx context.Context) error {
	buf := make([]byte, t.settings.PTYReadBufferSize)
	for {
		if err := t.waitForResume(ctx); err != nil {
			return err
		}
		n, err := t.pty.Read(ctx, buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return &PTYError{Op: "read", Err: err}
		}
		t.consume(buf[:n])
		if reply := t.FlushReplies(); len(reply) > 0 {
			if _, err := t.pty.Write(reply); err != nil {
				return &PTYError{Op: "write", Err: err}
			}
		}
		t.render.RequestRefresh()
	}
}

func (t *Terminal) waitForResume(ctx context.Context) error {
	if t.mode == ExecutionNormal {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.resumeCh:
		return nil
	}
}

func (t *Terminal) consume(b []byte) {
	t.instrCount += int64(len(b))
	if t.mode == ExecutionSingleStep {
		for _, by := range b {
			t.parser.Parse(by)
		}
		return
	}
	t.parser.ParseBytes(b)
}

// flushLoop periodically advances the render pipeline's state machine so a
// renderer polling Render().Front() sees regular updates even under a
// steady stream of PTY output (§4.6).
func (t *Terminal) flushLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		t.render.Refresh(t.screen)
		if err := sleepOrDone(ctx, t.settings.RefreshInterval); err != nil {
			return nil
		}
	}
}

// InstructionCount returns the number of raw bytes consumed from the PTY
// so far, used by tests asserting on progress under SingleStep mode.
func (t *Terminal) InstructionCount() int64 { return t.instrCount }

// Resize propagates a new page size to Settings, both grids, the PTY, and
// the capability database's reported geometry (§6 "Resize").
func (t *Terminal) Resize(size PageSize) error {
	t.settings.PageSize = size
	reflow := t.settings.PrimaryScreenAllowReflowOnResize
	t.screen.primary.Resize(size, reflow)
	t.screen.alternate.Resize(size, false)
	t.screen.status = NewGrid(PageSize{Lines: 1, Columns: size.Columns}, false, HistoryLimit{Disabled: true})
	t.screen.clampCursor()
	t.screen.caps.SetPageGeometry(size.Columns, size.Lines)
	return t.pty.Resize(size)
}

// WriteInput encodes and sends printable text to the PTY (§6 "Input
// generation").
func (t *Terminal) WriteInput(text string, mods Modifier) error {
	_, err := t.pty.Write(t.input.EncodeText(text, mods))
	return err
}

// WriteKey encodes and sends a non-printable key event to the PTY.
func (t *Terminal) WriteKey(key Key, mods Modifier) error {
	seq := t.input.EncodeKey(key, mods)
	if seq == nil {
		return nil
	}
	_, err := t.pty.Write(seq)
	return err
}
