// Command vtdemo runs a shell under the vt terminal backend and mirrors its
// screen back to the invoking terminal, demonstrating the external-interface
// contract of §6 without pulling any GUI or rendering machinery into
// internal/vt itself.
//
// Grounded on framegrace-texelation's texelTerm.Run/Render pair
// (apps/texelterm/term.go): that code drives a *parser.VTerm from a raw
// *os.File and redraws a tcell screen from vterm.Grid() on every refresh
// tick; vtdemo drives a vt.Terminal from the vt.PTY interface instead and
// redraws a plain ANSI frame from Terminal.Render().Front() on the same kind
// of tick.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/christianparpart/libterminal/internal/vt"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vtdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cols, lines, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		cols, lines = 80, 24
	}
	size := vt.PageSize{Lines: lines, Columns: cols}

	ptyConn, err := startPTY(shell, nil, size)
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}

	settings := vt.DefaultSettings(size.Lines, size.Columns)
	vtTerm := vt.NewTerminal(settings, ptyConn, vt.NopCallbacks{}, nil)

	restore, err := enterRawMode()
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer restore()

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		cancel()
	}()

	go copyStdinToPTY(ctx, os.Stdin, vtTerm)
	go renderLoop(ctx, vtTerm)

	err = vtTerm.Run(ctx)
	cancel()
	vtTerm.Close()
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// copyStdinToPTY forwards raw keystrokes from the local terminal straight
// into the PTY, matching the teacher's a.pty.Write(keyBytes) path but
// without the tcell key-decoding step: a raw-mode local terminal already
// hands us the exact escape sequences the shell expects.
func copyStdinToPTY(ctx context.Context, in *os.File, term *vt.Terminal) {
	buf := make([]byte, 4096)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if werr := term.WriteInput(string(buf[:n]), 0); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func renderLoop(ctx context.Context, t *vt.Terminal) {
	var lastFrame int64 = -1
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		buf := t.Render().Front()
		if buf.FrameID != lastFrame {
			lastFrame = buf.FrameID
			draw(buf)
		}
		time.Sleep(16 * time.Millisecond)
	}
}

// draw repaints the local terminal from a RenderBuffer snapshot: home
// cursor, clear, print each row's plain text, then position the cursor.
// It intentionally ignores per-cell SGR — a full ANSI re-encoder belongs in
// a real front-end, not this demo.
func draw(buf *vt.RenderBuffer) {
	var sb strings.Builder
	sb.WriteString("\x1b[H\x1b[2J")
	for _, line := range buf.Lines {
		sb.WriteString(lineText(line))
		sb.WriteString("\r\n")
	}
	fmt.Fprintf(&sb, "\x1b[%d;%dH", buf.Cursor.Line+1, buf.Cursor.Column+1)
	os.Stdout.WriteString(sb.String())
}

func lineText(l vt.RenderLine) string {
	if l.Trivial {
		return l.Text
	}
	var sb strings.Builder
	for _, c := range l.Cells {
		if c.Width == 0 {
			continue
		}
		if len(c.Codepoints) == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(string(c.Codepoints))
	}
	return sb.String()
}

func enterRawMode() (func(), error) {
	fd := int(os.Stdin.Fd())
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { term.Restore(fd, prev) }, nil
}
