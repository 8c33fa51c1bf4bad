package main

import (
	"context"
	"os"
	"os/exec"

	"github.com/creack/pty"

	"github.com/christianparpart/libterminal/internal/vt"
)

// osPTY adapts creack/pty's *os.File to the vt.PTY collaborator interface
// (§6 "PTY collaborator"). Grounded on framegrace-texelation's texelTerm.Run
// (apps/texelterm/term.go), which starts the child with pty.StartWithSize
// and resizes it with pty.Setsize directly against a bare *os.File; here
// that same pairing sits behind vt.PTY so internal/vt never imports
// creack/pty itself.
type osPTY struct {
	cmd *exec.Cmd
	f   *os.File
}

// startPTY launches command under a new pty sized to size, mirroring the
// teacher's pty.StartWithSize call.
func startPTY(command string, args []string, size vt.PageSize) (*osPTY, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(size.Lines), Cols: uint16(size.Columns)})
	if err != nil {
		return nil, err
	}
	return &osPTY{cmd: cmd, f: f}, nil
}

// Read blocks in the underlying file's Read; ctx cancellation is honored by
// closing the file from Close, which unblocks any in-flight Read with EOF.
func (p *osPTY) Read(ctx context.Context, buf []byte) (int, error) {
	return p.f.Read(buf)
}

func (p *osPTY) Write(b []byte) (int, error) {
	return p.f.Write(b)
}

func (p *osPTY) Resize(size vt.PageSize) error {
	return pty.Setsize(p.f, &pty.Winsize{Rows: uint16(size.Lines), Cols: uint16(size.Columns)})
}

func (p *osPTY) Close() error {
	err := p.f.Close()
	if p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	return err
}
