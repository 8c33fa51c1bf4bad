package vt

import "context"

// PTY is the collaborator interface the Terminal drives its I/O loop
// through (§6 "PTY collaborator"). A real implementation wraps an
// *os.File from creack/pty; tests substitute an in-memory pipe.
//
// Grounded on framegrace-texelation's direct *os.File usage in
// apps/texelterm/term.go (a.pty.Write, ptmx.Read via bufio.Reader),
// generalized into an interface so Terminal never imports creack/pty
// itself — only cmd/vtdemo does.
type PTY interface {
	// Read blocks until at least one byte is available, or ctx is
	// cancelled, or the PTY is closed (io.EOF).
	Read(ctx context.Context, buf []byte) (int, error)
	// Write sends bytes to the PTY (a reply, e.g. DSR/DA responses or user
	// input).
	Write(b []byte) (int, error)
	// Resize informs the PTY of a new page size (TIOCSWINSZ).
	Resize(size PageSize) error
	// Close releases the PTY.
	Close() error
}
