package vt

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// SequenceOutcome is the tri-valued result of dispatching a sequence to the
// Screen (§9 "Exceptions for control flow"). It is never surfaced as an
// error: the sequencer logs it and moves on.
type SequenceOutcome uint8

const (
	OutcomeOK SequenceOutcome = iota
	OutcomeInvalid
	OutcomeUnsupported
)

func (o SequenceOutcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// ErrClosed is returned by Terminal methods once the terminal has shut down.
var ErrClosed = errors.New("vt: terminal closed")

// ErrPermissionDenied is returned when a collaborator declines a permission
// request (§7 "Permission-denied").
var ErrPermissionDenied = errors.New("vt: permission denied")

// ResourceLimitError reports that an operation exceeded a configured ceiling
// (§7 "Resource-limit"): Sixel image size, color-register count, and so on.
type ResourceLimitError struct {
	Resource string
	Limit    uint64
	Wanted   uint64
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("vt: %s exceeds limit (%s requested, %s allowed)",
		e.Resource, humanize.Bytes(e.Wanted), humanize.Bytes(e.Limit))
}

// PTYError wraps a read or write failure surfaced by the PTY collaborator
// (§7 "PTY-read-failure" / "PTY-write-failure").
type PTYError struct {
	Op  string
	Err error
}

func (e *PTYError) Error() string { return fmt.Sprintf("vt: pty %s: %v", e.Op, e.Err) }
func (e *PTYError) Unwrap() error { return e.Err }
