package vt

import (
	"encoding/base64"
	"strconv"
	"strings"
)

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// oscCapture implements OSC 314 (§4.4 "Capture buffer"): "Ps ; logical"
// requests the last Ps lines (0 means the whole buffer) be captured and
// delivered via Callbacks.RequestCaptureBuffer, which the collaborator
// later answers by calling Screen.CaptureBuffer.
func (s *Screen) oscCapture(rest string) SequenceOutcome {
	fields := strings.Split(rest, ";")
	lines := 0
	if len(fields) > 0 && fields[0] != "" {
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return OutcomeInvalid
		}
		lines = n
	}
	logical := len(fields) > 1 && fields[1] == "1"
	s.cb.RequestCaptureBuffer(lines, logical)
	return OutcomeOK
}

// CaptureBuffer renders up to maxLines of scrollback+page content (0 means
// unbounded) as newline-separated text, sent as a chunked DCS reply of
// ST-terminated chunks of at most 4096 bytes each (a chunk may split a
// line), following the teacher's line-oriented scrollback model
// (framegrace-texelation's ScrollbackHistory) generalized to logical
// (wrap-chain-joined) lines per §4.3.
func (s *Screen) CaptureBuffer(maxLines int, logical bool) {
	grid := s.activeGrid()
	width := grid.Size().Columns
	start := -grid.HistoryLineCount()

	var sb strings.Builder
	if logical {
		lls := grid.LogicalLinesFrom(start)
		if maxLines > 0 && len(lls) > maxLines {
			lls = lls[len(lls)-maxLines:]
		}
		for _, ll := range lls {
			sb.WriteString(ll.Text(width))
			sb.WriteByte('\n')
		}
	} else {
		count := grid.HistoryLineCount() + grid.Size().Lines
		first := start
		if maxLines > 0 && count > maxLines {
			first = start + (count - maxLines)
		}
		for offset := first; offset < grid.Size().Lines; offset++ {
			l := grid.LineAt(offset)
			if l == nil {
				continue
			}
			sb.WriteString(l.PlainText(width))
			sb.WriteByte('\n')
		}
	}

	const chunkSize = 4096
	text := sb.String()
	for i := 0; i < len(text); i += chunkSize {
		end := i + chunkSize
		if end > len(text) {
			end = len(text)
		}
		s.replyBytes([]byte("\x1bP" + text[i:end] + "\x1b\\"))
	}
}
