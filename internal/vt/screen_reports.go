package vt

import (
	"fmt"
	"strconv"
	"strings"
)

// reportDSR implements Device Status Report (§4.4 "DSR"): mode 5 reports
// device OK, mode 6 reports the cursor position.
func (s *Screen) reportDSR(mode int) {
	switch mode {
	case 5:
		s.replyBytes([]byte("\x1b[0n"))
	case 6:
		row := s.cursor.Line - s.originTop() + 1
		col := s.cursor.Column - s.originLeft() + 1
		s.replyBytes([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	}
}

// HookDCS installs the pluggable sub-parser a DCS sequence needs: DECRQSS
// ($q), XTGETTCAP (+q), or the Sixel image sub-parser (bare "q" with params
// and no intermediate). Anything else is consumed and discarded.
//
// Grounded on the DCSSubParser extension point of §4.1, which the teacher
// has no equivalent for (framegrace-texelation's parser never models DCS at
// all); the dispatch-by-intermediate convention follows xterm's own control
// sequence documentation reproduced in original_source/vtbackend.
func (s *Screen) HookDCS(seq *Sequence) DCSSubParser {
	switch {
	case len(seq.Intermediate) == 1 && seq.Intermediate[0] == '$' && seq.Final == 'q':
		return &decrqssParser{screen: s}
	case len(seq.Intermediate) == 1 && seq.Intermediate[0] == '+' && seq.Final == 'q':
		return &xtgettcapParser{screen: s}
	case len(seq.Intermediate) == 0 && seq.Final == 'q':
		return s.newSixelParser(seq.Params)
	}
	return nil
}

// UnhookDCS finalizes whatever sub-parser (if any) Hook installed; each
// sub-parser does its own work from Unhook, so there is nothing left to do
// here beyond reporting success.
func (s *Screen) UnhookDCS(seq *Sequence) SequenceOutcome {
	return OutcomeOK
}

// decrqssParser accumulates a DECRQSS request name and replies with the
// current value of the requested setting, or an invalid-request report.
type decrqssParser struct {
	screen *Screen
	buf    []byte
}

func (d *decrqssParser) Put(b byte) { d.buf = append(d.buf, b) }

func (d *decrqssParser) Unhook() {
	req := string(d.buf)
	value, ok := d.screen.decrqssValue(req)
	if !ok {
		d.screen.replyBytes([]byte("\x1bP0$r\x1b\\"))
		return
	}
	d.screen.replyBytes([]byte("\x1bP1$r" + value + req + "\x1b\\"))
}

// decrqssValue resolves a DECRQSS request to its current value string,
// reported ahead of the echoed request per ECMA-48/xterm convention.
func (s *Screen) decrqssValue(req string) (string, bool) {
	switch req {
	case "m": // SGR
		return s.sgrReportString(), true
	case "r": // DECSTBM
		return fmt.Sprintf("%d;%d", s.margin.Top+1, s.margin.Bottom+1), true
	case "s": // DECSLRM
		return fmt.Sprintf("%d;%d", s.margin.Left+1, s.margin.Right+1), true
	case " q": // DECSCUSR
		return strconv.Itoa(s.cursorStyleCode()), true
	case "\"p": // DECSCL
		return s.decsclReportString(), true
	case "\"q": // DECSCA
		if s.cursor.SGR.Flags&FlagCharacterProtected != 0 {
			return "1", true
		}
		return "0", true
	case "t": // DECSLPP
		return strconv.Itoa(s.pageSize().Lines), true
	case "$|": // DECSCPP
		return strconv.Itoa(s.pageSize().Columns), true
	case "*|": // DECSNLS
		return strconv.Itoa(s.pageSize().Lines), true
	case "$}": // DECSASD
		code := 0
		if s.display == DisplayStatusLine {
			code = 1
		}
		return strconv.Itoa(code), true
	case "$~": // DECSSDT
		return strconv.Itoa(int(s.statusLineType)), true
	}
	return "", false
}

// decsclReportString formats DECSCL's two-parameter report: conformance
// level (61 for VT100, otherwise da1Class's 62/63/64/65) and 8-bit
// controls (1).
func (s *Screen) decsclReportString() string {
	level := da1Class(s.settings.TerminalID)
	if level < 61 {
		level = 61 // da1Class reports 1 for VT100
	}
	return fmt.Sprintf("%d;1", level)
}

func (s *Screen) sgrReportString() string {
	attrs := s.cursor.SGR
	var parts []string
	if attrs.Flags&FlagBold != 0 {
		parts = append(parts, "1")
	}
	if attrs.Flags&FlagFaint != 0 {
		parts = append(parts, "2")
	}
	if attrs.Flags&FlagItalic != 0 {
		parts = append(parts, "3")
	}
	if attrs.Flags&FlagUnderline != 0 {
		parts = append(parts, "4")
	}
	if attrs.Flags&FlagBlinking != 0 {
		parts = append(parts, "5")
	}
	if attrs.Flags&FlagInverse != 0 {
		parts = append(parts, "7")
	}
	if attrs.Flags&FlagHidden != 0 {
		parts = append(parts, "8")
	}
	if attrs.Flags&FlagCrossedOut != 0 {
		parts = append(parts, "9")
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, ";")
}

func (s *Screen) cursorStyleCode() int {
	blink := s.settings.CursorDisplay == CursorBlink
	switch s.settings.CursorShape {
	case CursorBlock:
		if blink {
			return 1
		}
		return 2
	case CursorUnderscore:
		if blink {
			return 3
		}
		return 4
	case CursorBar, CursorRectangle:
		if blink {
			return 5
		}
		return 6
	}
	return 0
}

// xtgettcapParser implements XTGETTCAP: the payload is a semicolon
// separated list of hex-encoded terminfo/termcap capability names; the
// reply echoes each as hex-encoded name=value (or an unrecognized report).
type xtgettcapParser struct {
	screen *Screen
	buf    []byte
}

func (x *xtgettcapParser) Put(b byte) { x.buf = append(x.buf, b) }

func (x *xtgettcapParser) Unhook() {
	names := strings.Split(string(x.buf), ";")
	var replies []string
	ok := true
	for _, hexName := range names {
		name, valid := decodeHex(hexName)
		if !valid {
			ok = false
			continue
		}
		value, found := x.screen.caps.Lookup(name)
		if !found {
			ok = false
			continue
		}
		replies = append(replies, encodeHex(name)+"="+encodeHex(value))
	}
	status := "1"
	if !ok || len(replies) == 0 {
		status = "0"
	}
	x.screen.replyBytes([]byte("\x1bP" + status + "+r" + strings.Join(replies, ";") + "\x1b\\"))
}

func decodeHex(s string) (string, bool) {
	if len(s)%2 != 0 {
		return "", false
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return "", false
		}
		out[i] = byte(v)
	}
	return string(out), true
}

func encodeHex(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(&sb, "%02x", s[i])
	}
	return sb.String()
}

// XTVersion reports the terminal's self-identification for XTVERSION
// (CSI > 0 q in xterm; modeled here as a direct call from OSC/CSI dispatch
// since the spec treats it as a simple reply, not a sub-parser).
func (s *Screen) XTVersion() string {
	return fmt.Sprintf("libterminal(%s)", s.caps.TerminalName())
}
