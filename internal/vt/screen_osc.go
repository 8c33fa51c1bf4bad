package vt

import (
	"strconv"
	"strings"
)

// DispatchOSC routes a completed "OSC Ps ; Pt ST/BEL" sequence by its
// numeric code (§4.4 "OSC catalogue"). payload is everything between the
// introducer and the terminator, not including either.
//
// Grounded on framegrace-texelation's parser, which has no OSC handling at
// all (its handleOSC is a stub); the numeric dispatch table is built from
// the spec's OSC catalogue and original_source/vtbackend's equivalent
// switch.
func (s *Screen) DispatchOSC(payload []byte) SequenceOutcome {
	str := string(payload)
	code, rest, ok := splitOSC(str)
	if !ok {
		return OutcomeInvalid
	}
	switch code {
	case 0, 2: // icon name + window title / window title only
		s.windowTitle = []byte(rest)
		s.cb.SetWindowTitle(s.windowTitle)
	case 1: // icon name only: no distinct storage, ignored
	case 4:
		return s.oscSetColor(rest)
	case 7: // report/set current working directory: accepted, not stored
	case 8:
		return s.oscHyperlink(rest)
	case 9:
		s.cb.Notify("", rest)
	case 10, 11, 12:
		return s.oscDefaultColor(code, rest)
	case 17:
		return s.oscDefaultColor(11, rest) // highlight background aliases OSC 11 here
	case 19:
		return s.oscDefaultColor(10, rest) // highlight foreground aliases OSC 10 here
	case 52: // clipboard
		return s.oscClipboard(rest)
	case 104:
		return s.oscResetColor(rest)
	case 314:
		return s.oscCapture(rest)
	case 777:
		s.oscNotifyLegacy(rest)
	default:
		return OutcomeUnsupported
	}
	return OutcomeOK
}

// splitOSC parses "Ps;Pt" into its numeric code and remainder.
func splitOSC(s string) (code int, rest string, ok bool) {
	i := strings.IndexByte(s, ';')
	numPart := s
	if i >= 0 {
		numPart = s[:i]
		rest = s[i+1:]
	}
	n, err := strconv.Atoi(numPart)
	if err != nil {
		return 0, "", false
	}
	return n, rest, true
}

func (s *Screen) oscSetColor(rest string) SequenceOutcome {
	entries := strings.Split(rest, ";")
	outcome := OutcomeOK
	for i := 0; i+1 < len(entries); i += 2 {
		idx, err := strconv.Atoi(entries[i])
		if err != nil {
			outcome = OutcomeInvalid
			continue
		}
		spec := entries[i+1]
		if spec == "?" {
			s.replyBytes([]byte("\x1b]4;" + entries[i] + ";" + s.palette.SlotSpec(idx) + "\x1b\\"))
			continue
		}
		if !s.palette.SetSlot(idx, spec) {
			outcome = OutcomeInvalid
		}
	}
	return outcome
}

func (s *Screen) oscDefaultColor(which int, rest string) SequenceOutcome {
	if rest == "?" {
		s.replyBytes([]byte("\x1b]" + strconv.Itoa(which) + ";" + s.palette.DefaultSpec(which) + "\x1b\\"))
		return OutcomeOK
	}
	if !s.palette.SetDefault(which, rest) {
		return OutcomeInvalid
	}
	return OutcomeOK
}

func (s *Screen) oscResetColor(rest string) SequenceOutcome {
	if rest == "" {
		s.palette.ResetSlot(-1)
		return OutcomeOK
	}
	for _, field := range strings.Split(rest, ";") {
		idx, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		s.palette.ResetSlot(idx)
	}
	return OutcomeOK
}

// oscHyperlink implements OSC 8: "params ; URI". An empty URI closes the
// current hyperlink.
func (s *Screen) oscHyperlink(rest string) SequenceOutcome {
	i := strings.IndexByte(rest, ';')
	if i < 0 {
		return OutcomeInvalid
	}
	params, uri := rest[:i], rest[i+1:]
	s.cursor.Hyperlink = s.hyperlinks.Open(uri, params)
	return OutcomeOK
}

func (s *Screen) oscClipboard(rest string) SequenceOutcome {
	i := strings.IndexByte(rest, ';')
	if i < 0 {
		return OutcomeInvalid
	}
	data, err := decodeBase64(rest[i+1:])
	if err != nil {
		return OutcomeInvalid
	}
	s.cb.CopyToClipboard(data)
	return OutcomeOK
}

func (s *Screen) oscNotifyLegacy(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) == 2 {
		s.cb.Notify(parts[0], parts[1])
	}
}
