package vt

// ParserState enumerates every state of the table-driven VT state machine
// (§4.1 Parser).
type ParserState uint8

const (
	StateGround ParserState = iota
	StateEscape
	StateEscapeIntermediate
	StateCsiEntry
	StateCsiParam
	StateCsiIntermediate
	StateCsiIgnore
	StateDcsEntry
	StateDcsParam
	StateDcsIntermediate
	StateDcsPassthrough
	StateDcsIgnore
	StateOscString
	StateSosPmApcString

	// stateStringEscape is an implementation-internal sub-state: a string
	// context (OSC/DCS passthrough/DCS ignore/SOS-PM-APC) saw ESC and is
	// waiting to see whether the next byte is '\\' (completing a 7-bit ST)
	// or something else (meaning the ESC begins a fresh sequence and the
	// string was unterminated). Not part of the spec's named state list,
	// which describes it as part of each string state's own framing.
	stateStringEscape
)

// stringKind distinguishes which of OSC/DCS/APC/PM/SOS a string-collecting
// state belongs to, since SOS/PM/APC share one parser state (§4.1).
type stringKind uint8

const (
	kindOSC stringKind = iota
	kindDCS
	kindAPC
	kindPM
	kindSOS
)

// DCSSubParser is a pluggable sub-parser a Hook can install to consume
// subsequent Put bytes itself (Sixel, XTGETTCAP, DECRQSS, terminal-profile-set;
// §4.1 "The DCS sub-parser is pluggable").
type DCSSubParser interface {
	Put(b byte)
	Unhook()
}

// Handler receives parser events (§4.1). Sequencer implements this
// interface; Parser is otherwise unaware of Screen/Sequence semantics.
type Handler interface {
	Print(r rune)
	Execute(b byte)
	Collect(b byte)
	CollectLeader(b byte)
	ParamDigit(b byte)
	ParamSeparator()
	ParamSubSeparator()
	DispatchESC(final byte)
	DispatchCSI(final byte)
	StartOSC()
	PutOSC(b byte)
	DispatchOSC()
	Hook(final byte) DCSSubParser // nil return means "no sub-parser installed"
	Put(b byte)
	Unhook()
	StartAPC()
	PutAPC(b byte)
	DispatchAPC()
	StartPM()
	PutPM(b byte)
	DispatchPM()
	Error(message string)
}

// Parser is the byte-level VT state machine (§4.1). It decodes UTF-8 only
// on bytes destined for Print; bytes inside escape-string contexts (OSC,
// DCS, APC, PM, SOS payloads) are passed through 8-bit as the spec requires.
//
// Grounded on framegrace-texelation's apps/texelterm/parser/parser.go
// Parser.Parse state switch, generalized from its seven ad hoc states (and
// rune-at-a-time input) to the spec's full fourteen-state table operating
// byte-at-a-time with an internal UTF-8 decoder.
type Parser struct {
	state   ParserState
	handler Handler

	strKind stringKind
	subDCS  DCSSubParser

	// resumeState is the string state (OSC, DCS, APC, PM, SOS) that was
	// active when the string ended, telling dispatchPendingString which
	// kind of string to dispatch.
	resumeState ParserState

	// UTF-8 decode state for Ground print bytes.
	utf8Need  int
	utf8Have  int
	utf8Accum rune
}

// NewParser returns a parser in Ground state dispatching events to handler.
func NewParser(handler Handler) *Parser {
	return &Parser{handler: handler}
}

// Reset returns the parser to Ground, discarding any in-flight sequence
// (used by SUB/CAN per §4.4 "Miscellaneous").
func (p *Parser) Reset() {
	p.state = StateGround
	p.utf8Need, p.utf8Have, p.utf8Accum = 0, 0, 0
	p.subDCS = nil
}

// State returns the current parser state, for tests and single-step tracing.
func (p *Parser) State() ParserState { return p.state }

const (
	cCAN = 0x18
	cSUB = 0x1a
	cESC = 0x1b
	cBEL = 0x07
	cST7 = '\\' // 7-bit String Terminator is ESC \
	cST8 = 0x9c // 8-bit String Terminator, equivalent to ESC \
)

// c1Final maps an 8-bit C1 control code (0x80-0x9f) to the final byte of its
// 7-bit ESC-prefixed equivalent (§6 "plus 7-bit and 8-bit C1"), or 0 if the
// code has no ESC-introducer equivalent this parser recognizes.
func c1Final(b byte) byte {
	switch b {
	case 0x84: // IND
		return 'D'
	case 0x85: // NEL
		return 'E'
	case 0x88: // HTS
		return 'H'
	case 0x8d: // RI
		return 'M'
	case 0x8e: // SS2
		return 'N'
	case 0x8f: // SS3
		return 'O'
	case 0x90: // DCS
		return 'P'
	case 0x96: // SPA
		return 'V'
	case 0x97: // EPA
		return 'W'
	case 0x98: // SOS
		return 'X'
	case 0x9a: // SCI
		return 'Z'
	case 0x9b: // CSI
		return '['
	case 0x9d: // OSC
		return ']'
	case 0x9e: // PM
		return '^'
	case 0x9f: // APC
		return '_'
	}
	return 0
}

func isC1(b byte) bool { return b >= 0x80 && b <= 0x9f }

// Parse feeds one byte from the PTY stream through the state machine.
func (p *Parser) Parse(b byte) {
	// CAN/SUB abort any in-flight sequence unconditionally (§4.4 Miscellaneous),
	// except while already collecting printable UTF-8 continuation bytes,
	// which are not escape-sequence state.
	if p.state != StateGround && (b == cCAN || b == cSUB) {
		p.handler.Execute(b)
		p.state = StateGround
		return
	}

	switch p.state {
	case StateGround:
		p.parseGround(b)
	case StateEscape:
		p.parseEscape(b)
	case StateEscapeIntermediate:
		p.parseEscapeIntermediate(b)
	case StateCsiEntry:
		p.parseCsiEntry(b)
	case StateCsiParam:
		p.parseCsiParam(b)
	case StateCsiIntermediate:
		p.parseCsiIntermediate(b)
	case StateCsiIgnore:
		p.parseCsiIgnore(b)
	case StateDcsEntry:
		p.parseDcsEntry(b)
	case StateDcsParam:
		p.parseDcsParam(b)
	case StateDcsIntermediate:
		p.parseDcsIntermediate(b)
	case StateDcsPassthrough:
		p.parseDcsPassthrough(b)
	case StateDcsIgnore:
		p.parseDcsIgnore(b)
	case StateOscString:
		p.parseOscString(b)
	case StateSosPmApcString:
		p.parseStringState(b)
	case stateStringEscape:
		p.parseStringEscape(b)
	}
}

// ParseBytes feeds an entire chunk through Parse, in order (§5 Ordering).
func (p *Parser) ParseBytes(buf []byte) {
	for _, b := range buf {
		p.Parse(b)
	}
}

func isC0(b byte) bool { return b < 0x20 || b == 0x7f }

func (p *Parser) parseGround(b byte) {
	if p.utf8Need > 0 {
		p.decodeUTF8(b)
		return
	}
	switch {
	case b == cESC:
		p.state = StateEscape
	case isC0(b):
		p.handler.Execute(b)
	case b < 0x80:
		p.handler.Print(rune(b))
	case isC1(b):
		p.dispatchC1(b)
	default:
		p.decodeUTF8(b)
	}
}

// dispatchC1 handles an 8-bit C1 control code seen outside a string context,
// by feeding its 7-bit ESC-equivalent final byte through the same Escape
// transition a 7-bit "ESC <final>" sequence would take (§6 "plus 7-bit and
// 8-bit C1"). C1 codes with no ESC-introducer equivalent here are passed to
// Execute, same as an unrecognized C0 code.
func (p *Parser) dispatchC1(b byte) {
	final := c1Final(b)
	if final == 0 {
		p.handler.Execute(b)
		return
	}
	p.state = StateEscape
	p.parseEscape(final)
}

// decodeUTF8 accumulates continuation bytes of a multi-byte UTF-8 sequence
// begun at Ground. Invalid sequences yield U+FFFD and resume at the next
// byte boundary (§4.1).
func (p *Parser) decodeUTF8(b byte) {
	switch {
	case p.utf8Need == 0:
		switch {
		case b&0xE0 == 0xC0:
			p.utf8Need, p.utf8Accum = 1, rune(b&0x1F)
		case b&0xF0 == 0xE0:
			p.utf8Need, p.utf8Accum = 2, rune(b&0x0F)
		case b&0xF8 == 0xF0:
			p.utf8Need, p.utf8Accum = 3, rune(b&0x07)
		default:
			p.handler.Print(0xFFFD)
			return
		}
		p.utf8Have = 0
	case b&0xC0 == 0x80:
		p.utf8Accum = p.utf8Accum<<6 | rune(b&0x3F)
		p.utf8Have++
		if p.utf8Have == p.utf8Need {
			p.handler.Print(p.utf8Accum)
			p.utf8Need = 0
		}
		return
	default:
		// Continuation expected but not found: emit replacement and
		// reprocess b as a fresh lead byte.
		p.utf8Need = 0
		p.handler.Print(0xFFFD)
		p.Parse(b)
		return
	}
}

func (p *Parser) parseEscape(b byte) {
	switch {
	case isC0(b):
		p.handler.Execute(b)
	case b == '[':
		p.state = StateCsiEntry
	case b == ']':
		p.strKind = kindOSC
		p.handler.StartOSC()
		p.state = StateOscString
	case b == 'P':
		p.strKind = kindDCS
		p.state = StateDcsEntry
	case b == 'X':
		p.strKind = kindSOS
		p.state = StateSosPmApcString
	case b == '^':
		p.strKind = kindPM
		p.handler.StartPM()
		p.state = StateSosPmApcString
	case b == '_':
		p.strKind = kindAPC
		p.handler.StartAPC()
		p.state = StateSosPmApcString
	case b >= 0x20 && b <= 0x2f:
		p.handler.Collect(b)
		p.state = StateEscapeIntermediate
	case b >= 0x30 && b <= 0x7e:
		p.handler.DispatchESC(b)
		p.state = StateGround
	default:
		p.handler.Error("invalid ESC byte")
		p.state = StateGround
	}
}

func (p *Parser) parseEscapeIntermediate(b byte) {
	switch {
	case isC0(b):
		p.handler.Execute(b)
	case b >= 0x20 && b <= 0x2f:
		p.handler.Collect(b)
	case b >= 0x30 && b <= 0x7e:
		p.handler.DispatchESC(b)
		p.state = StateGround
	default:
		p.handler.Error("invalid ESC intermediate byte")
		p.state = StateGround
	}
}

func (p *Parser) parseCsiEntry(b byte) {
	switch {
	case isC0(b):
		p.handler.Execute(b)
	case b >= '0' && b <= '9':
		p.handler.ParamDigit(b)
		p.state = StateCsiParam
	case b == ';':
		p.handler.ParamSeparator()
		p.state = StateCsiParam
	case b == ':':
		p.handler.ParamSubSeparator()
		p.state = StateCsiParam
	case b >= 0x3c && b <= 0x3f:
		p.handler.CollectLeader(b)
		p.state = StateCsiParam
	case b >= 0x20 && b <= 0x2f:
		p.handler.Collect(b)
		p.state = StateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.handler.DispatchCSI(b)
		p.state = StateGround
	default:
		p.state = StateCsiIgnore
	}
}

func (p *Parser) parseCsiParam(b byte) {
	switch {
	case isC0(b):
		p.handler.Execute(b)
	case b >= '0' && b <= '9':
		p.handler.ParamDigit(b)
	case b == ';':
		p.handler.ParamSeparator()
	case b == ':':
		p.handler.ParamSubSeparator()
	case b >= 0x3c && b <= 0x3f:
		// A leader byte after params has begun is a protocol violation;
		// ignore the rest of the sequence (§7 Malformed-input).
		p.state = StateCsiIgnore
	case b >= 0x20 && b <= 0x2f:
		p.handler.Collect(b)
		p.state = StateCsiIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.handler.DispatchCSI(b)
		p.state = StateGround
	default:
		p.state = StateCsiIgnore
	}
}

func (p *Parser) parseCsiIntermediate(b byte) {
	switch {
	case isC0(b):
		p.handler.Execute(b)
	case b >= 0x20 && b <= 0x2f:
		p.handler.Collect(b)
	case b >= 0x40 && b <= 0x7e:
		p.handler.DispatchCSI(b)
		p.state = StateGround
	default:
		p.state = StateCsiIgnore
	}
}

func (p *Parser) parseCsiIgnore(b byte) {
	switch {
	case isC0(b):
		p.handler.Execute(b)
	case b >= 0x40 && b <= 0x7e:
		p.state = StateGround
	}
}

func (p *Parser) parseDcsEntry(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.handler.ParamDigit(b)
		p.state = StateDcsParam
	case b == ';':
		p.handler.ParamSeparator()
		p.state = StateDcsParam
	case b == ':':
		p.handler.ParamSubSeparator()
		p.state = StateDcsParam
	case b >= 0x3c && b <= 0x3f:
		p.handler.CollectLeader(b)
		p.state = StateDcsParam
	case b >= 0x20 && b <= 0x2f:
		p.handler.Collect(b)
		p.state = StateDcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.enterDcsPassthrough(b)
	default:
		p.state = StateDcsIgnore
	}
}

func (p *Parser) parseDcsParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.handler.ParamDigit(b)
	case b == ';':
		p.handler.ParamSeparator()
	case b == ':':
		p.handler.ParamSubSeparator()
	case b >= 0x20 && b <= 0x2f:
		p.handler.Collect(b)
		p.state = StateDcsIntermediate
	case b >= 0x40 && b <= 0x7e:
		p.enterDcsPassthrough(b)
	default:
		p.state = StateDcsIgnore
	}
}

func (p *Parser) parseDcsIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.handler.Collect(b)
	case b >= 0x40 && b <= 0x7e:
		p.enterDcsPassthrough(b)
	default:
		p.state = StateDcsIgnore
	}
}

func (p *Parser) enterDcsPassthrough(final byte) {
	p.subDCS = p.handler.Hook(final)
	p.state = StateDcsPassthrough
}

func (p *Parser) parseDcsPassthrough(b byte) {
	switch b {
	case cESC:
		p.enterStringEscape(StateDcsPassthrough)
	case cST8:
		p.terminateString(StateDcsPassthrough)
	default:
		if p.subDCS != nil {
			p.subDCS.Put(b)
		} else {
			p.handler.Put(b)
		}
	}
}

func (p *Parser) parseDcsIgnore(b byte) {
	switch b {
	case cESC:
		p.enterStringEscape(StateDcsIgnore)
	case cST8:
		p.terminateString(StateDcsIgnore)
	}
}

func (p *Parser) parseOscString(b byte) {
	switch b {
	case cBEL:
		p.handler.DispatchOSC()
		p.state = StateGround
	case cESC:
		p.enterStringEscape(StateOscString)
	case cST8:
		p.terminateString(StateOscString)
	default:
		p.handler.PutOSC(b)
	}
}

func (p *Parser) parseStringState(b byte) {
	switch b {
	case cESC:
		p.enterStringEscape(StateSosPmApcString)
		return
	case cST8:
		p.terminateString(StateSosPmApcString)
		return
	}
	switch p.strKind {
	case kindAPC:
		p.handler.PutAPC(b)
	case kindPM:
		p.handler.PutPM(b)
	default: // SOS has no dedicated Put event in the handler contract; discard.
	}
}

// terminateString dispatches a string sequence terminated by the 8-bit ST
// (0x9c), the one-byte equivalent of the 7-bit "ESC \" two-byte form handled
// by enterStringEscape/parseStringEscape.
func (p *Parser) terminateString(resume ParserState) {
	p.resumeState = resume
	p.dispatchPendingString()
	p.state = StateGround
}

// enterStringEscape transitions into the ESC-inside-string sub-state,
// remembering which string state was active so parseStringEscape can
// dispatch that string whatever the next byte is.
func (p *Parser) enterStringEscape(resume ParserState) {
	p.resumeState = resume
	p.state = stateStringEscape
}

// parseStringEscape resolves the ESC seen mid-string: '\\' completes a
// 7-bit ST and dispatches the pending string sequence; anything else means
// the string was left unterminated and the ESC begins a fresh sequence
// (reprocessed from Escape state), matching the teacher's
// "Re-parse the ESC" handling in parser.go's StateOSC case.
func (p *Parser) parseStringEscape(b byte) {
	if b != cST7 {
		p.dispatchPendingString()
		p.state = StateEscape
		p.parseEscape(b)
		return
	}
	p.dispatchPendingString()
	p.state = StateGround
}

func (p *Parser) dispatchPendingString() {
	switch p.resumeState {
	case StateOscString:
		p.handler.DispatchOSC()
	case StateDcsPassthrough:
		if p.subDCS != nil {
			p.subDCS.Unhook()
		}
		p.handler.Unhook()
	case StateDcsIgnore:
		// nothing to dispatch
	case StateSosPmApcString:
		switch p.strKind {
		case kindAPC:
			p.handler.DispatchAPC()
		case kindPM:
			p.handler.DispatchPM()
		}
	}
}
